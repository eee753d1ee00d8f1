package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	identitydomain "github.com/mddstore/backend/internal/domain/identity"
	"github.com/mddstore/backend/internal/domain/shared"
)

// TokenIssuer mints access tokens for authenticated users
type TokenIssuer interface {
	Issue(user *identitydomain.User) (string, error)
}

// PasswordHasher hashes and verifies credentials
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

const minPasswordLength = 8

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult pairs a user with a fresh access token
type AuthResult struct {
	User  *identitydomain.User
	Token string
}

// Service implements signup, login and profile access
type Service struct {
	users  identitydomain.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	logger *zap.Logger
}

// NewService wires the identity workflow
func NewService(users identitydomain.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *zap.Logger) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Register creates an account and signs the user in. The very first account
// on a fresh install becomes the administrator.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if len(req.Password) < minPasswordLength {
		return nil, shared.NewDomainErrorf("VALIDATION_ERROR", "Password must be at least %d characters", minPasswordLength)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := identitydomain.NewUser(req.Name, req.Email, hash)
	if err != nil {
		return nil, err
	}

	if count, err := s.users.Count(ctx); err == nil && count == 0 {
		user.PromoteToAdmin()
		s.logger.Info("first account promoted to admin", zap.String("email", user.Email))
	}

	if err := s.users.Create(ctx, user); err != nil {
		if isCode(err, "ALREADY_EXISTS") {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and returns a fresh token. Unknown emails and
// wrong passwords get the same answer.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if isCode(err, "NOT_FOUND") {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
		}
		return nil, err
	}
	if !user.Active {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is disabled")
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Me returns the authenticated user's profile
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*identitydomain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// ChangePassword swaps the credential after verifying the current one
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if len(next) < minPasswordLength {
		return shared.NewDomainErrorf("VALIDATION_ERROR", "Password must be at least %d characters", minPasswordLength)
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.PasswordHash, current); err != nil {
		return shared.NewDomainError("UNAUTHORIZED", "Current password is incorrect")
	}
	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	if err := user.ChangePasswordHash(hash); err != nil {
		return err
	}
	return s.users.Save(ctx, user)
}

func isCode(err error, code string) bool {
	de, ok := err.(*shared.DomainError)
	return ok && de.Code == code
}
