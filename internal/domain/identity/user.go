package identity

import (
	"strings"

	"github.com/mddstore/backend/internal/domain/shared"
)

// User is a registered customer or administrator
type User struct {
	shared.BaseEntity
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	Active       bool
}

// NewUser creates an active non-admin user. The password hash is produced by
// the caller; the domain never sees plaintext passwords.
func NewUser(name, email, passwordHash string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Name cannot be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "A valid email is required")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Password hash cannot be empty")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Active:       true,
	}, nil
}

// PromoteToAdmin grants administrator rights
func (u *User) PromoteToAdmin() {
	u.IsAdmin = true
	u.Touch()
}

// Deactivate blocks the account from logging in
func (u *User) Deactivate() {
	u.Active = false
	u.Touch()
}

// UpdateProfile changes the display name
func (u *User) UpdateProfile(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Name cannot be empty")
	}
	u.Name = name
	u.Touch()
	return nil
}

// ChangePasswordHash replaces the stored credential hash
func (u *User) ChangePasswordHash(hash string) error {
	if hash == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Password hash cannot be empty")
	}
	u.PasswordHash = hash
	u.Touch()
	return nil
}
