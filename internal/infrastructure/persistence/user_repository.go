package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mddstore/backend/internal/domain/identity"
	"github.com/mddstore/backend/internal/infrastructure/persistence/models"
)

// UserRepository is the GORM-backed user repository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates the repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *identity.User) error {
	err := r.db.WithContext(ctx).Create(models.FromUser(u)).Error
	return translate(err, "User not found", "An account with this email already exists")
}

func (r *UserRepository) Save(ctx context.Context, u *identity.User) error {
	err := r.db.WithContext(ctx).Save(models.FromUser(u)).Error
	return translate(err, "User not found", "An account with this email already exists")
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var m models.UserModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "User not found", "")
	}
	return m.ToDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var m models.UserModel
	err := r.db.WithContext(ctx).First(&m, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, translate(err, "User not found", "")
	}
	return m.ToDomain(), nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&count).Error
	return count, err
}
