package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users. Emails are
// unique; Create surfaces ALREADY_EXISTS on a duplicate.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Count(ctx context.Context) (int64, error)
}
