package auth

import (
	"context"

	"storeboard/internal/core/id"
)

// UserRepository persists user accounts.
type UserRepository interface {
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}
