package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)
	// ExistsByEmail checks if a user with the given email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
	// Delete deletes a user
	Delete(ctx context.Context, id uuid.UUID) error
}
