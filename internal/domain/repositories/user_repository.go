package repositories

import (
	"context"

	"studio-ops.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// UpsertVerified creates the user if missing and marks it verified.
	UpsertVerified(ctx context.Context, email string) (*entities.User, error)
}
