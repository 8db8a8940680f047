package ports

import (
	"context"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
// Username uniqueness is enforced by the store's constraint mechanism:
// Create returns domain.ErrUsernameTaken for the losing write when two
// registrations race on the same name.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
