package ports

import (
	"context"

	"github.com/langkawi/directory-access/internal/core/domain"
)

// UserRepository defines the persistence needed by the auth flows.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}
