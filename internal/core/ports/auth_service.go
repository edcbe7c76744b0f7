package ports

import (
	"context"

	"github.com/langkawi/directory-access/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (domain.TokenPair, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	ResetPassword(ctx context.Context, email string) (string, error)
}

// TokenVerifier is the slice of the credential service the transport needs.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.TokenPayload, error)
}
