package ports

import "context"

// PasswordHasher computes and checks one-way password hashes. Implementations
// are expected to be slow and must honour ctx while waiting.
type PasswordHasher interface {
	Hash(ctx context.Context, password string, cost int) (string, error)
	Compare(ctx context.Context, password, hash string) (bool, error)
}
