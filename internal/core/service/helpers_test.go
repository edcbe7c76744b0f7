package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/langkawi/directory-access/internal/core/domain"
)

// syncHasher hashes on the calling goroutine.
type syncHasher struct{}

func (syncHasher) Hash(_ context.Context, password string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(h), err
}

func (syncHasher) Compare(_ context.Context, password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return err == nil, err
}

func newTestCredentials(t *testing.T, clock func() time.Time) *CredentialService {
	t.Helper()
	svc, err := NewCredentialService(CredentialOptions{
		Secret:     "test-secret",
		BcryptCost: bcrypt.MinCost,
		Clock:      clock,
	}, syncHasher{})
	if err != nil {
		t.Fatalf("new credential service: %v", err)
	}
	return svc
}

func newTestRegistry(t *testing.T, cfg *domain.ProjectConfig) *Registry {
	t.Helper()
	if cfg == nil {
		cfg = domain.DefaultProjectConfig()
	}
	r, err := NewRegistry(cfg, nil, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return r
}
