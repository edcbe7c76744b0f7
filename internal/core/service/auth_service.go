package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/langkawi/directory-access/internal/core/domain"
	"github.com/langkawi/directory-access/internal/core/ports"
	"github.com/langkawi/directory-access/internal/pkg/metrics"
)

// maxResetAttempts bounds how many random passwords are drawn while looking
// for one that satisfies the strength policy.
const maxResetAttempts = 32

// AuthService implements registration, login, refresh and password changes.
type AuthService struct {
	repo     ports.UserRepository
	creds    *CredentialService
	registry *Registry
	log      zerolog.Logger
	now      func() time.Time

	decoyMu sync.Mutex
	decoy   string
}

func NewAuthService(repo ports.UserRepository, creds *CredentialService, registry *Registry, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, creds: creds, registry: registry, log: log, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" || !in.Role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}
	if !s.registry.IsRoleEnabled(in.Role) {
		return nil, fmt.Errorf("register %s: %w", in.Role, domain.ErrRoleDisabled)
	}
	if strength := s.creds.ValidatePasswordStrength(in.Password); !strength.Valid {
		return nil, domain.NewViolationError(domain.ErrWeakPassword, strength.Messages())
	}

	hash, err := s.creds.HashPassword(ctx, in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", created.ID).Str("role", created.Role.String()).Msg("user registered")
	return created, nil
}

// Login answers ErrInvalidCredentials for both an unknown email and a wrong
// password, and runs a bcrypt comparison in both cases.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return domain.TokenPair{}, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return domain.TokenPair{}, nil, err
	}

	var hash string
	if user != nil {
		hash = user.PasswordHash
	} else {
		hash = s.decoyHash(ctx)
	}
	ok, cmpErr := s.creds.ComparePassword(ctx, password, hash)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.TokenPair{}, nil, ctxErr
	}
	if user == nil || cmpErr != nil || !ok {
		return domain.TokenPair{}, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return domain.TokenPair{}, nil, err
	}
	return pair, user, nil
}

// Refresh exchanges a valid refresh token for a new pair. The user is looked
// up again so deleted accounts and role changes take effect.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	payload, err := s.creds.VerifyToken(refreshToken)
	if err != nil {
		return domain.TokenPair{}, err
	}

	user, err := s.repo.FindByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.TokenPair{}, domain.ErrInvalidToken
		}
		return domain.TokenPair{}, err
	}
	return s.issuePair(user)
}

// ChangePassword replaces the stored hash after checking the old password.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := s.creds.ComparePassword(ctx, oldPassword, user.PasswordHash)
	if err != nil || !ok {
		return domain.ErrInvalidCredentials
	}
	if strength := s.creds.ValidatePasswordStrength(newPassword); !strength.Valid {
		return domain.NewViolationError(domain.ErrWeakPassword, strength.Messages())
	}

	hash, err := s.creds.HashPassword(ctx, newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}
	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

// ResetPassword assigns a generated password that satisfies the policy and
// returns it. The plaintext is returned once and never stored.
func (s *AuthService) ResetPassword(ctx context.Context, email string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}

	password, err := strongRandomPassword(DefaultPasswordLength)
	if err != nil {
		return "", err
	}

	hash, err := s.creds.HashPassword(ctx, password)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return "", err
	}
	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return password, nil
}

func (s *AuthService) issuePair(user *domain.User) (domain.TokenPair, error) {
	pair, err := s.creds.IssuePair(user.Subject())
	if err != nil {
		return domain.TokenPair{}, err
	}
	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()
	return pair, nil
}

func strongRandomPassword(length int) (string, error) {
	for range maxResetAttempts {
		pw, err := GenerateRandomPassword(length)
		if err != nil {
			return "", err
		}
		if domain.ValidatePasswordStrength(pw).Valid {
			return pw, nil
		}
	}
	return "", errors.New("generate password: no candidate satisfied the strength policy")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// decoyHash returns a hash at the configured cost that no password matches.
// Unknown emails are compared against it so both login failures cost the same.
// A failed attempt leaves it unset and the next login tries again.
func (s *AuthService) decoyHash(ctx context.Context) string {
	s.decoyMu.Lock()
	defer s.decoyMu.Unlock()
	if s.decoy != "" {
		return s.decoy
	}

	pw, err := GenerateRandomPassword(32)
	if err != nil {
		s.log.Warn().Err(err).Msg("decoy password not generated")
		return ""
	}
	h, err := s.creds.HashPassword(ctx, pw)
	if err != nil {
		s.log.Warn().Err(err).Msg("decoy hash not computed")
		return ""
	}
	s.decoy = h
	return s.decoy
}
