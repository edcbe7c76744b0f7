package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/langkawi/directory-access/internal/core/domain"
	"github.com/langkawi/directory-access/internal/core/ports"
)

const (
	DefaultAccessTTL      = 7 * 24 * time.Hour
	DefaultRefreshTTL     = 30 * 24 * time.Hour
	DefaultBcryptCost     = 12
	DefaultPasswordLength = 12
	randomPasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" + domain.PasswordSymbols
	bearerPrefix          = "Bearer "
)

// CredentialOptions configures a CredentialService. Zero durations and cost
// fall back to the defaults above.
type CredentialOptions struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int
	Clock      func() time.Time
}

// CredentialService issues and checks bearer tokens and password hashes.
// It holds no mutable state and is safe for concurrent use.
type CredentialService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	cost       int
	clock      func() time.Time
	hasher     ports.PasswordHasher
}

type tokenClaims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// NewCredentialService validates the startup parameters. An empty secret is a
// configuration error: the service refuses to exist rather than fail per call.
func NewCredentialService(opts CredentialOptions, hasher ports.PasswordHasher) (*CredentialService, error) {
	if strings.TrimSpace(opts.Secret) == "" {
		return nil, fmt.Errorf("%w: signing secret is required", domain.ErrConfiguration)
	}
	if hasher == nil {
		return nil, fmt.Errorf("%w: password hasher is required", domain.ErrConfiguration)
	}

	s := &CredentialService{
		secret:     []byte(opts.Secret),
		accessTTL:  opts.AccessTTL,
		refreshTTL: opts.RefreshTTL,
		cost:       opts.BcryptCost,
		clock:      opts.Clock,
		hasher:     hasher,
	}
	if s.accessTTL <= 0 {
		s.accessTTL = DefaultAccessTTL
	}
	if s.refreshTTL <= 0 {
		s.refreshTTL = DefaultRefreshTTL
	}
	if s.cost <= 0 {
		s.cost = DefaultBcryptCost
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s, nil
}

// AccessTTL returns the configured access-token lifetime.
func (s *CredentialService) AccessTTL() time.Duration { return s.accessTTL }

// IssueAccessToken signs a short-lived token for subject.
func (s *CredentialService) IssueAccessToken(subject domain.TokenSubject) (string, error) {
	return s.issue(subject, s.accessTTL)
}

// IssueRefreshToken signs a long-lived token for subject.
func (s *CredentialService) IssueRefreshToken(subject domain.TokenSubject) (string, error) {
	return s.issue(subject, s.refreshTTL)
}

// IssuePair signs both tokens for subject.
func (s *CredentialService) IssuePair(subject domain.TokenSubject) (domain.TokenPair, error) {
	access, err := s.IssueAccessToken(subject)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.IssueRefreshToken(subject)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *CredentialService) issue(subject domain.TokenSubject, ttl time.Duration) (string, error) {
	now := s.clock()
	claims := tokenClaims{
		UserID: subject.UserID,
		Email:  subject.Email,
		Role:   subject.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken returns the payload only when the signature is valid and the
// token has not expired. Every failure matches domain.ErrInvalidToken; the
// underlying jwt error is kept in the chain for logging.
func (s *CredentialService) VerifyToken(token string) (*domain.TokenPayload, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims.payload(), nil
}

// DecodeToken reads the payload without checking the signature or expiry.
// It exists to inspect expired tokens and must never be used to authorize.
func (s *CredentialService) DecodeToken(token string) (*domain.TokenPayload, bool) {
	return DecodeToken(token)
}

// DecodeToken is the stateless form of CredentialService.DecodeToken.
func DecodeToken(token string) (*domain.TokenPayload, bool) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims.payload(), true
}

func (c *tokenClaims) payload() *domain.TokenPayload {
	p := &domain.TokenPayload{
		UserID: c.UserID,
		Email:  c.Email,
		Role:   c.Role,
	}
	if c.IssuedAt != nil {
		p.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.Time
	}
	return p
}

// HashPassword derives a bcrypt hash at the configured cost. The work runs on
// the hasher's goroutines; ctx bounds how long the caller waits. Passwords
// longer than domain.MaxPasswordBytes are rejected as ErrWeakPassword.
func (s *CredentialService) HashPassword(ctx context.Context, password string) (string, error) {
	if len(password) > domain.MaxPasswordBytes {
		return "", domain.NewViolationError(domain.ErrWeakPassword, []string{domain.MsgPasswordTooLong})
	}
	return s.hasher.Hash(ctx, password, s.cost)
}

// ComparePassword reports whether password matches hash.
func (s *CredentialService) ComparePassword(ctx context.Context, password, hash string) (bool, error) {
	return s.hasher.Compare(ctx, password, hash)
}

// ValidatePasswordStrength applies the password policy.
func (s *CredentialService) ValidatePasswordStrength(password string) domain.PasswordStrength {
	return domain.ValidatePasswordStrength(password)
}

// GenerateRandomPassword draws length characters uniformly from the password
// charset using crypto/rand. length <= 0 selects DefaultPasswordLength.
func GenerateRandomPassword(length int) (string, error) {
	if length <= 0 {
		length = DefaultPasswordLength
	}
	limit := big.NewInt(int64(len(randomPasswordCharset)))

	var b strings.Builder
	b.Grow(length)
	for range length {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		b.WriteByte(randomPasswordCharset[n.Int64()])
	}
	return b.String(), nil
}

// ExtractBearerToken returns the token after the exact "Bearer " prefix.
func ExtractBearerToken(header string) (string, bool) {
	return strings.CutPrefix(header, bearerPrefix)
}

// TokenExpired reports whether a verification failure was caused by expiry.
// Callers must still answer both cases identically to clients.
func TokenExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
