package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration      = errors.New("configuration error")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrRoleDisabled       = errors.New("role is not enabled for this project")
	ErrUnknownPreset      = errors.New("unknown project preset")
	ErrInvalidConfig      = errors.New("invalid project configuration")
	ErrWeakPassword       = errors.New("password does not meet strength requirements")
)

// ViolationError carries the rule violations behind ErrInvalidConfig or
// ErrWeakPassword so callers can present all of them at once.
type ViolationError struct {
	Kind       error
	Violations []string
}

// NewViolationError wraps kind with a copy of violations.
func NewViolationError(kind error, violations []string) *ViolationError {
	return &ViolationError{Kind: kind, Violations: append([]string(nil), violations...)}
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(e.Violations, "; "))
}

func (e *ViolationError) Unwrap() error { return e.Kind }
