package ports

import (
	"context"

	"github.com/langkawi/directory-access/internal/core/domain"
)

// CapabilityRegistry exposes the active project configuration to transports.
type CapabilityRegistry interface {
	Load() *domain.ProjectConfig
	Replace(ctx context.Context, cfg *domain.ProjectConfig) error
	SelectPreset(ctx context.Context, name string) error
	Validate(cfg *domain.ProjectConfig) domain.ConfigValidation
	EnabledRoles() []domain.Role
	ModulesForRole(role domain.Role) []domain.Module
	IsRoleEnabled(role domain.Role) bool
	CanAccess(role domain.Role, module domain.Module) bool
}
