package domain

import (
	"fmt"
	"slices"
)

// ProjectConfig is the role → module capability matrix of a project.
// Fields are unexported so a constructed value can be shared by any number of
// readers without locking; every accessor hands out copies.
type ProjectConfig struct {
	name    string
	roles   []Role
	modules map[Role][]Module // nil means "not configured", distinct from empty
}

// ProjectConfigSpec is the serialisable form of a ProjectConfig.
type ProjectConfigSpec struct {
	ProjectName    string            `json:"projectName"    bson:"project_name"`
	EnabledRoles   []Role            `json:"enabledRoles"   bson:"enabled_roles"`
	EnabledModules map[Role][]Module `json:"enabledModules" bson:"enabled_modules"`
}

// NewProjectConfig deep-copies its inputs into an immutable configuration.
func NewProjectConfig(name string, roles []Role, modules map[Role][]Module) *ProjectConfig {
	cfg := &ProjectConfig{
		name:  name,
		roles: slices.Clone(roles),
	}
	if modules != nil {
		cfg.modules = make(map[Role][]Module, len(modules))
		for role, mods := range modules {
			// slices.Clone keeps a nil list nil, so a null entry stays missing.
			cfg.modules[role] = slices.Clone(mods)
		}
	}
	return cfg
}

// Build converts the spec into an immutable ProjectConfig.
func (s ProjectConfigSpec) Build() *ProjectConfig {
	return NewProjectConfig(s.ProjectName, s.EnabledRoles, s.EnabledModules)
}

// Spec returns a serialisable deep copy of the configuration.
func (c *ProjectConfig) Spec() ProjectConfigSpec {
	spec := ProjectConfigSpec{
		ProjectName:  c.name,
		EnabledRoles: c.EnabledRoles(),
	}
	if c.modules != nil {
		spec.EnabledModules = make(map[Role][]Module, len(c.modules))
		for role, mods := range c.modules {
			spec.EnabledModules[role] = slices.Clone(mods)
		}
	}
	return spec
}

func (c *ProjectConfig) ProjectName() string { return c.name }

// EnabledRoles returns a snapshot of the globally enabled roles.
func (c *ProjectConfig) EnabledRoles() []Role {
	if c.roles == nil {
		return []Role{}
	}
	return slices.Clone(c.roles)
}

// ModulesForRole returns a snapshot of the role's modules, empty if the role
// has no entry.
func (c *ProjectConfig) ModulesForRole(role Role) []Module {
	mods := c.modules[role]
	if mods == nil {
		return []Module{}
	}
	return slices.Clone(mods)
}

// IsRoleEnabled reports whether role is in the enabled role list.
func (c *ProjectConfig) IsRoleEnabled(role Role) bool {
	return slices.Contains(c.roles, role)
}

// IsModuleEnabled reports whether module is in the role's module list. It does
// not consult the enabled role list; callers that need both must check both.
func (c *ProjectConfig) IsModuleEnabled(role Role, module Module) bool {
	return slices.Contains(c.modules[role], module)
}

// HasModuleEntry reports whether the role has a (possibly empty) module list.
// A key mapped to a null list is not an entry.
func (c *ProjectConfig) HasModuleEntry(role Role) bool {
	return c.modules[role] != nil
}

// ModuleAccessAllowed is the nil-safe form of IsModuleEnabled used by the
// credential layer, where no configuration means no access.
func ModuleAccessAllowed(role Role, module Module, cfg *ProjectConfig) bool {
	if cfg == nil {
		return false
	}
	return cfg.IsModuleEnabled(role, module)
}

// ConfigValidation is the structured result of ValidateConfiguration.
type ConfigValidation struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

const (
	msgProjectNameRequired = "Project name is required"
	msgRoleRequired        = "At least one role must be enabled"
	msgModulesRequired     = "Enabled modules configuration is required"
)

// ValidateConfiguration checks every rule without short-circuiting.
//
// A role may have a module entry without being enabled; that passes.
func ValidateConfiguration(c *ProjectConfig) ConfigValidation {
	if c == nil {
		return ConfigValidation{Violations: []string{msgProjectNameRequired, msgRoleRequired, msgModulesRequired}}
	}

	violations := []string{}
	if c.name == "" {
		violations = append(violations, msgProjectNameRequired)
	}
	if len(c.roles) == 0 {
		violations = append(violations, msgRoleRequired)
	}
	if c.modules == nil {
		violations = append(violations, msgModulesRequired)
	}
	for _, role := range c.roles {
		if !c.HasModuleEntry(role) {
			violations = append(violations, fmt.Sprintf("Role '%s' is missing module configuration", role))
		}
	}

	return ConfigValidation{Valid: len(violations) == 0, Violations: violations}
}
