package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/langkawi/directory-access/internal/core/domain"
	"github.com/langkawi/directory-access/internal/core/ports"
)

// ConfigHandler exposes the project capability registry.
type ConfigHandler struct {
	registry ports.CapabilityRegistry
}

func NewConfigHandler(registry ports.CapabilityRegistry) *ConfigHandler {
	return &ConfigHandler{registry: registry}
}

type selectPresetRequest struct {
	Name string `json:"name" validate:"required"`
}

type rolesResponse struct {
	Roles []domain.Role `json:"roles"`
}

type roleModulesResponse struct {
	Role    domain.Role     `json:"role"`
	Enabled bool            `json:"enabled"`
	Modules []domain.Module `json:"modules"`
}

type moduleAccessResponse struct {
	Role    domain.Role   `json:"role"`
	Module  domain.Module `json:"module"`
	Allowed bool          `json:"allowed"`
}

type presetResponse struct {
	Name   string                   `json:"name"`
	Config domain.ProjectConfigSpec `json:"config"`
}

type presetsResponse struct {
	Presets []presetResponse `json:"presets"`
}

// Get returns the active project configuration.
//
// @Summary      Active project configuration
// @Tags         config
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.ProjectConfigSpec
// @Router       /config [get]
func (h *ConfigHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.registry.Load().Spec())
}

// Roles lists the enabled roles.
//
// @Summary      Enabled roles
// @Tags         config
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  rolesResponse
// @Router       /config/roles [get]
func (h *ConfigHandler) Roles(c echo.Context) error {
	return c.JSON(http.StatusOK, rolesResponse{Roles: h.registry.EnabledRoles()})
}

// RoleModules lists the modules enabled for a role.
//
// @Summary      Modules enabled for a role
// @Tags         config
// @Produce      json
// @Security     BearerAuth
// @Param        role  path      string  true  "Role name"
// @Success      200   {object}  roleModulesResponse
// @Router       /config/roles/{role}/modules [get]
func (h *ConfigHandler) RoleModules(c echo.Context) error {
	role := domain.Role(c.Param("role"))
	return c.JSON(http.StatusOK, roleModulesResponse{
		Role:    role,
		Enabled: h.registry.IsRoleEnabled(role),
		Modules: h.registry.ModulesForRole(role),
	})
}

// ModuleAccess reports whether the caller's role may use a module.
//
// @Summary      Check module access for the caller
// @Tags         config
// @Produce      json
// @Security     BearerAuth
// @Param        module  path      string  true  "Module name"
// @Success      200     {object}  moduleAccessResponse
// @Failure      401     {object}  map[string]string
// @Router       /config/modules/{module}/access [get]
func (h *ConfigHandler) ModuleAccess(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	module := domain.Module(c.Param("module"))
	return c.JSON(http.StatusOK, moduleAccessResponse{
		Role:    id.Role,
		Module:  module,
		Allowed: h.registry.CanAccess(id.Role, module),
	})
}

// Presets lists the named presets.
//
// @Summary      Available presets
// @Tags         config
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  presetsResponse
// @Router       /config/presets [get]
func (h *ConfigHandler) Presets(c echo.Context) error {
	names := domain.PresetNames()
	out := make([]presetResponse, 0, len(names))
	for _, name := range names {
		cfg, _ := domain.Preset(name)
		out = append(out, presetResponse{Name: name, Config: cfg.Spec()})
	}
	return c.JSON(http.StatusOK, presetsResponse{Presets: out})
}

// SelectPreset replaces the active configuration with a named preset.
//
// @Summary      Switch to a preset
// @Tags         config
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      selectPresetRequest  true  "Preset name"
// @Success      200   {object}  domain.ProjectConfigSpec
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /config/preset [put]
func (h *ConfigHandler) SelectPreset(c echo.Context) error {
	var req selectPresetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.registry.SelectPreset(c.Request().Context(), req.Name); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.registry.Load().Spec())
}

// Replace installs a complete project configuration.
//
// @Summary      Replace the project configuration
// @Tags         config
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.ProjectConfigSpec  true  "Complete configuration"
// @Success      200   {object}  domain.ProjectConfigSpec
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /config [put]
func (h *ConfigHandler) Replace(c echo.Context) error {
	var spec domain.ProjectConfigSpec
	if err := c.Bind(&spec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.registry.Replace(c.Request().Context(), spec.Build()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.registry.Load().Spec())
}

// Validate checks a configuration without applying it.
//
// @Summary      Validate a project configuration
// @Tags         config
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.ProjectConfigSpec  true  "Configuration to check"
// @Success      200   {object}  domain.ConfigValidation
// @Router       /config/validate [post]
func (h *ConfigHandler) Validate(c echo.Context) error {
	var spec domain.ProjectConfigSpec
	if err := c.Bind(&spec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.JSON(http.StatusOK, h.registry.Validate(spec.Build()))
}
