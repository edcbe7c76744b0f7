package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/langkawi/directory-access/internal/core/domain"
	"github.com/langkawi/directory-access/internal/pkg/metrics"
)

// ModuleGate answers whether a role may use a module under the active
// project configuration.
type ModuleGate interface {
	CanAccess(role domain.Role, module domain.Module) bool
}

// RBAC enforces role-based access control.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(domain.Role)
			if !domain.RoleMatches(role, allowedRoles...) {
				metrics.AccessDecisionsTotal.WithLabelValues("role", "deny").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			metrics.AccessDecisionsTotal.WithLabelValues("role", "allow").Inc()
			return next(c)
		}
	}
}

// RequireModule admits the request only when the caller's role is enabled and
// has module enabled in the configuration current at request time.
func RequireModule(gate ModuleGate, module domain.Module) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(domain.Role)
			if role == "" || !gate.CanAccess(role, module) {
				metrics.AccessDecisionsTotal.WithLabelValues("module", "deny").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			metrics.AccessDecisionsTotal.WithLabelValues("module", "allow").Inc()
			return next(c)
		}
	}
}
