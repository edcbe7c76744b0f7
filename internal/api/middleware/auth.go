package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/langkawi/directory-access/internal/core/domain"
	"github.com/langkawi/directory-access/internal/core/ports"
	"github.com/langkawi/directory-access/internal/core/service"
	"github.com/langkawi/directory-access/internal/pkg/metrics"
)

// Context keys set by Auth.
const (
	ContextKeyIdentity = "identity"
	ContextKeyRole     = "role"
)

// Auth extracts the bearer token, verifies it and injects the caller identity
// into context. Every failure is reported as 401.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := service.ExtractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok || token == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			payload, err := verifier.VerifyToken(token)
			if err != nil {
				result := "invalid"
				if service.TokenExpired(err) {
					result = "expired"
				}
				metrics.TokenVerificationsTotal.WithLabelValues(result).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			c.Set(ContextKeyIdentity, payload)
			c.Set(ContextKeyRole, payload.Role)

			return next(c)
		}
	}
}

// Identity returns the verified token payload stored by Auth.
func Identity(c echo.Context) (*domain.TokenPayload, bool) {
	payload, ok := c.Get(ContextKeyIdentity).(*domain.TokenPayload)
	return payload, ok && payload != nil
}
