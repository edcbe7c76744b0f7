package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/langkawi/directory-access/internal/api/middleware"
	"github.com/langkawi/directory-access/internal/core/domain"
)

// ctxIdentity returns the verified identity injected by the Auth middleware.
// A missing identity means the route was mounted without Auth; treat it as 401.
func ctxIdentity(c echo.Context) (*domain.TokenPayload, error) {
	id, ok := middleware.Identity(c)
	if !ok || id.UserID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
