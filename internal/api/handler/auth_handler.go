package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/langkawi/directory-access/internal/core/domain"
	"github.com/langkawi/directory-access/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	registry    ports.CapabilityRegistry
}

func NewAuthHandler(authService ports.AuthService, registry ports.CapabilityRegistry) *AuthHandler {
	return &AuthHandler{authService: authService, registry: registry}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name,omitempty" validate:"max=120"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,role"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type passwordStrengthRequest struct {
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken  string       `json:"access_token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	User         *domain.User `json:"user,omitempty"`
}

type meResponse struct {
	UserID      string          `json:"user_id"`
	Email       string          `json:"email"`
	Role        domain.Role     `json:"role"`
	RoleEnabled bool            `json:"role_enabled"`
	Modules     []domain.Module `json:"modules"`
}

type resetPasswordResponse struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordStrengthResponse struct {
	Valid      bool                  `json:"valid"`
	Rules      []domain.PasswordRule `json:"rules"`
	Violations []string              `json:"violations"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and returns an access/refresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	})
}

// Refresh exchanges a refresh token for a new token pair.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// Me returns the caller's identity and the modules enabled for their role.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, meResponse{
		UserID:      id.UserID,
		Email:       id.Email,
		Role:        id.Role,
		RoleEnabled: h.registry.IsRoleEnabled(id.Role),
		Modules:     h.registry.ModulesForRole(id.Role),
	})
}

// ChangePassword replaces the caller's password after checking the old one.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  changePasswordRequest  true  "Old and new password"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]any
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(c.Request().Context(), id.UserID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ResetPassword assigns a generated password to an account and returns it once.
//
// @Summary      Reset a user's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      resetPasswordRequest  true  "Account email"
// @Success      200   {object}  resetPasswordResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	password, err := h.authService.ResetPassword(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, resetPasswordResponse{Email: req.Email, Password: password})
}

// PasswordStrength evaluates a candidate password against the policy.
//
// @Summary      Check password strength
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      passwordStrengthRequest  true  "Candidate password"
// @Success      200   {object}  passwordStrengthResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/password/strength [post]
func (h *AuthHandler) PasswordStrength(c echo.Context) error {
	var req passwordStrengthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res := domain.ValidatePasswordStrength(req.Password)
	rules := res.Violations
	if rules == nil {
		rules = []domain.PasswordRule{}
	}
	return c.JSON(http.StatusOK, passwordStrengthResponse{
		Valid:      res.Valid,
		Rules:      rules,
		Violations: res.Messages(),
	})
}
