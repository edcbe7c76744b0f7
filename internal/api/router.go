package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/langkawi/directory-access/docs"
	"github.com/langkawi/directory-access/internal/api/handler"
	"github.com/langkawi/directory-access/internal/api/middleware"
	"github.com/langkawi/directory-access/internal/core/domain"
	"github.com/langkawi/directory-access/internal/core/ports"
)

// Dependencies groups what the router wires into handlers and middleware.
type Dependencies struct {
	AuthService ports.AuthService
	Verifier    ports.TokenVerifier
	Registry    ports.CapabilityRegistry
	Readiness   *handler.ReadinessHandler
	Log         zerolog.Logger

	// Metrics receives the HTTP request metrics. Nil means the default
	// Prometheus registry, which also holds the service metrics.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(metricsConfig(deps.Metrics)))

	authHandler := handler.NewAuthHandler(deps.AuthService, deps.Registry)
	configHandler := handler.NewConfigHandler(deps.Registry)
	authRequired := middleware.Auth(deps.Verifier)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/password/strength", authHandler.PasswordStrength)
	auth.GET("/me", authHandler.Me, authRequired)
	auth.PUT("/password", authHandler.ChangePassword, authRequired)
	auth.POST("/password/reset", authHandler.ResetPassword, authRequired, adminOnly)

	// --- Capability registry ---
	cfg := e.Group("/config", authRequired)
	cfg.GET("", configHandler.Get)
	cfg.GET("/roles", configHandler.Roles)
	cfg.GET("/roles/:role/modules", configHandler.RoleModules)
	cfg.GET("/modules/:module/access", configHandler.ModuleAccess)
	cfg.GET("/presets", configHandler.Presets)
	cfg.PUT("", configHandler.Replace, adminOnly)
	cfg.PUT("/preset", configHandler.SelectPreset, adminOnly)
	cfg.POST("/validate", configHandler.Validate, adminOnly)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness) // liveness  – is the process alive?
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness) // readiness – are dependencies up?
	}

	e.GET("/metrics", metricsHandler(deps.Metrics))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func metricsConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{Subsystem: "directory_access"}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
