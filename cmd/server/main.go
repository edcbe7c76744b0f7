package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/langkawi/directory-access/internal/api"
	"github.com/langkawi/directory-access/internal/api/handler"
	"github.com/langkawi/directory-access/internal/core/domain"
	"github.com/langkawi/directory-access/internal/core/ports"
	"github.com/langkawi/directory-access/internal/core/service"
	"github.com/langkawi/directory-access/internal/infrastructure/db/mongo"
	"github.com/langkawi/directory-access/internal/infrastructure/db/redis"
	"github.com/langkawi/directory-access/internal/infrastructure/projectfile"
	"github.com/langkawi/directory-access/internal/infrastructure/queue"
	"github.com/langkawi/directory-access/internal/pkg/config"
	"github.com/langkawi/directory-access/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// @title                       Directory Access API
// @version                     1.0
// @description                 Credentials, tokens and the project capability registry for the listings directory.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not configured yet; fall back to defaults.
		l := logger.New(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "directory-access",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Persistence ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "directory-access",
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	// Redis only carries configuration changes between instances; without it
	// the instance runs standalone.
	var (
		rdb      *goredis.Client
		bus      *redis.ConfigBus
		notifier ports.ConfigNotifier
	)
	rdb, err = redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, config changes will not propagate")
		rdb = nil
	} else {
		defer rdb.Close()
		bus = redis.NewConfigBus(rdb, cfg.Redis.Channel, log)
		notifier = bus
	}

	// --- Credentials ---
	pool := queue.NewHashPool(cfg.Auth.HashWorkers, log)
	pool.Start(ctx)

	creds, err := service.NewCredentialService(service.CredentialOptions{
		Secret:     cfg.Auth.JWTSecret,
		AccessTTL:  cfg.Auth.AccessTTL.Duration(),
		RefreshTTL: cfg.Auth.RefreshTTL.Duration(),
		BcryptCost: cfg.Auth.BcryptCost,
	}, pool)
	if err != nil {
		return err
	}

	// --- Capability registry ---
	initial, err := initialProjectConfig(cfg.Project)
	if err != nil {
		return err
	}
	registry, err := service.NewRegistry(initial, mongo.NewConfigRepository(db), notifier, log)
	if err != nil {
		return err
	}
	// An explicit preset or file wins over whatever was stored.
	if cfg.Project.Preset == "" && cfg.Project.File == "" {
		if err := registry.Restore(ctx); err != nil {
			log.Warn().Err(err).Msg("stored project config not restored")
		}
	}
	log.Info().Str("project", registry.Load().ProjectName()).Msg("project config active")

	if bus != nil {
		go func() {
			if err := bus.Subscribe(ctx, registry.Apply); err != nil {
				log.Error().Err(err).Msg("config subscription ended")
			}
		}()
	}

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		AuthService: service.NewAuthService(mongo.NewUserRepository(db), creds, registry, log),
		Verifier:    creds,
		Registry:    registry,
		Readiness:   handler.NewReadinessHandler(db, rdb),
		Log:         log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func initialProjectConfig(p config.ProjectConfig) (*domain.ProjectConfig, error) {
	switch {
	case p.File != "":
		return projectfile.Load(p.File)
	case p.Preset != "":
		cfg, _ := domain.Preset(p.Preset)
		return cfg, nil
	default:
		return domain.DefaultProjectConfig(), nil
	}
}
