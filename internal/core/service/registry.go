package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/langkawi/directory-access/internal/core/domain"
	"github.com/langkawi/directory-access/internal/core/ports"
	"github.com/langkawi/directory-access/internal/pkg/metrics"
)

// Registry holds the active project configuration. Readers load an immutable
// snapshot without locking; writers validate a complete replacement and swap
// the pointer, so a reader never sees a partially applied configuration.
type Registry struct {
	current  atomic.Pointer[domain.ProjectConfig]
	writeMu  sync.Mutex // serialises persist+swap so the store and memory agree
	store    ports.ConfigStore
	notifier ports.ConfigNotifier
	log      zerolog.Logger
}

// NewRegistry installs initial as the active configuration. store and
// notifier may be nil.
func NewRegistry(initial *domain.ProjectConfig, store ports.ConfigStore, notifier ports.ConfigNotifier, log zerolog.Logger) (*Registry, error) {
	if res := domain.ValidateConfiguration(initial); !res.Valid {
		return nil, domain.NewViolationError(domain.ErrInvalidConfig, res.Violations)
	}
	r := &Registry{store: store, notifier: notifier, log: log}
	r.current.Store(initial)
	return r, nil
}

// Load returns the active configuration.
func (r *Registry) Load() *domain.ProjectConfig {
	return r.current.Load()
}

// Replace validates cfg, persists it, swaps it in and notifies peers. On a
// validation or persistence failure the prior configuration stays active.
func (r *Registry) Replace(ctx context.Context, cfg *domain.ProjectConfig) error {
	return r.swap(ctx, cfg, "api", true)
}

// SelectPreset replaces the active configuration wholesale with a preset.
func (r *Registry) SelectPreset(ctx context.Context, name string) error {
	cfg, ok := domain.Preset(name)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPreset, name)
	}
	return r.swap(ctx, cfg, "preset", true)
}

// Apply installs a configuration received from another instance. It is
// validated but neither persisted nor re-published.
func (r *Registry) Apply(cfg *domain.ProjectConfig) error {
	return r.swap(context.Background(), cfg, "remote", false)
}

// Restore adopts the persisted configuration, if any.
func (r *Registry) Restore(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	spec, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore project config: %w", err)
	}
	if spec == nil {
		return nil
	}
	return r.swap(ctx, spec.Build(), "restore", false)
}

func (r *Registry) swap(ctx context.Context, cfg *domain.ProjectConfig, source string, propagate bool) error {
	if res := domain.ValidateConfiguration(cfg); !res.Valid {
		metrics.ConfigSwapsTotal.WithLabelValues(source, "rejected").Inc()
		r.log.Warn().Str("source", source).Strs("violations", res.Violations).Msg("project config rejected")
		return domain.NewViolationError(domain.ErrInvalidConfig, res.Violations)
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if propagate && r.store != nil {
		if err := r.store.Save(ctx, cfg.Spec()); err != nil {
			metrics.ConfigSwapsTotal.WithLabelValues(source, "rejected").Inc()
			return fmt.Errorf("persist project config: %w", err)
		}
	}

	prev := r.current.Swap(cfg)
	metrics.ConfigSwapsTotal.WithLabelValues(source, "applied").Inc()
	r.log.Info().
		Str("source", source).
		Str("from", prev.ProjectName()).
		Str("to", cfg.ProjectName()).
		Msg("project config applied")

	if propagate && r.notifier != nil {
		if err := r.notifier.Publish(ctx, cfg.Spec()); err != nil {
			r.log.Warn().Err(err).Msg("failed to publish project config change")
		}
	}
	return nil
}

// Validate checks cfg without applying it.
func (r *Registry) Validate(cfg *domain.ProjectConfig) domain.ConfigValidation {
	return domain.ValidateConfiguration(cfg)
}

func (r *Registry) IsRoleEnabled(role domain.Role) bool {
	return r.Load().IsRoleEnabled(role)
}

func (r *Registry) IsModuleEnabled(role domain.Role, module domain.Module) bool {
	return r.Load().IsModuleEnabled(role, module)
}

func (r *Registry) ModulesForRole(role domain.Role) []domain.Module {
	return r.Load().ModulesForRole(role)
}

func (r *Registry) EnabledRoles() []domain.Role {
	return r.Load().EnabledRoles()
}

// CanAccess reports whether role is enabled and has module. This is the check
// request gating uses; the two lookups are taken from one snapshot.
func (r *Registry) CanAccess(role domain.Role, module domain.Module) bool {
	cfg := r.Load()
	return cfg.IsRoleEnabled(role) && cfg.IsModuleEnabled(role, module)
}
