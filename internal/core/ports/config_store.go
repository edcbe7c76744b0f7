package ports

import (
	"context"

	"github.com/langkawi/directory-access/internal/core/domain"
)

// ConfigStore persists the active project configuration across restarts.
// Load returns (nil, nil) when nothing has been stored yet.
type ConfigStore interface {
	Save(ctx context.Context, spec domain.ProjectConfigSpec) error
	Load(ctx context.Context) (*domain.ProjectConfigSpec, error)
}

// ConfigNotifier broadcasts configuration changes to other instances.
type ConfigNotifier interface {
	Publish(ctx context.Context, spec domain.ProjectConfigSpec) error
}
