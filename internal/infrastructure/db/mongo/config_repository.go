package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/langkawi/directory-access/internal/core/domain"
)

const (
	configCollection = "project_config"
	activeConfigID   = "active"
)

// ConfigRepository implements ports.ConfigStore. It keeps a single document
// holding the active project configuration.
type ConfigRepository struct {
	coll *mongo.Collection
}

func NewConfigRepository(db *mongo.Database) *ConfigRepository {
	return &ConfigRepository{coll: db.Collection(configCollection)}
}

type mongoProjectConfig struct {
	ID        string                   `bson:"_id"`
	Spec      domain.ProjectConfigSpec `bson:"spec"`
	UpdatedAt int64                    `bson:"updated_at"`
}

// Save replaces the stored configuration as a whole.
func (r *ConfigRepository) Save(ctx context.Context, spec domain.ProjectConfigSpec) error {
	doc := mongoProjectConfig{
		ID:        activeConfigID,
		Spec:      spec,
		UpdatedAt: time.Now().UTC().Unix(),
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": activeConfigID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save project config: %w", err)
	}
	return nil
}

// Load returns the stored configuration, or nil when none was saved.
func (r *ConfigRepository) Load(ctx context.Context) (*domain.ProjectConfigSpec, error) {
	var doc mongoProjectConfig
	if err := r.coll.FindOne(ctx, bson.M{"_id": activeConfigID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("load project config: %w", err)
	}
	return &doc.Spec, nil
}
