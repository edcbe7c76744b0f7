package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/langkawi/directory-access/internal/core/domain"
)

// ConfigBus broadcasts project configuration changes between instances over a
// Redis pub/sub channel. Messages carry the sender's origin so an instance
// ignores its own publications.
type ConfigBus struct {
	client  *redis.Client
	channel string
	origin  string
	log     zerolog.Logger
}

type configMessage struct {
	Origin string                   `json:"origin"`
	Spec   domain.ProjectConfigSpec `json:"spec"`
}

// NewConfigBus creates a ConfigBus wrapping the given Redis client.
func NewConfigBus(client *redis.Client, channel string, log zerolog.Logger) *ConfigBus {
	return &ConfigBus{
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
		log:     log,
	}
}

// Publish implements ports.ConfigNotifier.
func (b *ConfigBus) Publish(ctx context.Context, spec domain.ProjectConfigSpec) error {
	payload, err := json.Marshal(configMessage{Origin: b.origin, Spec: spec})
	if err != nil {
		return fmt.Errorf("encode config message: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish config: %w", err)
	}
	return nil
}

// Subscribe delivers configurations published by other instances to apply
// until ctx is cancelled. Undecodable messages are logged and skipped.
func (b *ConfigBus) Subscribe(ctx context.Context, apply func(*domain.ProjectConfig) error) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.handle(msg.Payload, apply)
		}
	}
}

func (b *ConfigBus) handle(payload string, apply func(*domain.ProjectConfig) error) {
	cfg, ok := b.decode(payload)
	if !ok {
		return
	}
	if err := apply(cfg); err != nil {
		b.log.Warn().Err(err).Msg("remote project config rejected")
	}
}

// decode returns false for malformed messages and for messages this
// instance published itself.
func (b *ConfigBus) decode(payload string) (*domain.ProjectConfig, bool) {
	var msg configMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		b.log.Warn().Err(err).Msg("malformed config message")
		return nil, false
	}
	if msg.Origin == b.origin {
		return nil, false
	}
	return msg.Spec.Build(), true
}
