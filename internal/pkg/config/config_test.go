package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langkawi/directory-access/internal/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "test-secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.AccessTTL.Duration())
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.RefreshTTL.Duration())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "directory:project-config", cfg.Redis.Channel)
	assert.Empty(t, cfg.Project.Preset)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":             "s",
		"JWT_EXPIRES_IN":         "15m",
		"JWT_REFRESH_EXPIRES_IN": "2 days",
		"BCRYPT_SALT_ROUNDS":     "10",
		"PROJECT_PRESET":         "eventDirectory",
		"ENV":                    "production",
	}))
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTTL.Duration())
	assert.Equal(t, 48*time.Hour, cfg.Auth.RefreshTTL.Duration())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "eventDirectory", cfg.Project.Preset)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_MissingSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad lifetime":   {"JWT_SECRET": "s", "JWT_EXPIRES_IN": "soon"},
		"cost too low":   {"JWT_SECRET": "s", "BCRYPT_SALT_ROUNDS": "2"},
		"cost too high":  {"JWT_SECRET": "s", "BCRYPT_SALT_ROUNDS": "40"},
		"unknown preset": {"JWT_SECRET": "s", "PROJECT_PRESET": "nope"},
		"preset and file": {
			"JWT_SECRET": "s", "PROJECT_PRESET": "adsBoard", "PROJECT_CONFIG_FILE": "p.yml",
		},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := load(context.Background(), envconfig.MapLookuper(env))
			require.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestParseLifetime(t *testing.T) {
	cases := map[string]time.Duration{
		"7d":      7 * 24 * time.Hour,
		"30d":     30 * 24 * time.Hour,
		"1w":      7 * 24 * time.Hour,
		"2h":      2 * time.Hour,
		"15m":     15 * time.Minute,
		"90s":     90 * time.Second,
		"500ms":   500 * time.Millisecond,
		"120":     120 * time.Millisecond,
		"1.5h":    90 * time.Minute,
		"2 days":  48 * time.Hour,
		"10 MINS": 10 * time.Minute,
		"1y":      8766 * time.Hour,
	}
	for in, want := range cases {
		got, err := ParseLifetime(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "d", "7 fortnights", "-1d", "0"} {
		_, err := ParseLifetime(bad)
		assert.Error(t, err, bad)
	}
}
