package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langkawi/directory-access/internal/core/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestToken_IssueVerifyDecode(t *testing.T) {
	token, err := execute(t, "token", "issue", "--secret", "s3cret", "--user-id", "u1", "--email", "a@example.com", "--role", "admin")
	require.NoError(t, err)
	token = strings.TrimSpace(token)
	require.Len(t, strings.Split(token, "."), 3)

	out, err := execute(t, "token", "verify", "--secret", "s3cret", token)
	require.NoError(t, err)
	var payload domain.TokenPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "u1", payload.UserID)
	assert.Equal(t, domain.RoleAdmin, payload.Role)

	_, err = execute(t, "token", "verify", "--secret", "other", token)
	assert.Error(t, err)

	out, err = execute(t, "token", "decode", token)
	require.NoError(t, err)
	assert.Contains(t, out, `"userId": "u1"`)
}

func TestToken_IssueRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := execute(t, "token", "issue", "--user-id", "u1")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestToken_IssueRejectsUnknownRole(t *testing.T) {
	_, err := execute(t, "token", "issue", "--secret", "s", "--user-id", "u1", "--role", "root")
	assert.Error(t, err)
}

func TestToken_DecodeMalformed(t *testing.T) {
	_, err := execute(t, "token", "decode", "not-a-token")
	assert.Error(t, err)
}

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := execute(t, "password", "hash", "--cost", "4", "Str0ng!pass")
	require.NoError(t, err)
	hash = strings.TrimSpace(hash)

	out, err := execute(t, "password", "check", "Str0ng!pass", hash)
	require.NoError(t, err)
	assert.Equal(t, "match\n", out)

	_, err = execute(t, "password", "check", "wrong", hash)
	assert.Error(t, err)
}

func TestPassword_Generate(t *testing.T) {
	out, err := execute(t, "password", "generate", "--length", "20")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 20)
}

func TestPassword_Strength(t *testing.T) {
	out, err := execute(t, "password", "strength", "weak")
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
	assert.Contains(t, out, `"valid": false`)

	_, err = execute(t, "password", "strength", "Str0ng!pass")
	assert.NoError(t, err)
}

func TestConfig_ShowPreset(t *testing.T) {
	out, err := execute(t, "config", "show", "--preset", domain.PresetEventDirectory)
	require.NoError(t, err)

	var spec domain.ProjectConfigSpec
	require.NoError(t, json.Unmarshal([]byte(out), &spec))
	assert.Equal(t, "Event Directory", spec.ProjectName)
	assert.Equal(t, []domain.Role{domain.RoleAdmin, domain.RolePublicUser}, spec.EnabledRoles)
}

func TestConfig_ShowUnknownPreset(t *testing.T) {
	_, err := execute(t, "config", "show", "--preset", "nope")
	assert.ErrorIs(t, err, domain.ErrUnknownPreset)
}

func TestConfig_ValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projectName: \"\"\nenabledRoles: [admin]\n"), 0o600))

	out, err := execute(t, "config", "validate", "--file", path)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Contains(t, out, "Project name is required")
}

func TestConfig_Presets(t *testing.T) {
	out, err := execute(t, "config", "presets")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)
}

func TestConfig_Access(t *testing.T) {
	out, err := execute(t, "config", "access", "freelancer", "serviceListing")
	require.NoError(t, err)
	assert.Contains(t, out, "true")

	_, err = execute(t, "config", "access", "businessOwner", "businessListing", "--preset", domain.PresetEventDirectory)
	assert.Error(t, err)
}
