package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/langkawi/directory-access/internal/core/domain"
	"github.com/langkawi/directory-access/internal/core/service"
	"github.com/langkawi/directory-access/internal/infrastructure/queue"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func (m *memoryUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	cp := *user
	cp.ID = uuid.NewString()
	m.users[cp.ID] = &cp
	return &cp, nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) UpdatePasswordHash(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

type testServer struct {
	e        *echo.Echo
	registry *service.Registry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pool := queue.NewHashPool(2, zerolog.Nop())
	pool.Start(ctx)

	creds, err := service.NewCredentialService(service.CredentialOptions{
		Secret:     "router-test-secret",
		BcryptCost: bcrypt.MinCost,
	}, pool)
	require.NoError(t, err)

	registry, err := service.NewRegistry(domain.DefaultProjectConfig(), nil, nil, zerolog.Nop())
	require.NoError(t, err)

	users := &memoryUsers{users: map[string]*domain.User{}}
	e := NewRouter(Dependencies{
		AuthService: service.NewAuthService(users, creds, registry, zerolog.Nop()),
		Verifier:    creds,
		Registry:    registry,
		Log:         zerolog.Nop(),
		Metrics:     prometheus.NewRegistry(),
	})
	return &testServer{e: e, registry: registry}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) registerAndLogin(t *testing.T, email string, role domain.Role) string {
	t.Helper()
	body := `{"email":"` + email + `","password":"Str0ng!pass","role":"` + string(role) + `"}`
	rec := s.do(t, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/auth/login", "", `{"email":"`+email+`","password":"Str0ng!pass"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AuthFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "owner@example.com", domain.RoleBusinessOwner)

	rec := s.do(t, http.MethodGet, "/auth/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"businessOwner"`)
	assert.Contains(t, rec.Body.String(), `"businessListing"`)

	rec = s.do(t, http.MethodGet, "/config/modules/jobPosting/access", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"allowed":true`)
}

func TestRouter_UniformUnauthorized(t *testing.T) {
	s := newTestServer(t)
	s.registerAndLogin(t, "alice@example.com", domain.RolePublicUser)

	wrongPassword := s.do(t, http.MethodPost, "/auth/login", "", `{"email":"alice@example.com","password":"Wr0ng!pass"}`)
	unknownEmail := s.do(t, http.MethodPost, "/auth/login", "", `{"email":"ghost@example.com","password":"Str0ng!pass"}`)
	badToken := s.do(t, http.MethodGet, "/auth/me", "not-a-token", "")
	noToken := s.do(t, http.MethodGet, "/config", "", "")

	for _, rec := range []*httptest.ResponseRecorder{wrongPassword, unknownEmail, badToken, noToken} {
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, msgNotAuthorized, errorMessage(t, rec))
	}
}

func TestRouter_AdminOnlyConfigChanges(t *testing.T) {
	s := newTestServer(t)
	user := s.registerAndLogin(t, "user@example.com", domain.RolePublicUser)
	admin := s.registerAndLogin(t, "admin@example.com", domain.RoleAdmin)

	rec := s.do(t, http.MethodPut, "/config/preset", user, `{"name":"eventDirectory"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPut, "/config/preset", admin, `{"name":"eventDirectory"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Event Directory", s.registry.Load().ProjectName())

	// businessOwner is not part of the event directory preset.
	rec = s.do(t, http.MethodPost, "/auth/register", "", `{"email":"late@example.com","password":"Str0ng!pass","role":"businessOwner"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ReplaceRejectsInvalidConfig(t *testing.T) {
	s := newTestServer(t)
	admin := s.registerAndLogin(t, "admin@example.com", domain.RoleAdmin)

	rec := s.do(t, http.MethodPut, "/config", admin, `{"projectName":"","enabledRoles":[],"enabledModules":null}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Violations, 3)
	assert.Equal(t, "Langkawi Directory", s.registry.Load().ProjectName())
}

func TestRouter_WeakPasswordViolations(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/auth/register", "", `{"email":"weak@example.com","password":"weak","role":"publicUser"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Violations, 4)
}

func TestRouter_OverlongPasswordIsUnprocessable(t *testing.T) {
	s := newTestServer(t)
	body := `{"email":"long@example.com","password":"Aa1!` + strings.Repeat("x", 76) + `","role":"publicUser"}`
	rec := s.do(t, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{domain.MsgPasswordTooLong}, resp.Violations)
}

func TestRouter_Metrics(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/health", "", "")

	rec := s.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "directory_access_requests_total")
}
