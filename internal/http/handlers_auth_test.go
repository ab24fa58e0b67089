package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/peopledesk/peopledesk/internal/domain/auth"
	mockauth "github.com/peopledesk/peopledesk/internal/mocks/auth"
	"github.com/peopledesk/peopledesk/internal/service"
)

func newAuthHandlers(role domainauth.Role) (*AuthHandlers, *mockauth.MemorySessionStore) {
	store := mockauth.NewMemorySessionStore()
	svc := service.NewAuthService(service.AuthServiceOptions{
		Provider: mockauth.NewMockAuthProvider(),
		Sessions: store,
		Roles:    mockauth.FixedRoleMapper{Role: role},
	})
	return &AuthHandlers{Svc: svc}, store
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthLoginRedirectsToProviderWithCookies(t *testing.T) {
	h, _ := newAuthHandlers(domainauth.RoleEmployee)

	req := httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=/leaves", nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://mock-idp/auth", rec.Header().Get("Location"))

	state := cookieByName(rec, "oauth_state")
	require.NotNil(t, state)
	assert.Equal(t, "state-1", state.Value)
	nonce := cookieByName(rec, "oauth_nonce")
	require.NotNil(t, nonce)
	assert.Equal(t, "nonce-1", nonce.Value)
	redirect := cookieByName(rec, "post_login_redirect")
	require.NotNil(t, redirect)
	assert.Equal(t, "/leaves", redirect.Value)
}

func TestAuthLoginRejectsAbsoluteRedirect(t *testing.T) {
	h, _ := newAuthHandlers(domainauth.RoleEmployee)

	req := httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=https://evil.example/", nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	redirect := cookieByName(rec, "post_login_redirect")
	require.NotNil(t, redirect)
	assert.Equal(t, "/", redirect.Value)
}

func TestAuthCallbackMissingCode(t *testing.T) {
	h, _ := newAuthHandlers(domainauth.RoleEmployee)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=state-1", nil)
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_code")
}

func TestAuthCallbackStateMismatch(t *testing.T) {
	h, _ := newAuthHandlers(domainauth.RoleEmployee)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=state-1", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-2"})
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_state")
}

func TestAuthCallbackEstablishesSession(t *testing.T) {
	h, store := newAuthHandlers(domainauth.RoleHRManager)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=state-1", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-1"})
	req.AddCookie(&http.Cookie{Name: "oauth_nonce", Value: "nonce-1"})
	req.AddCookie(&http.Cookie{Name: "post_login_redirect", Value: "/hr/dashboard"})
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/hr/dashboard", rec.Header().Get("Location"))

	sessionCookie := cookieByName(rec, "session_id")
	require.NotNil(t, sessionCookie)
	require.NotEmpty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)

	saved, err := store.Get(t.Context(), sessionCookie.Value)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleHRManager, saved.Role)
	assert.Equal(t, "mock-user-1", saved.UserID)

	// OAuth cookies are one-shot.
	state := cookieByName(rec, "oauth_state")
	require.NotNil(t, state)
	assert.Negative(t, state.MaxAge)
}

func TestAuthStatusUnauthenticated(t *testing.T) {
	h, _ := newAuthHandlers(domainauth.RoleEmployee)

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())
}

func TestAuthStatusAuthenticated(t *testing.T) {
	h, store := newAuthHandlers(domainauth.RoleEmployee)
	f := &routerFixture{store: store}
	cookie := f.seedSession(t, domainauth.RoleEmployee, testSessionTTL)

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	assert.Contains(t, rec.Body.String(), `"role":"employee"`)
}

func TestAuthLogoutClearsSession(t *testing.T) {
	h, store := newAuthHandlers(domainauth.RoleEmployee)
	f := &routerFixture{store: store}
	cookie := f.seedSession(t, domainauth.RoleEmployee, testSessionTTL)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cleared := cookieByName(rec, "session_id")
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)

	_, err := store.Get(t.Context(), cookie.Value)
	assert.Error(t, err)
}

func TestSafeRedirectPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/leaves", "/leaves"},
		{"/employees?limit=5", "/employees?limit=5"},
		{"https://evil.example/x", "/"},
		{"//evil.example/x", "/"},
		{"relative", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeRedirectPath(tt.in), "input %q", tt.in)
	}
}
