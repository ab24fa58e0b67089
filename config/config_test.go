package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, AuthModeOAuth, cfg.Auth.Mode)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 8*time.Hour, cfg.Session.TTL)
	assert.Equal(t, time.Hour, cfg.Session.RenewWithin)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestAuthModeUnmarshal(t *testing.T) {
	var mode AuthMode
	require.NoError(t, mode.UnmarshalText([]byte("MOCK")))
	assert.Equal(t, AuthModeMock, mode)

	err := mode.UnmarshalText([]byte("saml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid AuthMode")
}

func TestGroupRolesParsing(t *testing.T) {
	t.Setenv("AUTH_GROUP_ROLES", "CN=HR-Admins:admin;CN=All-Employees:employee")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))

	assert.Equal(t, map[string]string{
		"CN=HR-Admins":     "admin",
		"CN=All-Employees": "employee",
	}, cfg.Auth.GroupRoles)
}

func TestSessionSanitizeGuardrails(t *testing.T) {
	s := SessionConfig{TTL: -time.Hour, RenewWithin: 0, ResolveTimeout: 0}
	s.Sanitize()

	assert.Equal(t, 8*time.Hour, s.TTL)
	assert.Equal(t, time.Hour, s.RenewWithin)
	assert.Equal(t, 2*time.Second, s.ResolveTimeout)

	// RenewWithin must stay inside the TTL.
	s = SessionConfig{TTL: 30 * time.Minute, RenewWithin: time.Hour, ResolveTimeout: time.Second}
	s.Sanitize()
	assert.Equal(t, time.Hour, s.RenewWithin) // reset against 30m TTL falls back to the default
}

func TestDetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}

func TestHTTPSanitize(t *testing.T) {
	h := HTTPConfig{Addr: "", ShutdownTimeout: 0}
	h.Sanitize()
	assert.Equal(t, ":8080", h.Addr)
	assert.Equal(t, 10*time.Second, h.ShutdownTimeout)
}
