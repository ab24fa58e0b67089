package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"peopledesk"`
	Password string `env:"PASSWORD" envDefault:"peopledesk"`
	Name     string `env:"NAME"     envDefault:"peopledesk"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration for the session store.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// SessionConfig controls session lifetime and renewal.
type SessionConfig struct {
	// TTL is the lifetime of a freshly created session.
	TTL time.Duration `env:"TTL" envDefault:"8h"`

	// RenewWithin triggers transparent renewal when a resolved session has
	// less than this much life remaining.
	RenewWithin time.Duration `env:"RENEW_WITHIN" envDefault:"1h"`

	// ResolveTimeout bounds per-request session resolution.
	ResolveTimeout time.Duration `env:"RESOLVE_TIMEOUT" envDefault:"2s"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = 8 * time.Hour
	}
	if s.RenewWithin <= 0 || s.RenewWithin >= s.TTL {
		s.RenewWithin = time.Hour
	}
	if s.ResolveTimeout <= 0 {
		s.ResolveTimeout = 2 * time.Second
	}
}
