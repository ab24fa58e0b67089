package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/peopledesk/peopledesk/config"
	"github.com/peopledesk/peopledesk/internal/adapters/authroles"
	"github.com/peopledesk/peopledesk/internal/adapters/devauth"
	"github.com/peopledesk/peopledesk/internal/adapters/oidc"
	redisadapter "github.com/peopledesk/peopledesk/internal/adapters/redis"
	domainauth "github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/service"
)

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	Session     config.SessionConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
// Returns nil if auth is not configured or configuration is invalid.
func BuildAuthService(cfg AuthConfig) *service.AuthService {
	if cfg.RedisClient == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: redis client not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}

	// Redis session store and role mapper are shared by both modes
	sessionStore := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "session:")
	roleMapper := buildRoleMapper(cfg.Auth.GroupRoles, cfg.Logger)

	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return buildDevAuthService(cfg, sessionStore, roleMapper)

	case config.AuthModeOAuth:
		return buildOAuthService(cfg, sessionStore, roleMapper)

	default:
		return nil
	}
}

// buildRoleMapper converts the configured group → role name table into a
// GroupRoleMapper, dropping entries naming roles outside the catalog.
func buildRoleMapper(groupRoles map[string]string, logger *slog.Logger) authroles.GroupRoleMapper {
	groups := make(map[string]domainauth.Role, len(groupRoles))
	for group, roleName := range groupRoles {
		role := domainauth.Role(roleName)
		if !role.Valid() {
			if logger != nil {
				logger.Warn("ignoring group mapping to unknown role", "group", group, "role", roleName)
			}
			continue
		}
		groups[group] = role
	}
	return authroles.GroupRoleMapper{Groups: groups}
}

func buildDevAuthService(
	cfg AuthConfig,
	sessionStore *redisadapter.SessionStore,
	roleMapper authroles.GroupRoleMapper,
) *service.AuthService {
	// Explicitly enabled dev auth mode; build a local provider.
	prov, err := devauth.NewProvider(devauth.Config{
		UserID:          cfg.Auth.DevAuth.UserID,
		Email:           cfg.Auth.DevAuth.Email,
		Groups:          cfg.Auth.DevAuth.Groups,
		SessionDuration: cfg.Session.TTL,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create dev auth provider, auth disabled", "error", err)
		}
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider:    prov,
		Sessions:    sessionStore,
		Roles:       roleMapper,
		SessionTTL:  cfg.Session.TTL,
		RenewWithin: cfg.Session.RenewWithin,
	})
}

func buildOAuthService(
	cfg AuthConfig,
	sessionStore *redisadapter.SessionStore,
	roleMapper authroles.GroupRoleMapper,
) *service.AuthService {
	// Only enable when fully configured
	oauth := cfg.Auth.OAuth
	if oauth.IssuerURL == "" || oauth.ClientID == "" || oauth.ClientSecret == "" {
		if cfg.Logger != nil {
			cfg.Logger.Warn("AuthModeOAuth selected but required config missing; auth disabled",
				"issuer_url_empty", oauth.IssuerURL == "",
				"client_id_empty", oauth.ClientID == "",
				"client_secret_empty", oauth.ClientSecret == "",
			)
		}
		return nil
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     oauth.ClientID,
		ClientSecret: oauth.ClientSecret,
		RedirectURL:  oauth.RedirectURL,
		Scope:        oauth.Scope,
		IssuerURL:    oauth.IssuerURL,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create OIDC provider, auth disabled", "error", err)
		}
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider:    prov,
		Sessions:    sessionStore,
		Roles:       roleMapper,
		SessionTTL:  cfg.Session.TTL,
		RenewWithin: cfg.Session.RenewWithin,
	})
}
