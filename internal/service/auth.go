package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/ports"
)

const (
	defaultSessionTTL  = 8 * time.Hour
	defaultRenewWithin = time.Hour
)

var errSessionExpired = errors.New("session expired")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Sessions ports.SessionStore
	Roles    ports.RoleMapper

	// SessionTTL is the lifetime of a freshly created session (default 8h).
	SessionTTL time.Duration
	// RenewWithin triggers a transparent renewal when a resolved session has
	// less than this much life remaining (default 1h).
	RenewWithin time.Duration
}

// AuthService orchestrates authentication: it runs the provider flow, maps
// directory groups to catalog roles, and owns session persistence and
// transparent renewal.
type AuthService struct {
	provider    ports.AuthProvider
	sessions    ports.SessionStore
	roles       ports.RoleMapper
	sessionTTL  time.Duration
	renewWithin time.Duration
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	renew := opts.RenewWithin
	if renew <= 0 {
		renew = defaultRenewWithin
	}
	return &AuthService{
		provider:    opts.Provider,
		sessions:    opts.Sessions,
		roles:       opts.Roles,
		sessionTTL:  ttl,
		renewWithin: renew,
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider auth URL with state and nonce.
// postLoginPath is the application path the user resumes at after the callback.
func (s *AuthService) BeginLogin(ctx context.Context, postLoginPath string) (*BeginLoginResult, error) {
	if postLoginPath == "" {
		return nil, errors.New("post-login path is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{PostLoginPath: postLoginPath})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session domainauth.Session
}

// CompleteLogin completes an authentication flow by exchanging the code for
// an identity, mapping directory groups to a catalog role, and persisting a
// session. An identity the mapper cannot place lands on guest, which grants
// nothing.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	role := s.roles.Map(identity.Groups)

	expiresAt := time.Now().Add(s.sessionTTL)
	if !identity.ExpiresAt.IsZero() && identity.ExpiresAt.Before(expiresAt) {
		// Never outlive the IdP token.
		expiresAt = identity.ExpiresAt
	}

	session := domainauth.Session{
		ID:        uuid.NewString(),
		UserID:    identity.UserID,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Email:     identity.Email,
		Role:      role,
		ExpiresAt: expiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &CompleteLoginResult{Session: session}, nil
}

// GetSession retrieves a session by ID, deleting and rejecting expired ones.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// ResolveSession retrieves a session and, when it is inside the renewal
// window, extends its expiry and re-saves it. The renewed flag tells the
// caller to re-attach the session cookie so the browser's copy keeps pace.
// Renewal failure is benign: the caller still gets the valid session.
func (s *AuthService) ResolveSession(ctx context.Context, sessionID string) (*domainauth.Session, bool, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	if time.Until(session.ExpiresAt) >= s.renewWithin {
		return session, false, nil
	}

	renewed := *session
	renewed.ExpiresAt = time.Now().Add(s.sessionTTL)
	if saveErr := s.sessions.Save(ctx, renewed); saveErr != nil {
		return session, false, nil
	}
	return &renewed, true, nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
