package httpx

import (
	"context"

	domainauth "github.com/peopledesk/peopledesk/internal/domain/auth"
)

// sessionKey keys the resolved session in the request context. Unexported so
// only this package can attach one.
type sessionKey struct{}

// SetSessionInContext attaches the session to a child context. A nil session
// leaves ctx untouched.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetUserSessionFromContext returns the session the access middleware
// attached, with an explicit presence flag.
func GetUserSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*domainauth.Session)
	return session, ok && session != nil
}

// GetSessionFromContext is the nil-on-absence variant of
// GetUserSessionFromContext.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	session, _ := GetUserSessionFromContext(ctx)
	return session
}

// IsGuestUser reports whether the request is anonymous or carries a guest
// session.
func IsGuestUser(ctx context.Context) bool {
	session, ok := GetUserSessionFromContext(ctx)
	return !ok || session.IsGuest()
}
