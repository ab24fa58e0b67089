// Package ports defines the interfaces the service layer depends on.
// Implementations live under internal/adapters and internal/data.
package ports

import (
	"context"

	domainauth "github.com/peopledesk/peopledesk/internal/domain/auth"
)

// BeginInput carries inputs for initiating a login flow.
type BeginInput struct {
	// PostLoginPath is the application path to resume once the flow
	// completes. The IdP callback URL itself is provider configuration.
	PostLoginPath string
}

// ExchangeInput carries the callback parameters for completing a login flow.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// AuthProvider runs the login flow against an identity provider. Begin hands
// out the provider URL plus the state and nonce the handler stores in
// cookies; Exchange turns the callback code into a verified identity.
type AuthProvider interface {
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// SessionStore persists sessions keyed by opaque ID.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleMapper resolves IdP group memberships to a single catalog role.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}
