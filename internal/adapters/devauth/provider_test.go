package devauth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/peopledesk/internal/ports"
)

func TestNewProviderValidation(t *testing.T) {
	_, err := NewProvider(Config{Email: "dev@example.test"})
	assert.Error(t, err)

	_, err = NewProvider(Config{UserID: "dev-1"})
	assert.Error(t, err)
}

func TestBeginReturnsLocalCallback(t *testing.T) {
	p, err := NewProvider(Config{UserID: "dev-1", Email: "dev@example.test"})
	require.NoError(t, err)

	authURL, state, nonce, err := p.Begin(context.Background(), ports.BeginInput{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(authURL, "/auth/callback?code=dev&state="))
	assert.Len(t, state, 24)
	assert.Len(t, nonce, 24)
	assert.Contains(t, authURL, state)

	// State and nonce are fresh per call.
	_, state2, nonce2, err := p.Begin(context.Background(), ports.BeginInput{})
	require.NoError(t, err)
	assert.NotEqual(t, state, state2)
	assert.NotEqual(t, nonce, nonce2)
}

func TestExchangeReturnsConfiguredIdentity(t *testing.T) {
	p, err := NewProvider(Config{
		UserID:          "dev-1",
		Email:           "dev@example.test",
		Groups:          []string{"hr-admins"},
		SessionDuration: time.Hour,
	})
	require.NoError(t, err)

	identity, err := p.Exchange(context.Background(), ports.ExchangeInput{Code: "dev"})
	require.NoError(t, err)
	assert.Equal(t, "dev-1", identity.UserID)
	assert.Equal(t, "dev@example.test", identity.Email)
	assert.Equal(t, []string{"hr-admins"}, identity.Groups)
	assert.True(t, identity.ExpiresAt.After(time.Now()))
}

func TestExchangeConcurrentLoginsShareNoState(t *testing.T) {
	p, err := NewProvider(Config{
		UserID:          "dev-1",
		Email:           "dev@example.test",
		Groups:          []string{"hr-admins"},
		SessionDuration: time.Minute,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			identity, exErr := p.Exchange(context.Background(), ports.ExchangeInput{Code: "dev"})
			assert.NoError(t, exErr)
			assert.True(t, identity.ExpiresAt.After(time.Now()))
		}()
	}
	wg.Wait()

	// Each exchange returns its own copy; the template identity keeps no expiry.
	assert.True(t, p.identity.ExpiresAt.IsZero())
}
