package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/peopledesk/peopledesk/internal/adapters/redis"
	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/testutil"
)

func testSession(ttl time.Duration) auth.Session {
	return auth.Session{
		ID:        uuid.NewString(),
		UserID:    "user-1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.test",
		Role:      auth.RoleEmployee,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func TestSessionStoreSaveGetDelete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()
	store := redisstore.NewSessionStoreWithPrefix(client, "test-session:")
	ctx := context.Background()

	sess := testSession(time.Hour)
	require.NoError(t, store.Save(ctx, sess))
	defer store.Delete(ctx, sess.ID) //nolint:errcheck // test cleanup

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, auth.RoleEmployee, got.Role)
	assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Second)

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, redisstore.ErrNotFound)
}

func TestSessionStoreRejectsExpired(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()
	store := redisstore.NewSessionStore(client)

	err := store.Save(context.Background(), testSession(-time.Minute))
	assert.Error(t, err)
}

func TestSessionStoreMissing(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()
	store := redisstore.NewSessionStore(client)
	ctx := context.Background()

	_, err := store.Get(ctx, "no-such-session")
	assert.ErrorIs(t, err, redisstore.ErrNotFound)

	_, err = store.Get(ctx, "")
	assert.ErrorIs(t, err, redisstore.ErrNotFound)

	// Deleting an unknown ID is not an error.
	assert.NoError(t, store.Delete(ctx, "no-such-session"))
}
