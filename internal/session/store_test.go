package session

import (
	"context"
	"testing"
	"time"

	"recurate/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T, idle time.Duration) (*miniredis.Miniredis, *Store) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return mr, NewStore(rdb, "test-secret", idle)
}

func testUser() *models.User {
	return &models.User{ID: 7, FullName: "Alice", IsAdmin: false}
}

func TestStore_CreateAndGet(t *testing.T) {
	_, store := setupStore(t, 30*time.Minute)
	ctx := context.Background()

	sess, err := store.Create(ctx, testUser())
	require.NoError(t, err)
	assert.Len(t, sess.Token, 64)
	assert.Equal(t, uint(7), sess.UserID)
	assert.Equal(t, "Alice", sess.FullName)
	assert.False(t, sess.IsAdmin)

	loaded, err := store.Get(ctx, sess.Token)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sess.UserID, loaded.UserID)
	assert.Equal(t, sess.Token, loaded.Token)
}

func TestStore_GetUnknownToken(t *testing.T) {
	_, store := setupStore(t, 30*time.Minute)

	loaded, err := store.Get(context.Background(), "deadbeef")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_IdleExpiry(t *testing.T) {
	mr, store := setupStore(t, time.Minute)
	ctx := context.Background()

	sess, err := store.Create(ctx, testUser())
	require.NoError(t, err)

	// Redis TTL has not fired yet, but the idle window has elapsed: the exact
	// token must still be treated as absent and the record destroyed.
	sess.LastActivity = time.Now().UTC().Add(-2 * time.Minute)
	require.NoError(t, store.write(ctx, sess))

	loaded, err := store.Get(ctx, sess.Token)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
	assert.False(t, mr.Exists("sess:"+sess.Token))
}

func TestStore_RedisTTLExpiry(t *testing.T) {
	mr, store := setupStore(t, time.Minute)
	ctx := context.Background()

	sess, err := store.Create(ctx, testUser())
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	loaded, err := store.Get(ctx, sess.Token)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_TouchRefreshesIdleClock(t *testing.T) {
	_, store := setupStore(t, time.Minute)
	ctx := context.Background()

	sess, err := store.Create(ctx, testUser())
	require.NoError(t, err)

	before := sess.LastActivity
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, store.Touch(ctx, sess))

	loaded, err := store.Get(ctx, sess.Token)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.LastActivity.After(before))
}

func TestStore_DestroyIsIdempotent(t *testing.T) {
	_, store := setupStore(t, time.Minute)
	ctx := context.Background()

	sess, err := store.Create(ctx, testUser())
	require.NoError(t, err)

	assert.NoError(t, store.Destroy(ctx, sess.Token))
	assert.NoError(t, store.Destroy(ctx, sess.Token))
	assert.NoError(t, store.Destroy(ctx, ""))

	loaded, err := store.Get(ctx, sess.Token)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_SignAndVerify(t *testing.T) {
	_, store := setupStore(t, time.Minute)

	signed := store.Sign("abc123")
	token, ok := store.Verify(signed)
	assert.True(t, ok)
	assert.Equal(t, "abc123", token)

	_, ok = store.Verify("abc123.forged-signature")
	assert.False(t, ok)

	_, ok = store.Verify("no-separator")
	assert.False(t, ok)

	_, ok = store.Verify("")
	assert.False(t, ok)

	// A different secret must not validate this store's cookies.
	other := NewStore(nil, "other-secret", time.Minute)
	_, ok = other.Verify(signed)
	assert.False(t, ok)
}
