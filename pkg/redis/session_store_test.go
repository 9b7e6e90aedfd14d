package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f000102030405060708090a0b0c0d0e0f"

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()}))
	return mr
}

func TestNewSessionStore_KeyValidation(t *testing.T) {
	_, err := NewSessionStore("zz")
	assert.Error(t, err)

	_, err = NewSessionStore("abcd")
	assert.Error(t, err, "too short")

	store, err := NewSessionStore(testKeyHex)
	require.NoError(t, err)
	require.NotNil(t, store)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	mr := setupMiniredis(t)
	store, err := NewSessionStore(testKeyHex)
	require.NoError(t, err)
	ctx := context.Background()

	data := &SessionData{AccessToken: "acc", RefreshToken: "ref"}
	require.NoError(t, store.CreateSession(ctx, "sid-1", data, time.Hour))

	// Stored value is ciphertext, not the raw tokens.
	raw, err := mr.Get("session:sid-1")
	require.NoError(t, err)
	assert.False(t, strings.Contains(raw, "acc"))

	got, err := store.GetSession(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.DeleteSession(ctx, "sid-1"))
	_, err = store.GetSession(ctx, "sid-1")
	assert.Error(t, err)
}

func TestSessionStore_TamperedCiphertext(t *testing.T) {
	mr := setupMiniredis(t)
	store, err := NewSessionStore(testKeyHex)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.CreateSession(ctx, "sid-2", &SessionData{AccessToken: "a"}, time.Hour))
	mr.Set("session:sid-2", "0011")

	_, err = store.GetSession(ctx, "sid-2")
	assert.Error(t, err)
}
