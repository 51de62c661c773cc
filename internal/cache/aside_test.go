package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAsidePopulatesCacheOnMiss(t *testing.T) {
	mr := setupMiniredis(t)

	fetchCalls := 0
	var got cachedUser
	err := Aside(context.Background(), UserKey(1), &got, UserTTL, func() error {
		fetchCalls++
		got = cachedUser{ID: 1, Username: "alice"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetchCalls)
	assert.Equal(t, "alice", got.Username)
	assert.True(t, mr.Exists(UserKey(1)))

	// Second call should be served from cache.
	var again cachedUser
	err = Aside(context.Background(), UserKey(1), &again, UserTTL, func() error {
		fetchCalls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetchCalls)
	assert.Equal(t, "alice", again.Username)
}

func TestAsideExpiry(t *testing.T) {
	mr := setupMiniredis(t)

	var got cachedUser
	err := Aside(context.Background(), UserKey(2), &got, 30*time.Second, func() error {
		got = cachedUser{ID: 2, Username: "bob"}
		return nil
	})
	require.NoError(t, err)

	mr.FastForward(time.Minute)

	fetchCalls := 0
	var again cachedUser
	err = Aside(context.Background(), UserKey(2), &again, 30*time.Second, func() error {
		fetchCalls++
		again = cachedUser{ID: 2, Username: "bob"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetchCalls)
}

func TestInvalidateUser(t *testing.T) {
	mr := setupMiniredis(t)

	require.NoError(t, SetJSON(context.Background(), UserKey(3), cachedUser{ID: 3}, UserTTL))
	require.True(t, mr.Exists(UserKey(3)))

	InvalidateUser(context.Background(), 3)
	assert.False(t, mr.Exists(UserKey(3)))
}

func TestGetJSONWithoutClient(t *testing.T) {
	SetClient(nil)
	var got cachedUser
	found, err := GetJSON(context.Background(), "whatever", &got)
	assert.NoError(t, err)
	assert.False(t, found)
}
