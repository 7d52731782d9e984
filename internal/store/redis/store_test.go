package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/javadocs/internal/session"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, ttl), mr
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, time.Hour)

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, session.ErrNotFound)

	st := &session.State{
		ID:          "abc",
		Slug:        "inheritance",
		SidebarOpen: true,
		Expanded:    map[string]bool{"Object-Oriented Programming": true, "Fundamentals": false},
	}
	require.NoError(t, store.Save(ctx, st))
	assert.True(t, mr.Exists(SessionKey("abc")))
	assert.Equal(t, time.Hour, mr.TTL(SessionKey("abc")))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, st.Slug, got.Slug)
	assert.Equal(t, st.SidebarOpen, got.SidebarOpen)
	assert.Equal(t, st.Expanded, got.Expanded)
	assert.WithinDuration(t, time.Now(), got.UpdatedAt, time.Second)
	assert.True(t, st.UpdatedAt.IsZero(), "Save must not modify the caller's state")

	n, err := store.CountSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestSessionExpires(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, time.Minute)

	require.NoError(t, store.Save(ctx, &session.State{ID: "short"}))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "short")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestSessionCorruptValue(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 0)

	require.NoError(t, mr.Set(SessionKey("bad"), "{not json"))

	_, err := store.Get(ctx, "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNotFound)
}

func TestViewCounters(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 0)

	stats, err := store.GetViewStats(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats)

	require.NoError(t, store.SaveViewStats(ctx, map[string]int64{"streams": 2, "methods": 1}))
	require.NoError(t, store.SaveViewStats(ctx, nil))
	mr.HSet(TopicViewsKey(), "garbage", "x")

	stats, err = store.GetViewStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"streams": 2, "methods": 1}, stats)

	require.NoError(t, store.SaveViewStats(ctx, map[string]int64{"streams": 10}))
	stats, err = store.GetViewStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats["streams"])
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "javadocs:session:abc", SessionKey("abc"))

	id, err := ExtractSessionID("javadocs:session:abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	for _, bad := range []string{"", "javadocs:session:", "jump:service:abc"} {
		_, err := ExtractSessionID(bad)
		assert.Error(t, err, bad)
	}
}
