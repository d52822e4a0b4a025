package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkbarnum/rookgame/engine"
	"github.com/mkbarnum/rookgame/internal/game"
)

func quietStoreLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testHandCache(backing game.Store, rdb redisCmds) *HandCache {
	return &HandCache{
		Store: backing,
		rdb:   rdb,
		log:   quietStoreLogger().WithField("component", "handcache"),
	}
}

// fakeRedis is a map-backed stand-in for the narrowed go-redis surface.
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func sampleHand(n int) []engine.Card {
	return append([]engine.Card(nil), engine.NewDeck()[:n]...)
}

func TestHandCacheServesCachedHand(t *testing.T) {
	ctx := context.Background()
	backing := NewMemory()
	rdb := newFakeRedis()
	c := testHandCache(backing, rdb)

	hand := sampleHand(13)
	require.NoError(t, c.CommitHand(ctx, "r1", 0, hand))

	// Move the backing record out from under the cache; a cached read
	// must not notice.
	require.NoError(t, backing.CommitHand(ctx, "r1", 0, sampleHand(5)))

	got, err := c.LoadHand(ctx, "r1", 0)
	require.NoError(t, err)
	assert.Equal(t, hand, got)
}

func TestHandCacheMissFallsThroughAndFills(t *testing.T) {
	ctx := context.Background()
	backing := NewMemory()
	rdb := newFakeRedis()
	c := testHandCache(backing, rdb)

	hand := sampleHand(13)
	require.NoError(t, backing.CommitHand(ctx, "r2", 2, hand))

	got, err := c.LoadHand(ctx, "r2", 2)
	require.NoError(t, err)
	assert.Equal(t, hand, got)
	assert.Contains(t, rdb.data, handCacheKey("r2", 2), "a miss fills the cache")
}

func TestHandCacheCommitGameDropsDeadHands(t *testing.T) {
	ctx := context.Background()
	backing := NewMemory()
	rdb := newFakeRedis()
	c := testHandCache(backing, rdb)

	g := engine.NewGame("r3")
	require.NoError(t, backing.CreateGame(ctx, g))
	require.NoError(t, c.CommitHand(ctx, "r3", 1, sampleHand(13)))

	// A mid-game commit leaves the cached hands alone.
	g.Status = engine.StatusBidding
	g.CurrentBidder = 1
	require.NoError(t, c.CommitGame(ctx, g, 0))
	assert.Contains(t, rdb.data, handCacheKey("r3", 1))

	// A reset commit kills them; reads then come from the backing store.
	g.Status = engine.StatusFull
	g.CurrentBidder = engine.NoSeat
	require.NoError(t, c.CommitGame(ctx, g, 1))
	assert.NotContains(t, rdb.data, handCacheKey("r3", 1))

	fresh := sampleHand(4)
	require.NoError(t, backing.CommitHand(ctx, "r3", 1, fresh))
	got, err := c.LoadHand(ctx, "r3", 1)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
}
