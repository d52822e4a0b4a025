package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mkbarnum/rookgame/engine"
	"github.com/mkbarnum/rookgame/internal/game"
)

// handTTL bounds staleness if an invalidation is ever lost; hands are
// re-read from the backing store after expiry.
const handTTL = 30 * time.Minute

// redisCmds is the slice of the go-redis client the cache uses, narrowed
// so tests can stand in for the server.
type redisCmds interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// HandCache fronts a Store's hand records with redis. Hand reads happen
// on every trick play; game records stay on the backing store, whose
// version column is the concurrency authority.
type HandCache struct {
	game.Store

	rdb redisCmds
	log *logrus.Entry
}

func NewHandCache(backing game.Store, rdb *redis.Client, log *logrus.Logger) *HandCache {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &HandCache{
		Store: backing,
		rdb:   rdb,
		log:   log.WithField("component", "handcache"),
	}
}

func handCacheKey(gameID string, seat int) string {
	return fmt.Sprintf("rook:hand:%s:%d", gameID, seat)
}

func (c *HandCache) LoadHand(ctx context.Context, gameID string, seat int) ([]engine.Card, error) {
	key := handCacheKey(gameID, seat)
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var hand []engine.Card
		if jerr := json.Unmarshal(raw, &hand); jerr == nil {
			return hand, nil
		}
		// Undecodable entry: drop it and fall through.
		c.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.log.WithError(err).WithField("key", key).Warn("cache read failed")
	}

	hand, err := c.Store.LoadHand(ctx, gameID, seat)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, hand)
	return hand, nil
}

// CommitGame passes through to the backing store. When the committed
// record has no live hand state (a reset lobby or a finished game) the
// cached hands are dead and get dropped.
func (c *HandCache) CommitGame(ctx context.Context, g *engine.Game, expectedVersion int64) error {
	if err := c.Store.CommitGame(ctx, g, expectedVersion); err != nil {
		return err
	}
	if g.Status == engine.StatusFull || g.Status == engine.StatusFinished {
		c.Invalidate(ctx, g.ID)
	}
	return nil
}

// CommitHand writes through to the backing store and refreshes the cache.
// A cache write failure only costs a later re-read.
func (c *HandCache) CommitHand(ctx context.Context, gameID string, seat int, hand []engine.Card) error {
	if err := c.Store.CommitHand(ctx, gameID, seat, hand); err != nil {
		return err
	}
	c.fill(ctx, handCacheKey(gameID, seat), hand)
	return nil
}

func (c *HandCache) fill(ctx context.Context, key string, hand []engine.Card) {
	raw, err := json.Marshal(hand)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, handTTL).Err(); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}

// Invalidate drops every cached hand for a game, e.g. on reset.
func (c *HandCache) Invalidate(ctx context.Context, gameID string) {
	keys := make([]string, engine.NumSeats)
	for seat := 0; seat < engine.NumSeats; seat++ {
		keys[seat] = handCacheKey(gameID, seat)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.WithError(err).WithField("game", gameID).Warn("cache invalidate failed")
	}
}
