// Package store provides the persistence collaborator implementations:
// an in-memory store, a postgres-backed store, and a redis hand cache
// that layers over either.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mkbarnum/rookgame/engine"
	"github.com/mkbarnum/rookgame/internal/game"
)

// Memory is a mutex-guarded in-process store with the same conditional
// commit semantics as the postgres store. It backs single-node dev runs
// and tests.
type Memory struct {
	mu    sync.Mutex
	games map[string][]byte
	hands map[handKey][]engine.Card
}

type handKey struct {
	gameID string
	seat   int
}

func NewMemory() *Memory {
	return &Memory{
		games: make(map[string][]byte),
		hands: make(map[handKey][]engine.Card),
	}
}

// Records are held serialized so loads cannot alias a committed record.
func encodeGame(g *engine.Game) ([]byte, error) {
	return json.Marshal(g)
}

func decodeGame(raw []byte) (*engine.Game, error) {
	g := &engine.Game{}
	if err := json.Unmarshal(raw, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (m *Memory) CreateGame(_ context.Context, g *engine.Game) error {
	raw, err := encodeGame(g)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = raw
	return nil
}

func (m *Memory) LoadGame(_ context.Context, gameID string) (*engine.Game, error) {
	m.mu.Lock()
	raw, ok := m.games[gameID]
	m.mu.Unlock()
	if !ok {
		return nil, game.ErrGameNotFound
	}
	return decodeGame(raw)
}

// CommitGame bumps the version and stores the record, but only when the
// stored version still matches expectedVersion.
func (m *Memory) CommitGame(_ context.Context, g *engine.Game, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.games[g.ID]
	if !ok {
		return game.ErrGameNotFound
	}
	current, err := decodeGame(raw)
	if err != nil {
		return err
	}
	if current.Version != expectedVersion {
		return game.ErrVersionConflict
	}
	g.Version = expectedVersion + 1
	out, err := encodeGame(g)
	if err != nil {
		g.Version = expectedVersion
		return err
	}
	m.games[g.ID] = out
	return nil
}

func (m *Memory) LoadHand(_ context.Context, gameID string, seat int) ([]engine.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]engine.Card(nil), m.hands[handKey{gameID, seat}]...), nil
}

func (m *Memory) CommitHand(_ context.Context, gameID string, seat int, hand []engine.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands[handKey{gameID, seat}] = append([]engine.Card(nil), hand...)
	return nil
}
