package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkbarnum/rookgame/engine"
	"github.com/mkbarnum/rookgame/internal/game"
)

// Postgres persists game records as JSONB documents with a version column
// used for conditional commits, and hand records keyed (game_id, seat).
type Postgres struct {
	pool *pgxpool.Pool
}

// Schema is the DDL the store expects. Applied by the operator or via
// EnsureSchema at startup.
const Schema = `
CREATE TABLE IF NOT EXISTS games (
    id      TEXT PRIMARY KEY,
    version BIGINT NOT NULL,
    doc     JSONB  NOT NULL
);
CREATE TABLE IF NOT EXISTS hands (
    game_id TEXT NOT NULL,
    seat    INT  NOT NULL,
    cards   JSONB NOT NULL,
    PRIMARY KEY (game_id, seat)
);
`

func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (p *Postgres) Close() { p.pool.Close() }

func (p *Postgres) CreateGame(ctx context.Context, g *engine.Game) error {
	doc, err := json.Marshal(g)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO games (id, version, doc) VALUES ($1, $2, $3)`,
		g.ID, g.Version, doc)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", g.ID, err)
	}
	return nil
}

func (p *Postgres) LoadGame(ctx context.Context, gameID string) (*engine.Game, error) {
	var doc []byte
	err := p.pool.QueryRow(ctx,
		`SELECT doc FROM games WHERE id = $1`, gameID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, game.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	g := &engine.Game{}
	if err := json.Unmarshal(doc, g); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", gameID, err)
	}
	return g, nil
}

// CommitGame is a compare-and-swap on the version column: zero rows
// updated means another writer got there first.
func (p *Postgres) CommitGame(ctx context.Context, g *engine.Game, expectedVersion int64) error {
	g.Version = expectedVersion + 1
	doc, err := json.Marshal(g)
	if err != nil {
		g.Version = expectedVersion
		return err
	}
	tag, err := p.pool.Exec(ctx,
		`UPDATE games SET doc = $1, version = $2 WHERE id = $3 AND version = $4`,
		doc, g.Version, g.ID, expectedVersion)
	if err != nil {
		g.Version = expectedVersion
		return fmt.Errorf("commit game %s: %w", g.ID, err)
	}
	if tag.RowsAffected() == 0 {
		g.Version = expectedVersion
		return game.ErrVersionConflict
	}
	return nil
}

func (p *Postgres) LoadHand(ctx context.Context, gameID string, seat int) ([]engine.Card, error) {
	var raw []byte
	err := p.pool.QueryRow(ctx,
		`SELECT cards FROM hands WHERE game_id = $1 AND seat = $2`,
		gameID, seat).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load hand %s/%d: %w", gameID, seat, err)
	}
	var hand []engine.Card
	if err := json.Unmarshal(raw, &hand); err != nil {
		return nil, fmt.Errorf("decode hand %s/%d: %w", gameID, seat, err)
	}
	return hand, nil
}

func (p *Postgres) CommitHand(ctx context.Context, gameID string, seat int, hand []engine.Card) error {
	raw, err := json.Marshal(hand)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO hands (game_id, seat, cards) VALUES ($1, $2, $3)
		 ON CONFLICT (game_id, seat) DO UPDATE SET cards = EXCLUDED.cards`,
		gameID, seat, raw)
	if err != nil {
		return fmt.Errorf("commit hand %s/%d: %w", gameID, seat, err)
	}
	return nil
}
