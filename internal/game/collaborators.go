package game

import (
	"context"
	"errors"
	"time"

	"github.com/mkbarnum/rookgame/engine"
)

var (
	// ErrGameNotFound is returned by a Store when no record exists.
	ErrGameNotFound = errors.New("game not found")

	// ErrVersionConflict is returned by Store.CommitGame when the record
	// changed since it was loaded.
	ErrVersionConflict = errors.New("version conflict")

	// ErrConflict is surfaced to callers after the internal retry budget
	// for contested commits is exhausted. The intent may be retried.
	ErrConflict = errors.New("game record contested, retry")
)

// Store is the persistence collaborator. CommitGame succeeds only when the
// stored version still equals expectedVersion; implementations bump the
// record's version on commit.
type Store interface {
	CreateGame(ctx context.Context, g *engine.Game) error
	LoadGame(ctx context.Context, gameID string) (*engine.Game, error)
	CommitGame(ctx context.Context, g *engine.Game, expectedVersion int64) error
	LoadHand(ctx context.Context, gameID string, seat int) ([]engine.Card, error)
	CommitHand(ctx context.Context, gameID string, seat int, hand []engine.Card) error
}

// Notifier is the message-delivery collaborator. CloseSeat drops a seat's
// connection when its registration is no longer valid, e.g. after a
// partner swap moves the player to a different seat.
type Notifier interface {
	SendToSeat(ctx context.Context, gameID string, seat int, ev GameEvent)
	Broadcast(ctx context.Context, gameID string, ev GameEvent)
	CloseSeat(ctx context.Context, gameID string, seat int, reason string)
}

// Scheduler arms delayed bot turns. Scheduling the same (game, seat) again
// replaces the pending timer, and CancelGame is a no-op when nothing is
// armed, so stale duplicates cannot double-act.
type Scheduler interface {
	ScheduleBotTurn(gameID string, seat int, delay time.Duration)
	CancelGame(gameID string)
}
