// Package sched arms delayed bot turns with cancellable per-seat timers.
package sched

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// FireFunc runs a bot turn when its timer expires.
type FireFunc func(ctx context.Context, gameID string, seat int)

type key struct {
	gameID string
	seat   int
}

// BotScheduler holds at most one pending timer per (game, seat).
// Scheduling again replaces the pending timer, so a stale duplicate can
// never fire alongside a fresh one.
type BotScheduler struct {
	mu     sync.Mutex
	timers map[key]*time.Timer
	fire   FireFunc
	log    *logrus.Entry
}

func NewBotScheduler(fire FireFunc, log *logrus.Logger) *BotScheduler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BotScheduler{
		timers: make(map[key]*time.Timer),
		fire:   fire,
		log:    log.WithField("component", "sched"),
	}
}

// ScheduleBotTurn arms the timer for one seat, replacing any pending one.
func (s *BotScheduler) ScheduleBotTurn(gameID string, seat int, delay time.Duration) {
	k := key{gameID, seat}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[k]; ok {
		t.Stop()
	}
	s.timers[k] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, k)
		s.mu.Unlock()

		s.log.WithFields(logrus.Fields{"game": gameID, "seat": seat}).Debug("bot turn firing")
		s.fire(context.Background(), gameID, seat)
	})
}

// CancelGame drops every pending timer for a game, e.g. on reset. It is
// a no-op when nothing is armed.
func (s *BotScheduler) CancelGame(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, t := range s.timers {
		if k.gameID == gameID {
			t.Stop()
			delete(s.timers, k)
		}
	}
}

// Pending reports whether a timer is armed for the seat.
func (s *BotScheduler) Pending(gameID string, seat int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[key{gameID, seat}]
	return ok
}
