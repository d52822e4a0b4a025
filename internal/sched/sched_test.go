package sched

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firing struct {
	gameID string
	seat   int
}

type recorder struct {
	mu    sync.Mutex
	fired []firing
	done  chan struct{}
}

func newRecorder(expect int) *recorder {
	return &recorder{done: make(chan struct{}, expect)}
}

func (r *recorder) fire(_ context.Context, gameID string, seat int) {
	r.mu.Lock()
	r.fired = append(r.fired, firing{gameID, seat})
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
}

func (r *recorder) firings() []firing {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]firing(nil), r.fired...)
}

func TestScheduleFires(t *testing.T) {
	rec := newRecorder(1)
	s := NewBotScheduler(rec.fire, nil)

	s.ScheduleBotTurn("g", 2, time.Millisecond)
	rec.wait(t)

	assert.Equal(t, []firing{{"g", 2}}, rec.firings())
	assert.False(t, s.Pending("g", 2), "fired timer is cleared")
}

func TestRescheduleReplacesPending(t *testing.T) {
	rec := newRecorder(1)
	s := NewBotScheduler(rec.fire, nil)

	s.ScheduleBotTurn("g", 1, time.Hour)
	s.ScheduleBotTurn("g", 1, time.Millisecond)
	rec.wait(t)

	// Settle window: a leaked first timer would fire and double-count.
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, rec.firings(), 1)
}

func TestCancelGameStopsTimers(t *testing.T) {
	rec := newRecorder(1)
	s := NewBotScheduler(rec.fire, nil)

	s.ScheduleBotTurn("g", 3, 30*time.Millisecond)
	require.True(t, s.Pending("g", 3))
	s.CancelGame("g")
	assert.False(t, s.Pending("g", 3))

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.firings())

	// Cancelling again is a no-op.
	s.CancelGame("g")
}

func TestCancelGameDropsAllSeats(t *testing.T) {
	rec := newRecorder(1)
	s := NewBotScheduler(rec.fire, nil)

	s.ScheduleBotTurn("g", 0, time.Hour)
	s.ScheduleBotTurn("g", 1, time.Hour)
	s.ScheduleBotTurn("other", 2, time.Hour)

	s.CancelGame("g")
	assert.False(t, s.Pending("g", 0))
	assert.False(t, s.Pending("g", 1))
	assert.True(t, s.Pending("other", 2))
	s.CancelGame("other")
}
