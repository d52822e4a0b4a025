// Package ws delivers game events to connected clients over websockets.
// It implements the notification collaborator: one connection per
// (game, seat), broadcast to a game's table, private sends to one seat.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/mkbarnum/rookgame/engine"
	"github.com/mkbarnum/rookgame/internal/game"
)

const writeTimeout = 5 * time.Second

type connKey struct {
	gameID string
	seat   int
}

// client serializes writes to one websocket connection.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(ctx context.Context, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.conn.Write(wctx, websocket.MessageText, payload)
}

// Hub tracks the live connection per seat and fans events out to them.
// A seat reconnecting replaces its previous connection.
type Hub struct {
	mu    sync.Mutex
	conns map[connKey]*client
	log   *logrus.Entry
}

func NewHub(log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		conns: make(map[connKey]*client),
		log:   log.WithField("component", "ws"),
	}
}

// Register attaches a connection for a seat, closing any prior one.
func (h *Hub) Register(gameID string, seat int, conn *websocket.Conn) {
	k := connKey{gameID, seat}

	h.mu.Lock()
	prev := h.conns[k]
	h.conns[k] = &client{conn: conn}
	h.mu.Unlock()

	if prev != nil {
		prev.conn.Close(websocket.StatusPolicyViolation, "seat reconnected elsewhere")
	}
	h.log.WithFields(logrus.Fields{"game": gameID, "seat": seat}).Info("seat connected")
}

// Unregister detaches a connection; a no-op unless conn is still the
// seat's live connection.
func (h *Hub) Unregister(gameID string, seat int, conn *websocket.Conn) {
	k := connKey{gameID, seat}

	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.conns[k]; ok && c.conn == conn {
		delete(h.conns, k)
	}
}

func (h *Hub) clientFor(gameID string, seat int) *client {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conns[connKey{gameID, seat}]
}

// SendToSeat delivers one event to a single seat. Disconnected seats are
// skipped; a failed write drops the connection.
func (h *Hub) SendToSeat(ctx context.Context, gameID string, seat int, ev game.GameEvent) {
	c := h.clientFor(gameID, seat)
	if c == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.WithError(err).Error("event marshal failed")
		return
	}
	h.deliver(ctx, gameID, seat, c, payload)
}

// Broadcast delivers one event to every connected seat of a game.
func (h *Hub) Broadcast(ctx context.Context, gameID string, ev game.GameEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.WithError(err).Error("event marshal failed")
		return
	}
	for seat := 0; seat < engine.NumSeats; seat++ {
		if c := h.clientFor(gameID, seat); c != nil {
			h.deliver(ctx, gameID, seat, c, payload)
		}
	}
}

// CloseSeat drops a seat's connection with an explanatory reason. Used
// when a seat registration stops being valid, e.g. the player was moved
// to a different seat by a partner swap.
func (h *Hub) CloseSeat(_ context.Context, gameID string, seat int, reason string) {
	k := connKey{gameID, seat}

	h.mu.Lock()
	c := h.conns[k]
	delete(h.conns, k)
	h.mu.Unlock()

	if c == nil {
		return
	}
	h.log.WithFields(logrus.Fields{"game": gameID, "seat": seat, "reason": reason}).Info("closing seat connection")
	c.conn.Close(websocket.StatusPolicyViolation, reason)
}

func (h *Hub) deliver(ctx context.Context, gameID string, seat int, c *client, payload []byte) {
	if err := c.send(ctx, payload); err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{"game": gameID, "seat": seat}).Warn("write failed, dropping connection")
		h.Unregister(gameID, seat, c.conn)
		c.conn.Close(websocket.StatusInternalError, "write failed")
	}
}
