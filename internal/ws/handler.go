package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/mkbarnum/rookgame/engine"
	"github.com/mkbarnum/rookgame/internal/game"
)

// clientMessage is what a connected client sends: one action per message.
type clientMessage struct {
	Action  string   `json:"action"`
	Name    string   `json:"name,omitempty"`
	Partner int      `json:"partner,omitempty"`
	Dealer  int      `json:"dealer,omitempty"`
	Amount  int      `json:"amount,omitempty"`
	Cards   []string `json:"cards,omitempty"`
	Trump   string   `json:"trump,omitempty"`
	Card    string   `json:"card,omitempty"`
}

// errorReply reports a rejected action back to only the sender.
type errorReply struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Handler upgrades websocket requests and pumps client actions into the
// game service.
type Handler struct {
	Hub     *Hub
	Service *game.Service
	log     *logrus.Entry
}

func NewHandler(hub *Hub, svc *game.Service, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{Hub: hub, Service: svc, log: log.WithField("component", "ws")}
}

// ServeHTTP accepts /ws?game=<id>&seat=<0..3> and runs the read loop
// until the client goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	seatStr := r.URL.Query().Get("seat")
	seat, err := strconv.Atoi(seatStr)
	if gameID == "" || err != nil || seat < 0 || seat >= engine.NumSeats {
		http.Error(w, "game and seat query params required", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket accept failed")
		return
	}

	h.Hub.Register(gameID, seat, conn)
	defer h.Hub.Unregister(gameID, seat, conn)

	ctx := r.Context()
	for {
		_, raw, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return
			}
			h.log.WithError(err).WithFields(logrus.Fields{"game": gameID, "seat": seat}).Debug("read loop ended")
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.reject(ctx, gameID, seat, fmt.Errorf("malformed message: %w", err))
			continue
		}
		in, err := h.intent(gameID, seat, msg)
		if err != nil {
			h.reject(ctx, gameID, seat, err)
			continue
		}
		if err := h.Service.Dispatch(ctx, in); err != nil {
			h.reject(ctx, gameID, seat, err)
		}
	}
}

// intent translates a client message into a dispatchable intent.
func (h *Handler) intent(gameID string, seat int, msg clientMessage) (game.Intent, error) {
	in := game.Intent{GameID: gameID, Seat: seat}

	switch msg.Action {
	case "join":
		in.Kind = game.IntentJoin
		in.Name = msg.Name
	case "choose_partner":
		in.Kind = game.IntentChoosePartner
		in.Partner = msg.Partner
	case "start_next_hand":
		in.Kind = game.IntentStartNextHand
		in.Dealer = msg.Dealer
	case "bid":
		in.Kind = game.IntentBid
		in.Amount = msg.Amount
	case "pass":
		in.Kind = game.IntentPass
	case "choose_trump":
		in.Kind = game.IntentChooseTrump
		trump, err := engine.ParseSuit(msg.Trump)
		if err != nil {
			return in, err
		}
		in.Trump = trump
		for _, name := range msg.Cards {
			c, err := engine.ParseCard(name)
			if err != nil {
				return in, err
			}
			in.Discards = append(in.Discards, c)
		}
	case "play_card":
		in.Kind = game.IntentPlayCard
		c, err := engine.ParseCard(msg.Card)
		if err != nil {
			return in, err
		}
		in.Card = c
	case "reset":
		in.Kind = game.IntentReset
	default:
		return in, fmt.Errorf("unknown action %q", msg.Action)
	}
	return in, nil
}

// reject sends the error back to the acting seat only; conflicts are
// reported as retryable.
func (h *Handler) reject(ctx context.Context, gameID string, seat int, err error) {
	msg := err.Error()
	if errors.Is(err, game.ErrConflict) {
		msg = "action contested, please retry"
	}
	c := h.Hub.clientFor(gameID, seat)
	if c == nil {
		return
	}
	payload, merr := json.Marshal(errorReply{Type: "error", Error: msg})
	if merr != nil {
		return
	}
	if serr := c.send(ctx, payload); serr != nil {
		h.log.WithError(serr).Debug("error reply failed")
	}
}
