package game

import "github.com/mkbarnum/rookgame/engine"

// GameEventType identifies a game event pushed to connected clients.
type GameEventType string

// Public events go to every seat; private events go to one seat only.
const (
	EventGameJoined     GameEventType = "game_joined"
	EventSeatAssigned   GameEventType = "seat_assigned" // Private: the joiner's authoritative seat.
	EventPartnerChosen  GameEventType = "partner_chosen"
	EventHandDealt      GameEventType = "hand_dealt"
	EventPrivateHand    GameEventType = "private_hand" // Private: a seat's dealt cards.
	EventBiddingStarted GameEventType = "bidding_started"
	EventBidPlaced      GameEventType = "bid_placed"
	EventBidPassed      GameEventType = "bid_passed"
	EventBidWon         GameEventType = "bid_won"
	EventKittyDelivered GameEventType = "kitty_delivered" // Private: kitty cards to the bid winner.
	EventTrumpChosen    GameEventType = "trump_chosen"
	EventPlayStarted    GameEventType = "play_started"
	EventCardPlayed     GameEventType = "card_played"
	EventTrickWon       GameEventType = "trick_won"
	EventHandComplete   GameEventType = "hand_complete"
	EventGameOver       GameEventType = "game_over"
	EventGameReset      GameEventType = "game_reset"
)

// GameEvent is the wire structure for everything the server pushes.
// Seat is the acting or affected seat where one applies.
type GameEvent struct {
	Type   GameEventType `json:"type"`
	GameID string        `json:"gameId"`
	Seat   int           `json:"seat,omitempty"`

	Amount int           `json:"amount,omitempty"` // bid_placed, bid_won
	Card   *engine.Card  `json:"card,omitempty"`   // card_played
	Cards  []engine.Card `json:"cards,omitempty"`  // private_hand, kitty_delivered
	Trump  string        `json:"trump,omitempty"`  // trump_chosen

	Trick  *TrickResult        `json:"trick,omitempty"`  // trick_won
	Hand   *engine.HandSummary `json:"hand,omitempty"`   // hand_complete
	Status engine.Status       `json:"status,omitempty"` // state-transition events
	Scores *[2]int             `json:"scores,omitempty"` // hand_complete, game_over

	Payload map[string]interface{} `json:"payload,omitempty"`
}

// TrickResult summarizes a resolved trick for trick_won events.
type TrickResult struct {
	Winner int `json:"winner"`
	Points int `json:"points"`
}

// event is shorthand for the common case of a typed event about a seat.
func event(t GameEventType, gameID string, seat int) GameEvent {
	return GameEvent{Type: t, GameID: gameID, Seat: seat}
}

// privateEvent marks an event for single-seat delivery.
type privateEvent struct {
	Seat  int
	Event GameEvent
}

// seatClose marks a seat whose connection must be dropped after the
// commit's events have gone out.
type seatClose struct {
	Seat   int
	Reason string
}
