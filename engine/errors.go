package engine

import "errors"

// Validation errors. These reject an intent synchronously without mutating
// any state and are reported only to the acting seat.
var (
	ErrWrongStatus    = errors.New("action not valid in current game status")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrSeatVacant     = errors.New("seat is not occupied")
	ErrSeatTaken      = errors.New("seat is already occupied")
	ErrGameFull       = errors.New("game already has four players")
	ErrAlreadyPassed  = errors.New("seat has already passed")
	ErrInvalidBid     = errors.New("invalid bid amount")
	ErrInvalidPartner = errors.New("invalid partner selection")
	ErrCardNotHeld    = errors.New("card is not in hand")
	ErrMustFollowSuit = errors.New("must follow the led suit")
	ErrInvalidDiscard = errors.New("discard must be exactly five cards from hand")
	ErrInvalidTrump   = errors.New("invalid trump suit")
)

// ErrInvariant marks a fatal internal inconsistency. Mutations that would
// produce it must never reach persisted state.
var ErrInvariant = errors.New("game invariant violated")
