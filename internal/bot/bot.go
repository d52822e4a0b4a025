package bot

import "github.com/mkbarnum/rookgame/engine"

// Kind discriminates the action a Decision carries.
type Kind uint8

const (
	KindNone Kind = iota
	KindBid
	KindPass
	KindSelectTrump
	KindPlayCard
)

// Decision is the action a bot wants to submit for its seat. Submission
// is validated exactly like a human intent; if the game moved on in the
// meantime the decision is simply dropped.
type Decision struct {
	Kind     Kind
	Amount   int           // KindBid
	Discards []engine.Card // KindSelectTrump
	Trump    uint8         // KindSelectTrump
	Card     engine.Card   // KindPlayCard
}

// Decide computes the bot's action for the current game state, or returns
// false when the seat has nothing to do (not its turn, or a phase without
// bot decisions).
func Decide(g *engine.Game, seat int, hand []engine.Card) (Decision, bool) {
	if g.ActingSeat() != seat {
		return Decision{}, false
	}
	v := NewView(g, seat)

	switch g.Status {
	case engine.StatusBidding:
		d := DecideBid(hand, v)
		if d.Pass {
			return Decision{Kind: KindPass}, true
		}
		return Decision{Kind: KindBid, Amount: d.Amount}, true

	case engine.StatusTrumpSelection:
		trump := ChooseTrump(hand)
		discards := ChooseDiscards(hand, trump)
		return Decision{Kind: KindSelectTrump, Trump: trump, Discards: discards}, true

	case engine.StatusPlaying:
		card := ChoosePlay(hand, v)
		if card == engine.EmptyCard {
			return Decision{}, false
		}
		return Decision{Kind: KindPlayCard, Card: card}, true
	}
	return Decision{}, false
}
