// Package bot implements the heuristic autonomous player. Every decision
// is a pure function of the bot's own hand and a View of publicly visible
// state, never anything a human in the same seat could not see.
package bot

import "github.com/mkbarnum/rookgame/engine"

// View is the public game context handed to a bot for one decision.
type View struct {
	Seat           int
	Dealer         int
	HighBid        int
	HighBidder     int
	Passed         [engine.NumSeats]bool
	BidWinner      int
	WinningBid     int
	Trump          uint8
	LedSuit        uint8
	CurrentTrick   []engine.TrickPlay
	CardsPlayed    []engine.Card
	PointsCaptured [2]int
	TeamScores     [2]int
}

// NewView extracts the bot-visible fields from a game record.
func NewView(g *engine.Game, seat int) View {
	return View{
		Seat:           seat,
		Dealer:         g.Dealer,
		HighBid:        g.HighBid,
		HighBidder:     g.HighBidder,
		Passed:         g.Passed,
		BidWinner:      g.BidWinner,
		WinningBid:     g.WinningBid,
		Trump:          g.Trump,
		LedSuit:        g.LedSuit,
		CurrentTrick:   append([]engine.TrickPlay(nil), g.CurrentTrick...),
		CardsPlayed:    append([]engine.Card(nil), g.CardsPlayedThisHand...),
		PointsCaptured: g.PointsCaptured,
		TeamScores:     g.TeamScores,
	}
}

// Team returns the bot's team index.
func (v View) Team() int { return engine.TeamOf(v.Seat) }

// PartnerSeat returns the seat opposite the bot.
func (v View) PartnerSeat() int { return engine.Partner(v.Seat) }

// OnBidTeam reports whether the bot's side won the auction.
func (v View) OnBidTeam() bool {
	return v.BidWinner != engine.NoSeat && engine.TeamOf(v.BidWinner) == v.Team()
}

// LegalPlays returns the cards the bot may legally play right now; the
// follow-suit rules are the engine's.
func (v View) LegalPlays(hand []engine.Card) []engine.Card {
	g := engine.Game{Trump: v.Trump, LedSuit: v.LedSuit}
	return g.LegalPlays(hand)
}

// played reports whether a card has already hit the table this hand.
func (v View) played(c engine.Card) bool {
	for _, p := range v.CardsPlayed {
		if p == c {
			return true
		}
	}
	return false
}
