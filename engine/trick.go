package engine

// PlayResult describes what a played card did to the trick in progress.
type PlayResult struct {
	TrickComplete bool
	TrickWinner   int
	TrickPoints   int
	// HandComplete is true when the resolved trick was the hand's last;
	// the caller hands control to CompleteHand.
	HandComplete bool
	NextPlayer   int
}

// effectiveSuit is the suit a card follows as: the Rook always follows as
// trump, every other card as its printed color.
func effectiveSuit(c Card, trump uint8) uint8 {
	if c.IsRook() {
		return trump
	}
	return c.Suit()
}

// holdsSuit reports whether the hand contains any card of the given suit,
// counting the Rook as trump.
func holdsSuit(hand []Card, suit, trump uint8) bool {
	for _, c := range hand {
		if effectiveSuit(c, trump) == suit {
			return true
		}
	}
	return false
}

// LegalPlays returns the subset of hand that seat may legally play given
// the current trick. On a fresh trick everything is legal; otherwise the
// led suit must be followed when held.
func (g *Game) LegalPlays(hand []Card) []Card {
	if g.LedSuit == SuitNone || !holdsSuit(hand, g.LedSuit, g.Trump) {
		return append([]Card(nil), hand...)
	}
	var legal []Card
	for _, c := range hand {
		if effectiveSuit(c, g.Trump) == g.LedSuit {
			legal = append(legal, c)
		}
	}
	return legal
}

// resolveTrick finds the winning play of a full trick.
func (g *Game) resolveTrick() (winner int, points int) {
	best := -1
	for _, play := range g.CurrentTrick {
		s := play.Card.Strength(g.Trump, g.LedSuit)
		if s > best {
			best = s
			winner = play.Seat
		}
		points += play.Card.Points()
	}
	return winner, points
}

// PlayCard validates and applies one card from seat's hand. The returned
// slice is the hand after the play. The fourth card resolves the trick on
// the spot: the strongest card's seat collects the trick's points for its
// team and leads the next trick.
func (g *Game) PlayCard(seat int, hand []Card, card Card) ([]Card, PlayResult, error) {
	if g.Status != StatusPlaying {
		return nil, PlayResult{}, ErrWrongStatus
	}
	if seat != g.CurrentPlayer {
		return nil, PlayResult{}, ErrNotYourTurn
	}
	if !containsCard(hand, card) {
		return nil, PlayResult{}, ErrCardNotHeld
	}
	if g.LedSuit != SuitNone &&
		effectiveSuit(card, g.Trump) != g.LedSuit &&
		holdsSuit(hand, g.LedSuit, g.Trump) {
		return nil, PlayResult{}, ErrMustFollowSuit
	}

	if g.LedSuit == SuitNone {
		g.LedSuit = effectiveSuit(card, g.Trump)
	}
	newHand, ok := removeCards(hand, []Card{card})
	if !ok {
		return nil, PlayResult{}, ErrCardNotHeld
	}
	g.CurrentTrick = append(g.CurrentTrick, TrickPlay{Seat: seat, Card: card})
	g.CardsPlayedThisHand = append(g.CardsPlayedThisHand, card)

	if len(g.CurrentTrick) < NumSeats {
		g.CurrentPlayer = NextSeat(seat)
		return newHand, PlayResult{NextPlayer: g.CurrentPlayer}, nil
	}

	winner, points := g.resolveTrick()
	g.PointsCaptured[TeamOf(winner)] += points
	g.CurrentTrick = nil
	g.LedSuit = SuitNone
	g.CurrentPlayer = winner

	res := PlayResult{
		TrickComplete: true,
		TrickWinner:   winner,
		TrickPoints:   points,
		NextPlayer:    winner,
	}
	if len(g.CardsPlayedThisHand) == NumSeats*HandSize {
		res.HandComplete = true
	}
	return newHand, res, nil
}
