package engine

// containsCard reports whether hand holds c.
func containsCard(hand []Card, c Card) bool {
	for _, h := range hand {
		if h == c {
			return true
		}
	}
	return false
}

// removeCards returns hand minus the given cards, or false if any card is
// missing (duplicates in the removal list must match distinct copies, but
// the deck has no duplicates).
func removeCards(hand []Card, remove []Card) ([]Card, bool) {
	out := append([]Card(nil), hand...)
	for _, r := range remove {
		found := false
		for i, h := range out {
			if h == r {
				out = append(out[:i], out[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return out, true
}

// CardPoints sums the capture value of a set of cards.
func CardPoints(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}

// DiscardAndChooseTrump is the bid winner's one move in trump selection:
// bury exactly five cards from the 18-card hand and name the trump color.
// The discarded points count toward the bid team as the kitty capture.
// Returns the winner's remaining 13-card hand; play then starts left of
// the dealer.
func (g *Game) DiscardAndChooseTrump(seat int, hand []Card, discards []Card, trump uint8) ([]Card, error) {
	if g.Status != StatusTrumpSelection {
		return nil, ErrWrongStatus
	}
	if seat != g.BidWinner {
		return nil, ErrNotYourTurn
	}
	if trump > SuitGreen {
		// The Rook is always trump by definition and is never chosen.
		return nil, ErrInvalidTrump
	}
	if len(hand) != HandSize+KittySize {
		return nil, ErrInvalidDiscard
	}
	if len(discards) != KittySize {
		return nil, ErrInvalidDiscard
	}
	for i, d := range discards {
		for _, other := range discards[i+1:] {
			if d == other {
				return nil, ErrInvalidDiscard
			}
		}
	}

	remaining, ok := removeCards(hand, discards)
	if !ok {
		return nil, ErrInvalidDiscard
	}
	if len(remaining) != HandSize {
		// Cannot happen given the checks above; never persist it if it does.
		return nil, ErrInvariant
	}

	g.KittyPointsCaptured = CardPoints(discards)
	g.Trump = trump
	g.CurrentTrick = nil
	g.LedSuit = SuitNone
	g.CurrentPlayer = g.LeftOfDealer()
	g.Status = StatusPlaying
	return remaining, nil
}
