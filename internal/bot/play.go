package bot

import "github.com/mkbarnum/rookgame/engine"

// trickLeader returns the play currently winning the trick.
func trickLeader(v View) (seat int, card engine.Card, strength int) {
	seat = engine.NoSeat
	for _, p := range v.CurrentTrick {
		if s := p.Card.Strength(v.Trump, v.LedSuit); seat == engine.NoSeat || s > strength {
			seat, card, strength = p.Seat, p.Card, s
		}
	}
	return seat, card, strength
}

// trickPoints sums the points already on the table this trick.
func trickPoints(v View) int {
	total := 0
	for _, p := range v.CurrentTrick {
		total += p.Card.Points()
	}
	return total
}

// isBoss reports whether no unseen card can beat c in its effective suit.
// Unseen means: not already played this hand and not in the bot's own
// hand, which is exactly what a card-counting human knows.
func isBoss(c engine.Card, hand []engine.Card, v View) bool {
	suit := c.Suit()
	if c.IsRook() {
		suit = v.Trump
	}
	mine := func(x engine.Card) bool {
		for _, h := range hand {
			if h == x {
				return true
			}
		}
		return false
	}
	beats := func(x engine.Card) bool {
		return x.Strength(v.Trump, suit) > c.Strength(v.Trump, suit)
	}
	for rank := engine.RankLow; rank <= engine.RankHigh; rank++ {
		x := engine.NewCard(suit, rank)
		if beats(x) && !v.played(x) && !mine(x) {
			return false
		}
	}
	return true
}

// cheapestWinner returns the weakest legal card that would take the trick
// as it stands, or EmptyCard if none can.
func cheapestWinner(legal []engine.Card, toBeat int, v View) engine.Card {
	best := engine.EmptyCard
	bestStrength := 0
	for _, c := range legal {
		s := c.Strength(v.Trump, v.LedSuit)
		if s > toBeat && (best == engine.EmptyCard || s < bestStrength) {
			best, bestStrength = c, s
		}
	}
	return best
}

// lowestThrowaway picks the cheapest card to give up: zero-point cards by
// rank first, then the smallest points. The Rook and cards worth 10+ are
// excluded unless the hand forces them.
func lowestThrowaway(legal []engine.Card, allowExpensive bool) engine.Card {
	pick := engine.EmptyCard
	for _, c := range legal {
		if !allowExpensive && (c.IsRook() || c.Points() >= 10) {
			continue
		}
		if pick == engine.EmptyCard {
			pick = c
			continue
		}
		if c.Points() != pick.Points() {
			if c.Points() < pick.Points() {
				pick = c
			}
			continue
		}
		if cardOrder(c) < cardOrder(pick) {
			pick = c
		}
	}
	return pick
}

// slough gives up the trick as cheaply as the hand allows.
func slough(legal []engine.Card) engine.Card {
	if c := lowestThrowaway(legal, false); c != engine.EmptyCard {
		return c
	}
	// No safe card: everything is the Rook or heavy points.
	return lowestThrowaway(legal, true)
}

// richestFeed finds the highest-point legal card worth feeding a winning
// teammate, or EmptyCard when not worth it.
func richestFeed(legal []engine.Card) engine.Card {
	pick := engine.EmptyCard
	for _, c := range legal {
		if c.Points() < feedPointsMin {
			continue
		}
		if pick == engine.EmptyCard || c.Points() > pick.Points() ||
			(c.Points() == pick.Points() && cardOrder(c) < cardOrder(pick)) {
			pick = c
		}
	}
	return pick
}

// outstandingTrump counts trump cards (Rook included) that opponents or
// the partner may still hold.
func outstandingTrump(hand []engine.Card, v View) int {
	unseen := 0
	check := func(c engine.Card) {
		if v.played(c) {
			return
		}
		for _, h := range hand {
			if h == c {
				return
			}
		}
		unseen++
	}
	for rank := engine.RankLow; rank <= engine.RankHigh; rank++ {
		check(engine.NewCard(v.Trump, rank))
	}
	check(engine.RookCard)
	return unseen
}

// chooseLead picks the card to open a trick with.
//
// Offensive leads (bid team) pull trump while any remains out and cash
// guaranteed winners. Defensive leads keep trump in pocket, cash rank-1s,
// and otherwise lead from short suits to build voids.
func chooseLead(hand []engine.Card, v View) engine.Card {
	offense := v.OnBidTeam()

	if offense && outstandingTrump(hand, v) > 0 {
		// Highest ranked trump pulls hardest.
		pick := engine.EmptyCard
		for _, c := range hand {
			if c.IsRook() || c.Suit() != v.Trump {
				continue
			}
			if pick == engine.EmptyCard || cardOrder(c) > cardOrder(pick) {
				pick = c
			}
		}
		if pick != engine.EmptyCard {
			return pick
		}
	}

	// Guaranteed winners: off-suit rank-1s (and any other boss card on
	// offense once trump is accounted for).
	for _, c := range hand {
		if c.IsRook() || c.Suit() == v.Trump {
			continue
		}
		if c.Rank() == 1 && isBoss(c, hand, v) {
			return c
		}
	}

	// Defensive: lead low from the shortest non-trump suit.
	bestSuit, bestLen := engine.SuitNone, engine.NumSeats*engine.HandSize
	for suit := engine.SuitBlack; suit <= engine.SuitGreen; suit++ {
		if suit == v.Trump {
			continue
		}
		n := len(suitCards(hand, suit))
		if n > 0 && n < bestLen {
			bestSuit, bestLen = suit, n
		}
	}
	if bestSuit != engine.SuitNone {
		pick := engine.EmptyCard
		for _, c := range suitCards(hand, bestSuit) {
			if pick == engine.EmptyCard || cardOrder(c) < cardOrder(pick) {
				pick = c
			}
		}
		if pick.IsPointCard() {
			// Do not gift points on the open; lead any cheap card instead.
			if low := lowestThrowaway(hand, false); low != engine.EmptyCard && low.Suit() != v.Trump {
				return low
			}
		}
		return pick
	}

	// Only trump left: lead the lowest.
	pick := hand[0]
	for _, c := range hand {
		if cardOrder(c) < cardOrder(pick) {
			pick = c
		}
	}
	return pick
}

// chooseFollow picks the card for a trick someone else leads.
func chooseFollow(hand []engine.Card, legal []engine.Card, v View) engine.Card {
	winnerSeat, winnerCard, winnerStrength := trickLeader(v)
	lastToAct := len(v.CurrentTrick) == engine.NumSeats-1

	if winnerSeat == v.PartnerSeat() {
		// Never overtake the partner. Feed points when the trick is safe:
		// we act last, or the partner's card cannot be beaten.
		safe := lastToAct || isBoss(winnerCard, hand, v)
		if safe {
			if feed := richestFeed(legal); feed != engine.EmptyCard {
				return feed
			}
			return slough(legal)
		}
		// Partner holds it with a low card and opponents still act: third
		// hand protects with its boss card, otherwise stays low.
		if cardOrder(winnerCard) < 10 {
			for _, c := range legal {
				if !c.IsRook() && isBoss(c, hand, v) {
					return c
				}
			}
		}
		return slough(legal)
	}

	// An opponent holds the trick.
	win := cheapestWinner(legal, winnerStrength, v)
	if win == engine.EmptyCard {
		return slough(legal)
	}

	// Winning cheap tricks with expensive cards loses the long game.
	value := trickPoints(v) + win.Points()
	expensive := win.IsRook() ||
		cardOrder(win) == 15 ||
		(effective(win, v.Trump) == v.Trump && v.LedSuit != v.Trump)
	if expensive && value < cheapTrickPoints && !lastToAct {
		return slough(legal)
	}
	if expensive && trickPoints(v) < cheapTrickPoints && lastToAct && win.IsRook() {
		// Do not close a worthless trick with the Rook.
		if alt := lowestThrowaway(legal, false); alt != engine.EmptyCard {
			return alt
		}
	}
	return win
}

// effective is the suit a card plays as (Rook is trump).
func effective(c engine.Card, trump uint8) uint8 {
	if c.IsRook() {
		return trump
	}
	return c.Suit()
}

// ChoosePlay is the bot's card for the current trick. It is never invalid:
// the choice is always drawn from the legal-play set.
func ChoosePlay(hand []engine.Card, v View) engine.Card {
	legal := v.LegalPlays(hand)
	if len(legal) == 0 {
		return engine.EmptyCard
	}
	if len(legal) == 1 {
		return legal[0]
	}
	if len(v.CurrentTrick) == 0 {
		return chooseLead(hand, v)
	}
	return chooseFollow(hand, legal, v)
}
