package engine

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// maxDealAttempts bounds the redeal loop that guarantees every seat at
// least one point card. Exhausting it is astronomically unlikely; the deal
// proceeds anyway and the caller is told so it can log.
const maxDealAttempts = 100

// NewDeck builds the 57-card deck in canonical order: four color suits of
// ranks 1..14 plus the Rook.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for suit := SuitBlack; suit <= SuitGreen; suit++ {
		for rank := RankLow; rank <= RankHigh; rank++ {
			deck = append(deck, NewCard(suit, rank))
		}
	}
	return append(deck, RookCard)
}

// secureIntn returns a uniform random int in [0, n) from crypto/rand.
// A predictable shuffle is a fairness bug, so math/rand is not acceptable
// here; rejection sampling removes modulo bias.
func secureIntn(n int) int {
	if n <= 1 {
		return 0
	}
	max := ^uint64(0) - ^uint64(0)%uint64(n)
	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
		}
		v := binary.BigEndian.Uint64(buf[:])
		if v < max {
			return int(v % uint64(n))
		}
	}
}

// shuffle performs a Fisher–Yates permutation over crypto/rand.
func shuffle(deck []Card) {
	for i := len(deck) - 1; i > 0; i-- {
		j := secureIntn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// hasPointCard reports whether a hand holds at least one scoring card.
func hasPointCard(hand []Card) bool {
	for _, c := range hand {
		if c.IsPointCard() {
			return true
		}
	}
	return false
}

// Deal shuffles a fresh deck and distributes 13 cards to each seat plus a
// 5-card kitty, redealing until every hand contains a point card (bounded
// by maxDealAttempts; exhausted reports whether the bound was hit). It
// moves the game into bidding with the seat left of the dealer to act.
//
// Valid from PARTNER_SELECTION (first hand) or from the post-scoring
// boundary where the status is already BIDDING but no bidder is set.
func (g *Game) Deal() (hands [NumSeats][]Card, exhausted bool, err error) {
	switch g.Status {
	case StatusPartnerSelection:
	case StatusBidding:
		if g.CurrentBidder != NoSeat {
			return hands, false, ErrWrongStatus
		}
	default:
		return hands, false, ErrWrongStatus
	}

	var kitty []Card
	for attempt := 0; ; attempt++ {
		deck := NewDeck()
		shuffle(deck)
		for seat := 0; seat < NumSeats; seat++ {
			hands[seat] = append([]Card(nil), deck[seat*HandSize:(seat+1)*HandSize]...)
		}
		kitty = append([]Card(nil), deck[NumSeats*HandSize:]...)

		ok := true
		for seat := 0; seat < NumSeats; seat++ {
			if !hasPointCard(hands[seat]) {
				ok = false
				break
			}
		}
		if ok {
			break
		}
		if attempt+1 >= maxDealAttempts {
			exhausted = true
			break
		}
	}

	g.resetHandState()
	g.Kitty = kitty
	g.Status = StatusBidding
	g.CurrentBidder = g.LeftOfDealer()
	return hands, exhausted, nil
}
