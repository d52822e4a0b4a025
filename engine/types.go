package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit constants, packed into the upper 4 bits of Card.
const (
	SuitBlack  uint8 = 0
	SuitRed    uint8 = 1
	SuitYellow uint8 = 2
	SuitGreen  uint8 = 3
	SuitRook   uint8 = 4 // the neutral Rook card; never choosable as trump

	// SuitNone marks an unset trump / led suit.
	SuitNone uint8 = 0xF
)

// Ranks run 1..14 and are packed into the lower 4 bits of Card.
// Rank 1 is the highest card of its suit (ace-high), then 14 down to 2.
const (
	RankLow  uint8 = 1
	RankHigh uint8 = 14
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
// The Rook card carries SuitRook and rank 0.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// RookCard is the single suitless, rankless bird card.
const RookCard Card = Card(SuitRook << 4)

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4). The Rook card has rank 0.
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// IsRook reports whether c is the Rook card.
func (c Card) IsRook() bool { return c.Suit() == SuitRook }

// Points returns the capture value of the card.
//   - rank 1 → 15
//   - rank 5 → 5
//   - rank 10 → 10
//   - rank 14 → 10
//   - Rook → 20
//   - everything else → 0
//
// The full 57-card deck is worth exactly TotalPoints (180).
func (c Card) Points() int {
	if c.IsRook() {
		return 20
	}
	switch c.Rank() {
	case 1:
		return 15
	case 5:
		return 5
	case 10, 14:
		return 10
	}
	return 0
}

// IsPointCard reports whether the card carries any capture value.
func (c Card) IsPointCard() bool { return c.Points() > 0 }

// rankOrder maps a rank to its within-suit strength: 1 is highest (15),
// then 14 down to 2 in natural order.
func rankOrder(rank uint8) int {
	if rank == 1 {
		return 15
	}
	return int(rank)
}

// Strength returns the trick-taking strength of the card given the trump
// suit and the suit that was led. Higher wins. Off-suit, non-trump cards
// can never take a trick and score 0.
//
// The Rook is always trump: it beats every non-trump card but loses to
// every ranked card of the trump suit.
func (c Card) Strength(trump, ledSuit uint8) int {
	const trumpBand = 1000
	if c.IsRook() {
		return trumpBand
	}
	suit := c.Suit()
	if suit == trump {
		return trumpBand + rankOrder(c.Rank())
	}
	if suit == ledSuit {
		return rankOrder(c.Rank())
	}
	return 0
}

var suitNames = [...]string{"Black", "Red", "Yellow", "Green"}

// SuitName returns the display name of a color suit ("Black" .. "Green").
func SuitName(suit uint8) string {
	if int(suit) < len(suitNames) {
		return suitNames[suit]
	}
	return "?"
}

// ParseSuit resolves a display name back to a suit constant.
func ParseSuit(s string) (uint8, error) {
	for suit, name := range suitNames {
		if s == name {
			return uint8(suit), nil
		}
	}
	return SuitNone, fmt.Errorf("bad suit %q", s)
}

// String renders a card as e.g. "Green5", "Black14", or "Rook".
func (c Card) String() string {
	if c == EmptyCard {
		return "-"
	}
	if c.IsRook() {
		return "Rook"
	}
	return SuitName(c.Suit()) + strconv.Itoa(int(c.Rank()))
}

// ParseCard parses the String form back into a Card.
func ParseCard(s string) (Card, error) {
	if s == "Rook" {
		return RookCard, nil
	}
	for suit, name := range suitNames {
		if strings.HasPrefix(s, name) {
			rank, err := strconv.Atoi(strings.TrimPrefix(s, name))
			if err != nil || rank < int(RankLow) || rank > int(RankHigh) {
				return EmptyCard, fmt.Errorf("bad card rank in %q", s)
			}
			return NewCard(uint8(suit), uint8(rank)), nil
		}
	}
	return EmptyCard, fmt.Errorf("bad card %q", s)
}

// MarshalText implements encoding.TextMarshaler so cards serialize as
// their readable names in JSON documents and events.
func (c Card) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Card) UnmarshalText(b []byte) error {
	parsed, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
