package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkbarnum/rookgame/engine"
)

// TestChooseTrumpPrefersLongStrongSuit verifies the suit score favors
// length and top ranks.
func TestChooseTrumpPrefersLongStrongSuit(t *testing.T) {
	hand := cards(t,
		"Green1", "Green14", "Green13", "Green9", "Green7", "Green4",
		"Red1", "Red5", "Black2", "Black3", "Yellow10", "Yellow2", "Rook")
	assert.Equal(t, engine.SuitGreen, ChooseTrump(hand))
}

// TestChooseDiscardsVoidsShortSuits verifies the priority order: whole
// ace-less suits go first, shortest and point-poorest ahead.
func TestChooseDiscardsVoidsShortSuits(t *testing.T) {
	hand := cards(t,
		"Black1", "Black14", "Black13", "Black10", "Black5", "Black2", "Rook",
		"Red1", "Red5", "Red10", "Red2",
		"Yellow2", "Yellow3",
		"Green2", "Green3", "Green4", "Green6", "Green10")
	require.Len(t, hand, engine.HandSize+engine.KittySize)

	discards := ChooseDiscards(hand, engine.SuitBlack)
	require.Len(t, discards, engine.KittySize)

	want := cards(t, "Yellow2", "Yellow3", "Green2", "Green3", "Green4")
	assert.ElementsMatch(t, want, discards,
		"yellow (short, pointless) voids first, then low green; red is protected by its ace")
}

// TestChooseDiscardsProtections verifies the Rook, off-suit rank-1s, and
// the trump suit never get buried when alternatives exist.
func TestChooseDiscardsProtections(t *testing.T) {
	hand := cards(t,
		"Black1", "Black14", "Black3", "Black2", "Rook",
		"Red1", "Green1", "Yellow1",
		"Red2", "Red3", "Yellow4", "Yellow6", "Green7",
		"Green9", "Red11", "Yellow12", "Green12", "Red13")

	discards := ChooseDiscards(hand, engine.SuitBlack)
	require.Len(t, discards, engine.KittySize)

	seen := make(map[engine.Card]bool)
	for _, d := range discards {
		assert.False(t, seen[d], "duplicate discard %v", d)
		seen[d] = true
		assert.Contains(t, hand, d)
		assert.False(t, d.IsRook(), "must never discard the Rook")
		assert.NotEqual(t, uint8(1), d.Rank(), "must keep every rank-1")
		assert.NotEqual(t, engine.SuitBlack, d.Suit(), "must keep the trump suit")
	}
}

// TestChooseDiscardsKeepsATrump verifies the safety pass on a hand with a
// single trump card and nothing else safe to shed.
func TestChooseDiscardsKeepsATrump(t *testing.T) {
	hand := cards(t,
		"Black7", "Rook",
		"Red1", "Red14", "Red13", "Red12", "Red11", "Red10",
		"Green1", "Green14", "Green13", "Green12",
		"Yellow1", "Yellow14", "Yellow13", "Yellow12", "Yellow11", "Yellow10")

	discards := ChooseDiscards(hand, engine.SuitBlack)
	require.Len(t, discards, engine.KittySize)

	for _, d := range discards {
		assert.False(t, d.IsRook())
		assert.NotEqual(t, engine.SuitBlack, d.Suit(), "the only trump card must be retained")
	}
}
