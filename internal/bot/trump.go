package bot

import "github.com/mkbarnum/rookgame/engine"

// trumpSuitScore rates a suit as a trump candidate: raw length, the top
// ranks that will win trump tricks outright, and point-card density.
func trumpSuitScore(hand []engine.Card, suit uint8) int {
	score := 0
	for _, c := range suitCards(hand, suit) {
		score += trumpLengthWeight
		switch c.Rank() {
		case 1:
			score += trumpAceWeight
		case 14:
			score += trumpFourteenWeight
		case 13:
			score += trumpThirteenWeight
		case 12:
			score += trumpTwelveWeight
		}
		if c.IsPointCard() {
			score += trumpPointWeight
		}
	}
	return score
}

// ChooseTrump picks the highest-scoring suit of the (post-kitty, 18-card)
// hand as trump.
func ChooseTrump(hand []engine.Card) uint8 {
	best, bestScore := engine.SuitBlack, -1
	for suit := engine.SuitBlack; suit <= engine.SuitGreen; suit++ {
		if s := trumpSuitScore(hand, suit); s > bestScore {
			best, bestScore = suit, s
		}
	}
	return best
}
