package bot

import "github.com/mkbarnum/rookgame/engine"

// Tier buckets a hand evaluation into coarse quality bands.
type Tier string

const (
	TierPoor      Tier = "poor"
	TierFair      Tier = "fair"
	TierGood      Tier = "good"
	TierStrong    Tier = "strong"
	TierExcellent Tier = "excellent"
)

// Evaluation is the bot's judgment of a 13-card hand.
type Evaluation struct {
	Score    int // 0–100
	Tier     Tier
	BestSuit uint8 // strongest trump candidate
	MaxBid   int   // highest bid the bot is comfortable committing to
}

// suitCards returns the ranked cards of one color suit in the hand.
func suitCards(hand []engine.Card, suit uint8) []engine.Card {
	var out []engine.Card
	for _, c := range hand {
		if !c.IsRook() && c.Suit() == suit {
			out = append(out, c)
		}
	}
	return out
}

func countRank(hand []engine.Card, rank uint8) int {
	n := 0
	for _, c := range hand {
		if !c.IsRook() && c.Rank() == rank {
			n++
		}
	}
	return n
}

func holdsRook(hand []engine.Card) bool {
	for _, c := range hand {
		if c.IsRook() {
			return true
		}
	}
	return false
}

// Evaluate scores a hand 0–100 from point density, top-card counts, trump
// potential of the best suit, and distribution (voids and singletons make
// future trumping possible).
func Evaluate(hand []engine.Card) Evaluation {
	score := 0.0

	// Point density.
	score += float64(engine.CardPoints(hand)) * evalPointDensityWeight

	// Top cards.
	score += float64(countRank(hand, 1) * evalAceWeight)
	score += float64(countRank(hand, 14) * evalFourteenWeight)
	if holdsRook(hand) {
		score += evalRookWeight
	}

	// Trump potential: length plus high-card content of the best suit.
	bestSuit, bestSuitScore := engine.SuitBlack, -1
	for suit := engine.SuitBlack; suit <= engine.SuitGreen; suit++ {
		s := trumpSuitScore(hand, suit)
		if s > bestSuitScore {
			bestSuit, bestSuitScore = suit, s
		}
	}
	in := suitCards(hand, bestSuit)
	if n := len(in) - 3; n > 0 {
		score += float64(n * evalSuitLengthWeight)
	}
	for _, c := range in {
		switch c.Rank() {
		case 1, 14, 13:
			score += evalHighTrumpWeight
		}
	}

	// Distribution.
	for suit := engine.SuitBlack; suit <= engine.SuitGreen; suit++ {
		if suit == bestSuit {
			continue
		}
		switch len(suitCards(hand, suit)) {
		case 0:
			score += evalVoidWeight
		case 1:
			score += evalSingletonWeight
		}
	}

	n := int(score)
	if n > 100 {
		n = 100
	}
	if n < 0 {
		n = 0
	}

	ev := Evaluation{Score: n, BestSuit: bestSuit}
	switch {
	case n >= tierExcellentMin:
		ev.Tier = TierExcellent
	case n >= tierStrongMin:
		ev.Tier = TierStrong
	case n >= tierGoodMin:
		ev.Tier = TierGood
	case n >= tierFairMin:
		ev.Tier = TierFair
	default:
		ev.Tier = TierPoor
	}
	ev.MaxBid = maxComfortableBid(ev.Tier, n)
	return ev
}

// maxComfortableBid maps a tier to the ceiling the bot will push to on
// its own initiative (floors in bid.go can force it higher).
func maxComfortableBid(tier Tier, score int) int {
	switch tier {
	case TierExcellent:
		// 140+ for the very top of the range.
		return openTakingHigh + 10*((score-tierExcellentMin)/5) + 20
	case TierStrong:
		return openTakingHigh
	case TierGood:
		return openSupportHigh + 10
	case TierFair:
		return openWeakHigh + 10
	default:
		return openWeakLow
	}
}

// roundToBidStep rounds an amount down to the bid step.
func roundToBidStep(amount int) int {
	return amount - amount%engine.BidStep
}
