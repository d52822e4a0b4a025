package bot

import (
	"sort"

	"github.com/mkbarnum/rookgame/engine"
)

// cardOrder is the within-suit strength of a card (rank 1 highest).
func cardOrder(c engine.Card) int {
	if c.IsRook() {
		return 0
	}
	if c.Rank() == 1 {
		return 15
	}
	return int(c.Rank())
}

// ChooseDiscards picks the five cards the bot buries after winning the
// auction, given the trump it is about to name.
//
// Priorities, in order: void out non-trump suits that hold no rank 1
// (shortest and point-poorest first, enabling later trumping), then shed
// generic low non-point cards, then off-suit point cards, and only as a
// last resort low trump. The Rook, every off-suit rank 1, and at least
// one trump card are always retained.
func ChooseDiscards(hand []engine.Card, trump uint8) []engine.Card {
	keep := func(c engine.Card) bool {
		if c.IsRook() {
			return true
		}
		if c.Rank() == 1 {
			return true // rank-1s win tricks unconditionally
		}
		return false
	}

	discarded := make(map[int]bool)
	var discards []engine.Card
	take := func(idx int) bool {
		if len(discards) >= engine.KittySize || discarded[idx] {
			return false
		}
		discarded[idx] = true
		discards = append(discards, hand[idx])
		return true
	}

	// Pass 1: void candidates, the non-trump suits without a rank 1.
	type suitGroup struct {
		suit   uint8
		idxs   []int
		points int
	}
	var groups []suitGroup
	for suit := engine.SuitBlack; suit <= engine.SuitGreen; suit++ {
		if suit == trump {
			continue
		}
		g := suitGroup{suit: suit}
		hasAce := false
		for i, c := range hand {
			if c.IsRook() || c.Suit() != suit {
				continue
			}
			if c.Rank() == 1 {
				hasAce = true
			}
			g.idxs = append(g.idxs, i)
			g.points += c.Points()
		}
		if !hasAce && len(g.idxs) > 0 {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].idxs) != len(groups[j].idxs) {
			return len(groups[i].idxs) < len(groups[j].idxs)
		}
		return groups[i].points < groups[j].points
	})
	for _, g := range groups {
		// Low cards of the suit go first so a partial void still sheds losers.
		sort.Slice(g.idxs, func(i, j int) bool {
			return cardOrder(hand[g.idxs[i]]) < cardOrder(hand[g.idxs[j]])
		})
		for _, idx := range g.idxs {
			take(idx)
		}
	}

	// Pass 2 fallbacks, each scanning lowest cards first.
	lowFirst := make([]int, 0, len(hand))
	for i := range hand {
		lowFirst = append(lowFirst, i)
	}
	sort.Slice(lowFirst, func(i, j int) bool {
		return cardOrder(hand[lowFirst[i]]) < cardOrder(hand[lowFirst[j]])
	})

	passes := []func(c engine.Card) bool{
		// Generic low non-point cards outside trump.
		func(c engine.Card) bool {
			return !keep(c) && c.Suit() != trump && !c.IsPointCard()
		},
		// Off-suit point cards (their points land in the kitty and count
		// for the bid team anyway).
		func(c engine.Card) bool {
			return !keep(c) && c.Suit() != trump
		},
		// Low trump, last resort.
		func(c engine.Card) bool {
			return !keep(c)
		},
	}
	for _, match := range passes {
		for _, idx := range lowFirst {
			if len(discards) >= engine.KittySize {
				break
			}
			if match(hand[idx]) {
				take(idx)
			}
		}
	}

	// Safety pass: never bury the last trump. The Rook and rank-1s were
	// never candidates above.
	trumpKept := 0
	for i, c := range hand {
		if !discarded[i] && !c.IsRook() && c.Suit() == trump {
			trumpKept++
		}
	}
	if trumpKept == 0 {
		for di := len(discards) - 1; di >= 0; di-- {
			if discards[di].Suit() != trump {
				continue
			}
			victim := discards[di]
			// Swap the buried trump for the lowest kept non-trump card.
			for _, idx := range lowFirst {
				c := hand[idx]
				if discarded[idx] || keep(c) || c.Suit() == trump {
					continue
				}
				for hi := range hand {
					if hand[hi] == victim {
						discarded[hi] = false
					}
				}
				discards[di] = c
				discarded[idx] = true
				trumpKept++
				break
			}
			if trumpKept > 0 {
				break
			}
		}
	}

	return discards
}
