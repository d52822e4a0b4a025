package bot

import "github.com/mkbarnum/rookgame/engine"

// BidDecision is the outcome of DecideBid: either a bid amount or a pass.
type BidDecision struct {
	Pass   bool
	Amount int
}

// opposingTeamHoldsBid reports whether the standing high bid belongs to
// the other partnership.
func opposingTeamHoldsBid(v View) bool {
	return v.HighBidder != engine.NoSeat && engine.TeamOf(v.HighBidder) != v.Team()
}

// openingBid maps hand quality to the signalling bands: weak hands open
// low, supporting hands mid, taking hands high.
func openingBid(ev Evaluation) BidDecision {
	switch ev.Tier {
	case TierPoor:
		return BidDecision{Pass: true}
	case TierFair:
		span := (openWeakHigh - openWeakLow) * (ev.Score - tierFairMin) / (tierGoodMin - tierFairMin)
		return BidDecision{Amount: roundToBidStep(openWeakLow + span)}
	case TierGood:
		span := (openSupportHigh - openSupportLow) * (ev.Score - tierGoodMin) / (tierStrongMin - tierGoodMin)
		return BidDecision{Amount: roundToBidStep(openSupportLow + span)}
	case TierStrong:
		return BidDecision{Amount: openTakingLow}
	default: // excellent
		return BidDecision{Amount: openTakingHigh}
	}
}

// DecideBid is the bot's bid-or-pass choice on its turn in the auction.
//
// Hard floors override hand comfort: the opposing team never buys the
// kitty under defendKittyFloor uncontested, and with the partner already
// out the bot defends up to partnerPassedFloor rather than concede cheap.
// Otherwise the bot creeps or jumps inside the headroom its evaluation
// allows, and passes once none remains.
func DecideBid(hand []engine.Card, v View) BidDecision {
	ev := Evaluate(hand)

	if v.HighBid == 0 {
		return openingBid(ev)
	}

	next := v.HighBid + engine.BidStep
	if next > engine.MaxBid {
		return BidDecision{Pass: true}
	}

	// Partner holds the bid: do not compete with it.
	if !opposingTeamHoldsBid(v) {
		return BidDecision{Pass: true}
	}

	// Forced defense, regardless of hand comfort.
	mustDefend := v.HighBid < defendKittyFloor ||
		(v.Passed[v.PartnerSeat()] && v.HighBid < partnerPassedFloor)
	if mustDefend {
		return BidDecision{Amount: next}
	}

	headroom := ev.MaxBid - v.HighBid
	switch {
	case headroom <= 0:
		return BidDecision{Pass: true}
	case headroom >= jumpHeadroom:
		amount := roundToBidStep(v.HighBid + jumpStep)
		if amount > engine.MaxBid {
			amount = engine.MaxBid
		}
		return BidDecision{Amount: amount}
	default:
		return BidDecision{Amount: next}
	}
}
