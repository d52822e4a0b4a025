package engine

// BidOutcome reports what a bid or pass did to the auction.
type BidOutcome struct {
	// Done is true once the auction has a winner.
	Done bool
	// Winner and WinningBid are set when Done.
	Winner     int
	WinningBid int
	// Kitty holds the five cards the service must append to the winner's
	// hand when Done; the record's kitty field is cleared at that point.
	Kitty []Card
	// NextBidder is the seat to act when the auction continues.
	NextBidder int
}

// checkBidTurn validates that seat may act in the auction right now.
func (g *Game) checkBidTurn(seat int) error {
	if g.Status != StatusBidding {
		return ErrWrongStatus
	}
	if !g.SeatOccupied(seat) {
		return ErrSeatVacant
	}
	if seat != g.CurrentBidder {
		return ErrNotYourTurn
	}
	if g.Passed[seat] {
		return ErrAlreadyPassed
	}
	return nil
}

// unpassedSeats returns the seats still live in the auction.
func (g *Game) unpassedSeats() []int {
	var live []int
	for s := 0; s < NumSeats; s++ {
		if !g.Passed[s] {
			live = append(live, s)
		}
	}
	return live
}

// nextUnpassed returns the first seat after `from` that has not passed.
func (g *Game) nextUnpassed(from int) int {
	s := NextSeat(from)
	for g.Passed[s] {
		s = NextSeat(s)
	}
	return s
}

// finishBidding closes the auction: the winner takes the kitty and must
// select trump next. The winning bid never drops below the opening floor,
// so a seat that never bid can still win by default at MinBid.
func (g *Game) finishBidding(winner int) BidOutcome {
	bid := g.HighBid
	if bid < MinBid {
		bid = MinBid
	}
	kitty := g.Kitty
	g.Kitty = nil
	g.BidWinner = winner
	g.WinningBid = bid
	g.CurrentBidder = NoSeat
	g.Status = StatusTrumpSelection
	return BidOutcome{Done: true, Winner: winner, WinningBid: bid, Kitty: kitty, NextBidder: NoSeat}
}

// Bid places a bid for seat. Bids are multiples of five, at least MinBid
// to open and at least one step above the standing high bid after that.
func (g *Game) Bid(seat, amount int) (BidOutcome, error) {
	if err := g.checkBidTurn(seat); err != nil {
		return BidOutcome{}, err
	}
	floor := MinBid
	if g.HighBid > 0 {
		floor = g.HighBid + BidStep
	}
	if amount%BidStep != 0 || amount < floor || amount > MaxBid {
		return BidOutcome{}, ErrInvalidBid
	}

	g.HighBid = amount
	g.HighBidder = seat

	// A bid that leaves no live seat besides the bidder ends the auction.
	if len(g.unpassedSeats()) == 1 {
		return g.finishBidding(seat), nil
	}
	g.CurrentBidder = g.nextUnpassed(seat)
	return BidOutcome{NextBidder: g.CurrentBidder}, nil
}

// Pass removes seat from the auction. Once three seats have passed the
// remaining seat wins, at the floor if it never formally bid.
func (g *Game) Pass(seat int) (BidOutcome, error) {
	if err := g.checkBidTurn(seat); err != nil {
		return BidOutcome{}, err
	}
	g.Passed[seat] = true

	live := g.unpassedSeats()
	if len(live) == 1 {
		return g.finishBidding(live[0]), nil
	}
	g.CurrentBidder = g.nextUnpassed(seat)
	return BidOutcome{NextBidder: g.CurrentBidder}, nil
}
