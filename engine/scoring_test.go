package engine

import "testing"

// finishedHand fakes the end-of-hand record state so CompleteHand can be
// exercised with exact point splits.
func finishedHand(t *testing.T, bidWinner, winningBid, bidTeamTricks, defTeamTricks, kittyPoints int) *Game {
	t.Helper()
	g := newPlayingGame(t, SuitBlack, bidWinner, winningBid, 0)
	bidTeam := TeamOf(bidWinner)
	g.PointsCaptured[bidTeam] = bidTeamTricks
	g.PointsCaptured[1-bidTeam] = defTeamTricks
	g.KittyPointsCaptured = kittyPoints
	g.CardsPlayedThisHand = make([]Card, NumSeats*HandSize)
	return g
}

// TestScoreBidMade verifies a made bid scores the bid team's full haul and
// the defenders their captured points.
func TestScoreBidMade(t *testing.T) {
	g := finishedHand(t, 0, 100, 95, 60, 25) // bid team 95+25=120 vs bid 100

	score, err := g.CompleteHand()
	if err != nil {
		t.Fatalf("CompleteHand: %v", err)
	}
	if !score.Summary.Made || score.Summary.Sweep {
		t.Errorf("summary = %+v, want made, no sweep", score.Summary)
	}
	if g.TeamScores[0] != 120 || g.TeamScores[1] != 60 {
		t.Errorf("team scores = %v, want [120 60]", g.TeamScores)
	}
	if score.GameOver {
		t.Error("game should continue")
	}
	if g.Status != StatusBidding || g.Dealer != 1 {
		t.Errorf("post-hand: status %s dealer %d, want BIDDING dealer 1", g.Status, g.Dealer)
	}
}

// TestScoreBidSet verifies a failed bid scores exactly minus the bid, with
// the defense keeping its points.
func TestScoreBidSet(t *testing.T) {
	g := finishedHand(t, 1, 125, 80, 80, 20) // bid team 80+20=100 < 125

	score, err := g.CompleteHand()
	if err != nil {
		t.Fatalf("CompleteHand: %v", err)
	}
	if score.Summary.Made {
		t.Error("bid should be set")
	}
	if g.TeamScores[TeamOf(1)] != -125 {
		t.Errorf("bid team score = %d, want -125", g.TeamScores[TeamOf(1)])
	}
	if g.TeamScores[TeamOf(0)] != 80 {
		t.Errorf("defending team score = %d, want 80", g.TeamScores[TeamOf(0)])
	}
}

// TestScoreSweep verifies the sweep pays the flat 200 bonus instead of the
// raw 180, regardless of the winning bid.
func TestScoreSweep(t *testing.T) {
	g := finishedHand(t, 0, 70, 160, 0, 20) // 160 tricks + 20 kitty = all 180

	score, err := g.CompleteHand()
	if err != nil {
		t.Fatalf("CompleteHand: %v", err)
	}
	if !score.Summary.Sweep {
		t.Fatal("expected a sweep")
	}
	if g.TeamScores[0] != SweepBonus {
		t.Errorf("bid team score = %d, want %d", g.TeamScores[0], SweepBonus)
	}
	if g.TeamScores[1] != 0 {
		t.Errorf("defending team score = %d, want 0", g.TeamScores[1])
	}
}

// TestScoreGameOver verifies the 500 threshold ends the game and that a
// double-cross goes to the higher cumulative total.
func TestScoreGameOver(t *testing.T) {
	g := finishedHand(t, 0, 100, 120, 55, 10)
	g.TeamScores = [2]int{420, 460} // 420+130=550, 460+55=515: both cross

	score, err := g.CompleteHand()
	if err != nil {
		t.Fatalf("CompleteHand: %v", err)
	}
	if !score.GameOver {
		t.Fatal("game should be over")
	}
	if score.WinningTeam != 0 {
		t.Errorf("winning team = %d, want 0 (550 > 515)", score.WinningTeam)
	}
	if g.Status != StatusFinished {
		t.Errorf("status = %s, want FINISHED", g.Status)
	}
	if err := g.CheckInvariants(); err != nil {
		t.Errorf("invariants: %v", err)
	}
}

// TestScoreHandHistory verifies the per-hand summary appended to the log.
func TestScoreHandHistory(t *testing.T) {
	g := finishedHand(t, 2, 100, 90, 65, 25)

	if _, err := g.CompleteHand(); err != nil {
		t.Fatalf("CompleteHand: %v", err)
	}
	if len(g.HandHistory) != 1 {
		t.Fatalf("hand history length = %d, want 1", len(g.HandHistory))
	}
	h := g.HandHistory[0]
	if h.Bid != 100 || h.BidTeam != TeamOf(2) || !h.Made || h.Sweep {
		t.Errorf("summary = %+v", h)
	}
	if h.TeamPoints[TeamOf(2)] != 115 || h.Totals[TeamOf(2)] != 115 {
		t.Errorf("bid team points/totals = %d/%d, want 115/115",
			h.TeamPoints[TeamOf(2)], h.Totals[TeamOf(2)])
	}

	// Per-hand counters reset for the next deal.
	if g.PointsCaptured != [2]int{} || g.KittyPointsCaptured != 0 {
		t.Error("per-hand counters not reset")
	}
}

// TestCompleteHandGuards rejects scoring mid-hand.
func TestCompleteHandGuards(t *testing.T) {
	g := newPlayingGame(t, SuitBlack, 0, 100, 0)
	if _, err := g.CompleteHand(); err != ErrInvariant {
		t.Errorf("incomplete hand: err = %v, want ErrInvariant", err)
	}
	g.Status = StatusBidding
	g.CurrentBidder = 1
	g.CurrentPlayer = NoSeat
	if _, err := g.CompleteHand(); err != ErrWrongStatus {
		t.Errorf("wrong status: err = %v, want ErrWrongStatus", err)
	}
}
