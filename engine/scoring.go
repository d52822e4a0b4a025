package engine

// HandScore is the outcome of scoring one completed hand.
type HandScore struct {
	Summary  HandSummary
	GameOver bool
	// WinningTeam is set when GameOver; when both teams cross the end
	// threshold in the same hand the higher cumulative total wins.
	WinningTeam int
}

// CompleteHand converts a finished hand into team score deltas and either
// rotates the dealer for the next deal or finishes the game.
//
// The bid team's haul is its trick points plus the buried kitty points.
// Making the bid scores the haul; capturing everything while the defense
// takes nothing scores the flat sweep bonus instead; falling short scores
// minus the bid. The defending team always keeps its captured points.
func (g *Game) CompleteHand() (HandScore, error) {
	if g.Status != StatusPlaying {
		return HandScore{}, ErrWrongStatus
	}
	if len(g.CardsPlayedThisHand) != NumSeats*HandSize {
		return HandScore{}, ErrInvariant
	}
	if g.BidWinner == NoSeat {
		return HandScore{}, ErrInvariant
	}

	bidTeam := TeamOf(g.BidWinner)
	defTeam := 1 - bidTeam
	bidTeamPoints := g.PointsCaptured[bidTeam] + g.KittyPointsCaptured
	defTeamPoints := g.PointsCaptured[defTeam]

	sum := HandSummary{
		Bid:     g.WinningBid,
		BidTeam: bidTeam,
		Made:    bidTeamPoints >= g.WinningBid,
	}
	sum.TeamPoints[bidTeam] = bidTeamPoints
	sum.TeamPoints[defTeam] = defTeamPoints

	switch {
	case sum.Made && defTeamPoints == 0 && bidTeamPoints == TotalPoints:
		sum.Sweep = true
		g.TeamScores[bidTeam] += SweepBonus
	case sum.Made:
		g.TeamScores[bidTeam] += bidTeamPoints
	default:
		g.TeamScores[bidTeam] -= g.WinningBid
	}
	g.TeamScores[defTeam] += defTeamPoints
	sum.Totals = g.TeamScores
	g.HandHistory = append(g.HandHistory, sum)

	score := HandScore{Summary: sum}
	if g.TeamScores[0] >= GameOverScore || g.TeamScores[1] >= GameOverScore {
		score.GameOver = true
		score.WinningTeam = 0
		if g.TeamScores[1] > g.TeamScores[0] {
			score.WinningTeam = 1
		}
		g.resetHandState()
		g.Status = StatusFinished
		return score, nil
	}

	g.Dealer = NextSeat(g.Dealer)
	g.resetHandState()
	g.Status = StatusBidding
	return score, nil
}
