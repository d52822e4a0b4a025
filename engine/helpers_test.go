package engine

import "testing"

// newFullGame returns a game with four seated players (seat 1 = partner of
// seat 0 not yet chosen) in FULL status.
func newFullGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame("test-game")
	for _, name := range []string{"north", "east", "south", "west"} {
		if _, err := g.Join(name, false); err != nil {
			t.Fatalf("Join(%s): %v", name, err)
		}
	}
	if g.Status != StatusFull {
		t.Fatalf("status = %s, want %s", g.Status, StatusFull)
	}
	return g
}

// newBiddingGame returns a dealt game in BIDDING with the given dealer,
// along with the dealt hands.
func newBiddingGame(t *testing.T, dealer int) (*Game, [NumSeats][]Card) {
	t.Helper()
	g := newFullGame(t)
	if err := g.ChoosePartner(0, 2); err != nil {
		t.Fatalf("ChoosePartner: %v", err)
	}
	if err := g.StartNextHand(dealer); err != nil {
		t.Fatalf("StartNextHand: %v", err)
	}
	hands, _, err := g.Deal()
	if err != nil {
		t.Fatalf("Deal: %v", err)
	}
	return g, hands
}

// newPlayingGame returns a game forced directly into PLAYING with the
// given trump, bid, bid winner, and current player. Hands are supplied by
// the caller.
func newPlayingGame(t *testing.T, trump uint8, bidWinner, winningBid, leader int) *Game {
	t.Helper()
	g := newFullGame(t)
	if err := g.ChoosePartner(0, 2); err != nil {
		t.Fatalf("ChoosePartner: %v", err)
	}
	g.Status = StatusPlaying
	g.Trump = trump
	g.BidWinner = bidWinner
	g.WinningBid = winningBid
	g.CurrentPlayer = leader
	g.LedSuit = SuitNone
	return g
}
