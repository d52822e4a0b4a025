package engine

import (
	"errors"
	"testing"
)

// mustParse converts "Green5"-style names into cards for fixtures.
func mustParse(t *testing.T, names ...string) []Card {
	t.Helper()
	cards := make([]Card, len(names))
	for i, n := range names {
		c, err := ParseCard(n)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", n, err)
		}
		cards[i] = c
	}
	return cards
}

// TestTrickRookLosesToRankedTrump plays the reference trick: Green led,
// Black trump; Black3 beats Green1 and beats the Rook, and the trick is
// worth 40 points.
func TestTrickRookLosesToRankedTrump(t *testing.T) {
	g := newPlayingGame(t, SuitBlack, 0, 100, 0)

	hands := [NumSeats][]Card{
		mustParse(t, "Green5", "Red2"),
		mustParse(t, "Black3", "Red3"),
		mustParse(t, "Green1", "Red4"),
		mustParse(t, "Rook", "Red6"),
	}
	plays := mustParse(t, "Green5", "Black3", "Green1", "Rook")

	var res PlayResult
	for seat := 0; seat < NumSeats; seat++ {
		var err error
		hands[seat], res, err = g.PlayCard(seat, hands[seat], plays[seat])
		if err != nil {
			t.Fatalf("seat %d plays %v: %v", seat, plays[seat], err)
		}
	}

	if !res.TrickComplete {
		t.Fatal("trick should resolve on the fourth card")
	}
	if res.TrickWinner != 1 {
		t.Errorf("trick winner = %d, want 1 (Black3)", res.TrickWinner)
	}
	if res.TrickPoints != 40 {
		t.Errorf("trick points = %d, want 40", res.TrickPoints)
	}
	if g.CurrentPlayer != 1 {
		t.Errorf("next leader = %d, want trick winner 1", g.CurrentPlayer)
	}
	if g.PointsCaptured[TeamOf(1)] != 40 {
		t.Errorf("team points = %v, want 40 for team %d", g.PointsCaptured, TeamOf(1))
	}
	if len(g.CurrentTrick) != 0 || g.LedSuit != SuitNone {
		t.Error("trick state not cleared after resolution")
	}
}

// TestFollowSuitEnforced verifies a seat holding the led suit cannot play
// off-suit, and that trumping in is legal only when void.
func TestFollowSuitEnforced(t *testing.T) {
	g := newPlayingGame(t, SuitBlack, 0, 100, 0)

	leadHand := mustParse(t, "Green5", "Black2")
	leadHand, _, err := g.PlayCard(0, leadHand, leadHand[0])
	if err != nil {
		t.Fatalf("lead: %v", err)
	}

	// Seat 1 holds Green and must follow.
	hand1 := mustParse(t, "Green7", "Black14", "Red1")
	if _, _, err := g.PlayCard(1, hand1, hand1[1]); !errors.Is(err, ErrMustFollowSuit) {
		t.Errorf("off-suit with led suit held: err = %v, want ErrMustFollowSuit", err)
	}
	hand1, _, err = g.PlayCard(1, hand1, hand1[0])
	if err != nil {
		t.Fatalf("follow: %v", err)
	}

	// Seat 2 is void in Green and may play anything, including trump.
	hand2 := mustParse(t, "Black5", "Red9")
	if _, _, err := g.PlayCard(2, hand2, hand2[0]); err != nil {
		t.Errorf("void seat trumping in: %v", err)
	}
}

// TestRookFollowsAsTrump verifies the Rook counts as the led suit exactly
// when trump is led.
func TestRookFollowsAsTrump(t *testing.T) {
	g := newPlayingGame(t, SuitBlack, 0, 100, 0)

	// Black (trump) led; seat 1 holds only the Rook and red cards: the
	// Rook is trump, so it must be played.
	hand0 := mustParse(t, "Black9", "Green2")
	if _, _, err := g.PlayCard(0, hand0, hand0[0]); err != nil {
		t.Fatalf("lead trump: %v", err)
	}
	hand1 := mustParse(t, "Rook", "Red4")
	if _, _, err := g.PlayCard(1, hand1, hand1[1]); !errors.Is(err, ErrMustFollowSuit) {
		t.Errorf("holding Rook on a trump lead: err = %v, want ErrMustFollowSuit", err)
	}
	if _, _, err := g.PlayCard(1, hand1, hand1[0]); err != nil {
		t.Errorf("Rook as trump follow: %v", err)
	}
}

// TestRookLeadSetsTrumpAsLedSuit verifies leading the Rook fixes the led
// suit to trump.
func TestRookLeadSetsTrumpAsLedSuit(t *testing.T) {
	g := newPlayingGame(t, SuitYellow, 0, 100, 0)

	hand0 := mustParse(t, "Rook", "Green2")
	if _, _, err := g.PlayCard(0, hand0, hand0[0]); err != nil {
		t.Fatalf("lead Rook: %v", err)
	}
	if g.LedSuit != SuitYellow {
		t.Errorf("led suit = %d, want trump %d", g.LedSuit, SuitYellow)
	}
	// Seat 1 holds a Yellow card and must follow the trump lead.
	hand1 := mustParse(t, "Yellow3", "Red14")
	if _, _, err := g.PlayCard(1, hand1, hand1[1]); !errors.Is(err, ErrMustFollowSuit) {
		t.Errorf("off-suit on Rook lead: err = %v, want ErrMustFollowSuit", err)
	}
}

// TestPlayValidation covers turn order and card possession checks.
func TestPlayValidation(t *testing.T) {
	g := newPlayingGame(t, SuitBlack, 0, 100, 2)

	hand := mustParse(t, "Green5")
	if _, _, err := g.PlayCard(1, hand, hand[0]); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("out of turn: err = %v", err)
	}
	if _, _, err := g.PlayCard(2, hand, NewCard(SuitRed, 9)); !errors.Is(err, ErrCardNotHeld) {
		t.Errorf("card not held: err = %v", err)
	}
	g.Status = StatusBidding
	g.CurrentBidder = 2
	g.CurrentPlayer = NoSeat
	if _, _, err := g.PlayCard(2, hand, hand[0]); !errors.Is(err, ErrWrongStatus) {
		t.Errorf("wrong status: err = %v", err)
	}
}

// TestFullHandConservation deals and plays out a complete random hand with
// naive legal plays, checking the 180-point conservation invariant:
// team0 + team1 + kitty == 180.
func TestFullHandConservation(t *testing.T) {
	for round := 0; round < 5; round++ {
		g, hands := newBiddingGame(t, round%NumSeats)
		full := winAuction(t, g, hands, g.CurrentBidder, 100)

		winner := g.BidWinner
		remaining, err := g.DiscardAndChooseTrump(winner, full, full[:KittySize], SuitBlack)
		if err != nil {
			t.Fatalf("trump selection: %v", err)
		}
		hands[winner] = remaining

		var res PlayResult
		for len(g.CardsPlayedThisHand) < NumSeats*HandSize {
			seat := g.CurrentPlayer
			legal := g.LegalPlays(hands[seat])
			if len(legal) == 0 {
				t.Fatalf("seat %d has no legal plays with %d cards left", seat, len(hands[seat]))
			}
			hands[seat], res, err = g.PlayCard(seat, hands[seat], legal[0])
			if err != nil {
				t.Fatalf("seat %d playing %v: %v", seat, legal[0], err)
			}
		}
		if !res.HandComplete {
			t.Fatal("52nd card should complete the hand")
		}
		for seat, h := range hands {
			if len(h) != 0 {
				t.Errorf("seat %d still holds %d cards", seat, len(h))
			}
		}

		total := g.PointsCaptured[0] + g.PointsCaptured[1] + g.KittyPointsCaptured
		if total != TotalPoints {
			t.Errorf("points captured %v + kitty %d = %d, want %d",
				g.PointsCaptured, g.KittyPointsCaptured, total, TotalPoints)
		}
	}
}
