package engine

import "fmt"

// Join seats a player (or bot) at the first open seat. The table moves to
// FULL once the fourth seat fills.
func (g *Game) Join(name string, isBot bool) (int, error) {
	if g.Status != StatusLobby {
		return NoSeat, ErrWrongStatus
	}
	if name == "" {
		return NoSeat, fmt.Errorf("%w: empty player name", ErrInvalidPartner)
	}
	for seat := 0; seat < NumSeats; seat++ {
		if g.Players[seat].Name == "" {
			g.Players[seat] = Player{Seat: seat, Name: name, IsBot: isBot}
			if g.PlayerCount() == NumSeats {
				g.Status = StatusFull
			}
			return seat, nil
		}
	}
	return NoSeat, ErrGameFull
}

// JoinSeat seats a player at one specific vacant seat. Connected clients
// use this so the seat they registered for is the seat they occupy.
func (g *Game) JoinSeat(seat int, name string, isBot bool) error {
	if g.Status != StatusLobby {
		return ErrWrongStatus
	}
	if name == "" {
		return fmt.Errorf("%w: empty player name", ErrInvalidPartner)
	}
	if seat < 0 || seat >= NumSeats {
		return ErrSeatVacant
	}
	if g.SeatOccupied(seat) {
		return ErrSeatTaken
	}
	g.Players[seat] = Player{Seat: seat, Name: name, IsBot: isBot}
	if g.PlayerCount() == NumSeats {
		g.Status = StatusFull
	}
	return nil
}

// ChoosePartner is seat 0's declaration of its partner on a full table.
// Seats are rearranged so the partners sit opposite each other (seat 0
// across from seat 2), which fixes the two teams for the whole game.
func (g *Game) ChoosePartner(seat, partner int) error {
	if g.Status != StatusFull {
		return ErrWrongStatus
	}
	if seat != 0 {
		return ErrNotYourTurn
	}
	if partner <= 0 || partner >= NumSeats {
		return ErrInvalidPartner
	}
	if partner != 2 {
		// Move the chosen partner opposite seat 0; the displaced player
		// takes the vacated seat.
		g.Players[partner], g.Players[2] = g.Players[2], g.Players[partner]
		for i := range g.Players {
			g.Players[i].Seat = i
		}
	}
	g.Teams = [2][2]int{{0, 2}, {1, 3}}
	g.Status = StatusPartnerSelection
	return nil
}

// Reset returns a finished game to a full table with the same players,
// wiping scores, teams, and history so a new game can begin.
func (g *Game) Reset() error {
	if g.Status != StatusFinished {
		return ErrWrongStatus
	}
	g.resetHandState()
	g.Teams = [2][2]int{}
	g.TeamScores = [2]int{}
	g.HandHistory = nil
	g.Dealer = 0
	g.Status = StatusFull
	return nil
}

// StartNextHand fixes the dealer ahead of a deal. It is valid exactly
// where Deal is: the first hand after partner selection, or the boundary
// after a scored hand before cards go out.
func (g *Game) StartNextHand(dealerSeat int) error {
	if dealerSeat < 0 || dealerSeat >= NumSeats {
		return ErrSeatVacant
	}
	switch g.Status {
	case StatusPartnerSelection:
	case StatusBidding:
		if g.CurrentBidder != NoSeat {
			return ErrWrongStatus
		}
	default:
		return ErrWrongStatus
	}
	g.Dealer = dealerSeat
	return nil
}
