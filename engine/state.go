// Package engine implements the rules of four-player partnership Rook:
// dealing, bidding, trump selection, trick play, and hand/game scoring.
//
// The engine is pure state-machine logic over a Game value. It performs no
// I/O: hands live with the caller's persistence layer and are passed into
// the operations that need them, and every operation either mutates the
// record in full or returns an error leaving it untouched.
package engine

// Status is the lifecycle phase of a game.
type Status string

const (
	StatusLobby            Status = "LOBBY"
	StatusFull             Status = "FULL"
	StatusPartnerSelection Status = "PARTNER_SELECTION"
	StatusBidding          Status = "BIDDING"
	StatusTrumpSelection   Status = "TRUMP_SELECTION"
	StatusPlaying          Status = "PLAYING"
	StatusFinished         Status = "FINISHED"
)

const (
	// NumSeats is the fixed table size.
	NumSeats = 4
	// HandSize is the per-seat deal.
	HandSize = 13
	// KittySize is the number of cards set aside for the bid winner.
	KittySize = 5
	// DeckSize is 4 suits × 14 ranks + the Rook.
	DeckSize = 57
	// TotalPoints is the capture value of the whole deck.
	TotalPoints = 180

	// MinBid is the opening floor; all bids are multiples of BidStep.
	MinBid  = 50
	BidStep = 5
	// MaxBid caps bidding at the sweep score.
	MaxBid = 200

	// GameOverScore ends the game once a team's cumulative total reaches it.
	GameOverScore = 500
	// SweepBonus replaces the raw 180 when the bid team captures everything.
	SweepBonus = 200
)

// NoSeat marks an unset seat-valued field.
const NoSeat = -1

// Player is one occupied (or vacant, when Name is empty) seat.
type Player struct {
	Seat  int    `json:"seat"`
	Name  string `json:"name"`
	IsBot bool   `json:"isBot"`
}

// TrickPlay is a single card laid into the current trick.
type TrickPlay struct {
	Seat int  `json:"seat"`
	Card Card `json:"card"`
}

// HandSummary is the append-only record of one completed hand.
type HandSummary struct {
	Bid        int    `json:"bid"`
	BidTeam    int    `json:"bidTeam"`
	Made       bool   `json:"made"`
	Sweep      bool   `json:"sweep"`
	TeamPoints [2]int `json:"teamPoints"` // points captured this hand, kitty included for the bid team
	Totals     [2]int `json:"totals"`     // running cumulative scores after this hand
}

// Game is the authoritative record for one table. It is mutated only
// through the state-machine operations in this package, each of which the
// caller commits conditionally on Version being unchanged.
type Game struct {
	ID      string           `json:"id"`
	Status  Status           `json:"status"`
	Version int64            `json:"version"`
	Players [NumSeats]Player `json:"players"`
	Teams   [2][2]int        `json:"teams"`
	Dealer  int              `json:"dealer"`

	// Bidding. CurrentBidder is meaningful only in StatusBidding.
	HighBid       int            `json:"highBid"`
	HighBidder    int            `json:"highBidder"`
	CurrentBidder int            `json:"currentBidder"`
	Passed        [NumSeats]bool `json:"passed"`

	// Trump selection. BidWinner is meaningful from the end of bidding on.
	BidWinner           int    `json:"bidWinner"`
	WinningBid          int    `json:"winningBid"`
	Trump               uint8  `json:"trump"`
	Kitty               []Card `json:"kitty"`
	KittyPointsCaptured int    `json:"kittyPointsCaptured"`

	// Trick play. CurrentPlayer is meaningful only in StatusPlaying.
	CurrentTrick        []TrickPlay `json:"currentTrick"`
	LedSuit             uint8       `json:"ledSuit"`
	CurrentPlayer       int         `json:"currentPlayer"`
	CardsPlayedThisHand []Card      `json:"cardsPlayedThisHand"`

	PointsCaptured [2]int        `json:"pointsCaptured"`
	TeamScores     [2]int        `json:"teamScores"`
	HandHistory    []HandSummary `json:"handHistory"`
}

// NewGame creates an empty lobby-state record.
func NewGame(id string) *Game {
	g := &Game{
		ID:      id,
		Status:  StatusLobby,
		Trump:   SuitNone,
		LedSuit: SuitNone,
	}
	g.clearActors()
	for i := range g.Players {
		g.Players[i].Seat = i
	}
	return g
}

// clearActors resets every seat-valued actor field to NoSeat.
func (g *Game) clearActors() {
	g.HighBidder = NoSeat
	g.CurrentBidder = NoSeat
	g.BidWinner = NoSeat
	g.CurrentPlayer = NoSeat
}

// NextSeat returns the seat to the left of s (clockwise order).
func NextSeat(s int) int { return (s + 1) % NumSeats }

// LeftOfDealer is the seat that opens bidding and leads the first trick.
func (g *Game) LeftOfDealer() int { return NextSeat(g.Dealer) }

// TeamOf returns the team index of a seat. After partner selection seats
// are arranged so partners sit opposite, so parity decides the team.
func TeamOf(seat int) int { return seat % 2 }

// Partner returns the seat opposite the given one.
func Partner(seat int) int { return (seat + 2) % NumSeats }

// SeatOccupied reports whether a seat has a player in it.
func (g *Game) SeatOccupied(seat int) bool {
	return seat >= 0 && seat < NumSeats && g.Players[seat].Name != ""
}

// PlayerCount returns the number of occupied seats.
func (g *Game) PlayerCount() int {
	n := 0
	for i := range g.Players {
		if g.Players[i].Name != "" {
			n++
		}
	}
	return n
}

// IsBotSeat reports whether the seat is occupied by a bot.
func (g *Game) IsBotSeat(seat int) bool {
	return g.SeatOccupied(seat) && g.Players[seat].IsBot
}

// ActingSeat returns the seat the state machine is waiting on, or NoSeat
// when no single seat holds the turn (lobby, scoring boundary, finished).
func (g *Game) ActingSeat() int {
	switch g.Status {
	case StatusBidding:
		return g.CurrentBidder
	case StatusTrumpSelection:
		return g.BidWinner
	case StatusPlaying:
		return g.CurrentPlayer
	}
	return NoSeat
}

// resetHandState clears all per-hand fields ahead of a fresh deal.
func (g *Game) resetHandState() {
	g.HighBid = 0
	g.HighBidder = NoSeat
	g.CurrentBidder = NoSeat
	g.Passed = [NumSeats]bool{}
	g.BidWinner = NoSeat
	g.WinningBid = 0
	g.Trump = SuitNone
	g.Kitty = nil
	g.KittyPointsCaptured = 0
	g.CurrentTrick = nil
	g.LedSuit = SuitNone
	g.CurrentPlayer = NoSeat
	g.CardsPlayedThisHand = nil
	g.PointsCaptured = [2]int{}
}

// CheckInvariants verifies the per-status actor invariant: exactly one of
// CurrentBidder / BidWinner-as-actor / CurrentPlayer is set where the
// status requires it. It is used by tests and by the service as a commit
// gate; a failure is a bug, not a user error.
func (g *Game) CheckInvariants() error {
	switch g.Status {
	case StatusBidding:
		if g.CurrentBidder == NoSeat || g.CurrentPlayer != NoSeat {
			return ErrInvariant
		}
	case StatusTrumpSelection:
		if g.BidWinner == NoSeat || g.CurrentBidder != NoSeat || g.CurrentPlayer != NoSeat {
			return ErrInvariant
		}
	case StatusPlaying:
		if g.CurrentPlayer == NoSeat || g.CurrentBidder != NoSeat {
			return ErrInvariant
		}
	default:
		if g.CurrentBidder != NoSeat || g.CurrentPlayer != NoSeat {
			return ErrInvariant
		}
	}
	return nil
}
