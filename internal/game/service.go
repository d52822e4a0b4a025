// Package game is the orchestration layer between transports and the rules
// engine: it owns the optimistic read-modify-write cycle on game records,
// event fan-out, and the hand-off to bot seats.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mkbarnum/rookgame/engine"
	"github.com/mkbarnum/rookgame/internal/bot"
)

const (
	// maxCommitAttempts bounds the reload-recompute loop for contested
	// commits before ErrConflict is surfaced.
	maxCommitAttempts = 3
	commitBackoff     = 25 * time.Millisecond

	defaultBotDelay = 1200 * time.Millisecond
)

// IntentKind names a player or bot action entering Dispatch.
type IntentKind string

const (
	IntentJoin          IntentKind = "join"
	IntentChoosePartner IntentKind = "choose_partner"
	IntentStartNextHand IntentKind = "start_next_hand"
	IntentBid           IntentKind = "bid"
	IntentPass          IntentKind = "pass"
	IntentChooseTrump   IntentKind = "choose_trump"
	IntentPlayCard      IntentKind = "play_card"
	IntentReset         IntentKind = "reset"
)

// Intent carries one action against one game. Only the fields relevant to
// Kind are read.
type Intent struct {
	GameID string
	Seat   int
	Kind   IntentKind

	Name    string // join
	IsBot   bool   // join
	Partner int    // choose_partner
	Dealer  int    // start_next_hand
	Amount  int    // bid

	Discards []engine.Card // choose_trump
	Trump    uint8         // choose_trump
	Card     engine.Card   // play_card
}

// Service dispatches intents against versioned game records.
type Service struct {
	store    Store
	notifier Notifier
	sched    Scheduler

	// BotDelay paces scheduled bot turns so state events land first.
	BotDelay time.Duration

	log *logrus.Entry
}

func NewService(store Store, notifier Notifier, sched Scheduler, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		store:    store,
		notifier: notifier,
		sched:    sched,
		BotDelay: defaultBotDelay,
		log:      log.WithField("component", "game"),
	}
}

// CreateGame persists a fresh lobby record and returns it.
func (s *Service) CreateGame(ctx context.Context, gameID string) (*engine.Game, error) {
	g := engine.NewGame(gameID)
	if err := s.store.CreateGame(ctx, g); err != nil {
		return nil, fmt.Errorf("create game %s: %w", gameID, err)
	}
	return g, nil
}

// applyResult is everything one engine transition produced: events to fan
// out and hand records to persist alongside the game commit.
type applyResult struct {
	broadcasts []GameEvent
	privates   []privateEvent
	closes     []seatClose
	hands      map[int][]engine.Card
}

func (r *applyResult) broadcast(ev GameEvent) { r.broadcasts = append(r.broadcasts, ev) }

func (r *applyResult) private(seat int, ev GameEvent) {
	r.privates = append(r.privates, privateEvent{Seat: seat, Event: ev})
}

func (r *applyResult) close(seat int, reason string) {
	r.closes = append(r.closes, seatClose{Seat: seat, Reason: reason})
}

func (r *applyResult) setHand(seat int, hand []engine.Card) {
	if r.hands == nil {
		r.hands = make(map[int][]engine.Card)
	}
	r.hands[seat] = hand
}

// Dispatch runs one intent through the read-modify-commit cycle. Validation
// errors come back unwrapped from the engine and mutate nothing. A commit
// that keeps losing the version race returns ErrConflict; turn ownership is
// re-validated on every iteration because the authoritative turn may have
// moved between attempts.
func (s *Service) Dispatch(ctx context.Context, in Intent) error {
	log := s.log.WithFields(logrus.Fields{"game": in.GameID, "seat": in.Seat, "intent": in.Kind})

	for attempt := 1; ; attempt++ {
		g, err := s.store.LoadGame(ctx, in.GameID)
		if err != nil {
			return fmt.Errorf("load game %s: %w", in.GameID, err)
		}
		expected := g.Version

		res, err := s.apply(ctx, g, in)
		if err != nil {
			return err
		}
		if err := g.CheckInvariants(); err != nil {
			log.WithError(err).Error("refusing to persist inconsistent record")
			return err
		}

		err = s.store.CommitGame(ctx, g, expected)
		if err == nil {
			if herr := s.commitHands(ctx, in.GameID, res.hands); herr != nil {
				// The game record is already committed; the stores have
				// diverged and the caller must know rather than play on.
				log.WithError(herr).Error("hand commit failed after game commit")
				return herr
			}
			s.publish(ctx, in.GameID, res)
			s.armBot(g)
			return nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return fmt.Errorf("commit game %s: %w", in.GameID, err)
		}
		if attempt >= maxCommitAttempts {
			log.WithField("attempts", attempt).Warn("commit contested, giving up")
			return ErrConflict
		}
		log.WithField("attempt", attempt).Debug("version conflict, reloading")
		select {
		case <-time.After(commitBackoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// commitHands persists the hand records a commit produced. Each write is
// retried because the game record is already committed at this point and
// a lost hand write leaves the stores divergent.
func (s *Service) commitHands(ctx context.Context, gameID string, hands map[int][]engine.Card) error {
	for seat, hand := range hands {
		var err error
		for attempt := 0; attempt < maxCommitAttempts; attempt++ {
			if err = s.store.CommitHand(ctx, gameID, seat, hand); err == nil {
				break
			}
			select {
			case <-time.After(commitBackoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err != nil {
			return fmt.Errorf("commit hand %s/%d: %w", gameID, seat, err)
		}
	}
	return nil
}

// apply performs the engine transition for one intent against a freshly
// loaded record. It mutates g and reports the side effects; it never
// touches the store for the game record itself.
func (s *Service) apply(ctx context.Context, g *engine.Game, in Intent) (*applyResult, error) {
	res := &applyResult{}

	switch in.Kind {
	case IntentJoin:
		// The intent's seat is the one the connection registered for, so
		// event delivery and seat occupancy can never disagree.
		if err := g.JoinSeat(in.Seat, in.Name, in.IsBot); err != nil {
			return nil, err
		}
		ev := event(EventGameJoined, g.ID, in.Seat)
		ev.Status = g.Status
		ev.Payload = map[string]interface{}{"name": in.Name, "isBot": in.IsBot}
		res.broadcast(ev)
		ack := event(EventSeatAssigned, g.ID, in.Seat)
		ack.Payload = map[string]interface{}{"name": in.Name}
		res.private(in.Seat, ack)

	case IntentChoosePartner:
		if err := g.ChoosePartner(in.Seat, in.Partner); err != nil {
			return nil, err
		}
		ev := event(EventPartnerChosen, g.ID, in.Seat)
		ev.Payload = map[string]interface{}{"teams": g.Teams, "players": g.Players}
		res.broadcast(ev)
		if in.Partner != 2 {
			// The swap moved two players to new seats; their connections
			// are registered under the old ones and must reconnect before
			// any private hand can be delivered.
			res.close(in.Partner, "seat changed, reconnect")
			res.close(2, "seat changed, reconnect")
		}

	case IntentStartNextHand:
		if err := g.StartNextHand(in.Dealer); err != nil {
			return nil, err
		}
		if err := s.deal(g, res); err != nil {
			return nil, err
		}

	case IntentBid:
		out, err := g.Bid(in.Seat, in.Amount)
		if err != nil {
			return nil, err
		}
		ev := event(EventBidPlaced, g.ID, in.Seat)
		ev.Amount = in.Amount
		res.broadcast(ev)
		if out.Done {
			if err := s.finishAuction(ctx, g, out, res); err != nil {
				return nil, err
			}
		}

	case IntentPass:
		out, err := g.Pass(in.Seat)
		if err != nil {
			return nil, err
		}
		res.broadcast(event(EventBidPassed, g.ID, in.Seat))
		if out.Done {
			if err := s.finishAuction(ctx, g, out, res); err != nil {
				return nil, err
			}
		}

	case IntentChooseTrump:
		hand, err := s.store.LoadHand(ctx, g.ID, in.Seat)
		if err != nil {
			return nil, fmt.Errorf("load hand %s/%d: %w", g.ID, in.Seat, err)
		}
		remaining, err := g.DiscardAndChooseTrump(in.Seat, hand, in.Discards, in.Trump)
		if err != nil {
			return nil, err
		}
		res.setHand(in.Seat, remaining)
		ev := event(EventTrumpChosen, g.ID, in.Seat)
		ev.Trump = engine.SuitName(in.Trump)
		res.broadcast(ev)
		start := event(EventPlayStarted, g.ID, g.CurrentPlayer)
		start.Status = g.Status
		res.broadcast(start)

	case IntentPlayCard:
		hand, err := s.store.LoadHand(ctx, g.ID, in.Seat)
		if err != nil {
			return nil, fmt.Errorf("load hand %s/%d: %w", g.ID, in.Seat, err)
		}
		remaining, play, err := g.PlayCard(in.Seat, hand, in.Card)
		if err != nil {
			return nil, err
		}
		res.setHand(in.Seat, remaining)
		card := in.Card
		ev := event(EventCardPlayed, g.ID, in.Seat)
		ev.Card = &card
		res.broadcast(ev)
		if play.TrickComplete {
			tw := event(EventTrickWon, g.ID, play.TrickWinner)
			tw.Trick = &TrickResult{Winner: play.TrickWinner, Points: play.TrickPoints}
			res.broadcast(tw)
		}
		if play.HandComplete {
			if err := s.finishHand(g, res); err != nil {
				return nil, err
			}
		}

	case IntentReset:
		if err := g.Reset(); err != nil {
			return nil, err
		}
		if s.sched != nil {
			s.sched.CancelGame(g.ID)
		}
		ev := event(EventGameReset, g.ID, in.Seat)
		ev.Status = g.Status
		res.broadcast(ev)

	default:
		return nil, fmt.Errorf("unknown intent kind %q", in.Kind)
	}

	return res, nil
}

// deal runs the engine deal and records the per-seat hand deliveries.
func (s *Service) deal(g *engine.Game, res *applyResult) error {
	hands, exhausted, err := g.Deal()
	if err != nil {
		return err
	}
	if exhausted {
		s.log.WithField("game", g.ID).Warn("redeal budget exhausted, dealing anyway")
	}
	dealt := event(EventHandDealt, g.ID, g.Dealer)
	dealt.Status = g.Status
	res.broadcast(dealt)
	for seat := 0; seat < engine.NumSeats; seat++ {
		res.setHand(seat, hands[seat])
		pv := event(EventPrivateHand, g.ID, seat)
		pv.Cards = hands[seat]
		res.private(seat, pv)
	}
	res.broadcast(event(EventBiddingStarted, g.ID, g.CurrentBidder))
	return nil
}

// finishAuction delivers the kitty to the winner and announces it.
func (s *Service) finishAuction(ctx context.Context, g *engine.Game, out engine.BidOutcome, res *applyResult) error {
	won := event(EventBidWon, g.ID, out.Winner)
	won.Amount = out.WinningBid
	won.Status = g.Status
	res.broadcast(won)

	hand, err := s.store.LoadHand(ctx, g.ID, out.Winner)
	if err != nil {
		return fmt.Errorf("load hand %s/%d: %w", g.ID, out.Winner, err)
	}
	hand = append(hand, out.Kitty...)
	res.setHand(out.Winner, hand)

	kitty := event(EventKittyDelivered, g.ID, out.Winner)
	kitty.Cards = out.Kitty
	res.private(out.Winner, kitty)
	return nil
}

// finishHand scores the completed hand and either ends the game or deals
// the next hand inside the same commit.
func (s *Service) finishHand(g *engine.Game, res *applyResult) error {
	score, err := g.CompleteHand()
	if err != nil {
		return err
	}
	summary := score.Summary
	done := event(EventHandComplete, g.ID, summary.BidTeam)
	done.Hand = &summary
	scores := g.TeamScores
	done.Scores = &scores
	res.broadcast(done)

	if score.GameOver {
		over := event(EventGameOver, g.ID, engine.NoSeat)
		over.Status = g.Status
		over.Scores = &scores
		over.Payload = map[string]interface{}{"winningTeam": score.WinningTeam}
		res.broadcast(over)
		return nil
	}
	return s.deal(g, res)
}

// publish fans the result's events out through the notifier. Connection
// closes go last so the events explaining them are delivered first.
func (s *Service) publish(ctx context.Context, gameID string, res *applyResult) {
	if s.notifier == nil {
		return
	}
	for _, ev := range res.broadcasts {
		s.notifier.Broadcast(ctx, gameID, ev)
	}
	for _, pv := range res.privates {
		s.notifier.SendToSeat(ctx, gameID, pv.Seat, pv.Event)
	}
	for _, cl := range res.closes {
		s.notifier.CloseSeat(ctx, gameID, cl.Seat, cl.Reason)
	}
}

// armBot schedules the next actor when it is a bot seat.
func (s *Service) armBot(g *engine.Game) {
	if s.sched == nil {
		return
	}
	seat := g.ActingSeat()
	if seat == engine.NoSeat || !g.IsBotSeat(seat) {
		return
	}
	s.sched.ScheduleBotTurn(g.ID, seat, s.BotDelay)
}

// RunBotTurn is the scheduler's fire callback. The turn check is repeated
// here because the record may have moved on since scheduling; a stale
// firing is a silent no-op. Bot submissions that lose a race are likewise
// dropped rather than retried.
func (s *Service) RunBotTurn(ctx context.Context, gameID string, seat int) {
	log := s.log.WithFields(logrus.Fields{"game": gameID, "seat": seat})

	g, err := s.store.LoadGame(ctx, gameID)
	if err != nil {
		log.WithError(err).Warn("bot turn: load failed")
		return
	}
	if g.ActingSeat() != seat || !g.IsBotSeat(seat) {
		log.Debug("bot turn: stale, not acting")
		return
	}
	hand, err := s.store.LoadHand(ctx, gameID, seat)
	if err != nil {
		log.WithError(err).Warn("bot turn: hand load failed")
		return
	}

	decision, ok := bot.Decide(g, seat, hand)
	if !ok {
		log.Debug("bot turn: no decision")
		return
	}

	in := Intent{GameID: gameID, Seat: seat}
	switch decision.Kind {
	case bot.KindBid:
		in.Kind, in.Amount = IntentBid, decision.Amount
	case bot.KindPass:
		in.Kind = IntentPass
	case bot.KindSelectTrump:
		in.Kind, in.Discards, in.Trump = IntentChooseTrump, decision.Discards, decision.Trump
	case bot.KindPlayCard:
		in.Kind, in.Card = IntentPlayCard, decision.Card
	default:
		return
	}

	if err := s.Dispatch(ctx, in); err != nil {
		// The world changed under the bot; it just sits this one out.
		log.WithError(err).Debug("bot action rejected")
	}
}
