package app

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/kc92/Desperado-s-Destiny-sub018/internal/domain"
)

// Service contains the table use-cases operating on domain sessions.
// It owns the randomness used for shuffling; a fixed-seed rng makes
// every deal reproducible.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a
// time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrUnknownVariant  = errors.New("unknown game variant")
	ErrSessionComplete = errors.New("session already complete")
	ErrNoForcedAction  = errors.New("no forced action available for seat")
)

// StartSession creates a fresh session for a variant. The first round
// still has to be dealt with InitializeRound.
func (s *Service) StartSession(variant domain.Variant, opts domain.SessionOptions) (*domain.Session, []Event, error) {
	if !variant.Valid() {
		return nil, nil, ErrUnknownVariant
	}
	sess := domain.NewSession(uuid.NewString(), variant, opts)
	events := []Event{{
		Kind: EventSessionStarted,
		Payload: SessionStartedPayload{
			SessionID: sess.ID,
			Variant:   sess.Variant,
			WinScore:  sess.WinScore,
			MaxRounds: sess.MaxRounds,
		},
	}}
	return sess, events, nil
}

// InitializeRound shuffles, deals and opens bidding. Hands are sent
// privately per seat; spades hands stay hidden until the seat peeks or
// bids, preserving the blind-nil option.
func (s *Service) InitializeRound(sess *domain.Session) ([]Event, error) {
	if sess.Complete {
		return nil, ErrSessionComplete
	}
	if err := sess.StartRound(s.rng); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			Round:     sess.Round,
			Dealer:    sess.Dealer,
			FirstTurn: sess.Turn,
			UpCard:    sess.UpCard,
		},
	}}
	for seat := domain.Seat(0); seat < domain.NumSeats; seat++ {
		if !sess.Revealed[seat] {
			continue
		}
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Seat: seat, Hand: append([]domain.Card(nil), sess.Hands[seat]...)},
			TargetSeat: target(seat),
		})
	}
	return events, nil
}

// PeekHand reveals a seat's cards to it, closing the blind-nil window.
func (s *Service) PeekHand(sess *domain.Session, seat domain.Seat) ([]Event, error) {
	hand := sess.PeekHand(seat)
	return []Event{{
		Kind:       EventHandDealt,
		Payload:    HandDealtPayload{Seat: seat, Hand: hand},
		TargetSeat: target(seat),
	}}, nil
}

// SubmitBid applies a bidding decision and reports the transitions it
// caused: trump fixed, bidding closed, or a pinochle misdeal.
func (s *Service) SubmitBid(sess *domain.Session, seat domain.Seat, bid domain.Bid) ([]Event, error) {
	if err := sess.SubmitBid(seat, bid); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind:    EventBidPlaced,
		Payload: BidPlacedPayload{Seat: seat, Bid: bid, NextTurn: sess.Turn},
	}}

	switch sess.Phase {
	case domain.PhaseDiscard, domain.PhasePlaying:
		if sess.Variant == domain.VariantEuchre && sess.Contract != nil {
			events = append(events, Event{
				Kind: EventTrumpFixed,
				Payload: TrumpFixedPayload{
					Trump:     *sess.Trump,
					Maker:     sess.Contract.Maker,
					Alone:     sess.Contract.Alone,
					OrderedUp: sess.Contract.OrderedUp,
				},
			})
		}
		if sess.Variant == domain.VariantSpades && sess.Phase == domain.PhasePlaying {
			events = append(events, Event{
				Kind:    EventBiddingClosed,
				Payload: BiddingClosedPayload{TeamBids: sess.Contract.TeamBids, Maker: sess.Contract.Maker},
			})
		}
	case domain.PhaseTrumpSelect:
		events = append(events, Event{
			Kind:    EventBiddingClosed,
			Payload: BiddingClosedPayload{HighBid: sess.Contract.Points, Maker: sess.Contract.Maker},
		})
	case domain.PhaseDeal:
		if sess.LastResult != nil && sess.LastResult.Misdeal {
			events = append(events, Event{
				Kind:    EventMisdeal,
				Payload: MisdealPayload{Round: sess.Round, Summary: sess.LastResult.Summary},
			})
		}
	}
	return events, nil
}

// DeclareTrump names trump for the pinochle bid winner.
func (s *Service) DeclareTrump(sess *domain.Session, seat domain.Seat, trump domain.Suit) ([]Event, error) {
	if err := sess.DeclareTrump(seat, trump); err != nil {
		return nil, err
	}
	return []Event{{
		Kind:    EventTrumpFixed,
		Payload: TrumpFixedPayload{Trump: trump, Maker: seat},
	}}, nil
}

// DiscardCard buries the euchre dealer's extra card. The card stays
// private to the dealer.
func (s *Service) DiscardCard(sess *domain.Session, seat domain.Seat, card domain.Card) ([]Event, error) {
	if err := sess.DiscardCard(seat, card); err != nil {
		return nil, err
	}
	return []Event{{
		Kind:       EventCardDiscarded,
		Payload:    CardDiscardedPayload{Seat: seat, Card: card},
		TargetSeat: target(seat),
	}}, nil
}

// ShowMeld records a pinochle seat's declared melds.
func (s *Service) ShowMeld(sess *domain.Session, seat domain.Seat, melds []domain.Meld) ([]Event, error) {
	if err := sess.ShowMeld(seat, melds); err != nil {
		return nil, err
	}
	return []Event{{
		Kind: EventMeldShown,
		Payload: MeldShownPayload{
			Seat:       seat,
			Melds:      melds,
			Points:     domain.MeldValue(melds),
			TeamPoints: sess.MeldPoints[domain.TeamOf(seat)],
		},
	}}, nil
}

// PlayCard plays one card, reporting trick completion and round
// completion through events.
func (s *Service) PlayCard(sess *domain.Session, seat domain.Seat, card domain.Card) ([]Event, error) {
	trickDone, winner, roundDone, err := sess.PlayCard(seat, card)
	if err != nil {
		return nil, err
	}

	events := []Event{{
		Kind:    EventCardPlayed,
		Payload: CardPlayedPayload{Seat: seat, Card: card, NextTurn: sess.Turn},
	}}
	if trickDone {
		events = append(events, Event{
			Kind:    EventTrickWon,
			Payload: TrickWonPayload{Winner: winner, TrickNumber: sess.TricksPlayed(), RoundDone: roundDone},
		})
	}
	return events, nil
}

// ScoreRound settles a completed round and, when the game ends with
// it, emits the settlement rewards.
func (s *Service) ScoreRound(sess *domain.Session, stake int64, rake float64) (domain.RoundResult, []Event, error) {
	res, err := sess.ScoreRound()
	if err != nil {
		return domain.RoundResult{}, nil, err
	}

	var scores [domain.NumTeams]int
	var bags [domain.NumTeams]int
	for t := 0; t < domain.NumTeams; t++ {
		scores[t] = sess.Teams[t].Score
		bags[t] = sess.Teams[t].Bags
	}
	events := []Event{{
		Kind:    EventRoundScored,
		Payload: RoundScoredPayload{Result: res, TeamScores: scores, TeamBags: bags},
	}}

	if done, winner := sess.IsGameComplete(); done {
		events = append(events, Event{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{WinnerTeam: winner, TeamScores: scores, Rounds: sess.Round},
		})
		for _, reward := range ComputeRewards(sess, stake, rake) {
			events = append(events, Event{
				Kind: EventRewardGranted,
				Payload: RewardGrantedPayload{
					Seat:            reward.Seat,
					GoldDelta:       reward.GoldDelta,
					XPDelta:         reward.XPDelta,
					ReputationDelta: reward.ReputationDelta,
				},
			})
		}
	}
	return res, events, nil
}

// ForceAction applies the engine's default action for a stalled seat
// and returns the events of whatever it did.
func (s *Service) ForceAction(sess *domain.Session, seat domain.Seat) ([]Event, error) {
	action, ok := sess.DefaultAction(seat)
	if !ok {
		return nil, ErrNoForcedAction
	}

	var (
		events []Event
		err    error
	)
	switch action.Type {
	case domain.ActionBid:
		events, err = s.SubmitBid(sess, seat, action.Bid)
	case domain.ActionDeclareTrump:
		events, err = s.DeclareTrump(sess, seat, action.Suit)
	case domain.ActionDiscard:
		events, err = s.DiscardCard(sess, seat, action.Card)
	case domain.ActionShowMeld:
		events, err = s.ShowMeld(sess, seat, action.Melds)
	case domain.ActionPlayCard:
		events, err = s.PlayCard(sess, seat, action.Card)
	}
	if err != nil {
		return nil, err
	}
	return append([]Event{{Kind: EventActionForced, Payload: ActionForcedPayload{Seat: seat}}}, events...), nil
}

// IsGameComplete reports session completion and the winning team
// (-1 for a draw).
func (s *Service) IsGameComplete(sess *domain.Session) (bool, int) {
	return sess.IsGameComplete()
}
