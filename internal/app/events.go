package app

import "github.com/kc92/Desperado-s-Destiny-sub018/internal/domain"

// EventKind identifies emitted table events for dispatch to clients.
type EventKind string

const (
	EventSessionStarted EventKind = "session_started"
	EventRoundStarted   EventKind = "round_started"
	EventHandDealt      EventKind = "hand_dealt"
	EventBidPlaced      EventKind = "bid_placed"
	EventTrumpFixed     EventKind = "trump_fixed"
	EventBiddingClosed  EventKind = "bidding_closed"
	EventCardDiscarded  EventKind = "card_discarded"
	EventMeldShown      EventKind = "meld_shown"
	EventCardPlayed     EventKind = "card_played"
	EventTrickWon       EventKind = "trick_won"
	EventRoundScored    EventKind = "round_scored"
	EventMisdeal        EventKind = "misdeal"
	EventGameEnded      EventKind = "game_ended"
	EventRewardGranted  EventKind = "reward_granted"
	EventActionForced   EventKind = "action_forced"
)

// Event is a table event with an optional target seat. A nil TargetSeat
// means broadcast; the ports layer resolves seats to connected players.
type Event struct {
	Kind       EventKind
	Payload    any
	TargetSeat *domain.Seat
}

// target builds a pointer for single-seat delivery.
func target(seat domain.Seat) *domain.Seat {
	return &seat
}

type SessionStartedPayload struct {
	SessionID string
	Variant   domain.Variant
	WinScore  int
	MaxRounds int
}

type RoundStartedPayload struct {
	Round     int
	Dealer    domain.Seat
	FirstTurn domain.Seat
	UpCard    *domain.Card
}

type HandDealtPayload struct {
	Seat domain.Seat
	Hand []domain.Card
}

type BidPlacedPayload struct {
	Seat     domain.Seat
	Bid      domain.Bid
	NextTurn domain.Seat
}

type TrumpFixedPayload struct {
	Trump     domain.Suit
	Maker     domain.Seat
	Alone     bool
	OrderedUp bool
}

type BiddingClosedPayload struct {
	TeamBids [domain.NumTeams]int // spades
	HighBid  int                  // pinochle
	Maker    domain.Seat
}

type CardDiscardedPayload struct {
	Seat domain.Seat
	Card domain.Card
}

type MeldShownPayload struct {
	Seat       domain.Seat
	Melds      []domain.Meld
	Points     int
	TeamPoints int
}

type CardPlayedPayload struct {
	Seat     domain.Seat
	Card     domain.Card
	NextTurn domain.Seat
}

type TrickWonPayload struct {
	Winner      domain.Seat
	TrickNumber int
	RoundDone   bool
}

type RoundScoredPayload struct {
	Result     domain.RoundResult
	TeamScores [domain.NumTeams]int
	TeamBags   [domain.NumTeams]int
}

type MisdealPayload struct {
	Round   int
	Summary string
}

type GameEndedPayload struct {
	WinnerTeam int
	TeamScores [domain.NumTeams]int
	Rounds     int
}

// RewardGrantedPayload carries the per-seat settlement deltas applied
// by the economy and progression collaborators.
type RewardGrantedPayload struct {
	Seat            domain.Seat
	GoldDelta       int64
	XPDelta         int64
	ReputationDelta int64
}

type ActionForcedPayload struct {
	Seat domain.Seat
}
