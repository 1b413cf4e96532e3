package domain

import "time"

// Variant selects which of the three saloon table games a session runs.
type Variant string

const (
	VariantEuchre   Variant = "euchre"
	VariantPinochle Variant = "pinochle"
	VariantSpades   Variant = "spades"
)

// Valid reports whether the variant is one of the three supported games.
func (v Variant) Valid() bool {
	switch v {
	case VariantEuchre, VariantPinochle, VariantSpades:
		return true
	}
	return false
}

// Phase represents the lifecycle stage of a round within a session.
type Phase string

const (
	// PhaseDeal indicates the session is waiting for the next round to be dealt.
	PhaseDeal Phase = "deal"
	// PhaseBidding indicates seats are establishing trump and a contract.
	PhaseBidding Phase = "bidding"
	// PhaseDiscard indicates the euchre dealer must bury a card after a pick-up.
	PhaseDiscard Phase = "discard"
	// PhaseTrumpSelect indicates the pinochle bid winner must name trump.
	PhaseTrumpSelect Phase = "trump_select"
	// PhaseMeld indicates pinochle seats are showing their melds.
	PhaseMeld Phase = "meld"
	// PhasePlaying indicates trick play is in progress.
	PhasePlaying Phase = "playing"
	// PhaseScoring indicates all tricks are done and the round awaits scoring.
	PhaseScoring Phase = "scoring"
	// PhaseGameOver indicates a team has won and the session is finished.
	PhaseGameOver Phase = "game_over"
)

const (
	// NumSeats is the fixed table size. Seats 0/2 and 1/3 are partners.
	NumSeats = 4
	// NumTeams is the number of partnerships at the table.
	NumTeams = 2
)

// Seat is a 0-based position at the table.
type Seat int

// TeamOf returns the partnership index for a seat.
func TeamOf(seat Seat) int {
	return int(seat) % NumTeams
}

// PartnerOf returns the seat sitting opposite.
func PartnerOf(seat Seat) Seat {
	return (seat + 2) % NumSeats
}

// NextSeat returns the seat to the left.
func NextSeat(seat Seat) Seat {
	return (seat + 1) % NumSeats
}

// Bid carries a bidding-phase decision. Only the fields relevant to the
// session's variant are read: euchre uses Pass/OrderUp/Suit/Alone,
// spades uses Tricks/Nil/BlindNil, pinochle uses Pass/Points.
type Bid struct {
	Pass    bool
	OrderUp bool  // euchre round 1: take the up-card
	Suit    *Suit // euchre round 2: named trump
	Alone   bool  // euchre: play without partner
	Tricks  int   // spades: 0..13
	Nil     bool  // spades
	BlindNil bool // spades, only before the seat has seen its hand
	Points  int   // pinochle auction value
}

// Contract records the outcome of bidding for the current round.
type Contract struct {
	Maker    Seat
	Team     int
	Alone    bool           // euchre
	OrderedUp bool          // euchre: trump came from the up-card
	Bids     [NumSeats]Bid  // spades: the individual seat bids
	TeamBids [NumTeams]int  // spades: summed non-nil bids
	Points   int            // pinochle: contracted point total
}

// auction tracks in-flight bidding state. It is reset every round.
type auction struct {
	Round      int // euchre: 1 = up-card round, 2 = name-a-suit round
	TurnedDown bool
	Passes     int
	Passed     [NumSeats]bool
	HighBid    int
	HighBidder Seat
	HasBid     bool
	BidsPlaced int
}

// TrickPlay is one card contributed to the current trick.
type TrickPlay struct {
	Card   Card
	Seat   Seat
	Played time.Time
}

// CompletedTrick is a finished trick kept in the round history.
type CompletedTrick struct {
	Plays  []TrickPlay
	Winner Seat
}

// TeamScore accumulates a partnership's standing across rounds.
type TeamScore struct {
	Score int
	Bags  int // spades overtricks carried toward the penalty threshold
}

// NilOutcome reports how a spades nil bid resolved for one seat.
type NilOutcome struct {
	Seat   Seat
	Blind  bool
	Made   bool
	Points int
}

// RoundResult is the outcome of scoring one round. ScoreRound returns
// the identical value on repeated calls for the same round.
type RoundResult struct {
	Round      int
	Variant    Variant
	Misdeal    bool
	MakerTeam  int
	Made       bool
	TeamPoints [NumTeams]int // delta applied to each team this round
	TeamTricks [NumTeams]int
	BagsAdded  [NumTeams]int
	BagPenalty [NumTeams]bool
	MeldPoints [NumTeams]int
	NilResults []NilOutcome
	Summary    string
}

// SessionOptions tune a new session. Zero values fall back to the
// variant's standard table rules.
type SessionOptions struct {
	InitialDealer Seat
	WinScore      int
	MaxRounds     int
	MinBid        int // pinochle auction floor
	BidStep       int // pinochle auction increment
}

// Session is the aggregate root for one table: every rule decision is a
// pure function of this value plus the submitted action. It holds no
// locks; callers must serialize access per session.
type Session struct {
	ID      string
	Variant Variant
	Phase   Phase

	Round     int
	MaxRounds int
	WinScore  int
	MinBid    int
	BidStep   int

	Dealer Seat
	Turn   Seat

	Hands  [NumSeats][]Card
	Kitty  []Card
	UpCard *Card
	Buried []Card

	Trump    *Suit
	Contract *Contract
	Auction  auction

	Trick        []TrickPlay
	TrickHistory []CompletedTrick
	TricksWon    [NumSeats]int
	TrumpBroken  bool

	Revealed   [NumSeats]bool
	MeldPoints [NumTeams]int
	Melds      [NumSeats][]Meld
	MeldsShown [NumSeats]bool

	Active [NumSeats]bool

	Teams      [NumTeams]TeamScore
	LastResult *RoundResult
	scored     bool
	redeal     bool

	Complete   bool
	WinnerTeam int
}

// NewSession creates a session in the deal phase. The first round must
// be started with StartRound before any action is accepted.
func NewSession(id string, v Variant, opts SessionOptions) *Session {
	s := &Session{
		ID:         id,
		Variant:    v,
		Phase:      PhaseDeal,
		Dealer:     opts.InitialDealer,
		WinScore:   opts.WinScore,
		MaxRounds:  opts.MaxRounds,
		MinBid:     opts.MinBid,
		BidStep:    opts.BidStep,
		WinnerTeam: -1,
	}
	r := rulesFor(v)
	if s.WinScore == 0 {
		s.WinScore = r.defaultWinScore()
	}
	if s.MaxRounds == 0 {
		s.MaxRounds = defaultMaxRounds
	}
	if s.MinBid == 0 {
		s.MinBid = defaultMinBid
	}
	if s.BidStep == 0 {
		s.BidStep = defaultBidStep
	}
	return s
}

// ActiveSeatCount returns how many seats participate in trick play this
// round. It is 3 when a euchre maker plays alone, 4 otherwise.
func (s *Session) ActiveSeatCount() int {
	n := 0
	for _, a := range s.Active {
		if a {
			n++
		}
	}
	return n
}

// NextActiveSeat returns the next participating seat to the left.
func (s *Session) NextActiveSeat(seat Seat) Seat {
	for i := 1; i <= NumSeats; i++ {
		n := (seat + Seat(i)) % NumSeats
		if s.Active[n] {
			return n
		}
	}
	return seat
}

// recomputeActive derives the participating seat set from the contract.
// Every turn-advance and trick-completion check consults this set.
func (s *Session) recomputeActive() {
	for i := range s.Active {
		s.Active[i] = true
	}
	if s.Contract != nil && s.Contract.Alone {
		s.Active[PartnerOf(s.Contract.Maker)] = false
	}
}

// TeamTricks returns how many tricks the partnership has taken this
// round.
func (s *Session) TeamTricks(team int) int {
	return s.TricksWon[Seat(team)] + s.TricksWon[Seat(team+2)]
}

// TricksPlayed returns how many tricks of the round are complete.
func (s *Session) TricksPlayed() int {
	return len(s.TrickHistory)
}

// DeckSize returns the deck size for the session's variant.
func (s *Session) DeckSize() int {
	return len(NewDeck(s.Variant))
}

// CardsInPlay counts every card the round is tracking: hands, kitty,
// up-card, buried cards, the open trick and the trick history. The
// total equals DeckSize at every observation point within a round.
func (s *Session) CardsInPlay() int {
	n := 0
	for _, h := range s.Hands {
		n += len(h)
	}
	n += len(s.Kitty)
	if s.UpCard != nil {
		n++
	}
	n += len(s.Buried)
	n += len(s.Trick)
	for _, t := range s.TrickHistory {
		n += len(t.Plays)
	}
	return n
}

// IsGameComplete reports whether the session has ended and which team
// won. The winner is -1 for a drawn max-round finish.
func (s *Session) IsGameComplete() (bool, int) {
	return s.Complete, s.WinnerTeam
}

// LeadSuit returns the effective suit led to the open trick, accounting
// for the left bower counting as trump. ok is false on an empty trick.
func (s *Session) LeadSuit() (Suit, bool) {
	if len(s.Trick) == 0 {
		return 0, false
	}
	return s.effectiveSuit(s.Trick[0].Card), true
}

// effectiveSuit maps a card to the suit it counts as for following and
// trick-winning. Only the euchre left bower differs from its printed suit.
func (s *Session) effectiveSuit(c Card) Suit {
	if s.Variant == VariantEuchre && s.Trump != nil && c.IsLeftBower(*s.Trump) {
		return *s.Trump
	}
	return c.Suit
}
