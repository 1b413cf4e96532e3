package domain

import (
	"fmt"
	"time"
)

const (
	defaultMaxRounds = 24
	defaultMinBid    = 100
	defaultBidStep   = 10
)

// variantRules is implemented once per variant. Bidding, play legality,
// card strength and scoring all dispatch through this interface; there
// is no shared base with overridden hooks.
type variantRules interface {
	defaultWinScore() int
	handSize() int
	tricksPerRound() int
	deal(s *Session, deck []Card)
	submitBid(s *Session, seat Seat, b Bid) error
	declareTrump(s *Session, seat Seat, t Suit) error
	playable(s *Session, hand []Card) []Card
	strength(s *Session, c Card, lead Suit) int
	score(s *Session) RoundResult
	checkGameEnd(s *Session)
}

var variantTable = map[Variant]variantRules{
	VariantEuchre:   euchreRules{},
	VariantPinochle: pinochleRules{},
	VariantSpades:   spadesRules{},
}

func rulesFor(v Variant) variantRules {
	return variantTable[v]
}

// TricksPerRound returns how many tricks the variant deals out (5, 12
// or 13).
func (s *Session) TricksPerRound() int {
	return rulesFor(s.Variant).tricksPerRound()
}

// SubmitBid applies one bidding-phase decision for the acting seat.
func (s *Session) SubmitBid(seat Seat, b Bid) error {
	if s.Phase != PhaseBidding {
		return ErrPhaseViolation
	}
	if seat != s.Turn {
		return ErrOutOfTurn
	}
	return rulesFor(s.Variant).submitBid(s, seat, b)
}

// DeclareTrump names trump for the round. Only the pinochle bid winner
// uses this; euchre trump is fixed during bidding itself.
func (s *Session) DeclareTrump(seat Seat, t Suit) error {
	if s.Phase != PhaseTrumpSelect {
		return ErrPhaseViolation
	}
	if seat != s.Turn {
		return ErrOutOfTurn
	}
	return rulesFor(s.Variant).declareTrump(s, seat, t)
}

// DiscardCard buries one card from the euchre dealer's hand after a
// pick-up, then opens trick play.
func (s *Session) DiscardCard(seat Seat, c Card) error {
	if s.Phase != PhaseDiscard {
		return ErrPhaseViolation
	}
	if seat != s.Dealer {
		return ErrOutOfTurn
	}
	if !RemoveCard(&s.Hands[seat], c) {
		return fmt.Errorf("%w: %s not in hand", ErrIllegalPlay, c)
	}
	s.Buried = append(s.Buried, c)
	s.Phase = PhasePlaying
	s.Turn = s.firstLeader()
	return nil
}

// firstLeader returns the seat that opens trick play: the seat left of
// the dealer, skipping an excused partner, except in pinochle where the
// bid winner leads.
func (s *Session) firstLeader() Seat {
	if s.Variant == VariantPinochle && s.Contract != nil {
		return s.Contract.Maker
	}
	lead := NextSeat(s.Dealer)
	if !s.Active[lead] {
		lead = s.NextActiveSeat(lead)
	}
	return lead
}

// Playable returns the subset of the seat's hand that is legal to play
// into the current trick. It is empty when it is not the seat's turn.
func (s *Session) Playable(seat Seat) []Card {
	if s.Phase != PhasePlaying || seat != s.Turn || !s.Active[seat] {
		return nil
	}
	return rulesFor(s.Variant).playable(s, s.Hands[seat])
}

// followCards filters the hand down to cards that follow the led suit,
// with the left bower counting as trump rather than its printed suit.
func (s *Session) followCards(hand []Card) []Card {
	lead, ok := s.LeadSuit()
	if !ok {
		return nil
	}
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if s.effectiveSuit(c) == lead {
			out = append(out, c)
		}
	}
	return out
}

// PlayCard plays one card for the acting seat. It reports whether the
// trick completed (and its winner) and whether the round's last trick
// has been taken.
func (s *Session) PlayCard(seat Seat, c Card) (trickDone bool, winner Seat, roundDone bool, err error) {
	if s.Phase != PhasePlaying {
		return false, 0, false, ErrPhaseViolation
	}
	if seat != s.Turn || !s.Active[seat] {
		return false, 0, false, ErrOutOfTurn
	}
	if !HasCard(s.Hands[seat], c) {
		return false, 0, false, fmt.Errorf("%w: %s not in hand", ErrIllegalPlay, c)
	}
	legal := rulesFor(s.Variant).playable(s, s.Hands[seat])
	if !HasCard(legal, c) {
		return false, 0, false, fmt.Errorf("%w: %s", ErrIllegalPlay, c)
	}

	RemoveCard(&s.Hands[seat], c)
	s.Trick = append(s.Trick, TrickPlay{Card: c, Seat: seat, Played: time.Now()})
	if s.Trump != nil && s.effectiveSuit(c) == *s.Trump {
		s.TrumpBroken = true
	}

	if len(s.Trick) < s.ActiveSeatCount() {
		s.Turn = s.NextActiveSeat(seat)
		return false, 0, false, nil
	}

	w := s.resolveTrick()
	s.TricksWon[w]++
	s.TrickHistory = append(s.TrickHistory, CompletedTrick{Plays: s.Trick, Winner: w})
	s.Trick = nil
	s.Turn = w

	if s.TricksPlayed() == rulesFor(s.Variant).tricksPerRound() {
		s.Phase = PhaseScoring
		return true, w, true, nil
	}
	return true, w, false, nil
}

// CardStrength scores a card against the open trick using the
// variant's trump and bower rules. With no trick in progress the card
// is scored as if it led. Only the ordering of the values matters.
func (s *Session) CardStrength(c Card) int {
	lead, ok := s.LeadSuit()
	if !ok {
		lead = s.effectiveSuit(c)
	}
	return rulesFor(s.Variant).strength(s, c, lead)
}

// TrickLeader returns the seat currently winning the open trick, or
// false when no card has been played yet.
func (s *Session) TrickLeader() (Seat, bool) {
	if len(s.Trick) == 0 {
		return 0, false
	}
	r := rulesFor(s.Variant)
	lead := s.effectiveSuit(s.Trick[0].Card)
	best := 0
	for i := 1; i < len(s.Trick); i++ {
		if r.strength(s, s.Trick[i].Card, lead) > r.strength(s, s.Trick[best].Card, lead) {
			best = i
		}
	}
	return s.Trick[best].Seat, true
}

// resolveTrick finds the winning seat of the full current trick. The
// strictly-greater comparison in TrickLeader makes the first-played of
// two identical double-deck cards the winner.
func (s *Session) resolveTrick() Seat {
	w, _ := s.TrickLeader()
	return w
}

// ScoreRound scores a completed round, applies the points to the team
// totals and checks game completion. Calling it again for the same
// round returns the identical result without reapplying anything.
func (s *Session) ScoreRound() (RoundResult, error) {
	if s.scored && s.LastResult != nil {
		return *s.LastResult, nil
	}
	if s.Phase != PhaseScoring {
		return RoundResult{}, ErrPhaseViolation
	}

	r := rulesFor(s.Variant)
	res := r.score(s)
	res.Round = s.Round
	res.Variant = s.Variant
	for t := 0; t < NumTeams; t++ {
		res.TeamTricks[t] = s.TricksWon[Seat(t)] + s.TricksWon[Seat(t+2)]
	}
	s.LastResult = &res
	s.scored = true

	r.checkGameEnd(s)
	if !s.Complete && s.MaxRounds > 0 && s.Round >= s.MaxRounds {
		s.finishByScore()
	}
	if s.Complete {
		s.Phase = PhaseGameOver
	} else {
		s.Phase = PhaseDeal
	}
	return res, nil
}

// finishByScore ends the session on the current standings, with the
// higher total winning and -1 recorded for a dead tie.
func (s *Session) finishByScore() {
	s.Complete = true
	switch {
	case s.Teams[0].Score > s.Teams[1].Score:
		s.WinnerTeam = 0
	case s.Teams[1].Score > s.Teams[0].Score:
		s.WinnerTeam = 1
	default:
		s.WinnerTeam = -1
	}
}

// voidRound records a pinochle all-pass misdeal: the round is scored as
// a wash and the same dealer redeals.
func (s *Session) voidRound() {
	res := RoundResult{
		Round:     s.Round,
		Variant:   s.Variant,
		Misdeal:   true,
		MakerTeam: -1,
		Summary:   "all four seats passed; misdeal, same dealer redeals",
	}
	s.LastResult = &res
	s.scored = true
	s.redeal = true
	if s.MaxRounds > 0 && s.Round >= s.MaxRounds {
		s.finishByScore()
		s.Phase = PhaseGameOver
		return
	}
	s.Phase = PhaseDeal
}
