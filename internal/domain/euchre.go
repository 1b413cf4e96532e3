package domain

import "fmt"

// euchreRules implements the 24-card partnership game with a marked
// trump suit and right/left bower ranking.
type euchreRules struct{}

func (euchreRules) defaultWinScore() int { return 10 }
func (euchreRules) handSize() int        { return 5 }
func (euchreRules) tricksPerRound() int  { return 5 }

// deal gives each seat 5 cards and forms a 4-card kitty with the last
// card turned face-up as the trump offer.
func (r euchreRules) deal(s *Session, deck []Card) {
	idx := dealHands(s, deck, r.handSize())
	s.Kitty = append([]Card(nil), deck[idx:idx+3]...)
	up := deck[idx+3]
	s.UpCard = &up
}

// submitBid runs the two-round euchre table. Round 1 offers the up-card
// suit; round 2 lets seats name any other suit, and the dealer may not
// pass once it comes back around ("stick the dealer").
func (euchreRules) submitBid(s *Session, seat Seat, b Bid) error {
	a := &s.Auction

	if b.Pass {
		if a.Round == 2 && seat == s.Dealer {
			return fmt.Errorf("%w: dealer must name a suit", ErrIllegalBid)
		}
		a.Passes++
		if a.Round == 1 && a.Passes == NumSeats {
			a.Round = 2
			a.TurnedDown = true
			a.Passes = 0
			s.Turn = NextSeat(s.Dealer)
			return nil
		}
		s.Turn = NextSeat(seat)
		return nil
	}

	if a.Round == 1 {
		if !b.OrderUp || b.Suit != nil {
			return fmt.Errorf("%w: round one only offers the up-card", ErrIllegalBid)
		}
		trump := s.UpCard.Suit
		s.Trump = &trump
		s.Hands[s.Dealer] = append(s.Hands[s.Dealer], *s.UpCard)
		s.UpCard = nil
		s.Contract = &Contract{Maker: seat, Team: TeamOf(seat), Alone: b.Alone, OrderedUp: true}
		s.recomputeActive()
		s.Phase = PhaseDiscard
		s.Turn = s.Dealer
		return nil
	}

	if b.Suit == nil {
		return fmt.Errorf("%w: round two requires a named suit", ErrIllegalBid)
	}
	if !b.Suit.Valid() {
		return fmt.Errorf("%w: unknown suit %d", ErrIllegalBid, *b.Suit)
	}
	if s.UpCard != nil && *b.Suit == s.UpCard.Suit {
		return fmt.Errorf("%w: the turned-down suit cannot be named", ErrIllegalBid)
	}
	trump := *b.Suit
	s.Trump = &trump
	s.Contract = &Contract{Maker: seat, Team: TeamOf(seat), Alone: b.Alone}
	s.recomputeActive()
	s.Phase = PhasePlaying
	s.Turn = s.firstLeader()
	return nil
}

func (euchreRules) declareTrump(s *Session, seat Seat, t Suit) error {
	return ErrPhaseViolation
}

// playable enforces follow-suit, with the left bower following trump
// rather than its printed suit. A void seat may play anything.
func (euchreRules) playable(s *Session, hand []Card) []Card {
	if len(s.Trick) == 0 {
		return hand
	}
	if follow := s.followCards(hand); len(follow) > 0 {
		return follow
	}
	return hand
}

// euchreOrder ranks the six deck ranks in natural order.
func euchreOrder(r Rank) int {
	switch r {
	case RankNine:
		return 0
	case RankTen:
		return 1
	case RankJack:
		return 2
	case RankQueen:
		return 3
	case RankKing:
		return 4
	case RankAce:
		return 5
	default:
		return 0
	}
}

// strength orders cards for trick resolution: right bower, left bower,
// remaining trump, led suit, then everything else.
func (euchreRules) strength(s *Session, c Card, lead Suit) int {
	trump := *s.Trump
	switch {
	case c.IsRightBower(trump):
		return 420
	case c.IsLeftBower(trump):
		return 410
	case c.Suit == trump:
		return 400 + euchreOrder(c.Rank)
	case c.Suit == lead:
		return 100 + euchreOrder(c.Rank)
	default:
		return euchreOrder(c.Rank)
	}
}

// score applies the 1/2/4 point table: three tricks make the contract,
// a five-trick march doubles it (quadruples alone), and a euchred
// maker hands the defense two points.
func (euchreRules) score(s *Session) RoundResult {
	mt := s.Contract.Team
	ot := 1 - mt
	makerTricks := s.TeamTricks(mt)

	res := RoundResult{MakerTeam: mt}
	switch {
	case makerTricks == 5 && s.Contract.Alone:
		res.Made = true
		res.TeamPoints[mt] = 4
		res.Summary = fmt.Sprintf("team %d marched alone for 4", mt)
	case makerTricks == 5:
		res.Made = true
		res.TeamPoints[mt] = 2
		res.Summary = fmt.Sprintf("team %d marched for 2", mt)
	case makerTricks >= 3:
		res.Made = true
		res.TeamPoints[mt] = 1
		res.Summary = fmt.Sprintf("team %d made it with %d tricks", mt, makerTricks)
	default:
		res.TeamPoints[ot] = 2
		res.Summary = fmt.Sprintf("team %d was euchred, 2 to team %d", mt, ot)
	}

	for t := 0; t < NumTeams; t++ {
		s.Teams[t].Score += res.TeamPoints[t]
	}
	return res
}

func (euchreRules) checkGameEnd(s *Session) {
	for t := 0; t < NumTeams; t++ {
		if s.Teams[t].Score >= s.WinScore {
			s.Complete = true
			s.WinnerTeam = t
			return
		}
	}
}
