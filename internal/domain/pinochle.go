package domain

import "fmt"

// pinochleRules implements the 48-card double-deck auction game with
// melds and counter-point scoring.
type pinochleRules struct{}

func (pinochleRules) defaultWinScore() int { return 1500 }
func (pinochleRules) handSize() int        { return 12 }
func (pinochleRules) tricksPerRound() int  { return 12 }

func (r pinochleRules) deal(s *Session, deck []Card) {
	dealHands(s, deck, r.handSize())
}

// nextUnpassedSeat returns the next seat still in the auction.
func nextUnpassedSeat(s *Session, seat Seat) Seat {
	for i := 1; i <= NumSeats; i++ {
		n := (seat + Seat(i)) % NumSeats
		if !s.Auction.Passed[n] {
			return n
		}
	}
	return seat
}

// submitBid runs the open ascending auction. A pass is final. Bidding
// ends when three seats have passed after at least one bid; if all
// four pass without a bid the round is a misdeal and is redealt.
func (pinochleRules) submitBid(s *Session, seat Seat, b Bid) error {
	a := &s.Auction

	if b.Pass {
		a.Passed[seat] = true
		a.Passes++
		if a.Passes == NumSeats && !a.HasBid {
			s.voidRound()
			return nil
		}
		if a.Passes == NumSeats-1 && a.HasBid {
			s.Contract = &Contract{Maker: a.HighBidder, Team: TeamOf(a.HighBidder), Points: a.HighBid}
			s.recomputeActive()
			s.Phase = PhaseTrumpSelect
			s.Turn = a.HighBidder
			return nil
		}
		s.Turn = nextUnpassedSeat(s, seat)
		return nil
	}

	v := b.Points
	if v < s.MinBid {
		return fmt.Errorf("%w: %d below minimum %d", ErrIllegalBid, v, s.MinBid)
	}
	if (v-s.MinBid)%s.BidStep != 0 {
		return fmt.Errorf("%w: %d off the %d-point step", ErrIllegalBid, v, s.BidStep)
	}
	if a.HasBid && v-a.HighBid < s.BidStep {
		return fmt.Errorf("%w: %d does not raise %d by %d", ErrIllegalBid, v, a.HighBid, s.BidStep)
	}

	a.HighBid = v
	a.HighBidder = seat
	a.HasBid = true
	if a.Passes == NumSeats-1 {
		// The other three seats have already passed; this bid takes
		// the contract outright.
		s.Contract = &Contract{Maker: seat, Team: TeamOf(seat), Points: v}
		s.recomputeActive()
		s.Phase = PhaseTrumpSelect
		s.Turn = seat
		return nil
	}
	s.Turn = nextUnpassedSeat(s, seat)
	return nil
}

// declareTrump fixes trump for the bid winner and opens meld showing,
// starting left of the dealer.
func (pinochleRules) declareTrump(s *Session, seat Seat, t Suit) error {
	if !t.Valid() {
		return fmt.Errorf("%w: unknown trump suit %d", ErrIllegalBid, t)
	}
	trump := t
	s.Trump = &trump
	s.Phase = PhaseMeld
	s.Turn = NextSeat(s.Dealer)
	return nil
}

// pinochleOrder ranks cards 9 < J < Q < K < 10 < A, the counter-point
// ordering.
func pinochleOrder(r Rank) int {
	switch r {
	case RankNine:
		return 0
	case RankJack:
		return 1
	case RankQueen:
		return 2
	case RankKing:
		return 3
	case RankTen:
		return 4
	case RankAce:
		return 5
	default:
		return 0
	}
}

// playable enforces follow-suit, and when a void seat faces a trick
// that has already been trumped it must over-trump if it can.
func (pinochleRules) playable(s *Session, hand []Card) []Card {
	if len(s.Trick) == 0 {
		return hand
	}
	if follow := s.followCards(hand); len(follow) > 0 {
		return follow
	}

	trump := *s.Trump
	lead, _ := s.LeadSuit()
	bestTrump := -1
	if lead != trump {
		for _, p := range s.Trick {
			if p.Card.Suit == trump {
				if o := pinochleOrder(p.Card.Rank); o > bestTrump {
					bestTrump = o
				}
			}
		}
	}
	if bestTrump >= 0 {
		overs := make([]Card, 0, len(hand))
		for _, c := range hand {
			if c.Suit == trump && pinochleOrder(c.Rank) > bestTrump {
				overs = append(overs, c)
			}
		}
		if len(overs) > 0 {
			return overs
		}
	}
	return hand
}

func (pinochleRules) strength(s *Session, c Card, lead Suit) int {
	trump := *s.Trump
	switch {
	case c.Suit == trump:
		return 400 + pinochleOrder(c.Rank)
	case c.Suit == lead:
		return 100 + pinochleOrder(c.Rank)
	default:
		return pinochleOrder(c.Rank)
	}
}

// score banks meld plus counters plus the 10-point last-trick bonus
// for each team. A bid-winning team short of its contract is set back
// by the full bid; the defenders always bank what they earned.
func (pinochleRules) score(s *Session) RoundResult {
	mt := s.Contract.Team
	ot := 1 - mt

	var counters [NumTeams]int
	for _, trick := range s.TrickHistory {
		team := TeamOf(trick.Winner)
		for _, p := range trick.Plays {
			counters[team] += CounterValue(p.Card.Rank)
		}
	}
	lastWinner := s.TrickHistory[len(s.TrickHistory)-1].Winner
	counters[TeamOf(lastWinner)] += 10

	var totals [NumTeams]int
	for t := 0; t < NumTeams; t++ {
		totals[t] = s.MeldPoints[t] + counters[t]
	}

	res := RoundResult{MakerTeam: mt, MeldPoints: s.MeldPoints}
	res.TeamPoints[ot] = totals[ot]
	if totals[mt] >= s.Contract.Points {
		res.Made = true
		res.TeamPoints[mt] = totals[mt]
		res.Summary = fmt.Sprintf("team %d made its %d bid with %d", mt, s.Contract.Points, totals[mt])
	} else {
		res.TeamPoints[mt] = -s.Contract.Points
		res.Summary = fmt.Sprintf("team %d fell short of %d with %d and is set back", mt, s.Contract.Points, totals[mt])
	}

	for t := 0; t < NumTeams; t++ {
		s.Teams[t].Score += res.TeamPoints[t]
	}
	return res
}

func (pinochleRules) checkGameEnd(s *Session) {
	s0, s1 := s.Teams[0].Score, s.Teams[1].Score
	if s0 >= s.WinScore || s1 >= s.WinScore {
		if s0 == s1 {
			return
		}
		s.finishByScore()
	}
}
