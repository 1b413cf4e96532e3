package domain

import "fmt"

// spadesRules implements the 52-card bid-and-bag game. Spades are
// always trump; the trump suit may not be led until broken.
type spadesRules struct{}

func (spadesRules) defaultWinScore() int { return 500 }
func (spadesRules) handSize() int        { return 13 }
func (spadesRules) tricksPerRound() int  { return 13 }

func (r spadesRules) deal(s *Session, deck []Card) {
	dealHands(s, deck, r.handSize())
	trump := SuitSpades
	s.Trump = &trump
}

// submitBid records one seat's 0..13 bid. Nil forces zero tricks, and
// blind nil is only open to a seat that has not yet seen its hand.
func (spadesRules) submitBid(s *Session, seat Seat, b Bid) error {
	if b.Pass {
		return fmt.Errorf("%w: every seat must bid", ErrIllegalBid)
	}
	if b.Tricks < 0 || b.Tricks > 13 {
		return fmt.Errorf("%w: bid %d outside 0..13", ErrIllegalBid, b.Tricks)
	}
	if (b.Nil || b.BlindNil) && b.Tricks != 0 {
		return fmt.Errorf("%w: nil bid carries no tricks", ErrIllegalBid)
	}
	if b.BlindNil && s.Revealed[seat] {
		return fmt.Errorf("%w: blind nil after looking at the hand", ErrIllegalBid)
	}
	if b.BlindNil {
		b.Nil = true
	}

	if s.Contract == nil {
		s.Contract = &Contract{Maker: seat, Team: TeamOf(seat)}
	}
	s.Contract.Bids[seat] = b
	s.Revealed[seat] = true
	s.Auction.BidsPlaced++

	if s.Auction.BidsPlaced < NumSeats {
		s.Turn = NextSeat(seat)
		return nil
	}

	for st := Seat(0); st < NumSeats; st++ {
		sb := s.Contract.Bids[st]
		if !sb.Nil {
			s.Contract.TeamBids[TeamOf(st)] += sb.Tricks
		}
	}
	s.Phase = PhasePlaying
	s.Turn = s.firstLeader()
	return nil
}

func (spadesRules) declareTrump(s *Session, seat Seat, t Suit) error {
	return ErrPhaseViolation
}

// playable stops a spade lead until trump is broken (unless the hand is
// all spades) and otherwise enforces follow-suit.
func (spadesRules) playable(s *Session, hand []Card) []Card {
	if len(s.Trick) == 0 {
		if s.TrumpBroken {
			return hand
		}
		offSuit := make([]Card, 0, len(hand))
		for _, c := range hand {
			if c.Suit != SuitSpades {
				offSuit = append(offSuit, c)
			}
		}
		if len(offSuit) > 0 {
			return offSuit
		}
		return hand
	}
	if follow := s.followCards(hand); len(follow) > 0 {
		return follow
	}
	return hand
}

func (spadesRules) strength(s *Session, c Card, lead Suit) int {
	switch {
	case c.Suit == SuitSpades:
		return 400 + int(c.Rank)
	case c.Suit == lead:
		return 100 + int(c.Rank)
	default:
		return int(c.Rank)
	}
}

// score settles both teams: bid*10 made or lost, one point per bag,
// nil seats scored individually at +-100 (+-200 blind). A failed nil's
// tricks never help the partner's contract but do count as bags. Every
// tenth accumulated bag costs 100 points and rolls the counter back by
// ten.
func (spadesRules) score(s *Session) RoundResult {
	res := RoundResult{MakerTeam: -1}

	for t := 0; t < NumTeams; t++ {
		bid := s.Contract.TeamBids[t]
		contractTricks := 0
		bagTricks := 0

		for _, seat := range []Seat{Seat(t), Seat(t + 2)} {
			sb := s.Contract.Bids[seat]
			taken := s.TricksWon[seat]
			if !sb.Nil {
				contractTricks += taken
				continue
			}
			made := taken == 0
			pts := 100
			if sb.BlindNil {
				pts = 200
			}
			if !made {
				pts = -pts
				bagTricks += taken
			}
			res.NilResults = append(res.NilResults, NilOutcome{Seat: seat, Blind: sb.BlindNil, Made: made, Points: pts})
			res.TeamPoints[t] += pts
		}

		if bid > 0 {
			if contractTricks >= bid {
				res.TeamPoints[t] += bid * 10
				bagTricks += contractTricks - bid
			} else {
				res.TeamPoints[t] -= bid * 10
			}
		}

		res.BagsAdded[t] = bagTricks
		res.TeamPoints[t] += bagTricks
		s.Teams[t].Bags += bagTricks
		for s.Teams[t].Bags >= 10 {
			res.BagPenalty[t] = true
			res.TeamPoints[t] -= 100
			s.Teams[t].Bags -= 10
		}
		s.Teams[t].Score += res.TeamPoints[t]
	}

	res.Summary = fmt.Sprintf("bids %d/%d, tricks %d/%d, round %+d/%+d",
		s.Contract.TeamBids[0], s.Contract.TeamBids[1],
		s.TeamTricks(0), s.TeamTricks(1),
		res.TeamPoints[0], res.TeamPoints[1])
	return res
}

// checkGameEnd applies the 500-point finish with higher-score
// tie-break, and the immediate loss for a team falling to -200.
func (spadesRules) checkGameEnd(s *Session) {
	s0, s1 := s.Teams[0].Score, s.Teams[1].Score

	if s0 <= -200 || s1 <= -200 {
		s.finishByScore()
		return
	}
	if s0 >= s.WinScore || s1 >= s.WinScore {
		if s0 == s1 {
			// both crossed on the same round dead even; play on
			return
		}
		s.finishByScore()
	}
}
