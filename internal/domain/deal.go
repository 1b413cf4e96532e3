package domain

import "math/rand"

// dealHands gives each seat, starting left of the dealer, the variant
// hand size and returns how many cards were consumed.
func dealHands(s *Session, deck []Card, size int) int {
	idx := 0
	for i := 0; i < NumSeats; i++ {
		seat := NextSeat(s.Dealer + Seat(i))
		s.Hands[seat] = append([]Card(nil), deck[idx:idx+size]...)
		idx += size
	}
	return idx
}

// StartRound shuffles the variant's deck, deals hands and resets all
// per-round state. The dealer advances one seat every round except the
// first, and stays put after a pinochle misdeal redeal.
func (s *Session) StartRound(rng *rand.Rand) error {
	if s.Complete {
		return ErrPhaseViolation
	}
	if s.Phase != PhaseDeal {
		return ErrPhaseViolation
	}

	deck := NewDeck(s.Variant)
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	if s.Round > 0 && !s.redeal {
		s.Dealer = NextSeat(s.Dealer)
	}
	s.redeal = false
	s.Round++

	for i := range s.Hands {
		s.Hands[i] = nil
	}
	s.Kitty = nil
	s.UpCard = nil
	s.Buried = nil
	s.Trump = nil
	s.Contract = nil
	s.Auction = auction{Round: 1}
	s.Trick = nil
	s.TrickHistory = nil
	s.TricksWon = [NumSeats]int{}
	s.TrumpBroken = false
	s.MeldPoints = [NumTeams]int{}
	s.Melds = [NumSeats][]Meld{}
	s.MeldsShown = [NumSeats]bool{}
	s.LastResult = nil
	s.scored = false
	for i := range s.Active {
		s.Active[i] = true
	}

	r := rulesFor(s.Variant)
	r.deal(s, deck)

	// Spades hands stay face-down until a seat peeks or bids, gating
	// blind nil. The other variants show hands immediately.
	for i := range s.Revealed {
		s.Revealed[i] = s.Variant != VariantSpades
	}

	s.Phase = PhaseBidding
	s.Turn = NextSeat(s.Dealer)
	return nil
}

// PeekHand marks the seat's hand as seen and returns a copy of it.
// A spades seat that has peeked can no longer declare blind nil.
func (s *Session) PeekHand(seat Seat) []Card {
	s.Revealed[seat] = true
	return append([]Card(nil), s.Hands[seat]...)
}
