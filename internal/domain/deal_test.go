package domain

import (
	"math/rand"
	"testing"
)

func TestStartRoundEuchre(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewSession("t", VariantEuchre, SessionOptions{})

	if err := s.StartRound(rng); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	for seat := Seat(0); seat < NumSeats; seat++ {
		if len(s.Hands[seat]) != 5 {
			t.Errorf("seat %d hand size = %d, want 5", seat, len(s.Hands[seat]))
		}
		if !s.Revealed[seat] {
			t.Errorf("seat %d hand should be revealed", seat)
		}
	}
	if len(s.Kitty) != 3 {
		t.Errorf("kitty size = %d, want 3", len(s.Kitty))
	}
	if s.UpCard == nil {
		t.Fatal("expected an up-card")
	}
	if s.Phase != PhaseBidding {
		t.Errorf("phase = %s, want %s", s.Phase, PhaseBidding)
	}
	if s.Turn != NextSeat(s.Dealer) {
		t.Errorf("turn = %d, want left of dealer %d", s.Turn, NextSeat(s.Dealer))
	}
	if got, want := s.CardsInPlay(), s.DeckSize(); got != want {
		t.Errorf("cards in play = %d, want %d", got, want)
	}
}

func TestStartRoundSpadesHidesHands(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewSession("t", VariantSpades, SessionOptions{})

	if err := s.StartRound(rng); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	for seat := Seat(0); seat < NumSeats; seat++ {
		if s.Revealed[seat] {
			t.Errorf("seat %d hand should stay hidden until it peeks or bids", seat)
		}
	}
	if s.Trump == nil || *s.Trump != SuitSpades {
		t.Error("spades should be trump from the deal")
	}

	hand := s.PeekHand(2)
	if !s.Revealed[2] {
		t.Error("peeking should reveal the hand")
	}
	if len(hand) != 13 {
		t.Errorf("peeked hand size = %d, want 13", len(hand))
	}
}

func TestStartRoundDealerRotation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := NewSession("t", VariantEuchre, SessionOptions{InitialDealer: 2})

	if err := s.StartRound(rng); err != nil {
		t.Fatalf("round 1: %v", err)
	}
	if s.Dealer != 2 {
		t.Errorf("round 1 dealer = %d, want 2", s.Dealer)
	}

	s.Phase = PhaseDeal
	if err := s.StartRound(rng); err != nil {
		t.Fatalf("round 2: %v", err)
	}
	if s.Dealer != 3 {
		t.Errorf("round 2 dealer = %d, want 3", s.Dealer)
	}
}

func TestStartRoundPhaseGate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewSession("t", VariantEuchre, SessionOptions{})

	if err := s.StartRound(rng); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if err := s.StartRound(rng); err != ErrPhaseViolation {
		t.Errorf("second StartRound mid-round: err = %v, want ErrPhaseViolation", err)
	}

	s.Complete = true
	s.Phase = PhaseDeal
	if err := s.StartRound(rng); err != ErrPhaseViolation {
		t.Errorf("StartRound on a complete session: err = %v, want ErrPhaseViolation", err)
	}
}

func TestStartRoundResetsRoundState(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s := NewSession("t", VariantEuchre, SessionOptions{})
	if err := s.StartRound(rng); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	trump := SuitHearts
	s.Trump = &trump
	s.TrumpBroken = true
	s.TricksWon[1] = 3
	s.Active[2] = false
	s.Phase = PhaseDeal

	if err := s.StartRound(rng); err != nil {
		t.Fatalf("second StartRound: %v", err)
	}
	if s.Trump != nil {
		t.Error("trump should reset between rounds")
	}
	if s.TrumpBroken {
		t.Error("trump-broken flag should reset")
	}
	if s.TricksWon[1] != 0 {
		t.Error("trick counts should reset")
	}
	if !s.Active[2] {
		t.Error("all seats should be active after a fresh deal")
	}
}
