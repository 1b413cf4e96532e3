package domain

import (
	"errors"
	"testing"
)

func handOf(cards ...Card) []Card { return cards }

func c(s Suit, r Rank) Card { return Card{Suit: s, Rank: r} }

func TestBestMelds(t *testing.T) {
	tests := []struct {
		name  string
		hand  []Card
		trump Suit
		want  int
	}{
		{
			// A run consumes its K-Q; no royal marriage on top.
			"single run",
			handOf(c(SuitHearts, RankAce), c(SuitHearts, RankTen), c(SuitHearts, RankKing),
				c(SuitHearts, RankQueen), c(SuitHearts, RankJack)),
			SuitHearts,
			150,
		},
		{
			// A second trump K-Q beyond the run melds as a royal marriage.
			"run plus spare royal marriage",
			handOf(c(SuitHearts, RankAce), c(SuitHearts, RankTen), c(SuitHearts, RankKing),
				c(SuitHearts, RankQueen), c(SuitHearts, RankJack),
				c(SuitHearts, RankKing), c(SuitHearts, RankQueen)),
			SuitHearts,
			190,
		},
		{
			"royal marriage without a run",
			handOf(c(SuitHearts, RankKing), c(SuitHearts, RankQueen)),
			SuitHearts,
			40,
		},
		{
			"plain marriage off trump",
			handOf(c(SuitClubs, RankKing), c(SuitClubs, RankQueen)),
			SuitHearts,
			20,
		},
		{
			"dix",
			handOf(c(SuitHearts, RankNine)),
			SuitHearts,
			10,
		},
		{
			"double dix",
			handOf(c(SuitHearts, RankNine), c(SuitHearts, RankNine)),
			SuitHearts,
			20,
		},
		{
			"aces around",
			handOf(c(SuitSpades, RankAce), c(SuitHearts, RankAce),
				c(SuitDiamonds, RankAce), c(SuitClubs, RankAce)),
			SuitHearts,
			100,
		},
		{
			"double jacks around",
			handOf(c(SuitSpades, RankJack), c(SuitSpades, RankJack),
				c(SuitHearts, RankJack), c(SuitHearts, RankJack),
				c(SuitDiamonds, RankJack), c(SuitDiamonds, RankJack),
				c(SuitClubs, RankJack), c(SuitClubs, RankJack)),
			SuitHearts,
			80,
		},
		{
			"pinochle",
			handOf(c(SuitDiamonds, RankJack), c(SuitSpades, RankQueen)),
			SuitHearts,
			40,
		},
		{
			"double pinochle",
			handOf(c(SuitDiamonds, RankJack), c(SuitDiamonds, RankJack),
				c(SuitSpades, RankQueen), c(SuitSpades, RankQueen)),
			SuitHearts,
			80,
		},
		{
			// Pinochle combo, a spade marriage and queens nowhere near around.
			"overlapping combos share cards",
			handOf(c(SuitDiamonds, RankJack), c(SuitSpades, RankQueen),
				c(SuitSpades, RankKing)),
			SuitHearts,
			60,
		},
		{
			"empty hand",
			nil,
			SuitHearts,
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MeldValue(BestMelds(tt.hand, tt.trump))
			if got != tt.want {
				t.Errorf("MeldValue(BestMelds) = %d, want %d\nmelds: %v",
					got, tt.want, BestMelds(tt.hand, tt.trump))
			}
		})
	}
}

func TestMeldValueDoubled(t *testing.T) {
	m := Meld{Type: MeldRun, Suit: SuitHearts, Doubled: true}
	if m.Value() != 300 {
		t.Errorf("doubled run = %d, want 300", m.Value())
	}
}

func TestValidateMelds(t *testing.T) {
	runHand := handOf(c(SuitHearts, RankAce), c(SuitHearts, RankTen), c(SuitHearts, RankKing),
		c(SuitHearts, RankQueen), c(SuitHearts, RankJack))

	tests := []struct {
		name    string
		hand    []Card
		claimed []Meld
		wantErr bool
	}{
		{
			"valid run",
			runHand,
			[]Meld{{Type: MeldRun, Suit: SuitHearts}},
			false,
		},
		{
			"run cards re-counted as royal marriage",
			runHand,
			[]Meld{{Type: MeldRun, Suit: SuitHearts}, {Type: MeldRoyalMarriage, Suit: SuitHearts}},
			true,
		},
		{
			"run not held",
			handOf(c(SuitHearts, RankAce), c(SuitHearts, RankKing)),
			[]Meld{{Type: MeldRun, Suit: SuitHearts}},
			true,
		},
		{
			"run outside trump",
			handOf(c(SuitClubs, RankAce), c(SuitClubs, RankTen), c(SuitClubs, RankKing),
				c(SuitClubs, RankQueen), c(SuitClubs, RankJack)),
			[]Meld{{Type: MeldRun, Suit: SuitClubs}},
			true,
		},
		{
			"trump marriage claimed as plain",
			handOf(c(SuitHearts, RankKing), c(SuitHearts, RankQueen)),
			[]Meld{{Type: MeldMarriage, Suit: SuitHearts}},
			true,
		},
		{
			"doubled dix with one copy",
			handOf(c(SuitHearts, RankNine)),
			[]Meld{{Type: MeldDix, Suit: SuitHearts, Doubled: true}},
			true,
		},
		{
			"same meld declared twice",
			handOf(c(SuitHearts, RankNine), c(SuitHearts, RankNine)),
			[]Meld{{Type: MeldDix, Suit: SuitHearts}, {Type: MeldDix, Suit: SuitHearts}},
			true,
		},
		{
			"marriages in two suits",
			handOf(c(SuitClubs, RankKing), c(SuitClubs, RankQueen),
				c(SuitDiamonds, RankKing), c(SuitDiamonds, RankQueen)),
			[]Meld{{Type: MeldMarriage, Suit: SuitClubs}, {Type: MeldMarriage, Suit: SuitDiamonds}},
			false,
		},
		{
			"showing nothing",
			runHand,
			nil,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMelds(tt.hand, SuitHearts, tt.claimed)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMeld) {
					t.Errorf("err = %v, want ErrInvalidMeld", err)
				}
				return
			}
			if err != nil {
				t.Errorf("err = %v, want nil", err)
			}
		})
	}
}

func TestShowMeldFlow(t *testing.T) {
	s := dealtPinochle(t, 41)
	bidder := s.Turn
	if err := s.SubmitBid(bidder, Bid{Points: 100}); err != nil {
		t.Fatalf("bid: %v", err)
	}
	for s.Phase == PhaseBidding {
		if err := s.SubmitBid(s.Turn, Bid{Pass: true}); err != nil {
			t.Fatalf("pass: %v", err)
		}
	}
	trump := longestSuit(s.Hands[bidder], nil)
	if err := s.DeclareTrump(bidder, trump); err != nil {
		t.Fatalf("DeclareTrump: %v", err)
	}

	if err := s.ShowMeld(NextSeat(s.Turn), nil); !errors.Is(err, ErrOutOfTurn) {
		t.Fatalf("out-of-order show err = %v, want ErrOutOfTurn", err)
	}

	wantPoints := [NumTeams]int{}
	for i := 0; i < NumSeats; i++ {
		seat := s.Turn
		melds := BestMelds(s.Hands[seat], trump)
		wantPoints[TeamOf(seat)] += MeldValue(melds)
		if err := s.ShowMeld(seat, melds); err != nil {
			t.Fatalf("ShowMeld seat %d: %v", seat, err)
		}
	}

	if s.MeldPoints != wantPoints {
		t.Errorf("meld points = %v, want %v", s.MeldPoints, wantPoints)
	}
	if s.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want %s", s.Phase, PhasePlaying)
	}
	if s.Turn != bidder {
		t.Errorf("first lead = %d, want the bid winner %d", s.Turn, bidder)
	}
}

func TestShowMeldRejectsUnheldClaim(t *testing.T) {
	s := dealtPinochle(t, 42)
	bidder := s.Turn
	if err := s.SubmitBid(bidder, Bid{Points: 100}); err != nil {
		t.Fatalf("bid: %v", err)
	}
	for s.Phase == PhaseBidding {
		if err := s.SubmitBid(s.Turn, Bid{Pass: true}); err != nil {
			t.Fatalf("pass: %v", err)
		}
	}
	trump := SuitHearts
	if err := s.DeclareTrump(bidder, trump); err != nil {
		t.Fatalf("DeclareTrump: %v", err)
	}

	seat := s.Turn
	// Strip the seat of any trump nine, then claim the dix anyway.
	RemoveCard(&s.Hands[seat], c(trump, RankNine))
	RemoveCard(&s.Hands[seat], c(trump, RankNine))
	err := s.ShowMeld(seat, []Meld{{Type: MeldDix, Suit: trump}})
	if !errors.Is(err, ErrInvalidMeld) {
		t.Fatalf("err = %v, want ErrInvalidMeld", err)
	}
	if s.MeldsShown[seat] {
		t.Error("a rejected claim must not mark the seat as shown")
	}
}
