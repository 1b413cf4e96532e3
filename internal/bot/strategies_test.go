package bot

import (
	"math/rand"
	"testing"

	"github.com/kc92/Desperado-s-Destiny-sub018/internal/domain"
)

func card(s domain.Suit, r domain.Rank) domain.Card {
	return domain.Card{Suit: s, Rank: r}
}

func biddingSession(t *testing.T, v domain.Variant, seed int64) *domain.Session {
	t.Helper()
	s := domain.NewSession("t", v, domain.SessionOptions{})
	if err := s.StartRound(rand.New(rand.NewSource(seed))); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	return s
}

func TestBasicBotActionsAreAccepted(t *testing.T) {
	brain := &BasicBot{}
	for _, v := range []domain.Variant{domain.VariantEuchre, domain.VariantPinochle, domain.VariantSpades} {
		s := biddingSession(t, v, 51)
		seat := s.Turn
		action, err := brain.ChooseAction(s, seat)
		if err != nil {
			t.Fatalf("%s: ChooseAction: %v", v, err)
		}
		if err := s.Apply(seat, action); err != nil {
			t.Errorf("%s: engine rejected the bot action: %v", v, err)
		}
	}
}

func TestBasicBotOffTurn(t *testing.T) {
	brain := &BasicBot{}
	s := biddingSession(t, domain.VariantSpades, 52)
	if _, err := brain.ChooseAction(s, domain.NextSeat(s.Turn)); err == nil {
		t.Error("an off-turn seat must yield no action")
	}
}

func TestSharpBotEuchreOrdersUpOnTrumpLength(t *testing.T) {
	brain := &SharpBot{}
	s := biddingSession(t, domain.VariantEuchre, 53)
	seat := s.Turn
	up := s.UpCard.Suit

	s.Hands[seat] = []domain.Card{
		card(up, domain.RankAce),
		card(up, domain.RankKing),
		card(up, domain.RankQueen),
		card(up.SameColor(), domain.RankTen),
		card(up.SameColor(), domain.RankNine),
	}
	action, err := brain.ChooseAction(s, seat)
	if err != nil {
		t.Fatalf("ChooseAction: %v", err)
	}
	if action.Type != domain.ActionBid || !action.Bid.OrderUp {
		t.Errorf("action = %+v, want an order-up with three trump", action)
	}

	// Two trump is not enough.
	s.Hands[seat] = []domain.Card{
		card(up, domain.RankAce),
		card(up, domain.RankKing),
		card(up.SameColor(), domain.RankQueen),
		card(up.SameColor(), domain.RankTen),
		card(up.SameColor(), domain.RankNine),
	}
	action, err = brain.ChooseAction(s, seat)
	if err != nil {
		t.Fatalf("ChooseAction: %v", err)
	}
	if !action.Bid.Pass {
		t.Errorf("action = %+v, want a pass with two trump", action)
	}
}

func TestSharpBotSpadesEstimates(t *testing.T) {
	brain := &SharpBot{}

	tests := []struct {
		name string
		hand []domain.Card
		want domain.Bid
	}{
		{
			"high cards and long spades",
			[]domain.Card{
				card(domain.SuitSpades, domain.RankAce),
				card(domain.SuitSpades, domain.RankKing),
				card(domain.SuitSpades, domain.RankTen),
				card(domain.SuitSpades, domain.RankNine),
				card(domain.SuitSpades, domain.RankFour),
				card(domain.SuitHearts, domain.RankAce),
				card(domain.SuitHearts, domain.RankThree),
			},
			domain.Bid{Tricks: 5}, // 2 aces + 1 king + 2 extra spades
		},
		{
			"nothing in hand",
			[]domain.Card{
				card(domain.SuitHearts, domain.RankThree),
				card(domain.SuitClubs, domain.RankFour),
				card(domain.SuitDiamonds, domain.RankSix),
			},
			domain.Bid{Nil: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := biddingSession(t, domain.VariantSpades, 54)
			seat := s.Turn
			s.Hands[seat] = tt.hand

			action, err := brain.ChooseAction(s, seat)
			if err != nil {
				t.Fatalf("ChooseAction: %v", err)
			}
			if action.Bid != tt.want {
				t.Errorf("bid = %+v, want %+v", action.Bid, tt.want)
			}
		})
	}
}

func TestSharpBotPinochleBidsMinimalRaise(t *testing.T) {
	brain := &SharpBot{}
	s := biddingSession(t, domain.VariantPinochle, 55)
	seat := s.Turn

	// A hand worth well over the minimum: double aces around plus
	// counters make the floor bid safe.
	s.Hands[seat] = []domain.Card{
		card(domain.SuitSpades, domain.RankAce), card(domain.SuitSpades, domain.RankAce),
		card(domain.SuitHearts, domain.RankAce), card(domain.SuitHearts, domain.RankAce),
		card(domain.SuitDiamonds, domain.RankAce), card(domain.SuitDiamonds, domain.RankAce),
		card(domain.SuitClubs, domain.RankAce), card(domain.SuitClubs, domain.RankAce),
		card(domain.SuitSpades, domain.RankTen), card(domain.SuitSpades, domain.RankTen),
		card(domain.SuitHearts, domain.RankTen), card(domain.SuitHearts, domain.RankTen),
	}

	action, err := brain.ChooseAction(s, seat)
	if err != nil {
		t.Fatalf("ChooseAction: %v", err)
	}
	if action.Bid.Pass || action.Bid.Points != s.MinBid {
		t.Fatalf("bid = %+v, want the floor %d", action.Bid, s.MinBid)
	}
	if err := s.Apply(seat, action); err != nil {
		t.Fatalf("engine rejected the opening bid: %v", err)
	}

	// The next sharp seat with the same strength raises by one step.
	next := s.Turn
	s.Hands[next] = append([]domain.Card(nil), s.Hands[seat]...)
	action, err = brain.ChooseAction(s, next)
	if err != nil {
		t.Fatalf("ChooseAction: %v", err)
	}
	if action.Bid.Points != s.MinBid+s.BidStep {
		t.Fatalf("raise = %+v, want %d", action.Bid, s.MinBid+s.BidStep)
	}
	if err := s.Apply(next, action); err != nil {
		t.Errorf("engine rejected the raise: %v", err)
	}
}

func TestSharpBotTakesTrickCheaply(t *testing.T) {
	brain := &SharpBot{}
	s := domain.NewSession("t", domain.VariantSpades, domain.SessionOptions{})
	s.Phase = domain.PhasePlaying
	trump := domain.SuitSpades
	s.Trump = &trump
	for i := range s.Active {
		s.Active[i] = true
	}
	s.Trick = []domain.TrickPlay{
		{Card: card(domain.SuitHearts, domain.RankTen), Seat: 0},
	}
	s.Turn = 1
	s.Hands[1] = []domain.Card{
		card(domain.SuitHearts, domain.RankAce),
		card(domain.SuitHearts, domain.RankJack),
		card(domain.SuitHearts, domain.RankThree),
	}

	got, ok := brain.chooseCard(s, 1)
	if !ok {
		t.Fatal("no card chosen")
	}
	// The jack beats the ten; the ace stays home.
	if got != card(domain.SuitHearts, domain.RankJack) {
		t.Errorf("played %s, want the cheapest winner JH", got)
	}
}

func TestSharpBotSloughsUnderPartner(t *testing.T) {
	brain := &SharpBot{}
	s := domain.NewSession("t", domain.VariantSpades, domain.SessionOptions{})
	s.Phase = domain.PhasePlaying
	trump := domain.SuitSpades
	s.Trump = &trump
	for i := range s.Active {
		s.Active[i] = true
	}
	// Seat 2's partner at seat 0 holds the trick with the ace.
	s.Trick = []domain.TrickPlay{
		{Card: card(domain.SuitHearts, domain.RankAce), Seat: 0},
		{Card: card(domain.SuitHearts, domain.RankFour), Seat: 1},
	}
	s.Turn = 2
	s.Hands[2] = []domain.Card{
		card(domain.SuitHearts, domain.RankKing),
		card(domain.SuitHearts, domain.RankTwo),
	}

	got, ok := brain.chooseCard(s, 2)
	if !ok {
		t.Fatal("no card chosen")
	}
	if got != card(domain.SuitHearts, domain.RankTwo) {
		t.Errorf("played %s, want to slough the two under the partner's ace", got)
	}
}

func TestNewBrainByLevel(t *testing.T) {
	brain, err := NewBrain(BotLevelBasic)
	if err != nil {
		t.Fatalf("NewBrain: %v", err)
	}
	if _, ok := brain.(*BasicBot); !ok {
		t.Error("basic level must build a BasicBot")
	}

	brain, err = NewBrain(BotLevelSharp)
	if err != nil {
		t.Fatalf("NewBrain: %v", err)
	}
	if _, ok := brain.(*SharpBot); !ok {
		t.Error("sharp level must build a SharpBot")
	}

	if _, err := NewBrain(BotLevel(99)); err == nil {
		t.Error("unknown level must fail")
	}

	if levelForDifficulty("hard") != BotLevelSharp {
		t.Error("hard difficulty maps to the sharp brain")
	}
	if levelForDifficulty("easy") != BotLevelBasic {
		t.Error("easy difficulty maps to the basic brain")
	}
}
