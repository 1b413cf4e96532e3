package domain

import "fmt"

// Suit identifies one of the four card suits.
type Suit int32

const (
	SuitSpades Suit = iota
	SuitHearts
	SuitDiamonds
	SuitClubs
)

func (s Suit) String() string {
	switch s {
	case SuitSpades:
		return "S"
	case SuitHearts:
		return "H"
	case SuitDiamonds:
		return "D"
	case SuitClubs:
		return "C"
	default:
		return "?"
	}
}

// Valid reports whether s names one of the four real suits. Wire
// payloads carry raw suit numbers, so anything trusting them checks
// this first.
func (s Suit) Valid() bool {
	return s >= SuitSpades && s <= SuitClubs
}

// SameColor returns the other suit of the same color: spades<->clubs,
// hearts<->diamonds. The jack of this suit is the left bower when the
// returned suit is trump.
func (s Suit) SameColor() Suit {
	switch s {
	case SuitSpades:
		return SuitClubs
	case SuitClubs:
		return SuitSpades
	case SuitHearts:
		return SuitDiamonds
	case SuitDiamonds:
		return SuitHearts
	default:
		return s
	}
}

// Suits lists all four suits in a stable order.
func Suits() []Suit {
	return []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}
}

// Rank is a card rank. Values follow the conventional 2..14 scale with
// Ace high; per-variant strength orderings are derived from it, never
// read off the raw value directly.
type Rank int32

const (
	RankTwo   Rank = 2
	RankThree Rank = 3
	RankFour  Rank = 4
	RankFive  Rank = 5
	RankSix   Rank = 6
	RankSeven Rank = 7
	RankEight Rank = 8
	RankNine  Rank = 9
	RankTen   Rank = 10
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
	RankAce   Rank = 14
)

func (r Rank) String() string {
	switch r {
	case RankAce:
		return "A"
	case RankKing:
		return "K"
	case RankQueen:
		return "Q"
	case RankJack:
		return "J"
	case RankTen:
		return "10"
	default:
		return fmt.Sprintf("%d", int32(r))
	}
}

// Card is a single playing card. Bower status is never stored on the
// card; it is a relation between a card and the current trump suit and
// is recomputed wherever it matters.
type Card struct {
	Suit Suit
	Rank Rank
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// IsRightBower reports whether the card is the trump jack.
func (c Card) IsRightBower(trump Suit) bool {
	return c.Rank == RankJack && c.Suit == trump
}

// IsLeftBower reports whether the card is the same-color jack, which
// counts as a trump card for every purpose while that trump holds.
func (c Card) IsLeftBower(trump Suit) bool {
	return c.Rank == RankJack && c.Suit == trump.SameColor()
}

// euchreRanks are the six ranks of the stripped 24-card deck.
var euchreRanks = []Rank{RankNine, RankTen, RankJack, RankQueen, RankKing, RankAce}

// NewDeck builds the deck shape for a variant: 24 cards for euchre,
// two copies of the same 24 for pinochle, the standard 52 for spades.
func NewDeck(v Variant) []Card {
	switch v {
	case VariantEuchre:
		deck := make([]Card, 0, 24)
		for _, s := range Suits() {
			for _, r := range euchreRanks {
				deck = append(deck, Card{Suit: s, Rank: r})
			}
		}
		return deck
	case VariantPinochle:
		deck := make([]Card, 0, 48)
		for copies := 0; copies < 2; copies++ {
			for _, s := range Suits() {
				for _, r := range euchreRanks {
					deck = append(deck, Card{Suit: s, Rank: r})
				}
			}
		}
		return deck
	case VariantSpades:
		deck := make([]Card, 0, 52)
		for _, s := range Suits() {
			for r := RankTwo; r <= RankAce; r++ {
				deck = append(deck, Card{Suit: s, Rank: r})
			}
		}
		return deck
	default:
		return nil
	}
}

// CounterValue is the pinochle trick-point value of a captured card.
func CounterValue(r Rank) int {
	switch r {
	case RankAce:
		return 11
	case RankTen:
		return 10
	case RankKing:
		return 4
	case RankQueen:
		return 3
	case RankJack:
		return 2
	default:
		return 0
	}
}

// HasCard reports whether the hand contains the card.
func HasCard(hand []Card, c Card) bool {
	for _, h := range hand {
		if h == c {
			return true
		}
	}
	return false
}

// CountCard returns how many copies of the card the hand holds. Only
// the pinochle double deck can yield more than one.
func CountCard(hand []Card, c Card) int {
	n := 0
	for _, h := range hand {
		if h == c {
			n++
		}
	}
	return n
}

// RemoveCard removes one copy of the card from the hand, reporting
// whether it was present.
func RemoveCard(hand *[]Card, c Card) bool {
	for i, h := range *hand {
		if h == c {
			*hand = append((*hand)[:i], (*hand)[i+1:]...)
			return true
		}
	}
	return false
}

// CardsOfSuit filters the hand down to cards of the given natural suit.
func CardsOfSuit(hand []Card, s Suit) []Card {
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if c.Suit == s {
			out = append(out, c)
		}
	}
	return out
}
