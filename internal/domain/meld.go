package domain

import "fmt"

// MeldType identifies one scoring combination from the pinochle
// catalog.
type MeldType int

const (
	// MeldRun is A-10-K-Q-J of trump.
	MeldRun MeldType = iota
	// MeldRoyalMarriage is K-Q of trump outside a run.
	MeldRoyalMarriage
	// MeldMarriage is K-Q of one non-trump suit.
	MeldMarriage
	// MeldDix is the trump nine.
	MeldDix
	// MeldAcesAround .. MeldJacksAround hold one of the rank in every suit.
	MeldAcesAround
	MeldKingsAround
	MeldQueensAround
	MeldJacksAround
	// MeldPinochle is the jack of diamonds with the queen of spades.
	MeldPinochle
)

func (t MeldType) String() string {
	switch t {
	case MeldRun:
		return "run"
	case MeldRoyalMarriage:
		return "royal marriage"
	case MeldMarriage:
		return "marriage"
	case MeldDix:
		return "dix"
	case MeldAcesAround:
		return "aces around"
	case MeldKingsAround:
		return "kings around"
	case MeldQueensAround:
		return "queens around"
	case MeldJacksAround:
		return "jacks around"
	case MeldPinochle:
		return "pinochle"
	default:
		return "unknown"
	}
}

var meldValues = map[MeldType]int{
	MeldRun:           150,
	MeldRoyalMarriage: 40,
	MeldMarriage:      20,
	MeldDix:           10,
	MeldAcesAround:    100,
	MeldKingsAround:   80,
	MeldQueensAround:  60,
	MeldJacksAround:   40,
	MeldPinochle:      40,
}

// Meld is one declared combination. Suit carries the marriage suit and
// is the trump suit for run, royal marriage and dix; it is ignored for
// arounds and the pinochle combo. Doubled means the hand holds both
// deck copies of every constituent card, worth twice the base value.
type Meld struct {
	Type    MeldType
	Suit    Suit
	Doubled bool
}

// Value returns the meld's point value.
func (m Meld) Value() int {
	v := meldValues[m.Type]
	if m.Doubled {
		v *= 2
	}
	return v
}

// MeldValue sums a meld selection.
func MeldValue(melds []Meld) int {
	total := 0
	for _, m := range melds {
		total += m.Value()
	}
	return total
}

// aroundRank maps an around meld to its rank.
func aroundRank(t MeldType) (Rank, bool) {
	switch t {
	case MeldAcesAround:
		return RankAce, true
	case MeldKingsAround:
		return RankKing, true
	case MeldQueensAround:
		return RankQueen, true
	case MeldJacksAround:
		return RankJack, true
	}
	return 0, false
}

// BestMelds returns the highest-value consistent meld selection for a
// hand under the given trump. The only exclusivity in the catalog is
// that a K-Q pair consumed by a run cannot also count as a royal
// marriage; everything else may share cards across meld types, so a
// counting pass per type is already optimal.
func BestMelds(hand []Card, trump Suit) []Meld {
	count := func(s Suit, r Rank) int { return CountCard(hand, Card{Suit: s, Rank: r}) }
	var melds []Meld

	add := func(t MeldType, suit Suit, n int) {
		switch n {
		case 1:
			melds = append(melds, Meld{Type: t, Suit: suit})
		case 2:
			melds = append(melds, Meld{Type: t, Suit: suit, Doubled: true})
		}
	}

	runs := count(trump, RankAce)
	for _, r := range []Rank{RankTen, RankKing, RankQueen, RankJack} {
		if n := count(trump, r); n < runs {
			runs = n
		}
	}
	add(MeldRun, trump, runs)

	kqPairs := count(trump, RankKing)
	if q := count(trump, RankQueen); q < kqPairs {
		kqPairs = q
	}
	add(MeldRoyalMarriage, trump, kqPairs-runs)

	for _, suit := range Suits() {
		if suit == trump {
			continue
		}
		pairs := count(suit, RankKing)
		if q := count(suit, RankQueen); q < pairs {
			pairs = q
		}
		add(MeldMarriage, suit, pairs)
	}

	add(MeldDix, trump, count(trump, RankNine))

	for _, t := range []MeldType{MeldAcesAround, MeldKingsAround, MeldQueensAround, MeldJacksAround} {
		r, _ := aroundRank(t)
		n := 2
		for _, suit := range Suits() {
			if c := count(suit, r); c < n {
				n = c
			}
		}
		add(t, trump, n)
	}

	pin := count(SuitDiamonds, RankJack)
	if q := count(SuitSpades, RankQueen); q < pin {
		pin = q
	}
	add(MeldPinochle, trump, pin)

	return melds
}

// ValidateMelds checks a declared meld selection against the hand and
// trump: every constituent card must be held in sufficient copies, no
// meld may be declared twice, and a run's K-Q cannot be re-counted as
// a royal marriage.
func ValidateMelds(hand []Card, trump Suit, claimed []Meld) error {
	count := func(s Suit, r Rank) int { return CountCard(hand, Card{Suit: s, Rank: r}) }
	units := func(m Meld) int {
		if m.Doubled {
			return 2
		}
		return 1
	}

	seen := make(map[MeldType]map[Suit]bool)
	runUnits, royalUnits := 0, 0

	for _, m := range claimed {
		if _, ok := meldValues[m.Type]; !ok {
			return fmt.Errorf("%w: unknown meld type %d", ErrInvalidMeld, m.Type)
		}
		if seen[m.Type] == nil {
			seen[m.Type] = make(map[Suit]bool)
		}
		if seen[m.Type][m.Suit] {
			return fmt.Errorf("%w: %s declared twice", ErrInvalidMeld, m.Type)
		}
		seen[m.Type][m.Suit] = true
		n := units(m)

		switch m.Type {
		case MeldRun:
			if m.Suit != trump {
				return fmt.Errorf("%w: run must be in trump", ErrInvalidMeld)
			}
			for _, r := range []Rank{RankAce, RankTen, RankKing, RankQueen, RankJack} {
				if count(trump, r) < n {
					return fmt.Errorf("%w: run missing %s of trump", ErrInvalidMeld, r)
				}
			}
			runUnits += n
		case MeldRoyalMarriage:
			if m.Suit != trump {
				return fmt.Errorf("%w: royal marriage must be in trump", ErrInvalidMeld)
			}
			if count(trump, RankKing) < n || count(trump, RankQueen) < n {
				return fmt.Errorf("%w: royal marriage not held", ErrInvalidMeld)
			}
			royalUnits += n
		case MeldMarriage:
			if m.Suit == trump {
				return fmt.Errorf("%w: trump K-Q melds as a royal marriage", ErrInvalidMeld)
			}
			if count(m.Suit, RankKing) < n || count(m.Suit, RankQueen) < n {
				return fmt.Errorf("%w: %s marriage not held", ErrInvalidMeld, m.Suit)
			}
		case MeldDix:
			if count(trump, RankNine) < n {
				return fmt.Errorf("%w: dix not held", ErrInvalidMeld)
			}
		case MeldAcesAround, MeldKingsAround, MeldQueensAround, MeldJacksAround:
			r, _ := aroundRank(m.Type)
			for _, suit := range Suits() {
				if count(suit, r) < n {
					return fmt.Errorf("%w: %s not held", ErrInvalidMeld, m.Type)
				}
			}
		case MeldPinochle:
			if count(SuitDiamonds, RankJack) < n || count(SuitSpades, RankQueen) < n {
				return fmt.Errorf("%w: pinochle not held", ErrInvalidMeld)
			}
		}
	}

	kqPairs := count(trump, RankKing)
	if q := count(trump, RankQueen); q < kqPairs {
		kqPairs = q
	}
	if runUnits+royalUnits > kqPairs {
		return fmt.Errorf("%w: the run's K-Q cannot also count as a royal marriage", ErrInvalidMeld)
	}
	return nil
}

// ShowMeld records the seat's declared melds after trump is named.
// Seats show in order; once all four have shown, trick play opens with
// the bid winner leading.
func (s *Session) ShowMeld(seat Seat, melds []Meld) error {
	if s.Phase != PhaseMeld {
		return ErrPhaseViolation
	}
	if seat != s.Turn {
		return ErrOutOfTurn
	}
	if err := ValidateMelds(s.Hands[seat], *s.Trump, melds); err != nil {
		return err
	}

	s.Melds[seat] = melds
	s.MeldsShown[seat] = true
	s.MeldPoints[TeamOf(seat)] += MeldValue(melds)

	for i := 1; i <= NumSeats; i++ {
		next := (seat + Seat(i)) % NumSeats
		if !s.MeldsShown[next] {
			s.Turn = next
			return nil
		}
	}
	s.Phase = PhasePlaying
	s.Turn = s.firstLeader()
	return nil
}
