package domain

// ActionType tags a submitted table action.
type ActionType int

const (
	ActionBid ActionType = iota
	ActionDeclareTrump
	ActionDiscard
	ActionShowMeld
	ActionPlayCard
)

// Action is one seat decision in envelope form, used by bots, the turn
// timer and the simulator. Interactive callers use the typed Session
// methods directly.
type Action struct {
	Type  ActionType
	Bid   Bid
	Suit  Suit
	Card  Card
	Melds []Meld
}

// Apply dispatches an action to the matching session operation.
func (s *Session) Apply(seat Seat, a Action) error {
	switch a.Type {
	case ActionBid:
		return s.SubmitBid(seat, a.Bid)
	case ActionDeclareTrump:
		return s.DeclareTrump(seat, a.Suit)
	case ActionDiscard:
		return s.DiscardCard(seat, a.Card)
	case ActionShowMeld:
		return s.ShowMeld(seat, a.Melds)
	case ActionPlayCard:
		_, _, _, err := s.PlayCard(seat, a.Card)
		return err
	default:
		return ErrPhaseViolation
	}
}

// CurrentActor returns the seat expected to act, when one exists.
func (s *Session) CurrentActor() (Seat, bool) {
	switch s.Phase {
	case PhaseBidding, PhaseTrumpSelect, PhaseDiscard, PhaseMeld, PhasePlaying:
		return s.Turn, true
	default:
		return 0, false
	}
}

// DefaultAction produces the forced action for a stalled seat: pass
// where passing is legal, the minimum bid where it is not, the best
// meld selection, and the lowest legal card. Every returned action is
// accepted by Apply for the session state it was built from.
func (s *Session) DefaultAction(seat Seat) (Action, bool) {
	actor, ok := s.CurrentActor()
	if !ok || actor != seat {
		return Action{}, false
	}

	switch s.Phase {
	case PhaseBidding:
		return Action{Type: ActionBid, Bid: s.defaultBid(seat)}, true
	case PhaseTrumpSelect:
		return Action{Type: ActionDeclareTrump, Suit: longestSuit(s.Hands[seat], nil)}, true
	case PhaseDiscard:
		return Action{Type: ActionDiscard, Card: lowestCard(s, s.Hands[seat])}, true
	case PhaseMeld:
		return Action{Type: ActionShowMeld, Melds: BestMelds(s.Hands[seat], *s.Trump)}, true
	case PhasePlaying:
		legal := s.Playable(seat)
		if len(legal) == 0 {
			return Action{}, false
		}
		return Action{Type: ActionPlayCard, Card: lowestCard(s, legal)}, true
	}
	return Action{}, false
}

// defaultBid is the auto-pass equivalent per variant. The stuck euchre
// dealer names their longest non-turned-down suit; a spades seat bids
// zero tricks.
func (s *Session) defaultBid(seat Seat) Bid {
	switch s.Variant {
	case VariantEuchre:
		if s.Auction.Round == 2 && seat == s.Dealer {
			var exclude *Suit
			if s.UpCard != nil {
				exclude = &s.UpCard.Suit
			}
			suit := longestSuit(s.Hands[seat], exclude)
			return Bid{Suit: &suit}
		}
		return Bid{Pass: true}
	case VariantSpades:
		return Bid{Tricks: 0}
	default:
		return Bid{Pass: true}
	}
}

// longestSuit picks the suit the hand holds most of, skipping an
// excluded suit.
func longestSuit(hand []Card, exclude *Suit) Suit {
	best := SuitSpades
	bestCount := -1
	for _, suit := range Suits() {
		if exclude != nil && suit == *exclude {
			continue
		}
		n := len(CardsOfSuit(hand, suit))
		if n > bestCount {
			best = suit
			bestCount = n
		}
	}
	return best
}

// lowestCard returns the weakest card by the variant's trick ordering,
// so forced plays give away as little as possible.
func lowestCard(s *Session, cards []Card) Card {
	r := rulesFor(s.Variant)
	lead, ok := s.LeadSuit()
	best := cards[0]
	for _, c := range cards[1:] {
		cl, bl := lead, lead
		if !ok {
			cl, bl = c.Suit, best.Suit
		}
		if r.strength(s, c, cl) < r.strength(s, best, bl) {
			best = c
		}
	}
	return best
}
