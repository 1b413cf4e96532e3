package bot

import (
	"errors"

	"github.com/kc92/Desperado-s-Destiny-sub018/internal/domain"
)

var errNoAction = errors.New("no action available for seat")

// BasicBot plays the engine's own default action: it passes on
// bidding, shows the best melds and dumps its lowest legal card.
type BasicBot struct{}

func (b *BasicBot) ChooseAction(sess *domain.Session, seat domain.Seat) (domain.Action, error) {
	action, ok := sess.DefaultAction(seat)
	if !ok {
		return domain.Action{}, errNoAction
	}
	return action, nil
}

func (b *BasicBot) OnEvent(event interface{}) {}

// SharpBot bids from simple hand-strength estimates and plays to win
// tricks cheaply. Anything it has no opinion on falls back to the
// engine default.
type SharpBot struct{}

func (b *SharpBot) ChooseAction(sess *domain.Session, seat domain.Seat) (domain.Action, error) {
	switch sess.Phase {
	case domain.PhaseBidding:
		if bid, ok := b.chooseBid(sess, seat); ok {
			return domain.Action{Type: domain.ActionBid, Bid: bid}, nil
		}
	case domain.PhasePlaying:
		if card, ok := b.chooseCard(sess, seat); ok {
			return domain.Action{Type: domain.ActionPlayCard, Card: card}, nil
		}
	}

	action, ok := sess.DefaultAction(seat)
	if !ok {
		return domain.Action{}, errNoAction
	}
	return action, nil
}

func (b *SharpBot) OnEvent(event interface{}) {}

func (b *SharpBot) chooseBid(sess *domain.Session, seat domain.Seat) (domain.Bid, bool) {
	hand := sess.Hands[seat]

	switch sess.Variant {
	case domain.VariantEuchre:
		if sess.Auction.Round == 1 {
			if sess.UpCard == nil {
				return domain.Bid{}, false
			}
			suit := sess.UpCard.Suit
			count := trumpCount(hand, suit)
			if count >= 3 {
				return domain.Bid{OrderUp: true, Alone: count >= 4 && hasRightBower(hand, suit)}, true
			}
			return domain.Bid{Pass: true}, true
		}

		// Round 2: call the strongest suit other than the turned-down
		// one, or pass and let the engine handle a stuck dealer.
		var turnedDown domain.Suit
		if sess.UpCard != nil {
			turnedDown = sess.UpCard.Suit
		}
		bestSuit := turnedDown
		bestCount := 0
		for _, suit := range domain.Suits() {
			if suit == turnedDown {
				continue
			}
			if count := trumpCount(hand, suit); count > bestCount {
				bestSuit, bestCount = suit, count
			}
		}
		if bestCount >= 3 {
			suit := bestSuit
			return domain.Bid{Suit: &suit, Alone: bestCount >= 4 && hasRightBower(hand, suit)}, true
		}
		if seat == sess.Dealer {
			// Stuck dealer must name something. Defer to the default.
			return domain.Bid{}, false
		}
		return domain.Bid{Pass: true}, true

	case domain.VariantSpades:
		estimate := 0
		for _, c := range hand {
			switch {
			case c.Rank == domain.RankAce:
				estimate++
			case c.Rank == domain.RankKing:
				estimate++
			}
		}
		if spades := len(domain.CardsOfSuit(hand, domain.SuitSpades)); spades > 3 {
			estimate += spades - 3
		}
		if estimate == 0 {
			return domain.Bid{Nil: true}, true
		}
		if estimate > 13 {
			estimate = 13
		}
		return domain.Bid{Tricks: estimate}, true

	case domain.VariantPinochle:
		estimate := domain.MeldValue(domain.BestMelds(hand, longestHandSuit(hand))) + counterEstimate(hand)
		target := sess.MinBid
		if sess.Auction.HasBid {
			target = sess.Auction.HighBid + sess.BidStep
		}
		if estimate >= target {
			return domain.Bid{Points: target}, true
		}
		return domain.Bid{Pass: true}, true
	}

	return domain.Bid{}, false
}

func (b *SharpBot) chooseCard(sess *domain.Session, seat domain.Seat) (domain.Card, bool) {
	legal := sess.Playable(seat)
	if len(legal) == 0 {
		return domain.Card{}, false
	}

	leader, open := sess.TrickLeader()
	if !open {
		// Leading: put pressure on with the strongest card.
		return strongest(sess, legal), true
	}

	if domain.TeamOf(leader) == domain.TeamOf(seat) {
		// Partner already has the trick, slough the weakest card.
		return weakest(sess, legal), true
	}

	// Take the trick with the cheapest card that wins it, or give up
	// the weakest card when nothing wins.
	winning := sess.CardStrength(cardOfSeat(sess, leader))
	var best *domain.Card
	for i := range legal {
		c := legal[i]
		if sess.CardStrength(c) <= winning {
			continue
		}
		if best == nil || sess.CardStrength(c) < sess.CardStrength(*best) {
			best = &legal[i]
		}
	}
	if best != nil {
		return *best, true
	}
	return weakest(sess, legal), true
}

// cardOfSeat returns the card the seat contributed to the open trick.
func cardOfSeat(sess *domain.Session, seat domain.Seat) domain.Card {
	for _, play := range sess.Trick {
		if play.Seat == seat {
			return play.Card
		}
	}
	return domain.Card{}
}

func strongest(sess *domain.Session, cards []domain.Card) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if sess.CardStrength(c) > sess.CardStrength(best) {
			best = c
		}
	}
	return best
}

func weakest(sess *domain.Session, cards []domain.Card) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if sess.CardStrength(c) < sess.CardStrength(best) {
			best = c
		}
	}
	return best
}

// trumpCount counts cards that would be trump if the suit were named,
// including the left bower.
func trumpCount(hand []domain.Card, trump domain.Suit) int {
	count := 0
	for _, c := range hand {
		if c.Suit == trump || c.IsLeftBower(trump) {
			count++
		}
	}
	return count
}

func hasRightBower(hand []domain.Card, trump domain.Suit) bool {
	for _, c := range hand {
		if c.IsRightBower(trump) {
			return true
		}
	}
	return false
}

func longestHandSuit(hand []domain.Card) domain.Suit {
	best := domain.SuitSpades
	bestCount := -1
	for _, suit := range domain.Suits() {
		if count := len(domain.CardsOfSuit(hand, suit)); count > bestCount {
			best, bestCount = suit, count
		}
	}
	return best
}

// counterEstimate guesses the counters a pinochle hand will pull in.
func counterEstimate(hand []domain.Card) int {
	total := 0
	for _, c := range hand {
		if c.Rank == domain.RankAce || c.Rank == domain.RankTen {
			total += domain.CounterValue(c.Rank)
		}
	}
	return total
}
