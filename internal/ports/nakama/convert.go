package nakama

import (
	"github.com/kc92/Desperado-s-Destiny-sub018/internal/domain"
)

// Wire DTOs for the JSON opcode protocol. Suits and ranks travel as
// their numeric domain values so clients and server agree on identity
// without string parsing.

type cardDTO struct {
	Suit int32 `json:"suit"`
	Rank int32 `json:"rank"`
}

type bidDTO struct {
	Pass     bool   `json:"pass,omitempty"`
	OrderUp  bool   `json:"order_up,omitempty"`
	Suit     *int32 `json:"suit,omitempty"`
	Alone    bool   `json:"alone,omitempty"`
	Tricks   int    `json:"tricks,omitempty"`
	Nil      bool   `json:"nil,omitempty"`
	BlindNil bool   `json:"blind_nil,omitempty"`
	Points   int    `json:"points,omitempty"`
}

type meldDTO struct {
	Type    int  `json:"type"`
	Suit    int32 `json:"suit"`
	Doubled bool `json:"doubled,omitempty"`
}

func toCardDTO(c domain.Card) cardDTO {
	return cardDTO{Suit: int32(c.Suit), Rank: int32(c.Rank)}
}

func toCardDTOs(cards []domain.Card) []cardDTO {
	out := make([]cardDTO, len(cards))
	for i, c := range cards {
		out[i] = toCardDTO(c)
	}
	return out
}

func fromCardDTO(d cardDTO) domain.Card {
	return domain.Card{Suit: domain.Suit(d.Suit), Rank: domain.Rank(d.Rank)}
}

func toBidDTO(b domain.Bid) bidDTO {
	d := bidDTO{
		Pass:     b.Pass,
		OrderUp:  b.OrderUp,
		Alone:    b.Alone,
		Tricks:   b.Tricks,
		Nil:      b.Nil,
		BlindNil: b.BlindNil,
		Points:   b.Points,
	}
	if b.Suit != nil {
		s := int32(*b.Suit)
		d.Suit = &s
	}
	return d
}

func fromBidDTO(d bidDTO) domain.Bid {
	b := domain.Bid{
		Pass:     d.Pass,
		OrderUp:  d.OrderUp,
		Alone:    d.Alone,
		Tricks:   d.Tricks,
		Nil:      d.Nil,
		BlindNil: d.BlindNil,
		Points:   d.Points,
	}
	if d.Suit != nil {
		s := domain.Suit(*d.Suit)
		b.Suit = &s
	}
	return b
}

func toMeldDTOs(melds []domain.Meld) []meldDTO {
	out := make([]meldDTO, len(melds))
	for i, m := range melds {
		out[i] = meldDTO{Type: int(m.Type), Suit: int32(m.Suit), Doubled: m.Doubled}
	}
	return out
}

func fromMeldDTOs(dtos []meldDTO) []domain.Meld {
	out := make([]domain.Meld, len(dtos))
	for i, d := range dtos {
		out[i] = domain.Meld{Type: domain.MeldType(d.Type), Suit: domain.Suit(d.Suit), Doubled: d.Doubled}
	}
	return out
}

// Client request payloads.

type startGameRequest struct {
	Variant string `json:"variant"`
	Tier    string `json:"tier,omitempty"`
}

type submitBidRequest struct {
	Bid bidDTO `json:"bid"`
}

type declareTrumpRequest struct {
	Suit int32 `json:"suit"`
}

type discardCardRequest struct {
	Card cardDTO `json:"card"`
}

type showMeldRequest struct {
	Melds []meldDTO `json:"melds"`
}

type playCardRequest struct {
	Card cardDTO `json:"card"`
}

// Server event payloads.

type playerStateDTO struct {
	UserID      string `json:"user_id"`
	Seat        int    `json:"seat"`
	IsOwner     bool   `json:"is_owner"`
	DisplayName string `json:"display_name"`
	Team        int    `json:"team"`
}

type tableStateEvent struct {
	Seats     []string         `json:"seats"`
	OwnerSeat int              `json:"owner_seat"`
	Variant   string           `json:"variant"`
	Players   []playerStateDTO `json:"players"`
}

type sessionStartedEvent struct {
	SessionID string `json:"session_id"`
	Variant   string `json:"variant"`
	WinScore  int    `json:"win_score"`
	MaxRounds int    `json:"max_rounds"`
}

type roundStartedEvent struct {
	Round     int      `json:"round"`
	Dealer    int      `json:"dealer"`
	FirstTurn int      `json:"first_turn"`
	UpCard    *cardDTO `json:"up_card,omitempty"`
}

type handDealtEvent struct {
	Seat int       `json:"seat"`
	Hand []cardDTO `json:"hand"`
}

type bidPlacedEvent struct {
	Seat     int    `json:"seat"`
	Bid      bidDTO `json:"bid"`
	NextTurn int    `json:"next_turn"`
}

type trumpFixedEvent struct {
	Trump     int32 `json:"trump"`
	Maker     int   `json:"maker"`
	Alone     bool  `json:"alone,omitempty"`
	OrderedUp bool  `json:"ordered_up,omitempty"`
}

type biddingClosedEvent struct {
	TeamBids [2]int `json:"team_bids"`
	HighBid  int    `json:"high_bid,omitempty"`
	Maker    int    `json:"maker"`
}

type cardDiscardedEvent struct {
	Seat int     `json:"seat"`
	Card cardDTO `json:"card"`
}

type meldShownEvent struct {
	Seat       int       `json:"seat"`
	Melds      []meldDTO `json:"melds"`
	Points     int       `json:"points"`
	TeamPoints int       `json:"team_points"`
}

type cardPlayedEvent struct {
	Seat     int     `json:"seat"`
	Card     cardDTO `json:"card"`
	NextTurn int     `json:"next_turn"`
}

type trickWonEvent struct {
	Winner      int  `json:"winner"`
	TrickNumber int  `json:"trick_number"`
	RoundDone   bool `json:"round_done"`
}

type roundScoredEvent struct {
	Round      int    `json:"round"`
	Summary    string `json:"summary"`
	TeamPoints [2]int `json:"team_points"`
	TeamScores [2]int `json:"team_scores"`
	TeamBags   [2]int `json:"team_bags"`
}

type misdealEvent struct {
	Round   int    `json:"round"`
	Summary string `json:"summary"`
}

type gameEndedEvent struct {
	WinnerTeam int    `json:"winner_team"`
	TeamScores [2]int `json:"team_scores"`
	Rounds     int    `json:"rounds"`
}

type rewardGrantedEvent struct {
	Seat            int   `json:"seat"`
	GoldDelta       int64 `json:"gold_delta"`
	XPDelta         int64 `json:"xp_delta"`
	ReputationDelta int64 `json:"reputation_delta"`
}

type actionForcedEvent struct {
	Seat int `json:"seat"`
}

type gameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
