package app

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kc92/Desperado-s-Destiny-sub018/internal/domain"
)

func newTestService(seed int64) *Service {
	return NewService(rand.New(rand.NewSource(seed)))
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestStartSessionUnknownVariant(t *testing.T) {
	svc := newTestService(1)
	_, _, err := svc.StartSession(domain.Variant("poker"), domain.SessionOptions{})
	require.ErrorIs(t, err, ErrUnknownVariant)
}

func TestStartSessionEmitsStartedEvent(t *testing.T) {
	svc := newTestService(1)
	sess, events, err := svc.StartSession(domain.VariantEuchre, domain.SessionOptions{WinScore: 7})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, EventSessionStarted, events[0].Kind)

	p := events[0].Payload.(SessionStartedPayload)
	assert.Equal(t, sess.ID, p.SessionID)
	assert.Equal(t, domain.VariantEuchre, p.Variant)
	assert.Equal(t, 7, p.WinScore)
	assert.NotEmpty(t, sess.ID)
}

func TestInitializeRoundEuchreDealsPrivately(t *testing.T) {
	svc := newTestService(2)
	sess, _, err := svc.StartSession(domain.VariantEuchre, domain.SessionOptions{})
	require.NoError(t, err)

	events, err := svc.InitializeRound(sess)
	require.NoError(t, err)
	require.Equal(t, []EventKind{
		EventRoundStarted,
		EventHandDealt, EventHandDealt, EventHandDealt, EventHandDealt,
	}, kinds(events))

	rs := events[0].Payload.(RoundStartedPayload)
	assert.Equal(t, 1, rs.Round)
	assert.NotNil(t, rs.UpCard)
	assert.Nil(t, events[0].TargetSeat, "the round opening is broadcast")

	seen := map[domain.Seat]bool{}
	for _, e := range events[1:] {
		require.NotNil(t, e.TargetSeat, "hands are private")
		p := e.Payload.(HandDealtPayload)
		assert.Equal(t, *e.TargetSeat, p.Seat)
		assert.Len(t, p.Hand, 5)
		seen[p.Seat] = true
	}
	assert.Len(t, seen, domain.NumSeats)
}

func TestInitializeRoundSpadesKeepsHandsHidden(t *testing.T) {
	svc := newTestService(3)
	sess, _, err := svc.StartSession(domain.VariantSpades, domain.SessionOptions{})
	require.NoError(t, err)

	events, err := svc.InitializeRound(sess)
	require.NoError(t, err)
	require.Equal(t, []EventKind{EventRoundStarted}, kinds(events),
		"no hand leaves the deck face-up before a peek or a bid")

	peeked, err := svc.PeekHand(sess, 2)
	require.NoError(t, err)
	require.Len(t, peeked, 1)
	require.Equal(t, EventHandDealt, peeked[0].Kind)
	require.NotNil(t, peeked[0].TargetSeat)
	assert.Equal(t, domain.Seat(2), *peeked[0].TargetSeat)
	assert.Len(t, peeked[0].Payload.(HandDealtPayload).Hand, 13)
}

func TestInitializeRoundOnCompleteSession(t *testing.T) {
	svc := newTestService(4)
	sess, _, err := svc.StartSession(domain.VariantEuchre, domain.SessionOptions{})
	require.NoError(t, err)
	sess.Complete = true

	_, err = svc.InitializeRound(sess)
	require.ErrorIs(t, err, ErrSessionComplete)
}

func TestSubmitBidEuchreOrderUpFixesTrump(t *testing.T) {
	svc := newTestService(5)
	sess, _, err := svc.StartSession(domain.VariantEuchre, domain.SessionOptions{})
	require.NoError(t, err)
	_, err = svc.InitializeRound(sess)
	require.NoError(t, err)

	up := *sess.UpCard
	events, err := svc.SubmitBid(sess, sess.Turn, domain.Bid{OrderUp: true})
	require.NoError(t, err)
	require.Equal(t, []EventKind{EventBidPlaced, EventTrumpFixed}, kinds(events))

	p := events[1].Payload.(TrumpFixedPayload)
	assert.Equal(t, up.Suit, p.Trump)
	assert.True(t, p.OrderedUp)
}

func TestSubmitBidSpadesClosesAfterFour(t *testing.T) {
	svc := newTestService(6)
	sess, _, err := svc.StartSession(domain.VariantSpades, domain.SessionOptions{})
	require.NoError(t, err)
	_, err = svc.InitializeRound(sess)
	require.NoError(t, err)

	for i := 0; i < domain.NumSeats-1; i++ {
		events, err := svc.SubmitBid(sess, sess.Turn, domain.Bid{Tricks: 3})
		require.NoError(t, err)
		require.Equal(t, []EventKind{EventBidPlaced}, kinds(events))
	}

	events, err := svc.SubmitBid(sess, sess.Turn, domain.Bid{Tricks: 3})
	require.NoError(t, err)
	require.Equal(t, []EventKind{EventBidPlaced, EventBiddingClosed}, kinds(events))
	assert.Equal(t, [domain.NumTeams]int{6, 6}, events[1].Payload.(BiddingClosedPayload).TeamBids)
}

func TestSubmitBidPinochleAuctionClose(t *testing.T) {
	svc := newTestService(7)
	sess, _, err := svc.StartSession(domain.VariantPinochle, domain.SessionOptions{})
	require.NoError(t, err)
	_, err = svc.InitializeRound(sess)
	require.NoError(t, err)

	bidder := sess.Turn
	_, err = svc.SubmitBid(sess, bidder, domain.Bid{Points: 100})
	require.NoError(t, err)

	var last []Event
	for sess.Phase == domain.PhaseBidding {
		last, err = svc.SubmitBid(sess, sess.Turn, domain.Bid{Pass: true})
		require.NoError(t, err)
	}

	require.Equal(t, []EventKind{EventBidPlaced, EventBiddingClosed}, kinds(last))
	p := last[1].Payload.(BiddingClosedPayload)
	assert.Equal(t, 100, p.HighBid)
	assert.Equal(t, bidder, p.Maker)
}

func TestSubmitBidPinochleAllPassMisdeal(t *testing.T) {
	svc := newTestService(8)
	sess, _, err := svc.StartSession(domain.VariantPinochle, domain.SessionOptions{})
	require.NoError(t, err)
	_, err = svc.InitializeRound(sess)
	require.NoError(t, err)

	var last []Event
	for i := 0; i < domain.NumSeats; i++ {
		last, err = svc.SubmitBid(sess, sess.Turn, domain.Bid{Pass: true})
		require.NoError(t, err)
	}

	require.Equal(t, []EventKind{EventBidPlaced, EventMisdeal}, kinds(last))
	assert.Equal(t, domain.PhaseDeal, sess.Phase)
}

func TestSubmitBidErrorEmitsNothing(t *testing.T) {
	svc := newTestService(9)
	sess, _, err := svc.StartSession(domain.VariantSpades, domain.SessionOptions{})
	require.NoError(t, err)
	_, err = svc.InitializeRound(sess)
	require.NoError(t, err)

	events, err := svc.SubmitBid(sess, sess.Turn, domain.Bid{Tricks: 20})
	require.ErrorIs(t, err, domain.ErrIllegalBid)
	assert.Empty(t, events)
}

func TestForceAction(t *testing.T) {
	svc := newTestService(10)
	sess, _, err := svc.StartSession(domain.VariantPinochle, domain.SessionOptions{})
	require.NoError(t, err)
	_, err = svc.InitializeRound(sess)
	require.NoError(t, err)

	_, err = svc.ForceAction(sess, domain.NextSeat(sess.Turn))
	require.ErrorIs(t, err, ErrNoForcedAction)

	seat := sess.Turn
	events, err := svc.ForceAction(sess, seat)
	require.NoError(t, err)
	require.Equal(t, []EventKind{EventActionForced, EventBidPlaced}, kinds(events))
	assert.Equal(t, seat, events[0].Payload.(ActionForcedPayload).Seat)
	bid := events[1].Payload.(BidPlacedPayload)
	assert.True(t, bid.Bid.Pass, "a stalled pinochle seat passes")
}

func TestScoreRoundEmitsRewardsOnGameEnd(t *testing.T) {
	svc := newTestService(11)
	sess, _, err := svc.StartSession(domain.VariantEuchre, domain.SessionOptions{})
	require.NoError(t, err)

	// One point away from a 10-point win, maker making exactly.
	sess.Round = 8
	sess.Teams[0].Score = 9
	sess.Phase = domain.PhaseScoring
	sess.Contract = &domain.Contract{Maker: 0, Team: 0}
	sess.TricksWon = [domain.NumSeats]int{2, 1, 1, 1}

	res, events, err := svc.ScoreRound(sess, 100, 0.05)
	require.NoError(t, err)
	assert.True(t, res.Made)
	require.Equal(t, []EventKind{
		EventRoundScored, EventGameEnded,
		EventRewardGranted, EventRewardGranted, EventRewardGranted, EventRewardGranted,
	}, kinds(events))

	assert.Equal(t, 0, events[1].Payload.(GameEndedPayload).WinnerTeam)
	for _, e := range events[2:] {
		p := e.Payload.(RewardGrantedPayload)
		if domain.TeamOf(p.Seat) == 0 {
			assert.Equal(t, int64(95), p.GoldDelta, "winners collect the stake less the rake")
		} else {
			assert.Equal(t, int64(-100), p.GoldDelta)
		}
	}

	done, winner := svc.IsGameComplete(sess)
	assert.True(t, done)
	assert.Equal(t, 0, winner)
}

func TestScoreRoundMidGameEmitsNoRewards(t *testing.T) {
	svc := newTestService(12)
	sess, _, err := svc.StartSession(domain.VariantEuchre, domain.SessionOptions{})
	require.NoError(t, err)

	sess.Round = 1
	sess.Phase = domain.PhaseScoring
	sess.Contract = &domain.Contract{Maker: 0, Team: 0}
	sess.TricksWon = [domain.NumSeats]int{2, 1, 1, 1}

	_, events, err := svc.ScoreRound(sess, 100, 0.05)
	require.NoError(t, err)
	require.Equal(t, []EventKind{EventRoundScored}, kinds(events))
	assert.Equal(t, domain.PhaseDeal, sess.Phase)
}
