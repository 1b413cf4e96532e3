package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kc92/Desperado-s-Destiny-sub018/internal/domain"
)

func finishedSession(winner int) *domain.Session {
	s := domain.NewSession("t", domain.VariantSpades, domain.SessionOptions{})
	s.Complete = true
	s.WinnerTeam = winner
	return s
}

func TestComputeRewardsIncompleteSession(t *testing.T) {
	s := domain.NewSession("t", domain.VariantSpades, domain.SessionOptions{})
	assert.Nil(t, ComputeRewards(s, 100, 0.05))
}

func TestComputeRewardsWinAndLoss(t *testing.T) {
	rewards := ComputeRewards(finishedSession(1), 500, 0.1)
	require.Len(t, rewards, domain.NumSeats)

	for _, r := range rewards {
		if domain.TeamOf(r.Seat) == 1 {
			assert.Equal(t, int64(450), r.GoldDelta)
			assert.Equal(t, int64(xpWin), r.XPDelta)
			assert.Equal(t, int64(repWin), r.ReputationDelta)
		} else {
			assert.Equal(t, int64(-500), r.GoldDelta)
			assert.Equal(t, int64(xpLoss), r.XPDelta)
			assert.Equal(t, int64(repLoss), r.ReputationDelta)
		}
	}
}

func TestComputeRewardsDrawMovesNoGold(t *testing.T) {
	rewards := ComputeRewards(finishedSession(-1), 500, 0.1)
	require.Len(t, rewards, domain.NumSeats)

	for _, r := range rewards {
		assert.Zero(t, r.GoldDelta)
		assert.Equal(t, int64(xpDraw), r.XPDelta)
		assert.Zero(t, r.ReputationDelta)
	}
}

func TestComputeRewardsZeroRake(t *testing.T) {
	rewards := ComputeRewards(finishedSession(0), 100, 0)
	for _, r := range rewards {
		if domain.TeamOf(r.Seat) == 0 {
			assert.Equal(t, int64(100), r.GoldDelta)
		}
	}
}
