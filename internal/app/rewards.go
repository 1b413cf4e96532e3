package app

import "github.com/kc92/Desperado-s-Destiny-sub018/internal/domain"

// Reward is the per-seat settlement derived from a finished game. The
// engine only emits these; applying them to wallets and profiles is
// the collaborators' job.
type Reward struct {
	Seat            domain.Seat
	GoldDelta       int64
	XPDelta         int64
	ReputationDelta int64
}

// Experience grants for finishing a game.
const (
	xpWin  = 50
	xpLoss = 20
	xpDraw = 30

	repWin  = 2
	repLoss = -1
)

// ComputeRewards settles a completed session: losers pay the table
// stake, winners collect it less the house rake, and everyone earns
// experience. A drawn max-round finish moves no gold.
func ComputeRewards(sess *domain.Session, stake int64, rake float64) []Reward {
	done, winner := sess.IsGameComplete()
	if !done {
		return nil
	}

	rewards := make([]Reward, 0, domain.NumSeats)
	for seat := domain.Seat(0); seat < domain.NumSeats; seat++ {
		r := Reward{Seat: seat}
		switch {
		case winner < 0:
			r.XPDelta = xpDraw
		case domain.TeamOf(seat) == winner:
			r.GoldDelta = stake - int64(float64(stake)*rake)
			r.XPDelta = xpWin
			r.ReputationDelta = repWin
		default:
			r.GoldDelta = -stake
			r.XPDelta = xpLoss
			r.ReputationDelta = repLoss
		}
		rewards = append(rewards, r)
	}
	return rewards
}
