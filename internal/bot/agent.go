package bot

import (
	"github.com/kc92/Desperado-s-Destiny-sub018/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Act asks the agent to choose its action for the current state.
func (a *Agent) Act(sess *domain.Session, seat domain.Seat) (domain.Action, error) {
	return a.Strategy.ChooseAction(sess, seat)
}

// OnGameEvent notifies the agent of a game event.
func (a *Agent) OnGameEvent(event interface{}) {
	a.Strategy.OnEvent(event)
}
