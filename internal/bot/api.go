package bot

import (
	"github.com/kc92/Desperado-s-Destiny-sub018/internal/domain"
)

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	ChooseAction(sess *domain.Session, seat domain.Seat) (domain.Action, error)
	OnEvent(event interface{})
}
