package domain

import "errors"

// Every rejected action leaves the session untouched; callers may
// resubmit a corrected action. None of these conditions is fatal.
var (
	// ErrOutOfTurn is returned when the acting seat is not the current actor.
	ErrOutOfTurn = errors.New("action out of turn")
	// ErrIllegalBid is returned for bids below minimum or increment, nil
	// bids with nonzero tricks, bids after bidding closed, and the stuck
	// dealer attempting to pass.
	ErrIllegalBid = errors.New("illegal bid")
	// ErrIllegalPlay is returned for cards not in hand or cards violating
	// follow-suit, broken-trump or over-trump legality.
	ErrIllegalPlay = errors.New("illegal play")
	// ErrInvalidMeld is returned when a declared meld is not actually
	// present in the hand under the current trump.
	ErrInvalidMeld = errors.New("invalid meld")
	// ErrPhaseViolation is returned when the action type does not belong
	// to the current lifecycle phase.
	ErrPhaseViolation = errors.New("action not valid in current phase")
)
