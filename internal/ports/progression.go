package ports

import "context"

// ProgressionUpdate carries the experience and reputation change for a user
// after a finished table.
type ProgressionUpdate struct {
	UserID          string
	XPDelta         int64
	ReputationDelta int64
	Metadata        map[string]interface{}
}

// ProgressionPort defines the interface for character progression.
type ProgressionPort interface {
	// ApplyUpdates records XP and reputation changes for one or more users.
	ApplyUpdates(ctx context.Context, updates []ProgressionUpdate) error
}
