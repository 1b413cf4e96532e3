package ports

import "context"

// Identity describes how a player appears at the table.
type Identity struct {
	UserID      string
	Username    string
	DisplayName string
	AvatarURL   string
}

// IdentityPort resolves user identities for seat announcements.
type IdentityPort interface {
	// GetIdentity looks up the display identity for a user.
	GetIdentity(ctx context.Context, userID string) (Identity, error)
}
