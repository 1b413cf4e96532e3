package nakama

import (
	"context"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/kc92/Desperado-s-Destiny-sub018/internal/ports"
)

// NakamaIdentityAdapter implements ports.IdentityPort using Nakama accounts.
type NakamaIdentityAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaIdentityAdapter creates a new identity adapter.
func NewNakamaIdentityAdapter(nk runtime.NakamaModule) *NakamaIdentityAdapter {
	return &NakamaIdentityAdapter{
		nk: nk,
	}
}

// GetIdentity looks up the display identity for a user.
func (a *NakamaIdentityAdapter) GetIdentity(ctx context.Context, userID string) (ports.Identity, error) {
	account, err := a.nk.AccountGetId(ctx, userID)
	if err != nil {
		return ports.Identity{}, fmt.Errorf("failed to get account: %w", err)
	}

	user := account.GetUser()
	return ports.Identity{
		UserID:      userID,
		Username:    user.GetUsername(),
		DisplayName: user.GetDisplayName(),
		AvatarURL:   user.GetAvatarUrl(),
	}, nil
}
