package nakama

import (
	"context"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/kc92/Desperado-s-Destiny-sub018/internal/ports"
)

// NakamaProgressionAdapter implements ports.ProgressionPort on top of
// Nakama's wallet system. XP and reputation live as wallet keys next
// to gold so a single account fetch returns the full character sheet.
type NakamaProgressionAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaProgressionAdapter creates a new progression adapter.
func NewNakamaProgressionAdapter(nk runtime.NakamaModule) *NakamaProgressionAdapter {
	return &NakamaProgressionAdapter{
		nk: nk,
	}
}

// ApplyUpdates records XP and reputation changes for one or more users.
func (a *NakamaProgressionAdapter) ApplyUpdates(ctx context.Context, updates []ports.ProgressionUpdate) error {
	for _, update := range updates {
		if update.XPDelta == 0 && update.ReputationDelta == 0 {
			continue
		}

		changes := map[string]int64{}
		if update.XPDelta != 0 {
			changes["xp"] = update.XPDelta
		}
		if update.ReputationDelta != 0 {
			changes["reputation"] = update.ReputationDelta
		}

		_, _, err := a.nk.WalletUpdate(ctx, update.UserID, changes, update.Metadata, true)
		if err != nil {
			return fmt.Errorf("failed to update progression for user %s: %w", update.UserID, err)
		}
	}
	return nil
}
