package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/kc92/Desperado-s-Destiny-sub018/internal/ports"
)

// currencyGold is the wallet key holding a player's table money.
const currencyGold = "gold"

// NakamaEconomyAdapter implements ports.EconomyPort on Nakama wallets.
// Stakes and winnings move exclusively through WalletUpdate so the
// ledger of every settlement survives in the wallet history.
type NakamaEconomyAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaEconomyAdapter creates a new economy adapter.
func NewNakamaEconomyAdapter(nk runtime.NakamaModule) *NakamaEconomyAdapter {
	return &NakamaEconomyAdapter{nk: nk}
}

// GetBalance reads a user's gold. A wallet without the gold key is a
// fresh account and reads as zero.
func (a *NakamaEconomyAdapter) GetBalance(ctx context.Context, userID string) (int64, error) {
	account, err := a.nk.AccountGetId(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account %s: %w", userID, err)
	}

	var wallet map[string]int64
	if err := json.Unmarshal([]byte(account.Wallet), &wallet); err != nil {
		return 0, fmt.Errorf("failed to unmarshal wallet for %s: %w", userID, err)
	}
	return wallet[currencyGold], nil
}

// UpdateBalances settles a batch of gold deltas. Zero deltas are
// skipped so a drawn game writes nothing to the ledger.
func (a *NakamaEconomyAdapter) UpdateBalances(ctx context.Context, updates []ports.WalletUpdate) error {
	for _, update := range updates {
		if update.Amount == 0 {
			continue
		}

		changes := map[string]int64{currencyGold: update.Amount}
		if _, _, err := a.nk.WalletUpdate(ctx, update.UserID, changes, update.Metadata, true); err != nil {
			return fmt.Errorf("failed to settle gold for user %s: %w", update.UserID, err)
		}
	}
	return nil
}
