package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

// BotIdentity is one entry of the saloon's bot roster. Difficulty
// selects the brain; DeviceID lets the bot be provisioned as a real
// Nakama account so wallets and display names work like any player's.
type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "medium", "hard"
	AvatarIndex int    `json:"avatar_index"`
}

var (
	roster        []BotIdentity
	rosterByID    map[string]BotIdentity
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// LoadIdentities reads the bot roster from a JSON file. Safe to call
// more than once; only the first call does work.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		if err := json.Unmarshal(data, &roster); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}

		rosterByID = make(map[string]BotIdentity, len(roster))
		for _, identity := range roster {
			if identity.UserID != "" {
				rosterByID[identity.UserID] = identity
			}
		}
	})
	return loadErr
}

// ProvisionBots authenticates every roster entry against Nakama,
// creating the accounts on first run and stamping them with is_bot
// metadata so clients can tell a drifter from a player.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) error {
	provisionOnce.Do(func() {
		for i := range roster {
			identity := &roster[i]
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: authenticate %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":       true,
				"difficulty":   identity.Difficulty,
				"avatar_index": identity.AvatarIndex,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: update account %s: %v", userID, err)
			}

			rosterByID[userID] = *identity
			logger.Info("ProvisionBots: %s (%s) seated, difficulty %s", identity.DisplayName, userID, identity.Difficulty)
		}
	})
	return nil
}

// GetBotConfig returns the roster entry for a provisioned bot user id.
func GetBotConfig(userID string) (BotIdentity, bool) {
	identity, ok := rosterByID[userID]
	return identity, ok
}

// GetBotUsername returns a bot's username, or "" for non-bots.
func GetBotUsername(userID string) string {
	return rosterByID[userID].Username
}

// GetBotDisplayName returns a bot's display name, falling back to the
// username, or "" for non-bots.
func GetBotDisplayName(userID string) string {
	identity, ok := rosterByID[userID]
	if !ok {
		return ""
	}
	if identity.DisplayName == "" {
		return identity.Username
	}
	return identity.DisplayName
}

// GetBotIdentity picks a roster entry by index, wrapping around the
// pool. With no roster loaded it fabricates a throwaway drifter.
func GetBotIdentity(index int) BotIdentity {
	if len(roster) == 0 {
		return BotIdentity{
			UserID:      fmt.Sprintf("bot-%d", index),
			Username:    fmt.Sprintf("drifter_%d", index),
			DisplayName: fmt.Sprintf("Drifter %d", index),
		}
	}
	return roster[index%len(roster)]
}

// IsBot reports whether the user id belongs to the bot pool. The
// "bot-" prefix covers fallback identities handed out when no roster
// is loaded.
func IsBot(userID string) bool {
	if strings.HasPrefix(userID, "bot-") {
		return true
	}
	_, ok := rosterByID[userID]
	return ok
}
