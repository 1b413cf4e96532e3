package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// StakeTier is one buy-in level offered at the saloon tables.
type StakeTier struct {
	ID    string `json:"id"`
	Stake int64  `json:"stake"`
}

// VariantConfig overrides table rules for one game variant. Zero
// values keep the variant's standard rules.
type VariantConfig struct {
	WinScore  int `json:"win_score"`
	MaxRounds int `json:"max_rounds"`
	MinBid    int `json:"min_bid"`
	BidStep   int `json:"bid_step"`
}

type GameConfig struct {
	// RakeRate is the house cut taken from each winner's gold.
	RakeRate            float64                  `json:"rake_rate"`
	DefaultTier         string                   `json:"default_tier"`
	Tiers               []StakeTier              `json:"tiers"`
	TurnDurationSeconds int                      `json:"turn_duration_seconds"`
	Variants            map[string]VariantConfig `json:"variants"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetStake returns the buy-in for a given tier ID, or the default if not found.
func GetStake(tierID string) int64 {
	if cfg == nil {
		return 100 // Safe default
	}

	target := tierID
	if target == "" {
		target = cfg.DefaultTier
	}

	for _, tier := range cfg.Tiers {
		if tier.ID == target {
			return tier.Stake
		}
	}

	// Fallback to default tier if specific ID not found
	for _, tier := range cfg.Tiers {
		if tier.ID == cfg.DefaultTier {
			return tier.Stake
		}
	}

	return 100
}

// GetRake returns the house cut rate.
func GetRake() float64 {
	if cfg == nil {
		return 0
	}
	return cfg.RakeRate
}

// GetTurnDuration returns the seconds a seat may stall before the
// table forces its action.
func GetTurnDuration() int {
	if cfg == nil || cfg.TurnDurationSeconds <= 0 {
		return 30
	}
	return cfg.TurnDurationSeconds
}

// GetVariantConfig returns the rule overrides for a variant, if any.
func GetVariantConfig(variant string) (VariantConfig, bool) {
	if cfg == nil {
		return VariantConfig{}, false
	}
	vc, ok := cfg.Variants[variant]
	return vc, ok
}
