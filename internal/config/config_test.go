package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGameConfig(t *testing.T) {
	// Before any config is loaded the getters fall back to safe values.
	if GetStake("deadwood") != 100 {
		t.Errorf("unloaded stake = %d, want the 100 fallback", GetStake("deadwood"))
	}
	if GetTurnDuration() != 30 {
		t.Errorf("unloaded turn duration = %d, want 30", GetTurnDuration())
	}

	path := filepath.Join(t.TempDir(), "game_config.json")
	raw := `{
		"rake_rate": 0.1,
		"default_tier": "deadwood",
		"tiers": [
			{"id": "deadwood", "stake": 100},
			{"id": "el_dorado", "stake": 2500}
		],
		"turn_duration_seconds": 45,
		"variants": {
			"euchre": {"win_score": 7}
		}
	}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := LoadGameConfig(path); err != nil {
		t.Fatalf("LoadGameConfig: %v", err)
	}

	if got := GetStake("el_dorado"); got != 2500 {
		t.Errorf("stake = %d, want 2500", got)
	}
	if got := GetStake(""); got != 100 {
		t.Errorf("default tier stake = %d, want 100", got)
	}
	if got := GetStake("no_such_tier"); got != 100 {
		t.Errorf("unknown tier stake = %d, want the default tier's 100", got)
	}
	if got := GetRake(); got != 0.1 {
		t.Errorf("rake = %v, want 0.1", got)
	}
	if got := GetTurnDuration(); got != 45 {
		t.Errorf("turn duration = %d, want 45", got)
	}

	vc, ok := GetVariantConfig("euchre")
	if !ok || vc.WinScore != 7 {
		t.Errorf("variant config = %+v (%v), want euchre win score 7", vc, ok)
	}
	if _, ok := GetVariantConfig("spades"); ok {
		t.Error("unconfigured variant must report absent")
	}
}
