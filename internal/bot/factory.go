package bot

import (
	"fmt"
)

// BotLevel selects a strategy strength.
type BotLevel int

const (
	BotLevelBasic BotLevel = iota
	BotLevelSharp
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelBasic:
		return &BasicBot{}, nil
	case BotLevelSharp:
		return &SharpBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// levelForDifficulty maps an identity's difficulty label to a level.
func levelForDifficulty(difficulty string) BotLevel {
	switch difficulty {
	case "hard", "medium":
		return BotLevelSharp
	default:
		return BotLevelBasic
	}
}

// NewAgent builds an agent for a provisioned bot user id, choosing the
// strategy from the identity's difficulty.
func NewAgent(userID string) (*Agent, error) {
	level := BotLevelBasic
	name := userID
	if identity, ok := GetBotConfig(userID); ok {
		level = levelForDifficulty(identity.Difficulty)
		name = identity.Username
	}

	brain, err := NewBrain(level)
	if err != nil {
		return nil, err
	}

	return &Agent{
		ID:       userID,
		Name:     name,
		Strategy: brain,
	}, nil
}
