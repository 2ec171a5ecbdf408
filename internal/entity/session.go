package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ParseDifficulty(value string) (Difficulty, error) {
	switch difficulty := Difficulty(strings.ToLower(strings.TrimSpace(value))); difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return difficulty, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, value)
	}
}

// AIConfig is read when the bot is about to move, so changes apply to the next bot move only.
type AIConfig struct {
	Enabled    bool       `json:"enabled"`
	Difficulty Difficulty `json:"difficulty"`
}

// Normalize returns the config with its difficulty parsed, so "Hard" is stored as "hard".
// An empty difficulty means easy.
func (that AIConfig) Normalize() (AIConfig, error) {
	if that.Difficulty == "" {
		that.Difficulty = DifficultyEasy
		return that, nil
	}

	difficulty, err := ParseDifficulty(string(that.Difficulty))
	if err != nil {
		return AIConfig{}, err
	}

	that.Difficulty = difficulty

	return that, nil
}

// Session - a single browser session: the game engine and the bot settings.
type Session struct {
	ID        string    `json:"id"`
	Game      *Game     `json:"game"`
	AI        AIConfig  `json:"ai"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(id string, ai AIConfig) *Session {
	return &Session{
		ID:        id,
		Game:      NewGame(),
		AI:        ai,
		UpdatedAt: time.Now().UTC(),
	}
}

// IsBotTurn reports whether the bot should move now.
func (that *Session) IsBotTurn() bool {
	return that.AI.Enabled && !that.Game.IsFinished() && that.Game.Turn == BotMark
}
