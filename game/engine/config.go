package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wricardo/prims-maze/game/maze"
)

// ConfigMessages holds the player-facing text for each move outcome.
type ConfigMessages struct {
	Welcome     string `json:"welcome"`
	Moved       string `json:"moved,omitempty"`
	Blocked     string `json:"blocked,omitempty"`
	OutOfBounds string `json:"out_of_bounds,omitempty"`
	Finished    string `json:"finished,omitempty"`
	Victory     string `json:"victory"`
}

// GameConfig represents a maze preset loaded from JSON
type GameConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Columns     int    `json:"columns"`
	// Seed pins the maze layout. Nil means a fresh seed per session.
	Seed *int64 `json:"seed,omitempty"`
	// TileSize is the renderer hint for pixels per tile.
	TileSize int            `json:"tile_size,omitempty"`
	Messages ConfigMessages `json:"messages"`
}

// DefaultGameConfig returns the built-in 21x21 preset.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Classic 21x21 Prim's maze",
		Rows:        21,
		Columns:     21,
		TileSize:    DefaultTileSize,
		Messages: ConfigMessages{
			Welcome:     "Find your way from the top-left corner to the exit.",
			Moved:       "You move along the passage.",
			Blocked:     "A wall blocks the way.",
			OutOfBounds: "You can't leave the maze.",
			Finished:    "The maze is already solved.",
			Victory:     "You found the exit!",
		},
	}
}

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if config.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidConfig)
	}

	if config.Rows < 1 || config.Rows > maze.MaxDimension {
		return fmt.Errorf("%w: rows must be between 1 and %d, got %d", ErrInvalidConfig, maze.MaxDimension, config.Rows)
	}
	if config.Columns < 1 || config.Columns > maze.MaxDimension {
		return fmt.Errorf("%w: columns must be between 1 and %d, got %d", ErrInvalidConfig, maze.MaxDimension, config.Columns)
	}
	if config.TileSize < 0 {
		return fmt.Errorf("%w: tile_size must not be negative, got %d", ErrInvalidConfig, config.TileSize)
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("%w: messages.welcome is required", ErrInvalidConfig)
	}
	if config.Messages.Victory == "" {
		return fmt.Errorf("%w: messages.victory is required", ErrInvalidConfig)
	}

	return nil
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// NewGameFromConfig generates a maze for config and starts a session on it.
func NewGameFromConfig(config *GameConfig, rng maze.Rand) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	grid, err := maze.Generate(config.Rows, config.Columns, rng)
	if err != nil {
		return nil, fmt.Errorf("generate maze: %w", err)
	}

	return NewEngine(grid)
}

// MessageFor returns the configured text for a move outcome.
func (c *GameConfig) MessageFor(outcome MoveOutcome) string {
	defaults := DefaultGameConfig().Messages
	pick := func(configured, fallback string) string {
		if configured != "" {
			return configured
		}
		return fallback
	}

	if outcome.Accepted {
		if outcome.State == Finished {
			return pick(c.Messages.Victory, defaults.Victory)
		}
		return pick(c.Messages.Moved, defaults.Moved)
	}

	switch outcome.Reason {
	case RejectBlocked:
		return pick(c.Messages.Blocked, defaults.Blocked)
	case RejectOutOfBounds:
		return pick(c.Messages.OutOfBounds, defaults.OutOfBounds)
	case RejectFinished:
		return pick(c.Messages.Finished, defaults.Finished)
	}
	return ""
}
