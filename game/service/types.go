package service

import (
	"time"

	"github.com/wricardo/prims-maze/game/engine"
	"github.com/wricardo/prims-maze/game/maze"
)

// CreateSessionRequest selects the preset and optional overrides for a new
// session. Zero values keep the preset's settings.
type CreateSessionRequest struct {
	ConfigID string `json:"config_id,omitempty"`
	Rows     int    `json:"rows,omitempty"`
	Columns  int    `json:"columns,omitempty"`
	Seed     *int64 `json:"seed,omitempty"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	Seed           int64              `json:"seed"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
	Message        string             `json:"message,omitempty"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success     bool               `json:"success"`
	Outcome     engine.MoveOutcome `json:"outcome"`
	GameState   *engine.GameState  `json:"game_state"`
	Message     string             `json:"message"`
	Events      []GameEvent        `json:"events,omitempty"`
	Delta       []engine.Placement `json:"delta"`
	Step        *StepInfo          `json:"step,omitempty"`
	AttemptedTo *AttemptInfo       `json:"attempted_to,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // blocked|out_of_bounds|finished|victory
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	StartPos maze.Position `json:"start_pos"`
	EndPos   maze.Position `json:"end_pos"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	AttemptedTo *AttemptInfo       `json:"attempted_to,omitempty"`
	Delta       []engine.Placement `json:"delta"`

	Finished      bool               `json:"finished"`
	Message       string             `json:"message,omitempty"`
	PossibleMoves []engine.Direction `json:"possible_moves"`
}

// StepInfo is a compact record for each executed move
type StepInfo struct {
	Idx     int              `json:"idx"`
	Dir     engine.Direction `json:"dir"`
	Input   string           `json:"input,omitempty"`
	From    maze.Position    `json:"from"`
	To      maze.Position    `json:"to"`
	Tile    string           `json:"tile"`
	Success bool             `json:"success"`
	Victory bool             `json:"victory,omitempty"`
}

// AttemptInfo details the target cell of a rejected move
type AttemptInfo struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Tile     string `json:"tile"`
	Passable bool   `json:"passable"`
	Reason   string `json:"reason"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string        `json:"type"` // "move", "blocked", "victory", "reset"
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	Position  maze.Position `json:"position"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a preset
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Columns     int    `json:"columns"`
	Seed        *int64 `json:"seed,omitempty"`
}
