package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wricardo/prims-maze/game/maze"
)

// Direction is one of the four unit moves.
type Direction int

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

// Directions lists every direction in probe order.
var Directions = []Direction{Up, Down, Left, Right}

// SessionState is the stored state of a game session
type SessionState string

const (
	Running  SessionState = "running"
	Finished SessionState = "finished"
)

// RejectReason explains why a move was refused. It is never stored.
type RejectReason string

const (
	RejectOutOfBounds RejectReason = "out_of_bounds"
	RejectBlocked     RejectReason = "blocked"
	RejectFinished    RejectReason = "finished"
)

// Layer is the opaque tag a renderer maps to an asset.
type Layer string

const (
	LayerPassage Layer = "passage"
	LayerExit    Layer = "exit"
	LayerAgent   Layer = "agent"
	LayerBanner  Layer = "banner"
)

// Validation constants
const (
	MaxBulkMoves        = 100
	WebSocketBufferSize = 256
	DefaultTileSize     = 32
)

var (
	ErrNilGrid          = errors.New("grid cannot be nil")
	ErrUnknownDirection = errors.New("unknown direction")
	ErrInvalidState     = errors.New("invalid game state")
	// ErrInvalidConfig wraps every preset validation failure.
	ErrInvalidConfig    = errors.New("config validation")
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Offset returns the unit vector for d, or false for an unknown value.
func (d Direction) Offset() (dx, dy int, ok bool) {
	switch d {
	case Up:
		return 0, -1, true
	case Down:
		return 0, 1, true
	case Left:
		return -1, 0, true
	case Right:
		return 1, 0, true
	}
	return 0, 0, false
}

// ParseDirection parses a canonical direction name, ignoring case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

func (d Direction) MarshalText() ([]byte, error) {
	if _, _, ok := d.Offset(); !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MoveOutcome is the result of a single Move call.
type MoveOutcome struct {
	Accepted bool         `json:"accepted"`
	State    SessionState `json:"state"`
	Reason   RejectReason `json:"reason,omitempty"`
}

// Accepted builds the outcome of a move that changed the player position.
func Accepted(state SessionState) MoveOutcome {
	return MoveOutcome{Accepted: true, State: state}
}

// Rejected builds the outcome of a refused move. state is the unchanged
// session state.
func Rejected(reason RejectReason, state SessionState) MoveOutcome {
	return MoveOutcome{State: state, Reason: reason}
}

func (o MoveOutcome) String() string {
	if o.Accepted {
		return fmt.Sprintf("accepted(%s)", o.State)
	}
	return fmt.Sprintf("rejected(%s)", o.Reason)
}

// Placement is a layer drawn at a grid position.
type Placement struct {
	Layer    Layer         `json:"layer"`
	Position maze.Position `json:"position"`
}

// SurroundingCell represents a cell with its absolute position
type SurroundingCell struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Tile string `json:"tile"`
}

// GameState represents the complete game state
type GameState struct {
	Rows        int           `json:"rows"`
	Columns     int           `json:"columns"`
	Layout      []string      `json:"layout"`
	Exit        maze.Position `json:"exit"`
	PlayerPos   maze.Position `json:"player_pos"`
	PreviousPos maze.Position `json:"previous_pos"`
	DrawnPos    maze.Position `json:"drawn_pos"`
	State       SessionState  `json:"state"`

	// Computed helper views (not required for core game logic)
	Finished      bool              `json:"finished"`
	PossibleMoves []Direction       `json:"possible_moves"`
	LocalView     []SurroundingCell `json:"local_view,omitempty"`
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action       Direction     `json:"action"`
	Input        string        `json:"input,omitempty"`
	FromPosition maze.Position `json:"from_position"`
	ToPosition   maze.Position `json:"to_position"`
	Outcome      MoveOutcome   `json:"outcome"`
	Timestamp    int64         `json:"timestamp"`
	Success      bool          `json:"success"`
	MoveNumber   int           `json:"move_number"`
}
