package engine

import (
	"fmt"

	"github.com/wricardo/prims-maze/game/maze"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Movement operations
	Move(direction Direction) MoveOutcome
	CanMove(direction Direction) bool
	PossibleMoves() []Direction

	// Rendering
	RedrawDelta() []Placement
	FullView() []Placement

	// Game state management
	State() SessionState
	IsFinished() bool
	Position() maze.Position
	Previous() maze.Position
	Grid() *maze.Grid
	Reset()
	GetState() *GameState
	SetState(state *GameState) error
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialize access per session.
type GameEngine struct {
	grid     *maze.Grid
	current  maze.Position
	previous maze.Position
	// drawn is the agent position last reported by RedrawDelta or FullView.
	drawn maze.Position
	state SessionState
}

var _ Engine = (*GameEngine)(nil)

// NewEngine creates a running session at the origin of grid.
func NewEngine(grid *maze.Grid) (*GameEngine, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	return &GameEngine{grid: grid, state: Running}, nil
}

// RestoreEngine rebuilds an engine from a persisted snapshot.
func RestoreEngine(state *GameState) (*GameEngine, error) {
	e := &GameEngine{}
	if err := e.SetState(state); err != nil {
		return nil, err
	}
	return e, nil
}

// Move attempts to move the player one tile. Rejected moves change nothing.
func (e *GameEngine) Move(direction Direction) MoveOutcome {
	if e.state == Finished {
		return Rejected(RejectFinished, e.state)
	}

	target, ok := e.target(direction)
	if !ok {
		return Rejected(RejectOutOfBounds, e.state)
	}

	tile, err := e.grid.TileAt(target.X, target.Y)
	if err != nil {
		return Rejected(RejectOutOfBounds, e.state)
	}

	switch tile {
	case maze.Passage:
		e.previous, e.current = e.current, target
		return Accepted(Running)
	case maze.Exit:
		e.previous, e.current = e.current, target
		e.state = Finished
		return Accepted(Finished)
	default:
		return Rejected(RejectBlocked, e.state)
	}
}

// target returns the in-bounds position one step from the player.
func (e *GameEngine) target(direction Direction) (maze.Position, bool) {
	dx, dy, ok := direction.Offset()
	if !ok {
		return maze.Position{}, false
	}
	next := e.current.Add(dx, dy)
	if !e.grid.InBounds(next) {
		return maze.Position{}, false
	}
	return next, true
}

// CanMove reports whether Move(direction) would be accepted.
func (e *GameEngine) CanMove(direction Direction) bool {
	if e.state == Finished {
		return false
	}
	target, ok := e.target(direction)
	if !ok {
		return false
	}
	tile, err := e.grid.TileAt(target.X, target.Y)
	return err == nil && tile.IsPassable()
}

// PossibleMoves returns all valid directions the player can move
func (e *GameEngine) PossibleMoves() []Direction {
	possible := []Direction{}
	for _, dir := range Directions {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// RedrawDelta returns the placements that changed since the last report: the
// background of the vacated cell, the background of the current cell and the
// agent on top. It returns an empty slice when the agent has not moved.
func (e *GameEngine) RedrawDelta() []Placement {
	if e.drawn == e.current {
		return []Placement{}
	}
	delta := []Placement{
		e.background(e.drawn),
		e.background(e.current),
		{Layer: LayerAgent, Position: e.current},
	}
	e.drawn = e.current
	return delta
}

// FullView returns every passable tile in row-major order, the agent and,
// once finished, the banner row.
func (e *GameEngine) FullView() []Placement {
	passable := e.grid.Passable()
	view := make([]Placement, 0, len(passable)+1+e.grid.Columns())
	for _, p := range passable {
		view = append(view, e.background(p))
	}
	view = append(view, Placement{Layer: LayerAgent, Position: e.current})

	if e.state == Finished {
		row := e.grid.Rows() / 2
		for x := 0; x < e.grid.Columns(); x++ {
			view = append(view, Placement{Layer: LayerBanner, Position: maze.Position{X: x, Y: row}})
		}
	}

	e.drawn = e.current
	return view
}

func (e *GameEngine) background(p maze.Position) Placement {
	tile, _ := e.grid.TileAt(p.X, p.Y)
	if tile == maze.Exit {
		return Placement{Layer: LayerExit, Position: p}
	}
	return Placement{Layer: LayerPassage, Position: p}
}

// State returns the session state.
func (e *GameEngine) State() SessionState {
	return e.state
}

// IsFinished returns whether the player has reached the exit
func (e *GameEngine) IsFinished() bool {
	return e.state == Finished
}

// Position returns the current player position
func (e *GameEngine) Position() maze.Position {
	return e.current
}

// Previous returns the position the last accepted move started from.
func (e *GameEngine) Previous() maze.Position {
	return e.previous
}

// Grid returns the read-only maze.
func (e *GameEngine) Grid() *maze.Grid {
	return e.grid
}

// Reset returns the player to the origin of the same maze.
func (e *GameEngine) Reset() {
	e.current = maze.Position{}
	e.previous = maze.Position{}
	e.state = Running
}

// GetState returns a snapshot of the current game state
func (e *GameEngine) GetState() *GameState {
	return &GameState{
		Rows:          e.grid.Rows(),
		Columns:       e.grid.Columns(),
		Layout:        e.grid.Layout(),
		Exit:          e.grid.Exit(),
		PlayerPos:     e.current,
		PreviousPos:   e.previous,
		DrawnPos:      e.drawn,
		State:         e.state,
		Finished:      e.state == Finished,
		PossibleMoves: e.PossibleMoves(),
		LocalView:     e.LocalView(),
	}
}

// SetState sets the game state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("%w: state cannot be nil", ErrInvalidState)
	}

	grid, err := maze.ParseLayout(state.Layout)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	for name, p := range map[string]maze.Position{
		"player_pos":   state.PlayerPos,
		"previous_pos": state.PreviousPos,
		"drawn_pos":    state.DrawnPos,
	} {
		tile, err := grid.TileAt(p.X, p.Y)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidState, name, err)
		}
		if !tile.IsPassable() {
			return fmt.Errorf("%w: %s %s is blocked", ErrInvalidState, name, p)
		}
	}

	switch state.State {
	case Running:
	case Finished:
		if state.PlayerPos != grid.Exit() {
			return fmt.Errorf("%w: finished session must be on the exit", ErrInvalidState)
		}
	default:
		return fmt.Errorf("%w: unknown session state %q", ErrInvalidState, state.State)
	}

	e.grid = grid
	e.current = state.PlayerPos
	e.previous = state.PreviousPos
	e.drawn = state.DrawnPos
	e.state = state.State
	return nil
}
