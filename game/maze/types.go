package maze

import (
	"errors"
	"fmt"
)

// Tile is the state of a single grid cell.
type Tile uint8

const (
	Blocked Tile = iota
	Passage
	Exit
)

// MaxDimension bounds rows and columns accepted by Generate and ParseLayout.
const MaxDimension = 201

var (
	ErrOutOfBounds       = errors.New("position out of bounds")
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrNilRand           = errors.New("random source is nil")
	ErrMazeTopology      = errors.New("maze topology error")
	ErrInvalidLayout     = errors.New("invalid maze layout")
)

func (t Tile) String() string {
	switch t {
	case Blocked:
		return "blocked"
	case Passage:
		return "passage"
	case Exit:
		return "exit"
	default:
		return fmt.Sprintf("tile(%d)", uint8(t))
	}
}

// Char returns the layout glyph for the tile.
func (t Tile) Char() byte {
	switch t {
	case Passage:
		return '.'
	case Exit:
		return 'E'
	default:
		return '#'
	}
}

// IsPassable reports whether the player may stand on the tile.
func (t Tile) IsPassable() bool {
	return t == Passage || t == Exit
}

// MarshalText encodes the tile by name.
func (t Tile) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tile name.
func (t *Tile) UnmarshalText(text []byte) error {
	switch string(text) {
	case "blocked":
		*t = Blocked
	case "passage":
		*t = Passage
	case "exit":
		*t = Exit
	default:
		return fmt.Errorf("unknown tile %q", text)
	}
	return nil
}

func tileFromChar(c byte) (Tile, bool) {
	switch c {
	case '#':
		return Blocked, true
	case '.':
		return Passage, true
	case 'E':
		return Exit, true
	}
	return Blocked, false
}

// Position represents x,y grid coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by dx, dy.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
