package maze

import (
	"fmt"
	"strings"
)

// Grid is a fixed rows x columns maze. Tiles are stored row-major as
// tiles[y][x]. A Grid handed out by Generate or ParseLayout is never mutated.
type Grid struct {
	rows    int
	columns int
	tiles   [][]Tile
	exit    Position
}

func newGrid(rows, columns int) *Grid {
	tiles := make([][]Tile, rows)
	for y := range tiles {
		tiles[y] = make([]Tile, columns)
	}
	return &Grid{rows: rows, columns: columns, tiles: tiles}
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Columns returns the grid width.
func (g *Grid) Columns() int { return g.columns }

// Exit returns the position of the single exit tile.
func (g *Grid) Exit() Position { return g.exit }

// InBounds reports whether p lies inside [0, columns) x [0, rows).
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.columns && p.Y >= 0 && p.Y < g.rows
}

// TileAt returns the tile at x, y.
func (g *Grid) TileAt(x, y int) (Tile, error) {
	p := Position{X: x, Y: y}
	if !g.InBounds(p) {
		return Blocked, fmt.Errorf("%w: %s in %dx%d grid", ErrOutOfBounds, p, g.columns, g.rows)
	}
	return g.tiles[y][x], nil
}

// Count returns how many tiles of kind t the grid holds.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, row := range g.tiles {
		for _, tile := range row {
			if tile == t {
				n++
			}
		}
	}
	return n
}

// Passable returns every passage and exit position in row-major order.
func (g *Grid) Passable() []Position {
	var out []Position
	for y, row := range g.tiles {
		for x, tile := range row {
			if tile.IsPassable() {
				out = append(out, Position{X: x, Y: y})
			}
		}
	}
	return out
}

// Layout renders the grid as one string per row using '#', '.' and 'E'.
func (g *Grid) Layout() []string {
	lines := make([]string, g.rows)
	buf := make([]byte, g.columns)
	for y, row := range g.tiles {
		for x, tile := range row {
			buf[x] = tile.Char()
		}
		lines[y] = string(buf)
	}
	return lines
}

func (g *Grid) String() string {
	return strings.Join(g.Layout(), "\n")
}

// ParseLayout rebuilds a grid from the rows produced by Layout.
func ParseLayout(lines []string) (*Grid, error) {
	rows := len(lines)
	if rows < 1 || rows > MaxDimension {
		return nil, fmt.Errorf("%w: %d rows", ErrInvalidLayout, rows)
	}
	columns := len(lines[0])
	if columns < 1 || columns > MaxDimension {
		return nil, fmt.Errorf("%w: %d columns", ErrInvalidLayout, columns)
	}

	g := newGrid(rows, columns)
	exits := 0
	for y, line := range lines {
		if len(line) != columns {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidLayout, y, len(line), columns)
		}
		for x := 0; x < columns; x++ {
			tile, ok := tileFromChar(line[x])
			if !ok {
				return nil, fmt.Errorf("%w: unknown glyph %q at (%d,%d)", ErrInvalidLayout, line[x], x, y)
			}
			if tile == Exit {
				exits++
				g.exit = Position{X: x, Y: y}
			}
			g.tiles[y][x] = tile
		}
	}

	if exits != 1 {
		return nil, fmt.Errorf("%w: want exactly one exit, got %d", ErrInvalidLayout, exits)
	}
	if !g.tiles[0][0].IsPassable() {
		return nil, fmt.Errorf("%w: origin (0,0) is blocked", ErrInvalidLayout)
	}
	return g, nil
}

func (g *Grid) set(p Position, t Tile) {
	g.tiles[p.Y][p.X] = t
}

func (g *Grid) at(p Position) Tile {
	return g.tiles[p.Y][p.X]
}

// step returns p moved by dx, dy when the result is on the grid.
func (g *Grid) step(p Position, dx, dy int) (Position, bool) {
	next := p.Add(dx, dy)
	if !g.InBounds(next) {
		return Position{}, false
	}
	return next, true
}
