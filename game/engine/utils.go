package engine

import "github.com/wricardo/prims-maze/game/maze"

// OutOfBoundsTile is the tile name reported for cells off the grid.
const OutOfBoundsTile = "out_of_bounds"

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to maze.Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// LocalView returns the 8 cells surrounding the player, clockwise from north.
func (e *GameEngine) LocalView() []SurroundingCell {
	directions := []struct{ dx, dy int }{
		{0, -1},  // North
		{1, -1},  // North-East
		{1, 0},   // East
		{1, 1},   // South-East
		{0, 1},   // South
		{-1, 1},  // South-West
		{-1, 0},  // West
		{-1, -1}, // North-West
	}

	surroundings := make([]SurroundingCell, len(directions))
	for i, dir := range directions {
		p := e.current.Add(dir.dx, dir.dy)
		name := OutOfBoundsTile
		if tile, err := e.grid.TileAt(p.X, p.Y); err == nil {
			name = tile.String()
		}
		surroundings[i] = SurroundingCell{X: p.X, Y: p.Y, Tile: name}
	}
	return surroundings
}
