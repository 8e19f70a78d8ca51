// Package maze generates tile mazes and exposes them read-only.
//
// A maze is carved with a randomized Prim's-style growth process over an
// even-parity lattice: cells whose x and y are both even are rooms, the odd
// cells between two rooms are doors. Carving starts at (0,0) and grows the
// tree one frontier room at a time, so every passable tile is reachable from
// the origin through exactly one simple path.
//
// Usage:
//
//	grid, err := maze.Generate(21, 21, maze.NewRand(42))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	tile, err := grid.TileAt(1, 0)
//	fmt.Println(grid)
//
// The exit is whichever frontier room the growth process handles last. It is
// not the room farthest from the origin.
package maze
