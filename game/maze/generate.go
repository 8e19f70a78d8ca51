package maze

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// roomOffsets lists the two-step probes in the order x-2, x+2, y-2, y+2.
var roomOffsets = [4][2]int{{-2, 0}, {2, 0}, {0, -2}, {0, 2}}

// Generate carves a rows x columns maze using rng for every random draw.
//
// Carving starts at (0,0). Each iteration draws a frontier room uniformly,
// connects it through a door to one uniformly drawn carved neighbour and
// extends the frontier with the room's blocked neighbours. The last room drawn
// becomes the exit; when nothing can be carved the origin is the exit.
// Generate never returns a partial grid.
func Generate(rows, columns int, rng Rand) (*Grid, error) {
	if rows < 1 || columns < 1 || rows > MaxDimension || columns > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d (rows and columns must be between 1 and %d)",
			ErrInvalidDimensions, rows, columns, MaxDimension)
	}
	if rng == nil {
		return nil, ErrNilRand
	}

	g := newGrid(rows, columns)
	last := Position{}
	g.set(last, Passage)

	frontier := newFrontierSet()
	frontier.addAll(g.frontierOf(last))

	for frontier.Len() > 0 {
		room := frontier.At(rng.Intn(frontier.Len()))
		g.set(room, Passage)

		carved := g.carvedAround(room)
		if len(carved) == 0 {
			return nil, fmt.Errorf("%w: frontier room %s has no carved neighbour", ErrMazeTopology, room)
		}
		door, err := Between(room, carved[rng.Intn(len(carved))])
		if err != nil {
			return nil, err
		}
		g.set(door, Passage)

		frontier.addAll(g.frontierOf(room))
		frontier.Remove(room)
		last = room
	}

	g.set(last, Exit)
	g.exit = last
	return g, nil
}

// Between returns the door cell shared by two rooms. The rooms must be
// exactly two apart on one axis and aligned on the other.
func Between(a, b Position) (Position, error) {
	dx, dy := b.X-a.X, b.Y-a.Y
	switch {
	case dy == 0 && (dx == 2 || dx == -2):
		return a.Add(dx/2, 0), nil
	case dx == 0 && (dy == 2 || dy == -2):
		return a.Add(0, dy/2), nil
	}
	return Position{}, fmt.Errorf("%w: %s and %s are not two steps apart on one axis", ErrMazeTopology, a, b)
}

// frontierOf returns the blocked rooms two steps from p.
func (g *Grid) frontierOf(p Position) []Position {
	return g.roomsAround(p, Blocked)
}

// carvedAround returns the carved rooms two steps from p.
func (g *Grid) carvedAround(p Position) []Position {
	return g.roomsAround(p, Passage)
}

func (g *Grid) roomsAround(p Position, want Tile) []Position {
	out := make([]Position, 0, len(roomOffsets))
	for _, off := range roomOffsets {
		next, ok := g.step(p, off[0], off[1])
		if !ok || g.at(next) != want {
			continue
		}
		out = append(out, next)
	}
	return out
}

// frontierSet is an insertion-ordered set of candidate rooms. Re-adding a
// member keeps its original slot, so At(i) depends only on the sequence of
// adds and removes.
type frontierSet struct {
	cells *orderedmap.OrderedMap[Position, struct{}]
}

func newFrontierSet() *frontierSet {
	return &frontierSet{cells: orderedmap.New[Position, struct{}]()}
}

func (s *frontierSet) Len() int { return s.cells.Len() }

func (s *frontierSet) addAll(ps []Position) {
	for _, p := range ps {
		s.cells.Set(p, struct{}{})
	}
}

func (s *frontierSet) Remove(p Position) {
	s.cells.Delete(p)
}

// At returns the i-th member in insertion order.
func (s *frontierSet) At(i int) Position {
	pair := s.cells.Oldest()
	for ; i > 0; i-- {
		pair = pair.Next()
	}
	return pair.Key
}
