package maze

// Stats summarizes the shape of a grid as seen from the origin.
type Stats struct {
	Passable  int `json:"passable"`
	Reachable int `json:"reachable"`
	DeadEnds  int `json:"dead_ends"`
	Junctions int `json:"junctions"`
	// ExitDistance is the number of moves on the shortest route to the exit,
	// or -1 when the exit cannot be reached.
	ExitDistance     int      `json:"exit_distance"`
	Farthest         Position `json:"farthest"`
	FarthestDistance int      `json:"farthest_distance"`
}

var neighbourOffsets = [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// Distances returns the move count from the origin to every reachable
// passable tile. Ties in the walk follow up, down, left, right.
func (g *Grid) Distances() map[Position]int {
	dist := map[Position]int{}
	if !g.at(Position{}).IsPassable() {
		return dist
	}
	dist[Position{}] = 0
	queue := []Position{{}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range neighbourOffsets {
			next, ok := g.step(p, d[0], d[1])
			if !ok || !g.at(next).IsPassable() {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[p] + 1
			queue = append(queue, next)
		}
	}
	return dist
}

// Analyze walks the grid from the origin and counts its features.
func (g *Grid) Analyze() Stats {
	dist := g.Distances()
	stats := Stats{Reachable: len(dist), ExitDistance: -1}
	if d, ok := dist[g.exit]; ok {
		stats.ExitDistance = d
	}

	for _, p := range g.Passable() {
		stats.Passable++
		open := 0
		for _, d := range neighbourOffsets {
			if next, ok := g.step(p, d[0], d[1]); ok && g.at(next).IsPassable() {
				open++
			}
		}
		switch {
		case open == 1:
			stats.DeadEnds++
		case open >= 3:
			stats.Junctions++
		}

		// Passable is row-major, so the first tile at the maximum wins.
		if d, ok := dist[p]; ok && d > stats.FarthestDistance {
			stats.Farthest, stats.FarthestDistance = p, d
		}
	}
	return stats
}
