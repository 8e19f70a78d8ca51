// Package engine provides the game session state machine for the maze.
//
// A GameEngine owns the player token on a generated maze.Grid. The grid is
// only read; the engine tracks the current and previous player positions and
// the session state.
//
// Core Types:
//
// The Engine interface defines the contract for game operations and is
// implemented by GameEngine. MoveOutcome reports what a single Move did,
// Placement pairs an opaque layer tag with a grid position for renderers, and
// GameState is the serializable snapshot used for persistence.
//
// Usage:
//
//	grid, err := maze.Generate(21, 21, maze.NewRand(seed))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(grid)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outcome := gameEngine.Move(engine.Right)
//	for _, p := range gameEngine.RedrawDelta() {
//		draw(p.Layer, p.Position)
//	}
//
// Game Rules:
//
// The player starts at (0,0) and moves one tile per call. Moves into walls or
// off the grid are rejected and change nothing. Stepping onto the exit
// finishes the session; a finished session rejects every further move.
package engine
