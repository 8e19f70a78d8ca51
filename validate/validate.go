// Command validate provides a small CLI that validates maze preset JSON
// files in the ../configs directory. It checks:
//   - JSON structure, rejecting unknown fields
//   - Required fields, dimensions and messages
//   - Generated mazes: a single exit, every passable tile reachable from the
//     origin, and one door per carved room
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/prims-maze/game/engine"
	"github.com/wricardo/prims-maze/game/maze"
)

// sampleSeeds are generated for presets without a fixed seed.
var sampleSeeds = []int64{0, 1, 2}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single preset file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	seeds := sampleSeeds
	if config.Seed != nil {
		seeds = []int64{*config.Seed}
	}

	var stats maze.Stats
	for _, seed := range seeds {
		grid, err := maze.Generate(config.Rows, config.Columns, maze.NewRand(seed))
		if err != nil {
			result.fail("Seed %d: generation failed: %v", seed, err)
			continue
		}
		stats = grid.Analyze()
		for _, problem := range checkMaze(grid, stats) {
			result.fail("Seed %d: %s", seed, problem)
		}
	}

	if result.Valid {
		seedInfo := "random per session"
		if config.Seed != nil {
			seedInfo = fmt.Sprintf("fixed %d", *config.Seed)
		}
		result.Errors = append(result.Errors,
			fmt.Sprintf("✓ Name: %s", config.Name),
			fmt.Sprintf("✓ Grid: %dx%d", config.Columns, config.Rows),
			fmt.Sprintf("✓ Seed: %s", seedInfo),
			fmt.Sprintf("✓ Connectivity: all %d passable tiles reachable", stats.Passable),
			fmt.Sprintf("✓ Exit distance: %d moves", stats.ExitDistance),
		)
	}

	return result
}

// checkMaze reports the ways a generated grid breaks the maze rules.
func checkMaze(grid *maze.Grid, stats maze.Stats) []string {
	var problems []string

	if exits := grid.Count(maze.Exit); exits != 1 {
		problems = append(problems, fmt.Sprintf("expected exactly 1 exit, got %d", exits))
	}
	if stats.ExitDistance < 0 {
		problems = append(problems, fmt.Sprintf("exit %s unreachable from origin", grid.Exit()))
	}
	if stats.Reachable != stats.Passable {
		problems = append(problems, fmt.Sprintf("connectivity failure: %d/%d passable tiles unreachable",
			stats.Passable-stats.Reachable, stats.Passable))
	}

	rooms := ((grid.Rows() + 1) / 2) * ((grid.Columns() + 1) / 2)
	if want := 2*rooms - 1; stats.Passable != want {
		problems = append(problems, fmt.Sprintf("expected %d passable tiles for %d rooms, got %d", want, rooms, stats.Passable))
	}
	return problems
}

// main scans a configs directory (../configs by default) for *.json files
// and validates each one, printing a concise report and exiting with
// non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
