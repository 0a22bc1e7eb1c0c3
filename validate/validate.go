// Command validate checks board configuration JSON files. It reports:
//   - JSON structure, dimensions, layout characters and legend
//   - Presence of at least one piece on the board
//   - Mobility: every piece on the board has at least one legal move
//   - Puzzle routes: each found route is legal for the piece
//   - Puzzle pars: the navigator's move count must match each puzzle's par
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/chessnav/game/engine"
)

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

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration JSON file
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

	var config engine.BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateBoardConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	board, err := engine.ParseLayout(config.Layout)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	pieces := engine.CountOccupants(board, engine.KindPiece)
	if pieces == 0 {
		result.fail("Board must hold at least 1 piece")
	}

	mobility := validateMobility(board)
	if !mobility.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, mobility.Errors...)

	puzzles := validatePuzzles(&config, board)
	if !puzzles.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, puzzles.Errors...)

	if result.Valid {
		result.info("Name: %s", config.Name)
		result.info("Board: %dx%d", config.Width, config.Height)
		result.info("Pieces: %d", pieces)
		result.info("Obstacles: %d", engine.CountOccupants(board, engine.KindObstacle))
		result.info("Puzzles: %d", len(config.Puzzles))
	}

	return result
}

// validateMobility ensures every piece on the board has at least one legal
// move. A trapped piece usually means a layout typo.
func validateMobility(board *engine.Board) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	var trapped []string
	total := 0
	for _, placed := range board.Occupants() {
		if placed.Occupant.Kind != engine.KindPiece {
			continue
		}
		total++
		if len(engine.Neighbors(placed.Occupant.Piece, placed.Cell, board)) == 0 {
			trapped = append(trapped, fmt.Sprintf("%s at %s", placed.Occupant.Piece, placed.Cell))
		}
	}

	if len(trapped) > 0 {
		result.fail("Mobility failure: %d/%d pieces cannot move", len(trapped), total)
		for _, t := range trapped {
			result.fail("Trapped: %s", t)
		}
	} else if total > 0 {
		result.info("Mobility: all %d pieces can move", total)
	}

	return result
}

// validatePuzzles runs the navigator over every puzzle, replays each route
// on the board and compares the move count with the recorded par
func validatePuzzles(config *engine.BoardConfig, board engine.GridView) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	outcomes, err := engine.SolvePuzzles(config)
	if err != nil {
		result.fail("Cannot solve puzzles: %v", err)
		return result
	}

	for _, o := range outcomes {
		if err := checkRoute(board, o); err != nil {
			result.fail("Puzzle %q: %v", o.Puzzle.Name, err)
			continue
		}
		if o.Solved {
			continue
		}
		got := "unreachable"
		if o.Result.Found {
			got = fmt.Sprintf("%d moves", o.Result.Moves)
		}
		result.fail("Puzzle %q: par %s but the navigator finds %s", o.Puzzle.Name, formatPar(o.Puzzle.Par), got)
	}

	if result.Valid && len(outcomes) > 0 {
		result.info("Puzzles: all %d pars match", len(outcomes))
	}

	return result
}

// checkRoute replays a found route: it must run from the puzzle's start to
// its target in legal moves, one move per step
func checkRoute(board engine.GridView, o engine.PuzzleOutcome) error {
	if !o.Result.Found {
		return nil
	}
	path := o.Result.Path
	if len(path) == 0 || path[0] != o.Puzzle.From || path[len(path)-1] != o.Puzzle.To {
		return fmt.Errorf("route does not run from %s to %s", o.Puzzle.From, o.Puzzle.To)
	}
	if len(path)-1 != o.Result.Moves {
		return fmt.Errorf("route has %d steps but reports %d moves", len(path)-1, o.Result.Moves)
	}
	if !engine.IsValidPath(o.Puzzle.Piece, path, board) {
		return fmt.Errorf("route is not a legal %s path", o.Puzzle.Piece)
	}
	return nil
}

func formatPar(par int) string {
	if par == engine.Unreachable {
		return "unreachable"
	}
	return fmt.Sprintf("%d", par)
}

// report prints a concise report and returns whether every file is valid
func report(w io.Writer, files []string) bool {
	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Fprintln(w, "  ❌ "+err)
				}
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate board configuration files",
		ArgsUsage: "[FILE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Value:   "../configs",
				Usage:   "Directory scanned for *.json when no files are given",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				var err error
				files, err = filepath.Glob(filepath.Join(cmd.String("dir"), "*.json"))
				if err != nil {
					return fmt.Errorf("error finding config files: %w", err)
				}
			}
			if len(files) == 0 {
				return fmt.Errorf("no config files found")
			}

			if !report(cmd.Root().Writer, files) {
				return fmt.Errorf("%d file(s) checked, some are invalid", len(files))
			}
			return nil
		},
	}
}

// main validates the given files, or every *.json in --dir, and exits
// non-zero if any are invalid
func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
