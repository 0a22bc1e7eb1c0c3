// Command analyze prints reachability statistics for board configurations.
// For every piece on a board it reports how many empty cells the piece can
// reach, the farthest of them in moves, and whether any empty cells are out
// of its reach.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/chessnav/game/engine"
)

// PieceReach summarises what one piece can reach from where it stands
type PieceReach struct {
	Piece       engine.PieceType
	From        engine.Cell
	Reachable   int // empty cells reachable, start excluded
	Farthest    int // largest move count to a reachable cell
	Unreachable []engine.Cell
}

// BoardAnalysis is the reachability report for one board
type BoardAnalysis struct {
	Name       string
	Width      int
	Height     int
	EmptyCells int
	Pieces     []PieceReach
}

// analyzeBoard runs the navigator's reachability search for every piece
func analyzeBoard(config *engine.BoardConfig) (*BoardAnalysis, error) {
	board, err := engine.NewBoardFromConfig(config)
	if err != nil {
		return nil, err
	}

	width, height := board.Size()
	analysis := &BoardAnalysis{
		Name:   config.Name,
		Width:  width,
		Height: height,
	}

	var empty []engine.Cell
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := engine.Cell{X: x, Y: y}
			if _, occupied := board.Get(c); !occupied {
				empty = append(empty, c)
			}
		}
	}
	analysis.EmptyCells = len(empty)

	for _, placed := range board.Occupants() {
		if placed.Occupant.Kind != engine.KindPiece {
			continue
		}

		costs, err := engine.Reachable(placed.Occupant.Piece, placed.Cell, board)
		if err != nil {
			return nil, err
		}

		reach := PieceReach{Piece: placed.Occupant.Piece, From: placed.Cell}
		for _, c := range empty {
			moves, ok := costs[c]
			if !ok {
				reach.Unreachable = append(reach.Unreachable, c)
				continue
			}
			reach.Reachable++
			if moves > reach.Farthest {
				reach.Farthest = moves
			}
		}
		analysis.Pieces = append(analysis.Pieces, reach)
	}

	sort.SliceStable(analysis.Pieces, func(i, j int) bool {
		return analysis.Pieces[i].Reachable > analysis.Pieces[j].Reachable
	})

	return analysis, nil
}

// printAnalysis writes the report for one board
func printAnalysis(w io.Writer, a *BoardAnalysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Board: %d x %d\n", a.Width, a.Height)
	fmt.Fprintf(w, "Empty cells: %d\n", a.EmptyCells)
	fmt.Fprintf(w, "Pieces: %d\n", len(a.Pieces))

	for _, p := range a.Pieces {
		fmt.Fprintf(w, "  %-6s at %-7s reaches %d/%d cells, farthest %d moves\n",
			p.Piece, p.From, p.Reachable, a.EmptyCells, p.Farthest)

		if len(p.Unreachable) == 0 {
			continue
		}
		fmt.Fprintf(w, "    ⚠️  %d cells out of reach", len(p.Unreachable))
		for i, c := range p.Unreachable {
			if i == 5 { // Show first 5 unreachable cells
				fmt.Fprintf(w, " ... and %d more", len(p.Unreachable)-5)
				break
			}
			fmt.Fprintf(w, " %s", c)
		}
		fmt.Fprintln(w)
	}
}

func analyzeConfig(w io.Writer, path string) error {
	config, err := engine.LoadBoardConfig(path)
	if err != nil {
		return err
	}

	analysis, err := analyzeBoard(config)
	if err != nil {
		return err
	}

	printAnalysis(w, analysis)
	return nil
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Print per-piece reachability for board configurations",
		ArgsUsage: "[FILE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Value:   "configs",
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
					return err
				}
			}

			w := cmd.Root().Writer
			for _, file := range files {
				fmt.Fprintf(w, "\n=== Analyzing %s ===\n", filepath.Base(file))
				if err := analyzeConfig(w, file); err != nil {
					fmt.Fprintf(w, "Error: %v\n", err)
				}
			}
			return nil
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
