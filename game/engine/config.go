package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// requiredLegend maps layout characters to their meaning
var requiredLegend = map[string]string{
	".": "empty",
	"#": "obstacle",
	"p": "pawn",
	"b": "bishop",
	"n": "knight",
	"r": "rook",
	"k": "king",
	"q": "queen",
}

// DefaultLegend returns a copy of the layout legend
func DefaultLegend() map[string]string {
	legend := make(map[string]string, len(requiredLegend))
	for k, v := range requiredLegend {
		legend[k] = v
	}
	return legend
}

// ValidateBoardConfig validates a board configuration for correctness
func ValidateBoardConfig(config *BoardConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate dimensions
	if config.Width < MinBoardSize || config.Width > MaxBoardSize {
		return fmt.Errorf("config validation: width must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Width)
	}
	if config.Height < MinBoardSize || config.Height > MaxBoardSize {
		return fmt.Errorf("config validation: height must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Height)
	}

	// Validate layout
	if len(config.Layout) != config.Height {
		return fmt.Errorf("config validation: layout must have %d rows to match height, got %d",
			config.Height, len(config.Layout))
	}
	for i, row := range config.Layout {
		if len(row) != config.Width {
			return fmt.Errorf("config validation: row %d must have %d characters to match width, got %d",
				i+1, config.Width, len(row))
		}
		for j := 0; j < len(row); j++ {
			if _, _, err := occupantFromChar(row[j]); err != nil {
				return fmt.Errorf("config validation: invalid character '%c' at row %d, col %d", row[j], i+1, j+1)
			}
		}
	}

	// Validate legend if provided
	for key, value := range config.Legend {
		expected, ok := requiredLegend[key]
		if !ok {
			return fmt.Errorf("config validation: legend has unknown key '%s'", key)
		}
		if value != expected {
			return fmt.Errorf("config validation: legend['%s'] must be '%s', got '%s'", key, expected, value)
		}
	}

	// Validate puzzles
	if len(config.Puzzles) > MaxPuzzlesPerBoard {
		return fmt.Errorf("config validation: at most %d puzzles allowed, got %d", MaxPuzzlesPerBoard, len(config.Puzzles))
	}
	inBounds := func(c Cell) bool {
		return c.X >= 0 && c.X < config.Width && c.Y >= 0 && c.Y < config.Height
	}
	for i, p := range config.Puzzles {
		label := p.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		if !p.Piece.Valid() {
			return fmt.Errorf("config validation: puzzle %s has unknown piece %q", label, p.Piece)
		}
		if !inBounds(p.From) || !inBounds(p.To) {
			return fmt.Errorf("config validation: puzzle %s uses a cell outside the board", label)
		}
		if p.Par < Unreachable {
			return fmt.Errorf("config validation: puzzle %s par must be >= %d, got %d", label, Unreachable, p.Par)
		}
	}

	return nil
}

// PuzzleOutcome reports how the navigator did on a configured puzzle
type PuzzleOutcome struct {
	Puzzle Puzzle `json:"puzzle"`
	Result Result `json:"result"`
	Solved bool   `json:"solved"`
}

// SolvePuzzles runs the navigator over every puzzle of the configuration.
// The piece is routed as if it stood on From, whatever the layout holds there.
func SolvePuzzles(config *BoardConfig) ([]PuzzleOutcome, error) {
	board, err := NewBoardFromConfig(config)
	if err != nil {
		return nil, err
	}

	outcomes := make([]PuzzleOutcome, 0, len(config.Puzzles))
	for _, p := range config.Puzzles {
		result, err := FindPath(p.Piece, p.From, p.To, board)
		if err != nil {
			return nil, fmt.Errorf("puzzle %s: %w", p.Name, err)
		}
		moves := Unreachable
		if result.Found {
			moves = result.Moves
		}
		outcomes = append(outcomes, PuzzleOutcome{
			Puzzle: p,
			Result: result,
			Solved: moves == p.Par,
		})
	}
	return outcomes, nil
}

// NewBoardFromConfig validates the configuration and builds its board
func NewBoardFromConfig(config *BoardConfig) (*Board, error) {
	if config == nil {
		config = DefaultBoardConfig()
	}
	if err := ValidateBoardConfig(config); err != nil {
		return nil, err
	}
	return ParseLayout(config.Layout)
}

// LoadBoardConfig loads a board configuration from a JSON file
func LoadBoardConfig(filename string) (*BoardConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filepath.Base(configPath), err)
	}

	if err := ValidateBoardConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", filepath.Base(configPath), err)
	}

	return &config, nil
}

// DefaultBoardConfig returns the built-in 8x8 board
func DefaultBoardConfig() *BoardConfig {
	return &BoardConfig{
		Name:        "default",
		Description: "Open 8x8 board with a few obstacles",
		Width:       8,
		Height:      8,
		Layout: []string{
			"r......k",
			"........",
			"..#..#..",
			"...n....",
			"....b...",
			"..#..#..",
			"........",
			"q......p",
		},
		Legend: DefaultLegend(),
		Puzzles: []Puzzle{
			{Name: "king corner to corner", Piece: King, From: Cell{X: 0, Y: 0}, To: Cell{X: 6, Y: 6}, Par: 7},
			{Name: "knight hop", Piece: Knight, From: Cell{X: 3, Y: 3}, To: Cell{X: 4, Y: 5}, Par: 1},
		},
	}
}
