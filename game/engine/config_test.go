package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createValidConfig() *BoardConfig {
	return &BoardConfig{
		Name:        "Test Board",
		Description: "A valid test board",
		Width:       5,
		Height:      5,
		Layout: []string{
			"r....",
			"..#..",
			"..#..",
			"..#..",
			"....k",
		},
		Legend: DefaultLegend(),
		Puzzles: []Puzzle{
			{Name: "rook around", Piece: Rook, From: Cell{X: 0, Y: 0}, To: Cell{X: 4, Y: 0}, Par: 1},
			{Name: "bishop color", Piece: Bishop, From: Cell{X: 0, Y: 1}, To: Cell{X: 1, Y: 1}, Par: Unreachable},
		},
	}
}

func TestValidateBoardConfig_Valid(t *testing.T) {
	require.NoError(t, ValidateBoardConfig(createValidConfig()))
	require.NoError(t, ValidateBoardConfig(DefaultBoardConfig()))
}

func TestValidateBoardConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *BoardConfig)
		want   string
	}{
		{"missing name", func(c *BoardConfig) { c.Name = "" }, "name is required"},
		{"missing description", func(c *BoardConfig) { c.Description = "" }, "description is required"},
		{"width too small", func(c *BoardConfig) { c.Width = 0 }, "width must be between"},
		{"height too large", func(c *BoardConfig) { c.Height = MaxBoardSize + 1 }, "height must be between"},
		{"row count mismatch", func(c *BoardConfig) { c.Layout = c.Layout[:4] }, "layout must have 5 rows"},
		{"row length mismatch", func(c *BoardConfig) { c.Layout[2] = "...." }, "row 3 must have 5 characters"},
		{"invalid character", func(c *BoardConfig) { c.Layout[0] = "r..x." }, "invalid character 'x'"},
		{"legend mismatch", func(c *BoardConfig) { c.Legend["#"] = "wall" }, "legend['#'] must be 'obstacle'"},
		{"legend unknown key", func(c *BoardConfig) { c.Legend["z"] = "zebra" }, "unknown key 'z'"},
		{"puzzle unknown piece", func(c *BoardConfig) { c.Puzzles[0].Piece = "dragon" }, "unknown piece"},
		{"puzzle out of bounds", func(c *BoardConfig) { c.Puzzles[0].To = Cell{X: 5, Y: 0} }, "outside the board"},
		{"puzzle bad par", func(c *BoardConfig) { c.Puzzles[1].Par = -3 }, "par must be >="},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := createValidConfig()
			test.mutate(config)
			err := ValidateBoardConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.want)
		})
	}

	assert.Error(t, ValidateBoardConfig(nil))
}

func TestSolvePuzzles(t *testing.T) {
	config := createValidConfig()
	config.Puzzles = append(config.Puzzles,
		Puzzle{Name: "wrong par", Piece: Rook, From: Cell{X: 0, Y: 0}, To: Cell{X: 4, Y: 3}, Par: 1})

	outcomes, err := SolvePuzzles(config)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	assert.True(t, outcomes[0].Solved)
	assert.Equal(t, 1, outcomes[0].Result.Moves)

	assert.True(t, outcomes[1].Solved, "opposite colors are unreachable for a bishop")
	assert.False(t, outcomes[1].Result.Found)

	assert.False(t, outcomes[2].Solved)
	assert.Equal(t, 2, outcomes[2].Result.Moves)
}

func TestSolvePuzzles_DefaultBoard(t *testing.T) {
	outcomes, err := SolvePuzzles(DefaultBoardConfig())
	require.NoError(t, err)
	for _, o := range outcomes {
		assert.True(t, o.Solved, "%s: par %d, got %+v", o.Puzzle.Name, o.Puzzle.Par, o.Result)
	}
}

func TestNewBoardFromConfig(t *testing.T) {
	board, err := NewBoardFromConfig(nil)
	require.NoError(t, err)
	w, h := board.Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 8, h)

	bad := createValidConfig()
	bad.Width = 4
	_, err = NewBoardFromConfig(bad)
	assert.Error(t, err)
}

func TestLoadBoardConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.json")

	content := `{
		"name": "file board",
		"description": "loaded from disk",
		"width": 3,
		"height": 2,
		"layout": ["n..", ".#."],
		"puzzles": [{"name": "jump", "piece": "knight", "from": {"x": 0, "y": 0}, "to": {"x": 2, "y": 1}, "par": 1}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadBoardConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "file board", config.Name)
	assert.Equal(t, Knight, config.Puzzles[0].Piece)

	require.NoError(t, os.WriteFile(path, []byte(`{"name": "x"`), 0644))
	_, err = LoadBoardConfig(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"name": "x", "description": "y", "width": 2, "height": 1, "layout": ["..."]}`), 0644))
	_, err = LoadBoardConfig(path)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid config"))

	_, err = LoadBoardConfig(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
