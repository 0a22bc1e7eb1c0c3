package engine

import "fmt"

// OccupantKind distinguishes pieces from static obstacles
type OccupantKind string

const (
	KindPiece    OccupantKind = "piece"
	KindObstacle OccupantKind = "obstacle"

	// Validation constants
	MinBoardSize       = 1
	MaxBoardSize       = 32
	MaxPuzzlesPerBoard = 64
	Unreachable        = -1

	// Layout characters
	EmptyChar    = '.'
	ObstacleChar = '#'
)

// Cell is a board coordinate. X grows to the right, Y grows downward.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String renders the cell as (x,y)
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Offset returns the cell shifted by dx, dy
func (c Cell) Offset(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Occupant is whatever stands on a board cell
type Occupant struct {
	Kind  OccupantKind `json:"kind"`
	Piece PieceType    `json:"piece,omitempty"`
}

// PieceOccupant returns an occupant holding the given piece
func PieceOccupant(piece PieceType) Occupant {
	return Occupant{Kind: KindPiece, Piece: piece}
}

// ObstacleOccupant returns a static obstacle
func ObstacleOccupant() Occupant {
	return Occupant{Kind: KindObstacle}
}

// GridView is the read-only capability the navigator needs from a board.
// Get reports whether the cell holds an occupant; callers must only ask
// for in-bounds cells.
type GridView interface {
	Size() (width, height int)
	Get(cell Cell) (Occupant, bool)
}

// Puzzle is a routing challenge attached to a board configuration.
// Par is the minimal number of moves, or Unreachable.
type Puzzle struct {
	Name  string    `json:"name"`
	Piece PieceType `json:"piece"`
	From  Cell      `json:"from"`
	To    Cell      `json:"to"`
	Par   int       `json:"par"`
}

// BoardConfig represents a board layout loaded from JSON
type BoardConfig struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Layout      []string          `json:"layout"`
	Legend      map[string]string `json:"legend,omitempty"`
	Puzzles     []Puzzle          `json:"puzzles,omitempty"`
}

// PlacedOccupant is an occupant together with its position
type PlacedOccupant struct {
	Cell     Cell     `json:"cell"`
	Occupant Occupant `json:"occupant"`
}

// BoardState is the serialisable snapshot of a board
type BoardState struct {
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	Layout    []string         `json:"layout"`
	Occupants []PlacedOccupant `json:"occupants"`
}

// MoveHistoryEntry records a piece move along a navigator path
type MoveHistoryEntry struct {
	Piece      PieceType `json:"piece"`
	From       Cell      `json:"from"`
	To         Cell      `json:"to"`
	Path       []Cell    `json:"path,omitempty"`
	Moves      int       `json:"moves"`
	Success    bool      `json:"success"`
	Timestamp  int64     `json:"timestamp"`
	MoveNumber int       `json:"move_number"`
}
