package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCellOccupied = errors.New("cell is occupied")
	ErrCellEmpty    = errors.New("cell is empty")
	ErrOutOfBounds  = errors.New("cell is outside the board")
)

// Board is a mutable width x height grid of optional occupants.
// It implements GridView. Board is not safe for concurrent mutation;
// callers serialise writes.
type Board struct {
	width  int
	height int
	cells  [][]*Occupant
}

// NewBoard creates an empty board
func NewBoard(width, height int) (*Board, error) {
	if width < MinBoardSize || width > MaxBoardSize || height < MinBoardSize || height > MaxBoardSize {
		return nil, fmt.Errorf("%w: board size must be between %d and %d, got %dx%d",
			ErrInvalidArgument, MinBoardSize, MaxBoardSize, width, height)
	}

	cells := make([][]*Occupant, height)
	for y := range cells {
		cells[y] = make([]*Occupant, width)
	}

	return &Board{width: width, height: height, cells: cells}, nil
}

// ParseLayout builds a board from layout rows. Every row must have the same
// length; '.' is empty, '#' is an obstacle, and piece characters place pieces.
func ParseLayout(rows []string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: layout is empty", ErrInvalidArgument)
	}

	board, err := NewBoard(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}

	for y, row := range rows {
		if len(row) != board.width {
			return nil, fmt.Errorf("%w: row %d must have %d characters, got %d",
				ErrInvalidArgument, y+1, board.width, len(row))
		}
		for x := 0; x < len(row); x++ {
			occ, ok, err := occupantFromChar(row[x])
			if err != nil {
				return nil, fmt.Errorf("%w at row %d, col %d", err, y+1, x+1)
			}
			if ok {
				board.cells[y][x] = &occ
			}
		}
	}

	return board, nil
}

// Size returns the board dimensions
func (b *Board) Size() (int, int) {
	return b.width, b.height
}

// Get returns the occupant of an in-bounds cell
func (b *Board) Get(cell Cell) (Occupant, bool) {
	if !b.InBounds(cell) {
		return Occupant{}, false
	}
	occ := b.cells[cell.Y][cell.X]
	if occ == nil {
		return Occupant{}, false
	}
	return *occ, true
}

// InBounds reports whether the cell lies on the board
func (b *Board) InBounds(cell Cell) bool {
	return cell.X >= 0 && cell.X < b.width && cell.Y >= 0 && cell.Y < b.height
}

// Place puts an occupant on an empty cell
func (b *Board) Place(cell Cell, occ Occupant) error {
	if !b.InBounds(cell) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, cell)
	}
	if occ.Kind == KindPiece && !occ.Piece.Valid() {
		return fmt.Errorf("%w: unknown piece type %q", ErrInvalidArgument, occ.Piece)
	}
	if occ.Kind != KindPiece && occ.Kind != KindObstacle {
		return fmt.Errorf("%w: unknown occupant kind %q", ErrInvalidArgument, occ.Kind)
	}
	if b.cells[cell.Y][cell.X] != nil {
		return fmt.Errorf("%w: %s", ErrCellOccupied, cell)
	}
	if occ.Kind == KindObstacle {
		occ.Piece = ""
	}
	b.cells[cell.Y][cell.X] = &occ
	return nil
}

// Remove clears a cell and returns what was on it
func (b *Board) Remove(cell Cell) (Occupant, error) {
	if !b.InBounds(cell) {
		return Occupant{}, fmt.Errorf("%w: %s", ErrOutOfBounds, cell)
	}
	occ := b.cells[cell.Y][cell.X]
	if occ == nil {
		return Occupant{}, fmt.Errorf("%w: %s", ErrCellEmpty, cell)
	}
	b.cells[cell.Y][cell.X] = nil
	return *occ, nil
}

// Relocate moves whatever stands on from to the empty cell to.
// It does not check movement rules.
func (b *Board) Relocate(from, to Cell) error {
	if !b.InBounds(from) || !b.InBounds(to) {
		return fmt.Errorf("%w: %s -> %s", ErrOutOfBounds, from, to)
	}
	if from == to {
		return nil
	}
	if b.cells[from.Y][from.X] == nil {
		return fmt.Errorf("%w: %s", ErrCellEmpty, from)
	}
	if b.cells[to.Y][to.X] != nil {
		return fmt.Errorf("%w: %s", ErrCellOccupied, to)
	}
	b.cells[to.Y][to.X] = b.cells[from.Y][from.X]
	b.cells[from.Y][from.X] = nil
	return nil
}

// Layout renders the board back into layout rows
func (b *Board) Layout() []string {
	rows := make([]string, b.height)
	for y := 0; y < b.height; y++ {
		var sb strings.Builder
		for x := 0; x < b.width; x++ {
			sb.WriteByte(charForOccupant(b.cells[y][x]))
		}
		rows[y] = sb.String()
	}
	return rows
}

// Occupants lists every occupied cell in row-major order
func (b *Board) Occupants() []PlacedOccupant {
	var placed []PlacedOccupant
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if occ := b.cells[y][x]; occ != nil {
				placed = append(placed, PlacedOccupant{Cell: Cell{X: x, Y: y}, Occupant: *occ})
			}
		}
	}
	return placed
}

// State returns a serialisable snapshot of the board
func (b *Board) State() *BoardState {
	occupants := b.Occupants()
	if occupants == nil {
		occupants = []PlacedOccupant{}
	}
	return &BoardState{
		Width:     b.width,
		Height:    b.height,
		Layout:    b.Layout(),
		Occupants: occupants,
	}
}

func occupantFromChar(c byte) (Occupant, bool, error) {
	switch c {
	case EmptyChar:
		return Occupant{}, false, nil
	case ObstacleChar:
		return ObstacleOccupant(), true, nil
	}
	if p, ok := PieceTypeFromChar(c); ok {
		return PieceOccupant(p), true, nil
	}
	return Occupant{}, false, fmt.Errorf("%w: invalid layout character '%c'", ErrInvalidArgument, c)
}

func charForOccupant(occ *Occupant) byte {
	switch {
	case occ == nil:
		return EmptyChar
	case occ.Kind == KindObstacle:
		return ObstacleChar
	default:
		return occ.Piece.Char()
	}
}

// ParseOccupant accepts "obstacle" or "#" for an obstacle, otherwise a piece
// name or character as understood by ParsePieceType
func ParseOccupant(s string) (Occupant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "obstacle", string(ObstacleChar):
		return ObstacleOccupant(), nil
	}
	p, err := ParsePieceType(s)
	if err != nil {
		return Occupant{}, err
	}
	return PieceOccupant(p), nil
}
