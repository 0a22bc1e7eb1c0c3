package engine

import (
	"errors"
	"testing"
)

func TestParseLayout(t *testing.T) {
	board, err := ParseLayout([]string{
		"r.#",
		".N.",
	})
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}

	w, h := board.Size()
	if w != 3 || h != 2 {
		t.Fatalf("expected 3x2, got %dx%d", w, h)
	}

	tests := []struct {
		cell     Cell
		occupied bool
		expected Occupant
	}{
		{Cell{0, 0}, true, PieceOccupant(Rook)},
		{Cell{1, 0}, false, Occupant{}},
		{Cell{2, 0}, true, ObstacleOccupant()},
		{Cell{1, 1}, true, PieceOccupant(Knight)},
		{Cell{5, 5}, false, Occupant{}},
	}
	for _, test := range tests {
		occ, ok := board.Get(test.cell)
		if ok != test.occupied || occ != test.expected {
			t.Errorf("Get(%s): expected (%v,%v), got (%v,%v)", test.cell, test.expected, test.occupied, occ, ok)
		}
	}

	layout := board.Layout()
	if layout[0] != "r.#" || layout[1] != ".n." {
		t.Errorf("unexpected layout round trip: %v", layout)
	}
}

func TestParseLayout_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"empty row", []string{""}},
		{"ragged", []string{"...", ".."}},
		{"bad char", []string{"..x"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseLayout(test.rows); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestNewBoard_Bounds(t *testing.T) {
	if _, err := NewBoard(0, 3); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := NewBoard(3, MaxBoardSize+1); err == nil {
		t.Error("expected error for oversized height")
	}
	if _, err := NewBoard(MaxBoardSize, MaxBoardSize); err != nil {
		t.Errorf("unexpected error for max size: %v", err)
	}
}

func TestBoard_PlaceRemoveRelocate(t *testing.T) {
	board, err := NewBoard(4, 4)
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}

	if err := board.Place(Cell{1, 1}, PieceOccupant(Queen)); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if err := board.Place(Cell{1, 1}, ObstacleOccupant()); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("expected ErrCellOccupied, got %v", err)
	}
	if err := board.Place(Cell{9, 9}, ObstacleOccupant()); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if err := board.Place(Cell{0, 0}, PieceOccupant("dragon")); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if err := board.Place(Cell{0, 0}, Occupant{Kind: "ghost"}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for unknown kind, got %v", err)
	}

	if err := board.Relocate(Cell{1, 1}, Cell{3, 3}); err != nil {
		t.Fatalf("Relocate failed: %v", err)
	}
	if _, ok := board.Get(Cell{1, 1}); ok {
		t.Error("source cell should be empty after relocate")
	}
	if occ, ok := board.Get(Cell{3, 3}); !ok || occ.Piece != Queen {
		t.Errorf("expected queen at (3,3), got %v %v", occ, ok)
	}
	if err := board.Relocate(Cell{1, 1}, Cell{2, 2}); !errors.Is(err, ErrCellEmpty) {
		t.Errorf("expected ErrCellEmpty, got %v", err)
	}

	occ, err := board.Remove(Cell{3, 3})
	if err != nil || occ.Piece != Queen {
		t.Fatalf("Remove: expected queen, got %v %v", occ, err)
	}
	if _, err := board.Remove(Cell{3, 3}); !errors.Is(err, ErrCellEmpty) {
		t.Errorf("expected ErrCellEmpty, got %v", err)
	}
}

func TestBoard_State(t *testing.T) {
	board, _ := ParseLayout([]string{"b.", ".#"})
	state := board.State()

	if state.Width != 2 || state.Height != 2 {
		t.Errorf("unexpected size %dx%d", state.Width, state.Height)
	}
	if len(state.Occupants) != 2 {
		t.Fatalf("expected 2 occupants, got %d", len(state.Occupants))
	}
	if state.Occupants[0].Cell != (Cell{0, 0}) || state.Occupants[0].Occupant.Piece != Bishop {
		t.Errorf("unexpected first occupant: %+v", state.Occupants[0])
	}
	if CountOccupants(board, KindObstacle) != 1 || CountOccupants(board, KindPiece) != 1 {
		t.Error("unexpected occupant counts")
	}

	empty, _ := NewBoard(2, 2)
	if empty.State().Occupants == nil {
		t.Error("occupants should serialise as an empty list")
	}
}

func TestBoard_NavigatesWithPieces(t *testing.T) {
	board, err := ParseLayout([]string{
		"r...",
		"###.",
		"....",
	})
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}

	result, err := FindPath(Rook, Cell{0, 0}, Cell{0, 2}, board)
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if !result.Found || result.Moves != 3 {
		t.Fatalf("expected a 3-move route, got %+v", result)
	}
	want := []Cell{{0, 0}, {3, 0}, {3, 2}, {0, 2}}
	if !sameCells(result.Path, want) {
		t.Errorf("expected %v, got %v", want, result.Path)
	}
}

func TestParseOccupant(t *testing.T) {
	tests := []struct {
		in      string
		want    Occupant
		wantErr bool
	}{
		{"obstacle", ObstacleOccupant(), false},
		{"#", ObstacleOccupant(), false},
		{"Knight", PieceOccupant(Knight), false},
		{"q", PieceOccupant(Queen), false},
		{" K ", PieceOccupant(King), false},
		{"dragon", Occupant{}, true},
		{"", Occupant{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOccupant(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOccupant(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOccupant(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
