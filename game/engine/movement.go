package engine

// direction is a unit step or a jump offset
type direction struct{ dx, dy int }

var (
	pawnSteps = []direction{{0, -1}, {0, 1}}

	diagonals = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

	orthogonals = []direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	kingSteps   = squareOffsets(1, func(dx, dy int) bool { return dx != 0 || dy != 0 })
	knightJumps = squareOffsets(2, func(dx, dy int) bool {
		return dx != 0 && dy != 0 && abs(dx) != abs(dy)
	})
)

// moveRule generates the cells a piece reaches in one move from a cell
type moveRule func(from Cell, grid GridView) []Cell

// moveRules is the per-piece strategy table
var moveRules = map[PieceType]moveRule{
	Pawn:   jumpRule(pawnSteps),
	Bishop: slideRule(diagonals),
	Knight: jumpRule(knightJumps),
	Rook:   slideRule(orthogonals),
	King:   jumpRule(kingSteps),
	Queen:  slideRule(append(append([]direction{}, diagonals...), orthogonals...)),
}

// Neighbors returns every cell the piece can reach from the given cell in a
// single move. Occupied and out-of-bounds cells are never returned; sliding
// pieces stop before the first blocked cell. Unknown piece types have no moves.
func Neighbors(piece PieceType, from Cell, grid GridView) []Cell {
	rule, ok := moveRules[piece]
	if !ok || grid == nil {
		return nil
	}
	return rule(from, grid)
}

// IsOpen reports whether the cell lies on the board and is empty
func IsOpen(cell Cell, grid GridView) bool {
	if !InBounds(cell, grid) {
		return false
	}
	_, occupied := grid.Get(cell)
	return !occupied
}

// InBounds reports whether the cell lies on the board
func InBounds(cell Cell, grid GridView) bool {
	width, height := grid.Size()
	return cell.X >= 0 && cell.X < width && cell.Y >= 0 && cell.Y < height
}

// jumpRule checks each offset independently; nothing in between matters
func jumpRule(offsets []direction) moveRule {
	return func(from Cell, grid GridView) []Cell {
		var cells []Cell
		for _, d := range offsets {
			next := from.Offset(d.dx, d.dy)
			if IsOpen(next, grid) {
				cells = append(cells, next)
			}
		}
		return cells
	}
}

// slideRule walks each direction until the edge or an occupant
func slideRule(dirs []direction) moveRule {
	return func(from Cell, grid GridView) []Cell {
		var cells []Cell
		for _, d := range dirs {
			next := from.Offset(d.dx, d.dy)
			for IsOpen(next, grid) {
				cells = append(cells, next)
				next = next.Offset(d.dx, d.dy)
			}
		}
		return cells
	}
}

// squareOffsets enumerates offsets within [-r, r] that satisfy keep,
// x-major so the order is stable
func squareOffsets(r int, keep func(dx, dy int) bool) []direction {
	var offsets []direction
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if keep(dx, dy) {
				offsets = append(offsets, direction{dx, dy})
			}
		}
	}
	return offsets
}
