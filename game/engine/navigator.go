package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks requests the navigator refuses to answer,
// such as cells outside the board.
var ErrInvalidArgument = errors.New("invalid argument")

// Result contains the outcome of a path search
type Result struct {
	Path     []Cell `json:"path"`
	Found    bool   `json:"found"`
	Moves    int    `json:"moves"`
	Expanded int    `json:"expanded"`
}

// searchState holds the per-call bookkeeping of a search
type searchState struct {
	open     *frontier
	visited  map[Cell]bool
	cost     map[Cell]int
	cameFrom map[Cell]Cell
	expanded int
}

// FindPath computes a shortest sequence of moves for the piece from one cell
// to another. Every move costs 1. When several shortest paths exist the
// search expands cells by cost and then by the order they were discovered,
// so the answer is deterministic.
//
// The target must be empty unless it equals from: occupied cells are never
// neighbors, so an occupied target is reported as not found. An unreachable
// target is not an error; Result.Found is false and Result.Path is nil.
// Cells outside the board fail with ErrInvalidArgument.
func FindPath(piece PieceType, from, to Cell, grid GridView) (Result, error) {
	if err := checkGrid(grid); err != nil {
		return Result{}, err
	}
	if !InBounds(from, grid) {
		return Result{}, fmt.Errorf("%w: from %s is outside the board", ErrInvalidArgument, from)
	}
	if !InBounds(to, grid) {
		return Result{}, fmt.Errorf("%w: to %s is outside the board", ErrInvalidArgument, to)
	}

	s := search(piece, from, grid, func(c Cell) bool { return c == to })
	if !s.visited[to] {
		return Result{Expanded: s.expanded}, nil
	}

	path := reconstructPath(s.cameFrom, to)
	return Result{
		Path:     path,
		Found:    true,
		Moves:    len(path) - 1,
		Expanded: s.expanded,
	}, nil
}

// Reachable returns the minimal move count from the start cell to every cell
// the piece can reach, including the start itself at 0.
func Reachable(piece PieceType, from Cell, grid GridView) (map[Cell]int, error) {
	if err := checkGrid(grid); err != nil {
		return nil, err
	}
	if !InBounds(from, grid) {
		return nil, fmt.Errorf("%w: from %s is outside the board", ErrInvalidArgument, from)
	}

	s := search(piece, from, grid, nil)
	return s.cost, nil
}

// search runs uniform-cost search from start until stop accepts the cell
// being expanded or the frontier runs dry. The accepted cell is marked
// visited before returning.
func search(piece PieceType, start Cell, grid GridView, stop func(Cell) bool) *searchState {
	s := &searchState{
		open:     newFrontier(),
		visited:  make(map[Cell]bool),
		cost:     map[Cell]int{start: 0},
		cameFrom: make(map[Cell]Cell),
	}
	s.open.Upsert(start, 0)

	for s.open.Len() > 0 {
		current, currentCost := s.open.PopMin()
		s.visited[current] = true

		if stop != nil && stop(current) {
			return s
		}
		s.expanded++

		for _, next := range Neighbors(piece, current, grid) {
			if s.visited[next] {
				continue
			}
			nextCost := currentCost + 1
			if known, ok := s.cost[next]; !ok || nextCost < known {
				s.cameFrom[next] = current
				s.cost[next] = nextCost
				s.open.Upsert(next, nextCost)
			}
		}
	}

	return s
}

// reconstructPath walks predecessors back from the target and returns the
// cells in travel order
func reconstructPath(cameFrom map[Cell]Cell, current Cell) []Cell {
	path := []Cell{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// IsValidPath checks that consecutive cells are one legal move apart for the
// piece on the given grid
func IsValidPath(piece PieceType, path []Cell, grid GridView) bool {
	if len(path) == 0 {
		return false
	}
	for i := 1; i < len(path); i++ {
		step := false
		for _, n := range Neighbors(piece, path[i-1], grid) {
			if n == path[i] {
				step = true
				break
			}
		}
		if !step {
			return false
		}
	}
	return true
}

func checkGrid(grid GridView) error {
	if grid == nil {
		return fmt.Errorf("%w: grid is nil", ErrInvalidArgument)
	}
	width, height := grid.Size()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: grid size %dx%d", ErrInvalidArgument, width, height)
	}
	return nil
}
