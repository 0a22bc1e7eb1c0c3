// Package engine provides the board model and the grid navigator.
//
// The engine package implements:
//   - Per-piece move generation (pawn, bishop, knight, rook, king, queen)
//   - Uniform-cost path search over the resulting movement graph
//   - A mutable Board with text layout parsing and rendering
//   - Board configuration loading and validation
//
// Core Types:
//
// GridView is the only capability the navigator needs from a board: its
// size and a point lookup. Board implements it, but any read-only view of a
// grid can be searched. FindPath returns a Result whose Found flag separates
// "no path" from a path.
//
// Usage:
//
//	board, err := engine.ParseLayout([]string{
//		"....",
//		".#..",
//		"....",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := engine.FindPath(engine.Knight, engine.Cell{X: 0, Y: 0}, engine.Cell{X: 3, Y: 2}, board)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if result.Found {
//		fmt.Println(result.Path)
//	}
//
// Movement Rules:
//
// Pawns step one cell up or down. Kings step to any of the eight surrounding
// cells and knights jump in an L; both ignore what lies between. Bishops,
// rooks and queens slide along their lines and stop before the first occupied
// cell or the board edge. A destination must always be empty, so an occupied
// target is unreachable unless it is the start cell.
package engine
