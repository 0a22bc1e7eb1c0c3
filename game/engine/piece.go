package engine

import (
	"fmt"
	"strings"
)

// PieceType selects the movement geometry used by the navigator
type PieceType string

const (
	Pawn   PieceType = "pawn"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Rook   PieceType = "rook"
	King   PieceType = "king"
	Queen  PieceType = "queen"
)

// AllPieceTypes lists every supported piece type in a stable order
var AllPieceTypes = []PieceType{Pawn, Bishop, Knight, Rook, King, Queen}

var pieceChars = map[PieceType]byte{
	Pawn:   'p',
	Bishop: 'b',
	Knight: 'n',
	Rook:   'r',
	King:   'k',
	Queen:  'q',
}

// Valid reports whether p is one of the known piece types
func (p PieceType) Valid() bool {
	_, ok := pieceChars[p]
	return ok
}

// Char returns the layout character for the piece, or 0 if unknown
func (p PieceType) Char() byte {
	return pieceChars[p]
}

// ParsePieceType accepts a piece name ("knight") or its layout character ("n"),
// case-insensitively.
func ParsePieceType(s string) (PieceType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 {
		if p, ok := PieceTypeFromChar(s[0]); ok {
			return p, nil
		}
	}
	p := PieceType(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown piece type %q", ErrInvalidArgument, s)
	}
	return p, nil
}

// PieceTypeFromChar maps a layout character to its piece type
func PieceTypeFromChar(c byte) (PieceType, bool) {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	for p, pc := range pieceChars {
		if pc == c {
			return p, true
		}
	}
	return "", false
}
