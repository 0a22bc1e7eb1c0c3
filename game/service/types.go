package service

import (
	"time"

	"github.com/wricardo/mcp-training/chessnav/game/engine"
)

// SessionInfo provides information about a board session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	MoveCount      int                 `json:"move_count"`
	Board          *engine.BoardState  `json:"board"`
	BoardConfig    *engine.BoardConfig `json:"board_config"`
}

// PathRequest asks for a route on a session board. Piece is optional; when
// empty the piece standing on From is used.
type PathRequest struct {
	From  engine.Cell `json:"from"`
	To    engine.Cell `json:"to"`
	Piece string      `json:"piece,omitempty"`
}

// RouteRequest asks for a route on a board given inline as layout rows
type RouteRequest struct {
	Layout []string    `json:"layout"`
	Piece  string      `json:"piece"`
	From   engine.Cell `json:"from"`
	To     engine.Cell `json:"to"`
}

// PathResult is a navigator answer together with the query that produced it
type PathResult struct {
	Piece    engine.PieceType `json:"piece"`
	From     engine.Cell      `json:"from"`
	To       engine.Cell      `json:"to"`
	Path     []engine.Cell    `json:"path"`
	Found    bool             `json:"found"`
	Moves    int              `json:"moves"`
	Expanded int              `json:"expanded"`
}

// MoveResult contains the result of moving a piece along its shortest path
type MoveResult struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Piece      engine.PieceType   `json:"piece"`
	From       engine.Cell        `json:"from"`
	To         engine.Cell        `json:"to"`
	Path       []engine.Cell      `json:"path,omitempty"`
	Moves      int                `json:"moves"`
	MoveNumber int                `json:"move_number"`
	Board      *engine.BoardState `json:"board"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a board configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Puzzles     int    `json:"puzzles"`
}

func newPathResult(piece engine.PieceType, from, to engine.Cell, r engine.Result) *PathResult {
	return &PathResult{
		Piece:    piece,
		From:     from,
		To:       to,
		Path:     r.Path,
		Found:    r.Found,
		Moves:    r.Moves,
		Expanded: r.Expanded,
	}
}
