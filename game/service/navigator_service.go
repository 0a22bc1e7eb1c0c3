package service

import (
	"context"
	"time"

	"github.com/wricardo/mcp-training/chessnav/game/engine"
)

// NavigatorService defines all board and routing operations
type NavigatorService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Board Operations
	GetBoard(ctx context.Context, sessionID string) (*engine.BoardState, error)
	FindPath(ctx context.Context, sessionID string, req PathRequest) (*PathResult, error)
	MovePiece(ctx context.Context, sessionID string, from, to engine.Cell) (*MoveResult, error)
	PlacePiece(ctx context.Context, sessionID string, cell engine.Cell, occupant string) (*engine.BoardState, error)
	RemovePiece(ctx context.Context, sessionID string, cell engine.Cell) (*engine.BoardState, error)
	Reset(ctx context.Context, sessionID string) (*engine.BoardState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Stateless routing
	Route(ctx context.Context, req RouteRequest) (*PathResult, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.BoardConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.BoardConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.BoardConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles board configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.BoardConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.BoardConfig
	SaveConfig(name string, config *engine.BoardConfig) error
}

// Session is a live board built from a configuration, plus its move log
type Session struct {
	ID             string
	Board          *engine.Board
	Config         *engine.BoardConfig
	History        []engine.MoveHistoryEntry
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
