package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/chessnav/game/engine"
)

// ErrNoPath is returned when a piece has no route to the requested cell
var ErrNoPath = errors.New("no path")

// navigatorServiceImpl implements the NavigatorService interface
type navigatorServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
	now      func() time.Time
}

// NewNavigatorService creates a new navigator service instance
func NewNavigatorService(sessions SessionManager, configs ConfigManager) NavigatorService {
	return &navigatorServiceImpl{
		sessions: sessions,
		configs:  configs,
		now:      time.Now,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *navigatorServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *navigatorServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		MoveCount:      len(sess.History),
		Board:          sess.Board.State(),
		BoardConfig:    sess.Config,
	}
}

// CreateSession creates a new board session
func (s *navigatorServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.BoardConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v: %w", configName, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations: %w", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := strings.TrimSuffix(configName, ".json")
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return s.sessionInfo(sess, configID), nil
}

// GetSession retrieves session information
func (s *navigatorServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(sess, s.getConfigID(sess.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *navigatorServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *navigatorServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// GetBoard returns the current board of a session
func (s *navigatorServiceImpl) GetBoard(ctx context.Context, sessionID string) (*engine.BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Board.State(), nil
}

// FindPath routes a piece on the session board without moving it
func (s *navigatorServiceImpl) FindPath(ctx context.Context, sessionID string, req PathRequest) (*PathResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	piece, err := resolvePiece(sess.Board, req.From, req.Piece)
	if err != nil {
		return nil, err
	}

	result, err := engine.FindPath(piece, req.From, req.To, sess.Board)
	if err != nil {
		return nil, err
	}

	return newPathResult(piece, req.From, req.To, result), nil
}

// MovePiece moves the piece on from to the target along a shortest path.
// Failed attempts are recorded in the history and reported as ErrNoPath.
func (s *navigatorServiceImpl) MovePiece(ctx context.Context, sessionID string, from, to engine.Cell) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	piece, err := resolvePiece(sess.Board, from, "")
	if err != nil {
		return nil, err
	}

	result, err := engine.FindPath(piece, from, to, sess.Board)
	if err != nil {
		return nil, err
	}

	if result.Found && !engine.IsValidPath(piece, result.Path, sess.Board) {
		return nil, fmt.Errorf("route for %s from %s to %s is not legal on this board", piece, from, to)
	}

	entry := engine.MoveHistoryEntry{
		Piece:      piece,
		From:       from,
		To:         to,
		Path:       result.Path,
		Moves:      result.Moves,
		Success:    result.Found,
		Timestamp:  s.now().Unix(),
		MoveNumber: len(sess.History) + 1,
	}
	sess.History = append(sess.History, entry)

	if result.Found {
		if err := sess.Board.Relocate(from, to); err != nil {
			sess.History = sess.History[:len(sess.History)-1]
			return nil, fmt.Errorf("failed to move %s: %w", piece, err)
		}
	}

	s.sessions.UpdateLastAccessed(sessionID)
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after move: %v", sessionID, err)
	}

	if !result.Found {
		return nil, fmt.Errorf("%w: %s cannot reach %s from %s", ErrNoPath, piece, to, from)
	}

	return &MoveResult{
		Success:    true,
		Message:    fmt.Sprintf("%s moved from %s to %s in %d moves", piece, from, to, result.Moves),
		Piece:      piece,
		From:       from,
		To:         to,
		Path:       result.Path,
		Moves:      result.Moves,
		MoveNumber: entry.MoveNumber,
		Board:      sess.Board.State(),
	}, nil
}

// PlacePiece puts a piece or an obstacle on an empty cell
func (s *navigatorServiceImpl) PlacePiece(ctx context.Context, sessionID string, cell engine.Cell, occupant string) (*engine.BoardState, error) {
	occ, err := engine.ParseOccupant(occupant)
	if err != nil {
		return nil, err
	}

	return s.mutateBoard(sessionID, func(board *engine.Board) error {
		return board.Place(cell, occ)
	})
}

// RemovePiece clears an occupied cell
func (s *navigatorServiceImpl) RemovePiece(ctx context.Context, sessionID string, cell engine.Cell) (*engine.BoardState, error) {
	return s.mutateBoard(sessionID, func(board *engine.Board) error {
		_, err := board.Remove(cell)
		return err
	})
}

func (s *navigatorServiceImpl) mutateBoard(sessionID string, mutate func(*engine.Board) error) (*engine.BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	if err := mutate(sess.Board); err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after board edit: %v", sessionID, err)
	}

	return sess.Board.State(), nil
}

// Reset restores the configured layout and clears the move history
func (s *navigatorServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	board, err := engine.NewBoardFromConfig(sess.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild board: %w", err)
	}
	sess.Board = board
	sess.History = nil

	s.sessions.UpdateLastAccessed(sessionID)

	// Auto-save session after reset
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after reset: %v", sessionID, err)
	}

	return board.State(), nil
}

// GetMoveHistory retrieves paginated move history for a session
func (s *navigatorServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	return paginateHistory(sess.History, opts), nil
}

// Route answers a one-off query on a board given inline
func (s *navigatorServiceImpl) Route(ctx context.Context, req RouteRequest) (*PathResult, error) {
	board, err := engine.ParseLayout(req.Layout)
	if err != nil {
		return nil, err
	}

	piece, err := resolvePiece(board, req.From, req.Piece)
	if err != nil {
		return nil, err
	}

	result, err := engine.FindPath(piece, req.From, req.To, board)
	if err != nil {
		return nil, err
	}

	return newPathResult(piece, req.From, req.To, result), nil
}

// ListConfigs returns available board configurations
func (s *navigatorServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific board configuration
func (s *navigatorServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.BoardConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a board configuration to disk
func (s *navigatorServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.BoardConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// resolvePiece picks the piece to route: the explicit override when given,
// otherwise the piece standing on from
func resolvePiece(board *engine.Board, from engine.Cell, override string) (engine.PieceType, error) {
	if override != "" {
		return engine.ParsePieceType(override)
	}
	if !board.InBounds(from) {
		return "", fmt.Errorf("%w: from %s is outside the board", engine.ErrInvalidArgument, from)
	}
	occ, ok := board.Get(from)
	if !ok {
		return "", fmt.Errorf("%w: no piece on %s", engine.ErrCellEmpty, from)
	}
	if occ.Kind != engine.KindPiece {
		return "", fmt.Errorf("%w: %s holds an obstacle", engine.ErrInvalidArgument, from)
	}
	return occ.Piece, nil
}

func paginateHistory(history []engine.MoveHistoryEntry, opts HistoryOptions) *HistoryResponse {
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveHistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}
