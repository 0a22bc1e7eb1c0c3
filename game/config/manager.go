package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/chessnav/game/engine"
	"github.com/wricardo/mcp-training/chessnav/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// preferredDefault is the board new sessions get when none is named
const preferredDefault = "classic"

// Manager serves board configurations from a directory of JSON files.
// Parsed boards are cached by config ID; the default board is chosen once.
type Manager struct {
	dir          string
	defaultBoard *engine.BoardConfig

	mu     sync.RWMutex
	boards map[string]*engine.BoardConfig
}

// NewManager opens a configuration directory and picks its default board
func NewManager(dir string) (*Manager, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("config directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("config directory %s is not a directory", dir)
	}

	m := &Manager{
		dir:    dir,
		boards: make(map[string]*engine.BoardConfig),
	}
	m.defaultBoard = m.pickDefault()
	return m, nil
}

// configID turns "walled" or "walled.json" into a cache key. Anything that
// would leave the directory is rejected.
func configID(name string) (string, bool) {
	id := strings.TrimSuffix(name, ".json")
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", false
	}
	return id, true
}

func (m *Manager) path(id string) string {
	return filepath.Join(m.dir, id+".json")
}

// LoadConfig returns the board with the given ID, with or without .json
func (m *Manager) LoadConfig(name string) (*engine.BoardConfig, error) {
	id, ok := configID(name)
	if !ok {
		return nil, ErrConfigNotFound
	}

	m.mu.RLock()
	board, cached := m.boards[id]
	m.mu.RUnlock()
	if cached {
		return board, nil
	}

	board, err := readBoard(m.path(id))
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// First reader to finish wins so every caller shares one value
	if existing, ok := m.boards[id]; ok {
		return existing, nil
	}
	m.boards[id] = board
	return board, nil
}

func readBoard(path string) (*engine.BoardConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var board engine.BoardConfig
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}
	if err := engine.ValidateBoardConfig(&board); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &board, nil
}

// ListConfigs describes every loadable board in the directory, sorted by ID.
// Files that fail to load are left out.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	files, err := filepath.Glob(filepath.Join(m.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan config directory: %w", err)
	}

	infos := make([]*service.ConfigInfo, 0, len(files))
	for _, file := range files {
		filename := filepath.Base(file)
		board, err := m.LoadConfig(filename)
		if err != nil {
			continue
		}
		infos = append(infos, &service.ConfigInfo{
			Filename:    filename,
			ConfigID:    strings.TrimSuffix(filename, ".json"),
			Name:        board.Name,
			Description: board.Description,
			Width:       board.Width,
			Height:      board.Height,
			Puzzles:     len(board.Puzzles),
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].ConfigID < infos[j].ConfigID })
	return infos, nil
}

// GetDefault returns the board used when a session names none
func (m *Manager) GetDefault() *engine.BoardConfig {
	return m.defaultBoard
}

// pickDefault prefers classic.json, then the first loadable file by ID,
// then the built-in board
func (m *Manager) pickDefault() *engine.BoardConfig {
	if board, err := m.LoadConfig(preferredDefault); err == nil {
		return board
	}
	if infos, err := m.ListConfigs(); err == nil && len(infos) > 0 {
		if board, err := m.LoadConfig(infos[0].ConfigID); err == nil {
			return board
		}
	}
	return engine.DefaultBoardConfig()
}

// SaveConfig validates a board, writes it as indented JSON and replaces any
// cached copy
func (m *Manager) SaveConfig(name string, board *engine.BoardConfig) error {
	if err := engine.ValidateBoardConfig(board); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	id, ok := configID(name)
	if !ok {
		return fmt.Errorf("%w: config id %q is not a plain file name", ErrInvalidConfig, name)
	}

	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(m.path(id), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.boards[id] = board
	m.mu.Unlock()
	return nil
}
