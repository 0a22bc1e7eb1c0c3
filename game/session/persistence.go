package session

import (
	"time"

	"github.com/wricardo/mcp-training/chessnav/game/engine"
	"github.com/wricardo/mcp-training/chessnav/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the on-disk form of a session. The board is stored
// as layout rows so edits and moves survive a restart.
type PersistedSessionData struct {
	ID             string                    `json:"id"`
	ConfigName     string                    `json:"config_name"`
	CreatedAt      time.Time                 `json:"created_at"`
	LastAccessedAt time.Time                 `json:"last_accessed_at"`
	Layout         []string                  `json:"layout"`
	History        []engine.MoveHistoryEntry `json:"history,omitempty"`
}
