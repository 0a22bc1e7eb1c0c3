// Package session provides session management for the chess grid navigator.
//
// A session owns one mutable engine.Board built from a board configuration,
// along with its move history and access times. The package implements:
//   - Thread-safe session storage and retrieval
//   - Case-insensitive 4-character session IDs
//   - Optional JSON file persistence that survives restarts
//   - Eviction of idle sessions
//
// Persistence:
//
// FilePersistence writes one JSON file per session containing the config ID,
// the current layout rows and the move history. On load the configuration is
// resolved through the config manager and the board is rebuilt from the
// stored layout, so placed pieces and completed moves are kept.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions", configManager)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//	if err := manager.LoadPersistedSessions(); err != nil {
//		log.Printf("warning: %v", err)
//	}
//
//	sess, err := manager.Create("", boardConfig)
package session
