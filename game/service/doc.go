// Package service provides the business logic layer for the chess grid navigator.
//
// The service package implements:
//   - Multi-session board management
//   - Path queries against session boards and inline layouts
//   - Moving pieces along their shortest path
//   - Board editing (placing and removing pieces or obstacles)
//   - Move history tracking with pagination
//
// Core Interfaces:
//
// NavigatorService is the main service interface used by every transport.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages board configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the engine. Each session owns an independent engine.Board built from its
// configuration. Board mutations take the service write lock; path queries
// take the read lock, since the navigator itself never mutates the board.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	navigator := service.NewNavigatorService(sessionMgr, configMgr)
//
//	info, err := navigator.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	path, err := navigator.FindPath(ctx, info.ID, service.PathRequest{
//		From: engine.Cell{X: 0, Y: 0},
//		To:   engine.Cell{X: 6, Y: 6},
//	})
package service
