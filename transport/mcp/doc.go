// Package mcp exposes the chess grid navigator to AI agents over the Model
// Context Protocol.
//
// The Client is a thin proxy: every tool call becomes one or two requests
// against the REST API, and the JSON answers are rendered as text with
// coordinate rulers so an agent can read boards and routes directly.
//
// Tools:
//   - create_session, get_session, list_sessions
//   - board_state
//   - find_path, move_piece
//   - place_piece, remove_piece, reset_board
//   - move_history
//   - list_configs
//   - plan_route (stateless, layout passed inline)
//   - navigator_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
