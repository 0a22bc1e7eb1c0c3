// Package api provides the HTTP REST API for the chess grid navigator.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create session, body {"config_id": "classic"} (optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Session details
//   - DELETE /api/sessions/{id} - Delete session
//
// Board:
//   - GET /api/sessions/{id}/board - Current board
//   - POST /api/sessions/{id}/path - Shortest route, body {from, to, piece?}; does not move
//   - POST /api/sessions/{id}/move - Move the piece on from to to along its shortest route
//   - PUT /api/sessions/{id}/cells/{x}/{y} - Place {"occupant": "knight"|"n"|"obstacle"}
//   - DELETE /api/sessions/{id}/cells/{x}/{y} - Clear a cell
//   - POST /api/sessions/{id}/reset - Restore the configured layout
//   - GET /api/sessions/{id}/history - Move history (?page=&limit=&order=)
//
// Stateless:
//   - POST /api/route - Route on an inline layout, body {layout, piece?, from, to}
//
// Configuration:
//   - GET /api/configs - List board configurations
//   - GET /api/configs/{name} - Full configuration
//   - POST /api/configs?id=name - Save a configuration
//
// Other:
//   - GET /health - Liveness
//   - GET /ws?session={id} - WebSocket board updates
//
// Cells are JSON objects {"x": 0, "y": 0}. A route that does not exist is a
// normal answer ({"found": false}) for /path and /route; /move answers 409.
//
// Errors are returned as JSON with a matching status code:
//
//	{"error": "error message"}
//
// 400 for bad input, 404 for unknown sessions or configs, 409 for occupied
// cells and missing routes.
package api
