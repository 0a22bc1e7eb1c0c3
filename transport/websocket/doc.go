// Package websocket pushes live board updates to browser clients.
//
// A single Hub goroutine owns the client registry. Clients subscribe to one
// session with /ws?session=<id>; every board mutation made through the REST
// API is broadcast to that session's clients as a board_update message
// carrying the full engine.BoardState. Path queries are announced with a
// path_found event whose data is the service.PathResult.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//	hub.BroadcastBoard(sessionID, board)
package websocket
