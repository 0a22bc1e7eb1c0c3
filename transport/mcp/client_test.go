package mcp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/chessnav/game/engine"
	"github.com/wricardo/mcp-training/chessnav/game/service"
)

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func testBoard() *engine.BoardState {
	return &engine.BoardState{
		Width:  3,
		Height: 2,
		Layout: []string{"r.#", "..."},
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	require.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.GetMCPServer())
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			w.Write(body)
		case "/error":
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "no path"})
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	t.Run("decodes result", func(t *testing.T) {
		var out map[string]int
		err := client.apiCall(ctx, "POST", "/ok", map[string]int{"x": 3}, &out)
		require.NoError(t, err)
		assert.Equal(t, 3, out["x"])
	})

	t.Run("surfaces error message", func(t *testing.T) {
		err := client.apiCall(ctx, "GET", "/error", nil, nil)
		require.Error(t, err)
		assert.Equal(t, "no path", err.Error())
	})

	t.Run("falls back to status code", func(t *testing.T) {
		err := client.apiCall(ctx, "GET", "/other", nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})
}

func TestCellArg(t *testing.T) {
	cell, err := cellArg(map[string]interface{}{"from_x": float64(2), "from_y": "3"}, "from")
	require.NoError(t, err)
	assert.Equal(t, engine.Cell{X: 2, Y: 3}, cell)

	_, err = cellArg(map[string]interface{}{"from_x": float64(2)}, "from")
	assert.ErrorContains(t, err, "from_y is required")

	_, err = cellArg(map[string]interface{}{"from_x": 1.5, "from_y": float64(0)}, "from")
	assert.ErrorContains(t, err, "integer")
}

func TestClient_createSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/sessions", r.URL.Path)

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "walled", body["config_id"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(service.SessionInfo{
			ID:         "ab12",
			ConfigName: "walled",
			Board:      testBoard(),
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleCreateSession(context.Background(), toolRequest(map[string]interface{}{
		"config_id": "walled",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Session: ab12")
	assert.Contains(t, text, "Config: walled")
	assert.Contains(t, text, "  0 r . # ")
}

func TestClient_findPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/sessions/ab12/path":
			var req service.PathRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, engine.Cell{X: 0, Y: 0}, req.From)
			assert.Equal(t, engine.Cell{X: 2, Y: 1}, req.To)

			json.NewEncoder(w).Encode(service.PathResult{
				Piece:    engine.Rook,
				From:     req.From,
				To:       req.To,
				Path:     []engine.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 1}},
				Found:    true,
				Moves:    2,
				Expanded: 4,
			})
		case "/api/sessions/ab12/board":
			json.NewEncoder(w).Encode(testBoard())
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleFindPath(context.Background(), toolRequest(map[string]interface{}{
		"session_id": "ab12",
		"from_x":     float64(0),
		"from_y":     float64(0),
		"to_x":       float64(2),
		"to_y":       float64(1),
	}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "rook (0,0) -> (2,1): 2 moves")
	assert.Contains(t, text, "Route: (0,0) -> (0,1) -> (2,1)")
	assert.Contains(t, text, "  1 * . X ")
}

func TestClient_findPathMissingArgs(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")
	result, err := client.handleFindPath(context.Background(), toolRequest(map[string]interface{}{
		"session_id": "ab12",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestClient_movePieceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "no path from (0,0) to (2,0)"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleMovePiece(context.Background(), toolRequest(map[string]interface{}{
		"session_id": "ab12",
		"from_x":     float64(0),
		"from_y":     float64(0),
		"to_x":       float64(2),
		"to_y":       float64(0),
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "no path")
}

func TestClient_placePiece(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/api/sessions/ab12/cells/1/1", r.URL.Path)
		json.NewEncoder(w).Encode(testBoard())
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handlePlacePiece(context.Background(), toolRequest(map[string]interface{}{
		"session_id": "ab12",
		"occupant":   "knight",
		"cell_x":     float64(1),
		"cell_y":     float64(1),
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "Placed knight on (1,1)")
}

func TestClient_moveHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(service.HistoryResponse{
			Moves: []engine.MoveHistoryEntry{
				{MoveNumber: 2, Piece: engine.Knight, From: engine.Cell{X: 0, Y: 0}, To: engine.Cell{X: 1, Y: 2}, Moves: 1, Success: true},
				{MoveNumber: 1, Piece: engine.Pawn, From: engine.Cell{X: 3, Y: 3}, To: engine.Cell{X: 0, Y: 0}, Success: false},
			},
			TotalMoves: 22,
			Page:       2,
			TotalPages: 2,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleMoveHistory(context.Background(), toolRequest(map[string]interface{}{
		"session_id": "ab12",
		"page":       float64(2),
	}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "page 2/2, 22 total")
	assert.Contains(t, text, "#2 knight (0,0) -> (1,2): 1 moves [ok]")
	assert.Contains(t, text, "#1 pawn (3,3) -> (0,0): 0 moves [no path]")
}

func TestClient_planRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/route", r.URL.Path)
		var req service.RouteRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"n..", "...", "..."}, req.Layout)

		json.NewEncoder(w).Encode(service.PathResult{Piece: engine.Knight, From: req.From, To: req.To, Found: false, Expanded: 3})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handlePlanRoute(context.Background(), toolRequest(map[string]interface{}{
		"layout": []interface{}{"n..", "...", "..."},
		"from_x": float64(0),
		"from_y": float64(0),
		"to_x":   float64(1),
		"to_y":   float64(1),
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "No path: knight cannot reach (1,1)")
}

func TestClient_planRouteBadLayout(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")
	result, err := client.handlePlanRoute(context.Background(), toolRequest(map[string]interface{}{
		"layout": []interface{}{"n..", 7},
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestFormatPathOverlay(t *testing.T) {
	board := &engine.BoardState{Width: 3, Height: 3, Layout: []string{"b..", "...", "..."}}
	out := formatPathOverlay(board, []engine.Cell{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "    0 1 2 ", lines[0])
	assert.Equal(t, "  0 b . . ", lines[1])
	assert.Equal(t, "  1 . * . ", lines[2])
	assert.Equal(t, "  2 . . X ", lines[3])

	assert.Empty(t, formatPathOverlay(board, []engine.Cell{{X: 0, Y: 0}}))
}

func TestInstructions(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")
	result, err := client.handleInstructions(context.Background(), toolRequest(nil))
	require.NoError(t, err)

	text := resultText(t, result)
	for _, piece := range engine.AllPieceTypes {
		assert.Contains(t, text, string(piece)+":")
	}
}
