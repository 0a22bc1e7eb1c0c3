package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/chessnav/game/engine"
	"github.com/wricardo/mcp-training/chessnav/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Chess Grid Navigator",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Chess Grid Navigator - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Boards are grids of cells addressed as (x,y) with x to the right and y down,
both starting at 0. Cells are empty (.), obstacles (#) or hold a piece:
p pawn, b bishop, n knight, r rook, k king, q queen.

AVAILABLE TOOLS:
- create_session / get_session / list_sessions: manage boards
- board_state: render the current board
- find_path: shortest route for a piece, without moving it
- move_piece: move a piece to a cell along its shortest route
- place_piece / remove_piece: edit the board
- reset_board: restore the configured layout
- move_history: past moves, paginated
- list_configs: available board configurations
- plan_route: route on a board you describe inline, no session needed
- navigator_instructions: movement rules and tips`),
	)

	c.registerTools()
}

func cellProps(prefix, what string) map[string]interface{} {
	return map[string]interface{}{
		prefix + "_x": map[string]interface{}{
			"type":        "integer",
			"description": fmt.Sprintf("Column of the %s cell (0-based)", what),
		},
		prefix + "_y": map[string]interface{}{
			"type":        "integer",
			"description": fmt.Sprintf("Row of the %s cell (0-based)", what),
		},
	}
}

func sessionProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func merge(maps ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new board session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the board config to use (optional, see list_configs)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active board sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProp()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	// Board operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Render the current board with coordinates",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProp()},
			Required:   []string{"session_id"},
		},
	}, c.handleBoardState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "find_path",
		Description: "Find the shortest route for a piece without moving it. Uses the piece on the start cell unless 'piece' is given.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: merge(
				map[string]interface{}{
					"session_id": sessionProp(),
					"piece": map[string]interface{}{
						"type":        "string",
						"description": "Optional piece type override: pawn, bishop, knight, rook, king or queen",
					},
				},
				cellProps("from", "start"),
				cellProps("to", "target"),
			),
			Required: []string{"session_id", "from_x", "from_y", "to_x", "to_y"},
		},
	}, c.handleFindPath)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_piece",
		Description: "Move the piece on the start cell to the target along its shortest route",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: merge(
				map[string]interface{}{"session_id": sessionProp()},
				cellProps("from", "start"),
				cellProps("to", "target"),
			),
			Required: []string{"session_id", "from_x", "from_y", "to_x", "to_y"},
		},
	}, c.handleMovePiece)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_piece",
		Description: "Place a piece or an obstacle on an empty cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: merge(
				map[string]interface{}{
					"session_id": sessionProp(),
					"occupant": map[string]interface{}{
						"type":        "string",
						"description": "Piece name or letter, or 'obstacle'",
					},
				},
				cellProps("cell", "target"),
			),
			Required: []string{"session_id", "occupant", "cell_x", "cell_y"},
		},
	}, c.handlePlacePiece)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "remove_piece",
		Description: "Clear an occupied cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: merge(
				map[string]interface{}{"session_id": sessionProp()},
				cellProps("cell", "target"),
			),
			Required: []string{"session_id", "cell_x", "cell_y"},
		},
	}, c.handleRemovePiece)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_board",
		Description: "Restore the configured layout and clear the move history",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProp()},
			Required:   []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get paginated move history, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number (default 1)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Moves per page (default 20, max 100)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available board configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "plan_route",
		Description: "Find a route on a board given inline as layout rows. No session is needed.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: merge(
				map[string]interface{}{
					"layout": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Board rows, top first, using . # p b n r k q",
					},
					"piece": map[string]interface{}{
						"type":        "string",
						"description": "Piece type; defaults to the piece on the start cell",
					},
				},
				cellProps("from", "start"),
				cellProps("to", "target"),
			),
			Required: []string{"layout", "from_x", "from_y", "to_x", "to_y"},
		},
	}, c.handlePlanRoute)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "navigator_instructions",
		Description: "Movement rules for every piece and how routes are chosen",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Argument helpers

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

// intArg accepts JSON numbers and numeric strings
func intArg(args map[string]interface{}, name string) (int, error) {
	switch v := args[name].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be an integer, got %v", name, v)
		}
		return int(v), nil
	case int:
		return v, nil
	case string:
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
			return 0, fmt.Errorf("%s must be an integer, got %q", name, v)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("%s is required", name)
	default:
		return 0, fmt.Errorf("%s must be an integer", name)
	}
}

func cellArg(args map[string]interface{}, prefix string) (engine.Cell, error) {
	x, err := intArg(args, prefix+"_x")
	if err != nil {
		return engine.Cell{}, err
	}
	y, err := intArg(args, prefix+"_y")
	if err != nil {
		return engine.Cell{}, err
	}
	return engine.Cell{X: x, Y: y}, nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]string{}
	if configID := stringArg(args, "config_id"); configID != "" {
		body["config_id"] = configID
	}

	var info service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&info)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		fmt.Fprintf(&b, "- %s (Config: %s, Moves: %d, Last used: %s)\n",
			s.ID, s.ConfigName, s.MoveCount, s.LastAccessedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(arguments(request), "session_id")

	var info service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&info)), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(arguments(request), "session_id")

	var board engine.BoardState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/board"), nil, &board); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBoard(&board)), nil
}

func (c *Client) handleFindPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")

	from, err := cellArg(args, "from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := cellArg(args, "to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := service.PathRequest{From: from, To: to, Piece: stringArg(args, "piece")}

	var result service.PathResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/path"), req, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := formatPathResult(&result)

	// Overlay the route on the live board when we can fetch it
	var board engine.BoardState
	if result.Found && c.apiCall(ctx, "GET", sessionPath(sessionID, "/board"), nil, &board) == nil {
		text += "\n" + formatPathOverlay(&board, result.Path)
	}

	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleMovePiece(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")

	from, err := cellArg(args, "from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := cellArg(args, "to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]engine.Cell{"from": from, "to": to}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handlePlacePiece(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")

	cell, err := cellArg(args, "cell")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]string{"occupant": stringArg(args, "occupant")}
	path := sessionPath(sessionID, fmt.Sprintf("/cells/%d/%d", cell.X, cell.Y))

	var board engine.BoardState
	if err := c.apiCall(ctx, "PUT", path, body, &board); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Placed %s on %s\n\n%s", body["occupant"], cell, formatBoard(&board))), nil
}

func (c *Client) handleRemovePiece(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")

	cell, err := cellArg(args, "cell")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var board engine.BoardState
	path := sessionPath(sessionID, fmt.Sprintf("/cells/%d/%d", cell.X, cell.Y))
	if err := c.apiCall(ctx, "DELETE", path, nil, &board); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Cleared %s\n\n%s", cell, formatBoard(&board))), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(arguments(request), "session_id")

	var response struct {
		Message string             `json:"message"`
		Board   *engine.BoardState `json:"board"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatBoard(response.Board))), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID := stringArg(args, "session_id")

	query := url.Values{}
	if page, err := intArg(args, "page"); err == nil {
		query.Set("page", fmt.Sprint(page))
	}
	if limit, err := intArg(args, "limit"); err == nil {
		query.Set("limit", fmt.Sprint(limit))
	}

	path := sessionPath(sessionID, "/history")
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Board: %dx%d, Puzzles: %d\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.Width, cfg.Height, cfg.Puzzles)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handlePlanRoute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	rawLayout, _ := args["layout"].([]interface{})
	layout := make([]string, 0, len(rawLayout))
	for _, row := range rawLayout {
		s, ok := row.(string)
		if !ok {
			return mcp.NewToolResultError("layout rows must be strings"), nil
		}
		layout = append(layout, s)
	}

	from, err := cellArg(args, "from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := cellArg(args, "to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := service.RouteRequest{Layout: layout, Piece: stringArg(args, "piece"), From: from, To: to}

	var result service.PathResult
	if err := c.apiCall(ctx, "POST", "/api/route", req, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := formatPathResult(&result)
	if result.Found {
		board := &engine.BoardState{Width: len(layout[0]), Height: len(layout), Layout: layout}
		text += "\n" + formatPathOverlay(board, result.Path)
	}

	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(navigatorInstructions), nil
}

const navigatorInstructions = `CHESS GRID NAVIGATOR

COORDINATES
Cells are (x,y). x grows to the right, y grows downward, both start at 0.

LAYOUT CHARACTERS
. empty   # obstacle   p pawn   b bishop   n knight   r rook   k king   q queen

MOVEMENT (one move each)
- pawn:   one cell straight up or down. No captures, no diagonal steps.
- king:   one cell in any of the 8 directions.
- knight: an L jump (2+1). Jumps over anything; only the landing cell must be empty.
- bishop: any distance diagonally, stopping before the first occupied cell.
- rook:   any distance horizontally or vertically, same stopping rule.
- queen:  bishop and rook combined.

ROUTES
- Every move costs 1; routes are as short as possible in number of moves.
- The target must be empty. Occupied cells, pieces included, are never entered.
- When several shortest routes exist the same one is always returned.
- A bishop never changes square color, so half the board is unreachable for it.
- "not found" is a normal answer: the target is walled off or unreachable.

TOOLS
Use find_path to preview a route and move_piece to execute it. Edit the board
with place_piece / remove_piece and undo everything with reset_board.
plan_route answers one-off questions on a layout you pass in directly.`

// Formatting helpers

func formatSessionInfo(info *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nConfig: %s\nMoves made: %d\n", info.ID, info.ConfigName, info.MoveCount)
	if info.BoardConfig != nil && len(info.BoardConfig.Puzzles) > 0 {
		b.WriteString("Puzzles:\n")
		for _, p := range info.BoardConfig.Puzzles {
			par := fmt.Sprintf("par %d", p.Par)
			if p.Par == engine.Unreachable {
				par = "unreachable"
			}
			fmt.Fprintf(&b, "  - %s: %s %s -> %s (%s)\n", p.Name, p.Piece, p.From, p.To, par)
		}
	}
	if info.Board != nil {
		b.WriteString("\n")
		b.WriteString(formatBoard(info.Board))
	}
	return b.String()
}

// formatBoard renders layout rows under a column ruler
func formatBoard(board *engine.BoardState) string {
	if board == nil {
		return "(no board)\n"
	}

	var b strings.Builder
	b.WriteString("    ")
	for x := 0; x < board.Width; x++ {
		fmt.Fprintf(&b, "%d ", x%10)
	}
	b.WriteString("\n")
	for y, row := range board.Layout {
		fmt.Fprintf(&b, "%3d ", y)
		for i := 0; i < len(row); i++ {
			b.WriteByte(row[i])
			b.WriteByte(' ')
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatPathOverlay marks the route on the board: waypoints as '*' and the
// target as 'X'
func formatPathOverlay(board *engine.BoardState, path []engine.Cell) string {
	if board == nil || len(path) < 2 {
		return ""
	}

	rows := make([][]byte, len(board.Layout))
	for y, row := range board.Layout {
		rows[y] = []byte(row)
	}
	mark := func(c engine.Cell, ch byte) {
		if c.Y >= 0 && c.Y < len(rows) && c.X >= 0 && c.X < len(rows[c.Y]) {
			rows[c.Y][c.X] = ch
		}
	}
	for _, c := range path[1 : len(path)-1] {
		mark(c, '*')
	}
	mark(path[len(path)-1], 'X')

	overlay := &engine.BoardState{Width: board.Width, Height: board.Height, Layout: make([]string, len(rows))}
	for y := range rows {
		overlay.Layout[y] = string(rows[y])
	}
	return formatBoard(overlay)
}

func formatCells(path []engine.Cell) string {
	parts := make([]string, len(path))
	for i, c := range path {
		parts[i] = c.String()
	}
	return strings.Join(parts, " -> ")
}

func formatPathResult(result *service.PathResult) string {
	if !result.Found {
		return fmt.Sprintf("No path: %s cannot reach %s from %s (%d cells explored)\n",
			result.Piece, result.To, result.From, result.Expanded)
	}
	return fmt.Sprintf("%s %s -> %s: %d moves (%d cells explored)\nRoute: %s\n",
		result.Piece, result.From, result.To, result.Moves, result.Expanded, formatCells(result.Path))
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move #%d: %s\n", result.MoveNumber, result.Message)
	if len(result.Path) > 0 {
		fmt.Fprintf(&b, "Route: %s\n", formatCells(result.Path))
	}
	if result.Board != nil {
		b.WriteString("\n")
		b.WriteString(formatBoard(result.Board))
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (page %d/%d, %d total):\n", history.Page, history.TotalPages, history.TotalMoves)
	if len(history.Moves) == 0 {
		b.WriteString("  (no moves)\n")
	}
	for _, m := range history.Moves {
		status := "ok"
		if !m.Success {
			status = "no path"
		}
		fmt.Fprintf(&b, "  #%d %s %s -> %s: %d moves [%s]\n", m.MoveNumber, m.Piece, m.From, m.To, m.Moves, status)
	}
	if history.HasNext {
		fmt.Fprintf(&b, "More moves on page %d\n", history.Page+1)
	}
	return b.String()
}
