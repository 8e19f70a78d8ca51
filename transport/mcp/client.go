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
	"github.com/wricardo/prims-maze/game/engine"
	"github.com/wricardo/prims-maze/game/maze"
	"github.com/wricardo/prims-maze/game/service"
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

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Prim's Maze",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Prim's Maze - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Walk the agent (@) from the top-left corner (0,0) to the exit (E).

AVAILABLE TOOLS:
- create_session: Create a new maze session from a preset
- list_sessions / get_session: Inspect sessions
- game_state: Board, position and possible moves
- move: Single move (up/down/left/right or a bound key)
- bulk_move: Several moves at once, stops at the first rejected move
- reset_game: Back to the start of the same maze
- move_history: Past moves
- render_maze: Plain-text board
- describe_cell: What is at a given cell
- list_configs: Available presets
- game_instructions: Rules

Legend: '#' wall, '.' passage, 'E' exit, '@' agent. x grows to the right, y grows downward.`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new maze session. Rows, columns and seed override the preset.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Preset identifier from list_configs (default: classic)",
				},
				"rows": map[string]interface{}{
					"type":        "integer",
					"description": "Maze height in cells",
				},
				"columns": map[string]interface{}{
					"type":        "integer",
					"description": "Maze width in cells",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Seed for a reproducible maze",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get session details",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, the agent position and the possible moves",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the agent one cell. Give a direction (up, down, left, right) or a bound key such as w or ArrowUp.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"description": "Direction to move",
					"enum":        []string{"up", "down", "left", "right"},
				},
				"key": map[string]interface{}{
					"type":        "string",
					"description": "Raw key instead of a direction",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "What you expect this move to achieve",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset the game before moving",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: fmt.Sprintf("Execute up to %d moves in order. Stops at the first rejected move or at the exit.", engine.MaxBulkMoves),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"moves": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Directions or keys",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "What you expect this sequence to achieve",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset the game before moving",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Return the agent to the start of the same maze",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available maze presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "render_maze",
		Description: "Render the maze as text with the agent drawn as @",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleRenderMaze)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Describe a single cell: wall, passage or exit, and whether the agent stands on it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Column, 0-based",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Row, 0-based",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleDescribeCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the game rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiError is the error body written by the REST server.
type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		var errResp apiError
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%s", errResp.Error)
		}
		return nil, fmt.Errorf("API error: %d", resp.StatusCode)
	}
	return data, nil
}

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	data, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if result == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, result)
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

// intArg reads a JSON number argument.
func intArg(args map[string]interface{}, name string) (int, bool) {
	switch v := args[name].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

func requireSessionID(args map[string]interface{}) (string, *mcp.CallToolResult) {
	id, _ := args["session_id"].(string)
	if id == "" {
		return "", mcp.NewToolResultError("session_id is required")
	}
	return id, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	var body service.CreateSessionRequest
	body.ConfigID, _ = args["config_id"].(string)
	if rows, ok := intArg(args, "rows"); ok {
		body.Rows = rows
	}
	if columns, ok := intArg(args, "columns"); ok {
		body.Columns = columns
	}
	if seed, ok := intArg(args, "seed"); ok {
		s := int64(seed)
		body.Seed = &s
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\nSeed: %d\n\n%s",
		session.ID, session.ConfigName, session.Seed, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, http.MethodGet, "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		state := "unknown"
		if s.GameState != nil {
			state = string(s.GameState.State)
		}
		fmt.Fprintf(&b, "- %s (Config: %s, State: %s, Created: %s)\n",
			s.ID, s.ConfigName, state, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(arguments(request))
	if errResult != nil {
		return errResult, nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(arguments(request))
	if errResult != nil {
		return errResult, nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, errResult := requireSessionID(args)
	if errResult != nil {
		return errResult, nil
	}
	direction, _ := args["direction"].(string)
	key, _ := args["key"].(string)
	reset, _ := args["reset"].(bool)
	if direction == "" && key == "" {
		return mcp.NewToolResultError("direction or key is required"), nil
	}

	body := map[string]interface{}{
		"direction": direction,
		"key":       key,
		"reset":     reset,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, errResult := requireSessionID(args)
	if errResult != nil {
		return errResult, nil
	}
	movesRaw, _ := args["moves"].([]interface{})
	reset, _ := args["reset"].(bool)

	moves := make([]string, 0, len(movesRaw))
	for _, m := range movesRaw {
		if move, ok := m.(string); ok {
			moves = append(moves, move)
		}
	}

	body := map[string]interface{}{
		"moves": moves,
		"reset": reset,
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/bulk-move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, &result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(arguments(request))
	if errResult != nil {
		return errResult, nil
	}

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, errResult := requireSessionID(args)
	if errResult != nil {
		return errResult, nil
	}

	query := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		query.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		query.Set("limit", fmt.Sprint(limit))
	}
	path := sessionPath(sessionID, "/history")
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, http.MethodGet, "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		seed := "random"
		if cfg.Seed != nil {
			seed = fmt.Sprint(*cfg.Seed)
		}
		fmt.Fprintf(&b, "• %s (%s)\n  %s\n  Grid: %dx%d, Seed: %s\n\n",
			cfg.ConfigID, cfg.Name, cfg.Description, cfg.Columns, cfg.Rows, seed)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleRenderMaze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(arguments(request))
	if errResult != nil {
		return errResult, nil
	}

	board, err := c.do(ctx, http.MethodGet, sessionPath(sessionID, "/maze"), nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(string(board)), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, errResult := requireSessionID(args)
	if errResult != nil {
		return errResult, nil
	}
	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y are required"), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(describeCell(&state, x, y)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := fmt.Sprintf(`Prim's Maze - Instructions

OBJECTIVE:
Walk the agent from the top-left corner (0,0) to the exit (E).

BOARD:
• '#' wall, impassable
• '.' passage
• 'E' exit, passable; stepping on it finishes the game
• '@' the agent in rendered boards
• x is the column and grows to the right, y is the row and grows downward

MOVES:
• up, down, left, right, or a bound key (w/a/s/d, arrow keys, h/j/k/l)
• A move into a wall is rejected as blocked
• A move off the grid is rejected as out_of_bounds
• Once finished, every move is rejected until reset_game
• bulk_move runs up to %d moves and stops at the first rejection or at the exit

TIPS:
• game_state lists the possible moves from the current cell
• describe_cell checks a cell before you commit to a path
• The maze is a spanning tree: there is exactly one route between any two rooms`, engine.MaxBulkMoves)

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nConfig: %s\nSeed: %d\nCreated: %s\nLast accessed: %s\n",
		session.ID, session.ConfigName, session.Seed,
		session.CreatedAt.Format(time.RFC3339), session.LastAccessedAt.Format(time.RFC3339))
	if session.GameState != nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(session.GameState))
	}
	return b.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Maze %dx%d, state: %s\n", state.Columns, state.Rows, state.State)
	fmt.Fprintf(&b, "Agent: %s  Exit: %s  Distance: %d\n",
		state.PlayerPos, state.Exit, engine.ManhattanDistance(state.PlayerPos, state.Exit))
	fmt.Fprintf(&b, "Possible moves: %s\n\n", joinDirections(state.PossibleMoves))
	b.WriteString(boardWithAgent(state))
	return b.String()
}

func boardWithAgent(state *engine.GameState) string {
	lines := make([]string, len(state.Layout))
	copy(lines, state.Layout)
	p := state.PlayerPos
	if p.Y >= 0 && p.Y < len(lines) && p.X >= 0 && p.X < len(lines[p.Y]) {
		row := []byte(lines[p.Y])
		row[p.X] = '@'
		lines[p.Y] = string(row)
	}
	return strings.Join(lines, "\n")
}

func joinDirections(dirs []engine.Direction) string {
	if len(dirs) == 0 {
		return "none"
	}
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		fmt.Fprintf(&b, "✓ %s\n", result.Message)
	} else {
		fmt.Fprintf(&b, "✗ %s (%s)\n", result.Message, result.Outcome.Reason)
		if a := result.AttemptedTo; a != nil {
			fmt.Fprintf(&b, "Attempted (%d,%d): %s\n", a.X, a.Y, a.Tile)
		}
	}
	if result.Outcome.State == engine.Finished && result.Success {
		b.WriteString("🎉 Exit reached!\n")
	}
	if result.GameState != nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(result.GameState))
	}
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %s: executed %d of %d moves\n", sessionID, result.MovesExecuted, result.RequestedMoves)
	if result.Truncated {
		fmt.Fprintf(&b, "Request truncated to %d moves\n", result.Limit)
	}
	fmt.Fprintf(&b, "Start: %s  End: %s\n", result.StartPos, result.EndPos)

	for _, step := range result.Steps {
		mark := "✓"
		if !step.Success {
			mark = "✗"
		}
		fmt.Fprintf(&b, "  %s %d. %s %s -> %s (%s)\n", mark, step.Idx, step.Dir, step.From, step.To, step.Tile)
	}

	if result.StopReasonCode != "" {
		fmt.Fprintf(&b, "Stopped: %s", result.StopReasonCode)
		if result.StoppedReason != "" {
			fmt.Fprintf(&b, " - %s", result.StoppedReason)
		}
		if result.StoppedOnMove > 0 {
			fmt.Fprintf(&b, " (move %d)", result.StoppedOnMove)
		}
		b.WriteString("\n")
	}
	if result.Message != "" {
		fmt.Fprintf(&b, "%s\n", result.Message)
	}
	if result.GameState != nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(result.GameState))
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (page %d of %d, %d moves total):\n\n",
		history.Page, history.TotalPages, history.TotalMoves)
	for _, m := range history.Moves {
		status := "ok"
		if !m.Success {
			status = string(m.Outcome.Reason)
		}
		fmt.Fprintf(&b, "#%d %s %s -> %s [%s]\n", m.MoveNumber, m.Action, m.FromPosition, m.ToPosition, status)
	}
	if history.HasNext {
		b.WriteString("\nMore moves on the next page.\n")
	}
	return b.String()
}

func describeCell(state *engine.GameState, x, y int) string {
	if y < 0 || y >= len(state.Layout) || x < 0 || x >= len(state.Layout[y]) {
		return fmt.Sprintf("Cell (%d,%d) is out of bounds (maze is %dx%d)", x, y, state.Columns, state.Rows)
	}

	grid, err := maze.ParseLayout(state.Layout)
	if err != nil {
		return fmt.Sprintf("Cell (%d,%d): layout unreadable: %v", x, y, err)
	}
	tile, _ := grid.TileAt(x, y)

	var b strings.Builder
	fmt.Fprintf(&b, "Cell (%d,%d): %s '%c'\n", x, y, tile, tile.Char())
	if tile.IsPassable() {
		b.WriteString("Passable: yes\n")
	} else {
		b.WriteString("Passable: no\n")
	}
	if state.PlayerPos == (maze.Position{X: x, Y: y}) {
		b.WriteString("The agent is here.\n")
	}
	fmt.Fprintf(&b, "Distance from agent: %d", engine.ManhattanDistance(state.PlayerPos, maze.Position{X: x, Y: y}))
	return b.String()
}
