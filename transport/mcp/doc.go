// Package mcp exposes the maze as Model Context Protocol tools.
//
// Client is a thin proxy: every tool call is translated into a request
// against the REST API served by package api, and the JSON response is
// formatted as text for the agent. The client holds no game state of its
// own, so any number of MCP clients can drive the same server.
//
// Tools:
//   - create_session, list_sessions, get_session
//   - game_state, render_maze, describe_cell
//   - move, bulk_move, reset_game, move_history
//   - list_configs, game_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
