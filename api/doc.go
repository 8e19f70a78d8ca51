// Package api provides the HTTP REST API for maze sessions.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session ({config_id, rows, columns, seed}, all optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Session details
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Game state
//   - POST /api/sessions/{id}/move - {direction|key, reset}
//   - POST /api/sessions/{id}/bulk-move - {moves: [...], reset}
//   - POST /api/sessions/{id}/reset - Back to the origin of the same maze
//   - GET /api/sessions/{id}/history - Paginated moves (?page&limit&order)
//
// Rendering:
//   - POST /api/sessions/{id}/redraw - Placements changed since the last redraw
//   - GET /api/sessions/{id}/view - Every placement needed to repaint
//   - GET /api/sessions/{id}/maze - Plain-text board
//   - GET /ws?session={id} - WebSocket stream of redraws, keys in
//
// Configuration:
//   - GET /api/configs - List presets
//   - GET /api/configs/{name} - A single preset
//   - POST /api/configs - Save a preset
//   - GET /api/keys - Key bindings
//
// Errors are returned as JSON with a status code derived from the error:
//
//	{"error": "session not found: abc123"}
//
// Unknown sessions and presets map to 404, bad input to 400 and anything
// else to 500.
package api
