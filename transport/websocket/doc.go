// Package websocket streams maze placements to renderers and accepts key
// presses from them.
//
// Architecture:
//
// A central Hub keeps the clients of each session. Every connection has a
// read pump and a write pump goroutine; the hub's event loop handles
// registration and queued broadcasts.
//
// Message Protocol:
//
// Outgoing messages are JSON objects, one per frame:
//
//	{"session_id":"3f2a9c1b","event":"redraw",
//	 "placements":[{"layer":"passage","position":{"x":0,"y":0}}, ...],
//	 "game_state":{...}}
//
// Events are full_view (sent on connect), redraw (after moves), reset and
// error. Placements are drawn in order, so the agent always lands on top.
//
// Incoming messages carry raw keys, resolved through the server's keymap:
//
//	{"type":"key","key":"ArrowUp"}
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	hub.SetInputHandler(func(ctx context.Context, sessionID, key string) error {
//		...
//	})
//	go hub.Run(ctx)
//	hub.ServeWS(w, r, sessionID, initialMessage)
package websocket
