// Package session provides session management for the maze game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session persistence to JSON files or Redis
//   - Session cleanup and expiration
//
// Session Identifiers:
//
// Sessions use the first eight hex characters of a random UUID. Lookups are
// case-insensitive.
//
// Persistence:
//
// A persisted session stores the maze layout, the player state, the preset
// and the move history, so loading never regenerates the maze. FilePersistence
// writes one indented JSON file per session; RedisPersistence stores the same
// document under a prefixed key with a TTL.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions")
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence, logger)
//
//	sess, err := manager.Create("", config, seed)
//	sess, err = manager.Get(sess.ID)
package session
