// Package config provides maze presets and process settings.
//
// Presets:
//
// A preset is a JSON file in the config directory describing a maze size,
// an optional fixed seed, a tile size hint for renderers and the messages
// shown for each move outcome:
//
//	{
//	  "name": "Tiny",
//	  "description": "5x5 maze with a fixed seed",
//	  "rows": 5,
//	  "columns": 5,
//	  "seed": 7,
//	  "tile_size": 32,
//	  "messages": {"welcome": "...", "victory": "..."}
//	}
//
// Manager caches presets by file name and falls back to the built-in classic
// 21x21 preset when the directory has none.
//
// Settings:
//
// Settings holds the server's environment configuration (MAZE_* and NGROK_*
// variables). LoadSettings reads .env first; real environment variables win.
//
// Usage:
//
//	settings, err := config.LoadSettings()
//	manager, err := config.NewManager(settings.ConfigDir)
//	preset, err := manager.LoadConfig("tiny")
package config
