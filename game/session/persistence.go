package session

import (
	"fmt"
	"time"

	"github.com/wricardo/prims-maze/game/engine"
	"github.com/wricardo/prims-maze/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData represents the JSON structure for persisted sessions
type PersistedSessionData struct {
	ID             string                    `json:"id"`
	ConfigName     string                    `json:"config_name"`
	Config         *engine.GameConfig        `json:"config"`
	Seed           int64                     `json:"seed"`
	CreatedAt      time.Time                 `json:"created_at"`
	LastAccessedAt time.Time                 `json:"last_accessed_at"`
	GameState      *engine.GameState         `json:"game_state"`
	History        []engine.MoveHistoryEntry `json:"history"`
}

func newPersistedData(session *service.Session) (*PersistedSessionData, error) {
	if session == nil {
		return nil, fmt.Errorf("session cannot be nil")
	}
	if session.Engine == nil || session.Config == nil {
		return nil, fmt.Errorf("session %s is incomplete", session.ID)
	}
	return &PersistedSessionData{
		ID:             session.ID,
		ConfigName:     session.Config.Name,
		Config:         session.Config,
		Seed:           session.Seed,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		History:        session.History,
	}, nil
}

// restore rebuilds the in-memory session from its persisted form.
func (d *PersistedSessionData) restore() (*service.Session, error) {
	if d.Config == nil {
		return nil, fmt.Errorf("persisted session %s has no config", d.ID)
	}
	gameEngine, err := engine.RestoreEngine(d.GameState)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game state: %w", err)
	}

	history := d.History
	if history == nil {
		history = []engine.MoveHistoryEntry{}
	}

	return &service.Session{
		ID:             d.ID,
		Engine:         gameEngine,
		Config:         d.Config,
		Seed:           d.Seed,
		History:        history,
		CreatedAt:      d.CreatedAt,
		LastAccessedAt: d.LastAccessedAt,
	}, nil
}
