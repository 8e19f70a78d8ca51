package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/prims-maze/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoInput         = errors.New("no moves provided")
	ErrConfigNotFound  = errors.New("configuration not found")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, input string, reset bool) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, inputs []string, reset bool) (*BulkMoveResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)
	RenderMaze(ctx context.Context, sessionID string) (string, error)

	// Rendering
	RedrawDelta(ctx context.Context, sessionID string) ([]engine.Placement, error)
	FullView(ctx context.Context, sessionID string) ([]engine.Placement, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error

	// Input
	Keys(ctx context.Context) map[string][]string
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig, seed int64) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles preset loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session
type Session struct {
	ID     string
	Engine *engine.GameEngine
	Config *engine.GameConfig
	// Seed reproduces the session's maze with maze.NewRand.
	Seed           int64
	History        []engine.MoveHistoryEntry
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
