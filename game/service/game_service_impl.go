package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/prims-maze/game/engine"
	"github.com/wricardo/prims-maze/game/input"
	"github.com/wricardo/prims-maze/game/maze"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	keymap   *input.Keymap
	log      *zap.SugaredLogger
	// Lookups touch LastAccessedAt, so only ListSessions reads under RLock.
	mu sync.RWMutex
}

// NewGameService creates a new game service instance. A nil logger discards
// output.
func NewGameService(sessions SessionManager, configs ConfigManager, log *zap.SugaredLogger) GameService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		keymap:   input.DefaultKeymap(),
		log:      log,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
		}
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		s.log.Debugw("failed to update last access", "session", sessionID, "error", err)
	}
	return sess, nil
}

func (s *gameServiceImpl) persist(sessionID, op string) {
	if err := s.sessions.Save(sessionID); err != nil {
		s.log.Warnw("failed to persist session", "session", sessionID, "op", op, "error", err)
	}
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		Seed:           sess.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}

// CreateSession generates a maze from the requested preset and starts a session on it
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	if req.ConfigID != "" {
		loaded, err := s.configs.LoadConfig(req.ConfigID)
		if err != nil {
			return nil, s.configError(req.ConfigID, err)
		}
		config = loaded
	} else {
		config = s.configs.GetDefault()
	}

	// Overrides apply to a copy so the cached preset stays untouched.
	cfg := *config
	if req.Rows > 0 {
		cfg.Rows = req.Rows
	}
	if req.Columns > 0 {
		cfg.Columns = req.Columns
	}
	if err := engine.ValidateGameConfig(&cfg); err != nil {
		return nil, err
	}

	seed, err := resolveSeed(req.Seed, cfg.Seed)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Create("", &cfg, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.Infow("session created", "session", sess.ID, "config", cfg.Name,
		"rows", cfg.Rows, "columns", cfg.Columns, "seed", seed)

	info := s.sessionInfo(sess, req.ConfigID)
	info.Message = cfg.Messages.Welcome
	return info, nil
}

func (s *gameServiceImpl) configError(configID string, err error) error {
	if errors.Is(err, ErrConfigNotFound) {
		availableConfigs, listErr := s.configs.ListConfigs()
		if listErr == nil && len(availableConfigs) > 0 {
			var configIDs []string
			for _, cfg := range availableConfigs {
				configIDs = append(configIDs, cfg.ConfigID)
			}
			return fmt.Errorf("config '%s' not found. Available configs: %v: %w", configID, configIDs, err)
		}
		return fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations: %w", configID, err)
	}
	return fmt.Errorf("failed to load config %s: %w", configID, err)
}

// resolveSeed prefers the request seed, then the preset seed, then a fresh one.
func resolveSeed(requested, preset *int64) (int64, error) {
	switch {
	case requested != nil:
		return *requested, nil
	case preset != nil:
		return *preset, nil
	}
	seed, err := maze.NewSeed()
	if err != nil {
		return 0, fmt.Errorf("seed maze: %w", err)
	}
	return seed, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
		}
		return err
	}
	s.log.Infow("session deleted", "session", sessionID)
	return nil
}

// Move resolves input to a direction and executes a single move
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, in string, reset bool) (*MoveResult, error) {
	dir, err := s.keymap.Parse(in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent())
	}

	outcome, from := s.applyMove(sess, dir, in)
	to := sess.Engine.Position()

	result := &MoveResult{
		Success:   outcome.Accepted,
		Outcome:   outcome,
		GameState: sess.Engine.GetState(),
		Message:   sess.Config.MessageFor(outcome),
		Events:    append(events, moveEvents(dir, outcome, to, sess.Config)...),
		Delta:     sess.Engine.RedrawDelta(),
	}

	if outcome.Accepted {
		result.Step = &StepInfo{
			Idx:     1,
			Dir:     dir,
			Input:   in,
			From:    from,
			To:      to,
			Tile:    tileName(sess.Engine.Grid(), to),
			Success: true,
			Victory: outcome.State == engine.Finished,
		}
	} else {
		result.AttemptedTo = attemptInfo(sess.Engine.Grid(), from, dir, outcome)
	}

	s.persist(sessionID, "move")
	return result, nil
}

// applyMove runs one move and appends it to the session history.
func (s *gameServiceImpl) applyMove(sess *Session, dir engine.Direction, in string) (engine.MoveOutcome, maze.Position) {
	from := sess.Engine.Position()
	outcome := sess.Engine.Move(dir)
	to := sess.Engine.Position()

	sess.History = append(sess.History, engine.MoveHistoryEntry{
		Action:       dir,
		Input:        in,
		FromPosition: from,
		ToPosition:   to,
		Outcome:      outcome,
		Timestamp:    time.Now().Unix(),
		Success:      outcome.Accepted,
		MoveNumber:   len(sess.History) + 1,
	})

	s.log.Debugw("move", "session", sess.ID, "dir", dir, "from", from, "to", to, "outcome", outcome)
	if outcome.Accepted && outcome.State == engine.Finished {
		s.log.Infow("maze solved", "session", sess.ID, "moves", len(sess.History))
	}
	return outcome, from
}

// BulkMove executes multiple moves in sequence, stopping at the first rejection
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, inputs []string, reset bool) (*BulkMoveResult, error) {
	if len(inputs) == 0 && !reset {
		return nil, ErrNoInput
	}

	result := &BulkMoveResult{
		RequestedMoves: len(inputs),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	// Limit moves to prevent abuse
	if len(inputs) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		inputs = inputs[:engine.MaxBulkMoves]
	}

	dirs := make([]engine.Direction, len(inputs))
	for i, in := range inputs {
		dir, err := s.keymap.Parse(in)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		dirs[i] = dir
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent())
	}
	result.StartPos = sess.Engine.Position()

	var rejected *engine.MoveOutcome
	for i, dir := range dirs {
		outcome, from := s.applyMove(sess, dir, inputs[i])
		to := sess.Engine.Position()
		result.Events = append(result.Events, moveEvents(dir, outcome, to, sess.Config)...)

		if !outcome.Accepted {
			rejected = &outcome
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d rejected: %s %s", i+1, dir, outcome.Reason)
			result.StopReasonCode = string(outcome.Reason)
			result.StoppedOnMove = i + 1
			result.AttemptedTo = attemptInfo(sess.Engine.Grid(), from, dir, outcome)
			break
		}

		result.MovesExecuted++
		result.Steps = append(result.Steps, StepInfo{
			Idx:     i + 1,
			Dir:     dir,
			Input:   inputs[i],
			From:    from,
			To:      to,
			Tile:    tileName(sess.Engine.Grid(), to),
			Success: true,
			Victory: outcome.State == engine.Finished,
		})

		if outcome.State == engine.Finished {
			// Anything queued after the winning move is dropped.
			result.StopReasonCode = "victory"
			if i+1 < len(dirs) {
				result.StoppedReason = "exit reached"
				result.StoppedOnMove = i + 1
			}
			break
		}
	}

	result.GameState = sess.Engine.GetState()
	result.EndPos = result.GameState.PlayerPos
	result.Finished = result.GameState.Finished
	result.PossibleMoves = result.GameState.PossibleMoves
	result.Delta = sess.Engine.RedrawDelta()

	switch {
	case result.StopReasonCode == "victory":
		result.Message = sess.Config.MessageFor(engine.Accepted(engine.Finished))
	case rejected != nil:
		result.Message = sess.Config.MessageFor(*rejected)
	default:
		result.Message = sess.Config.MessageFor(engine.Accepted(engine.Running))
	}

	s.persist(sessionID, "bulk_move")
	return result, nil
}

// Reset returns the player to the origin of the session's maze
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.Reset()
	s.log.Infow("session reset", "session", sessionID)
	s.persist(sessionID, "reset")
	return sess.Engine.GetState(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState(), nil
}

// RenderMaze draws the maze as text with the player shown as '@'
func (s *gameServiceImpl) RenderMaze(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return "", err
	}
	return renderBoard(sess.Engine), nil
}

// RedrawDelta reports what changed since the last redraw of the session
func (s *gameServiceImpl) RedrawDelta(ctx context.Context, sessionID string) ([]engine.Placement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	delta := sess.Engine.RedrawDelta()
	s.persist(sessionID, "redraw")
	return delta, nil
}

// FullView returns every placement needed to repaint the session
func (s *gameServiceImpl) FullView(ctx context.Context, sessionID string) ([]engine.Placement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	view := sess.Engine.FullView()
	s.persist(sessionID, "full_view")
	return view, nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.History
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveHistoryEntry{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = append(moves, history[start:end]...)
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific preset
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a preset to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// Keys lists the accepted input keys grouped by direction
func (s *gameServiceImpl) Keys(ctx context.Context) map[string][]string {
	return s.keymap.Bindings()
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      "reset",
		Message:   "Game reset to initial state",
		Timestamp: time.Now(),
	}
}

// moveEvents describes a single move outcome as events.
func moveEvents(dir engine.Direction, outcome engine.MoveOutcome, to maze.Position, config *engine.GameConfig) []GameEvent {
	now := time.Now()
	if !outcome.Accepted {
		return []GameEvent{{
			Type:      "blocked",
			Message:   fmt.Sprintf("Can't move %s: %s", dir, outcome.Reason),
			Timestamp: now,
			Position:  to,
		}}
	}

	events := []GameEvent{{
		Type:      "move",
		Message:   fmt.Sprintf("Moved %s to %s", dir, to),
		Timestamp: now,
		Position:  to,
	}}
	if outcome.State == engine.Finished {
		events = append(events, GameEvent{
			Type:      "victory",
			Message:   config.MessageFor(outcome),
			Timestamp: now,
			Position:  to,
		})
	}
	return events
}

func tileName(grid *maze.Grid, p maze.Position) string {
	tile, err := grid.TileAt(p.X, p.Y)
	if err != nil {
		return engine.OutOfBoundsTile
	}
	return tile.String()
}

// attemptInfo describes the target of a rejected move.
func attemptInfo(grid *maze.Grid, from maze.Position, dir engine.Direction, outcome engine.MoveOutcome) *AttemptInfo {
	dx, dy, _ := dir.Offset()
	target := from.Add(dx, dy)
	tile, err := grid.TileAt(target.X, target.Y)
	info := &AttemptInfo{
		X:      target.X,
		Y:      target.Y,
		Tile:   engine.OutOfBoundsTile,
		Reason: string(outcome.Reason),
	}
	if err == nil {
		info.Tile = tile.String()
		info.Passable = tile.IsPassable()
	}
	return info
}

// renderBoard overlays the player on the maze layout.
func renderBoard(e *engine.GameEngine) string {
	layout := e.Grid().Layout()
	p := e.Position()
	row := []byte(layout[p.Y])
	row[p.X] = '@'
	layout[p.Y] = string(row)
	return strings.Join(layout, "\n")
}
