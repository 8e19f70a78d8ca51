package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wricardo/prims-maze/game/engine"
	"github.com/wricardo/prims-maze/game/maze"
	"github.com/wricardo/prims-maze/game/service"
)

func newTestSession(t *testing.T, id string, seed int64) *service.Session {
	t.Helper()
	config := createTestConfig()
	eng, err := engine.NewGameFromConfig(config, maze.NewRand(seed))
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		Seed:           seed,
		History:        []engine.MoveHistoryEntry{},
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
}

// exercisePersistence runs the behaviour every SessionPersistence shares.
func exercisePersistence(t *testing.T, persistence SessionPersistence) {
	session := newTestSession(t, "test1", 11)

	t.Run("Save and Load Session", func(t *testing.T) {
		if err := persistence.Save(session); err != nil {
			t.Fatalf("Failed to save session: %v", err)
		}
		if !persistence.Exists("test1") {
			t.Error("Session should exist after save")
		}

		loaded, err := persistence.Load("test1")
		if err != nil {
			t.Fatalf("Failed to load session: %v", err)
		}
		if loaded.ID != session.ID {
			t.Errorf("Expected ID %s, got %s", session.ID, loaded.ID)
		}
		if loaded.Config.Name != session.Config.Name {
			t.Errorf("Expected config name %s, got %s", session.Config.Name, loaded.Config.Name)
		}
		if loaded.Seed != session.Seed {
			t.Errorf("Expected seed %d, got %d", session.Seed, loaded.Seed)
		}
		if loaded.Engine.Grid().String() != session.Engine.Grid().String() {
			t.Error("Maze layout not persisted correctly")
		}
	})

	t.Run("Save State Changes", func(t *testing.T) {
		moves := session.Engine.PossibleMoves()
		if len(moves) == 0 {
			t.Fatal("Expected a move from the origin")
		}
		from := session.Engine.Position()
		outcome := session.Engine.Move(moves[0])
		session.History = append(session.History, engine.MoveHistoryEntry{
			Action:       moves[0],
			FromPosition: from,
			ToPosition:   session.Engine.Position(),
			Outcome:      outcome,
			Success:      outcome.Accepted,
			MoveNumber:   1,
		})
		session.Engine.RedrawDelta()

		if err := persistence.Save(session); err != nil {
			t.Fatalf("Failed to save updated session: %v", err)
		}

		loaded, err := persistence.Load("test1")
		if err != nil {
			t.Fatalf("Failed to load updated session: %v", err)
		}

		got, want := loaded.Engine.GetState(), session.Engine.GetState()
		if got.PlayerPos != want.PlayerPos {
			t.Errorf("Expected player at %s, got %s", want.PlayerPos, got.PlayerPos)
		}
		if got.PreviousPos != want.PreviousPos {
			t.Errorf("Expected previous %s, got %s", want.PreviousPos, got.PreviousPos)
		}
		if len(loaded.Engine.RedrawDelta()) != 0 {
			t.Error("Drawn position should survive a reload")
		}
		if len(loaded.History) != 1 || loaded.History[0].Action != moves[0] {
			t.Errorf("Move history not persisted correctly: %+v", loaded.History)
		}
	})

	t.Run("List All Sessions", func(t *testing.T) {
		if err := persistence.Save(newTestSession(t, "test2", 12)); err != nil {
			t.Fatalf("Failed to save second session: %v", err)
		}

		sessionIDs, err := persistence.ListAll()
		if err != nil {
			t.Fatalf("Failed to list sessions: %v", err)
		}

		found := make(map[string]bool)
		for _, id := range sessionIDs {
			found[id] = true
		}
		if !found["test1"] || !found["test2"] {
			t.Errorf("Expected test1 and test2 in %v", sessionIDs)
		}
	})

	t.Run("Delete Session", func(t *testing.T) {
		if err := persistence.Delete("test2"); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}
		if persistence.Exists("test2") {
			t.Error("Session should not exist after delete")
		}
		if _, err := persistence.Load("test2"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Error Cases", func(t *testing.T) {
		if _, err := persistence.Load("nonexistent"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound on load, got %v", err)
		}
		if err := persistence.Delete("nonexistent"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound on delete, got %v", err)
		}
		if err := persistence.Save(nil); err == nil {
			t.Error("Should get error when saving nil session")
		}
	})
}

func TestFilePersistence(t *testing.T) {
	persistence, err := NewFilePersistence(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}

	exercisePersistence(t, persistence)
}

func TestFilePersistenceFileStructure(t *testing.T) {
	tempDir := t.TempDir()

	persistence, err := NewFilePersistence(tempDir)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}

	if err := persistence.Save(newTestSession(t, "File_Test", 3)); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	expectedFile := filepath.Join(tempDir, "file_test.json")
	data, err := os.ReadFile(expectedFile)
	if err != nil {
		t.Fatalf("Expected file %s: %v", expectedFile, err)
	}

	content := string(data)
	for _, field := range []string{`"id"`, `"config_name"`, `"seed"`, `"created_at"`, `"game_state"`, `"layout"`, `"history"`} {
		if !strings.Contains(content, field) {
			t.Errorf("Session file should contain field %s", field)
		}
	}

	var decoded PersistedSessionData
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Session file is not valid JSON: %v", err)
	}
	if decoded.ConfigName != "Test Config" {
		t.Errorf("Expected config name 'Test Config', got %q", decoded.ConfigName)
	}

	if _, err := os.Stat(expectedFile + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temporary file should not be left behind")
	}
}

func TestFilePersistenceCorruptFile(t *testing.T) {
	tempDir := t.TempDir()
	persistence, err := NewFilePersistence(tempDir)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}

	if err := os.WriteFile(filepath.Join(tempDir, "broken.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := persistence.Load("broken"); err == nil {
		t.Error("Expected error for corrupt session file")
	}

	tampered := `{"id":"bad","config":{"name":"x"},"game_state":{"layout":["#E"],"player_pos":{"x":0,"y":0},"state":"running"}}`
	if err := os.WriteFile(filepath.Join(tempDir, "bad.json"), []byte(tampered), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := persistence.Load("bad"); !errors.Is(err, engine.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for a blocked origin, got %v", err)
	}
}
