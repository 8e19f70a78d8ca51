package session

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/prims-maze/game/engine"
)

func createTestConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Rows:        5,
		Columns:     5,
		Messages: engine.ConfigMessages{
			Welcome: "Welcome!",
			Blocked: "Wall!",
			Victory: "Escaped!",
		},
	}
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", config, 1)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Engine == nil {
			t.Fatal("Expected engine to be initialized")
		}
		if session.Seed != 1 {
			t.Errorf("Expected seed 1, got %d", session.Seed)
		}
		if session.Engine.State() != engine.Running {
			t.Errorf("Expected running session, got %s", session.Engine.State())
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", config, 1)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(session.ID) != 8 {
			t.Errorf("Expected 8-character session ID, got %q", session.ID)
		}
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session", config, 1)
		if !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", config, 1)
		if !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists for case variant, got %v", err)
		}
	})

	t.Run("invalid session ID", func(t *testing.T) {
		_, err := manager.Create("../escape", config, 1)
		if !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("Expected ErrInvalidSessionID, got %v", err)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		invalidConfig := createTestConfig()
		invalidConfig.Name = ""
		if _, err := manager.Create("invalid-test", invalidConfig, 1); err == nil {
			t.Error("Expected error for invalid config")
		}
		if _, err := manager.Create("nil-config", nil, 1); err == nil {
			t.Error("Expected error for nil config")
		}
	})
}

func TestManager_SameSeedSameMaze(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	a, err := manager.Create("seed-a", config, 42)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	b, err := manager.Create("seed-b", config, 42)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if a.Engine.Grid().String() != b.Engine.Grid().String() {
		t.Errorf("Expected identical mazes for the same seed:\n%s\nvs\n%s", a.Engine.Grid(), b.Engine.Grid())
	}
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	created, err := manager.Create("get-test", config, 1)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	t.Run("get existing session", func(t *testing.T) {
		session, err := manager.Get("get-test")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if session != created {
			t.Error("Expected the same session instance")
		}
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		session, err := manager.Get("GET-TEST")
		if err != nil {
			t.Fatalf("Failed to get session with different case: %v", err)
		}
		if session != created {
			t.Error("Expected the same session instance")
		}
	})

	t.Run("get non-existent session", func(t *testing.T) {
		_, err := manager.Get("non-existent")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	session1, err := manager.GetOrCreate("goc-test", config, 3)
	if err != nil {
		t.Fatalf("Failed to get or create session: %v", err)
	}

	session2, err := manager.GetOrCreate("goc-test", config, 99)
	if err != nil {
		t.Fatalf("Failed to get or create session: %v", err)
	}

	if session1 != session2 {
		t.Error("Expected the existing session to be returned")
	}
	if session2.Seed != 3 {
		t.Errorf("Expected original seed 3, got %d", session2.Seed)
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	if _, err := manager.Create("delete-test", config, 1); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	t.Run("delete existing session", func(t *testing.T) {
		if err := manager.Delete("DELETE-TEST"); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}
		if _, err := manager.Get("delete-test"); !errors.Is(err, ErrSessionNotFound) {
			t.Error("Expected session to be deleted")
		}
	})

	t.Run("delete non-existent session", func(t *testing.T) {
		if err := manager.Delete("non-existent"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("delete from memory", func(t *testing.T) {
		if _, err := manager.Create("memory-only", config, 1); err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if err := manager.DeleteFromMemory("memory-only"); err != nil {
			t.Fatalf("Failed to delete from memory: %v", err)
		}
		if err := manager.DeleteFromMemory("memory-only"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_List(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	if len(manager.List()) != 0 {
		t.Error("Expected empty list initially")
	}

	ids := []string{"list-1", "list-2", "list-3"}
	for _, id := range ids {
		if _, err := manager.Create(id, config, 1); err != nil {
			t.Fatalf("Failed to create session %s: %v", id, err)
		}
	}

	sessions := manager.List()
	if len(sessions) != len(ids) {
		t.Errorf("Expected %d sessions, got %d", len(ids), len(sessions))
	}
	if manager.Count() != len(ids) {
		t.Errorf("Expected count %d, got %d", len(ids), manager.Count())
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	old, _ := manager.Create("old-session", config, 1)
	old.LastAccessedAt = time.Now().Add(-2 * time.Hour)
	manager.Create("new-session", config, 1)

	removed := manager.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 session removed, got %d", removed)
	}

	if _, err := manager.Get("old-session"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected old session to be removed")
	}
	if _, err := manager.Get("new-session"); err != nil {
		t.Error("Expected new session to remain")
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	session, _ := manager.Create("access-test", config, 1)
	before := time.Now().Add(-time.Minute)
	session.LastAccessedAt = before

	if err := manager.UpdateLastAccessed("access-test"); err != nil {
		t.Fatalf("Failed to update last accessed: %v", err)
	}
	if !session.LastAccessedAt.After(before) {
		t.Error("Expected LastAccessedAt to be updated")
	}

	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_SaveWithoutPersistence(t *testing.T) {
	manager := NewManager()
	if err := manager.Save("anything"); err != nil {
		t.Errorf("Expected nil error without persistence, got %v", err)
	}
	if err := manager.SaveAllSessions(); err != nil {
		t.Errorf("Expected nil error without persistence, got %v", err)
	}
	if err := manager.LoadPersistedSessions(); err != nil {
		t.Errorf("Expected nil error without persistence, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			sessionID := fmt.Sprintf("concurrent-%d", id%50)
			if _, err := manager.GetOrCreate(sessionID, config, int64(id)); err != nil && !errors.Is(err, ErrSessionAlreadyExists) {
				errs <- err
			}
			if _, err := manager.Get(sessionID); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}

	if manager.Count() != 50 {
		t.Errorf("Expected 50 sessions, got %d", manager.Count())
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	session1, _ := manager.Create("iso-1", config, 5)
	session2, _ := manager.Create("iso-2", config, 5)

	moves := session1.Engine.PossibleMoves()
	if len(moves) == 0 {
		t.Fatal("Expected at least one move from the origin")
	}
	if outcome := session1.Engine.Move(moves[0]); !outcome.Accepted {
		t.Fatalf("Expected move %s to be accepted, got %s", moves[0], outcome)
	}

	if session2.Engine.Position().X != 0 || session2.Engine.Position().Y != 0 {
		t.Errorf("Session 2 should not be affected by session 1 moves, at %s", session2.Engine.Position())
	}
	if session1.Engine.Position() == session2.Engine.Position() {
		t.Error("Sessions should have independent game state")
	}
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	hexID := regexp.MustCompile(`^[0-9a-f]{8}$`)
	generatedIDs := make(map[string]bool)

	for i := 0; i < 50; i++ {
		session, err := manager.Create("", config, int64(i))
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}

		if generatedIDs[session.ID] {
			t.Errorf("Duplicate session ID generated: %s", session.ID)
		}
		generatedIDs[session.ID] = true

		if !hexID.MatchString(session.ID) {
			t.Errorf("Expected 8 lowercase hex characters, got %q", session.ID)
		}
	}
}
