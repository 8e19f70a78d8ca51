package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/wricardo/prims-maze/game/engine"
)

// newTestRedisPersistence uses an in-process server unless
// MAZE_TEST_REDIS_ADDR points at a disposable real one.
func newTestRedisPersistence(t *testing.T) *RedisPersistence {
	t.Helper()
	addr := os.Getenv("MAZE_TEST_REDIS_ADDR")
	if addr == "" {
		addr = miniredis.RunT(t).Addr()
	}

	prefix := fmt.Sprintf("maze:test:%d:", time.Now().UnixNano())
	persistence, err := DialRedisPersistence(context.Background(), addr, prefix, time.Minute)
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}
	t.Cleanup(func() {
		ids, _ := persistence.ListAll()
		for _, id := range ids {
			persistence.Delete(id)
		}
		persistence.Close()
	})
	return persistence
}

func TestRedisPersistence(t *testing.T) {
	exercisePersistence(t, newTestRedisPersistence(t))
}

func TestRedisPersistenceTTL(t *testing.T) {
	persistence := newTestRedisPersistence(t)

	if err := persistence.Save(newTestSession(t, "ttl", 1)); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	ttl, err := persistence.client.TTL(context.Background(), persistence.key("ttl")).Result()
	if err != nil {
		t.Fatalf("Failed to read TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("Expected TTL within (0, 1m], got %s", ttl)
	}
}

func TestRedisPersistenceDefaultPrefix(t *testing.T) {
	persistence := NewRedisPersistence(nil, "", 0)
	if got := persistence.key("AbC"); got != DefaultRedisPrefix+"abc" {
		t.Errorf("Expected %sabc, got %s", DefaultRedisPrefix, got)
	}
}

func TestRedisPersistenceRejectsStaleSave(t *testing.T) {
	persistence := newTestRedisPersistence(t)

	current := newTestSession(t, "shared", 5)
	if err := persistence.Save(current); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	// A second server loads the session before this one moves on.
	outdated, err := persistence.Load("shared")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	dir := current.Engine.PossibleMoves()[0]
	from := current.Engine.Position()
	outcome := current.Engine.Move(dir)
	current.History = append(current.History, engine.MoveHistoryEntry{
		Action:       dir,
		FromPosition: from,
		ToPosition:   current.Engine.Position(),
		Outcome:      outcome,
		Success:      outcome.Accepted,
		MoveNumber:   1,
	})
	current.LastAccessedAt = current.LastAccessedAt.Add(time.Second)
	if err := persistence.Save(current); err != nil {
		t.Fatalf("Failed to save progress: %v", err)
	}

	if err := persistence.Save(outdated); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("Expected ErrStaleSession, got %v", err)
	}

	// A copy with the same timestamp but fewer moves is just as stale.
	outdated.LastAccessedAt = current.LastAccessedAt
	if err := persistence.Save(outdated); !errors.Is(err, ErrStaleSession) {
		t.Fatalf("Expected ErrStaleSession for shorter history, got %v", err)
	}

	loaded, err := persistence.Load("shared")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if len(loaded.History) != 1 || loaded.Engine.Position() != current.Engine.Position() {
		t.Errorf("Stored session lost progress: history=%d position=%s", len(loaded.History), loaded.Engine.Position())
	}

	// Re-saving the current copy is not stale, and the lock is released.
	if err := persistence.Save(current); err != nil {
		t.Errorf("Expected re-save to succeed, got %v", err)
	}
}
