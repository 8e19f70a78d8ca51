package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"

	"github.com/wricardo/prims-maze/game/service"
)

// ErrStaleSession is returned when the stored copy of a session is newer than
// the one being saved.
var ErrStaleSession = errors.New("stale session")

const (
	DefaultRedisPrefix = "maze:session:"
	redisOpTimeout     = 5 * time.Second
	redisLockExpiry    = 10 * time.Second
)

// RedisPersistence implements SessionPersistence on top of Redis. Each session
// is one JSON document under prefix+id, refreshed to ttl on every save.
// Saves compare against the stored document under a redsync lock, so a server
// holding an outdated copy cannot overwrite progress made elsewhere.
type RedisPersistence struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	ttl    time.Duration
}

// NewRedisPersistence wraps an existing client. A zero ttl keeps keys forever.
func NewRedisPersistence(client *redis.Client, prefix string, ttl time.Duration) *RedisPersistence {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisPersistence{
		client: client,
		locker: redsync.New(goredis.NewPool(client)),
		prefix: prefix,
		ttl:    ttl,
	}
}

// DialRedisPersistence connects to addr and pings it before returning.
func DialRedisPersistence(ctx context.Context, addr, prefix string, ttl time.Duration) (*RedisPersistence, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return NewRedisPersistence(client, prefix, ttl), nil
}

// Close closes the underlying client.
func (rp *RedisPersistence) Close() error {
	return rp.client.Close()
}

// Save writes the session document and refreshes its TTL. It fails with
// ErrStaleSession when the stored document was accessed later or has a longer
// history than session.
func (rp *RedisPersistence) Save(session *service.Session) error {
	data, err := newPersistedData(session)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	key := rp.key(session.ID)
	mutex := rp.locker.NewMutex(key+":lock", redsync.WithExpiry(redisLockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("lock session %s: %w", session.ID, err)
	}
	defer mutex.UnlockContext(ctx)

	if err := rp.checkNewer(ctx, key, data); err != nil {
		return err
	}
	if err := rp.client.Set(ctx, key, payload, rp.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// checkNewer rejects data when the stored document is ahead of it. History
// only grows, so a longer stored history means moves data has not seen.
func (rp *RedisPersistence) checkNewer(ctx context.Context, key string, data *PersistedSessionData) error {
	payload, err := rp.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	var stored struct {
		LastAccessedAt time.Time         `json:"last_accessed_at"`
		History        []json.RawMessage `json:"history"`
	}
	if err := json.Unmarshal(payload, &stored); err != nil {
		return fmt.Errorf("failed to unmarshal stored session %s: %w", data.ID, err)
	}

	if stored.LastAccessedAt.After(data.LastAccessedAt) || len(stored.History) > len(data.History) {
		return fmt.Errorf("%w: %s was saved at %s with %d moves, have %s with %d",
			ErrStaleSession, data.ID,
			stored.LastAccessedAt.Format(time.RFC3339Nano), len(stored.History),
			data.LastAccessedAt.Format(time.RFC3339Nano), len(data.History))
	}
	return nil
}

// Load reads a session document
func (rp *RedisPersistence) Load(id string) (*service.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	payload, err := rp.client.Get(ctx, rp.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", rp.key(id), err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return data.restore()
}

// Delete removes a session document
func (rp *RedisPersistence) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	removed, err := rp.client.Del(ctx, rp.key(id)).Result()
	if err != nil {
		return fmt.Errorf("redis del %s: %w", rp.key(id), err)
	}
	if removed == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll scans for every key under the prefix
func (rp *RedisPersistence) ListAll() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	var ids []string
	iter := rp.client.Scan(ctx, 0, rp.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasSuffix(key, ":lock") {
			continue
		}
		ids = append(ids, strings.TrimPrefix(key, rp.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan %s*: %w", rp.prefix, err)
	}
	return ids, nil
}

// Exists reports whether the session document is present
func (rp *RedisPersistence) Exists(id string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	n, err := rp.client.Exists(ctx, rp.key(id)).Result()
	return err == nil && n > 0
}

func (rp *RedisPersistence) key(id string) string {
	return rp.prefix + strings.ToLower(id)
}
