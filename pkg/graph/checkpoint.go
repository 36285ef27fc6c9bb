package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Checkpointer persists graph memory between runs, keyed by an opaque
// thread id. Implementations must guarantee read-your-writes within a
// single process; durability across restarts depends on the backend.
type Checkpointer[S any] interface {
	Save(ctx context.Context, threadID string, state S) error
	Load(ctx context.Context, threadID string) (S, bool, error)
}

// MemorySaver keeps checkpoints in process memory with no expiry.
// Conversation continuity lasts for the lifetime of the process.
type MemorySaver[S any] struct {
	cache *gocache.Cache
}

func NewMemorySaver[S any]() *MemorySaver[S] {
	return &MemorySaver[S]{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

func (m *MemorySaver[S]) Save(_ context.Context, threadID string, state S) error {
	m.cache.Set(threadID, state, gocache.NoExpiration)
	return nil
}

func (m *MemorySaver[S]) Load(_ context.Context, threadID string) (S, bool, error) {
	var zero S
	x, found := m.cache.Get(threadID)
	if !found {
		return zero, false, nil
	}
	state, ok := x.(S)
	if !ok {
		return zero, false, fmt.Errorf("checkpoint %q holds unexpected type %T", threadID, x)
	}
	return state, true, nil
}

// RedisSaver stores JSON-encoded checkpoints in Redis, surviving process
// restarts. Keys are namespaced under "checkpoint:".
type RedisSaver[S any] struct {
	rdb *redis.Client
}

func NewRedisSaver[S any](rdb *redis.Client) *RedisSaver[S] {
	return &RedisSaver[S]{rdb: rdb}
}

func (r *RedisSaver[S]) key(threadID string) string {
	return "checkpoint:" + threadID
}

func (r *RedisSaver[S]) Save(ctx context.Context, threadID string, state S) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key(threadID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisSaver[S]) Load(ctx context.Context, threadID string) (S, bool, error) {
	var zero S
	data, err := r.rdb.Get(ctx, r.key(threadID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("redis get: %w", err)
	}
	var state S
	if err := json.Unmarshal(data, &state); err != nil {
		return zero, false, fmt.Errorf("unmarshal checkpoint: %w", err)
	}
	return state, true, nil
}
