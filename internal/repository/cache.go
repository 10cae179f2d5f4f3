package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"taskboard/internal/model"
	"taskboard/internal/session"
	"taskboard/internal/state"
)

const cacheKey = "taskboard:snapshot"

type cachedSnapshot struct {
	Boards         []model.Board `json:"boards"`
	CurrentBoardID string        `json:"current_board_id,omitempty"`
}

// Cache wraps a snapshot store with Redis-backed read caching. Cache errors
// never fail the operation; the backing store is authoritative.
type Cache struct {
	base  session.Store
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(base session.Store, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("repository.NewCache: base store is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{base: base, redis: client, ttl: ttl}
}

func (c *Cache) Load(ctx context.Context) (state.State, error) {
	if st, ok := c.loadFromCache(ctx); ok {
		return st, nil
	}

	st, err := c.base.Load(ctx)
	if err != nil {
		return state.State{}, err
	}

	c.store(ctx, st)
	return st, nil
}

// Save writes through to the backing store and refreshes the cached copy.
func (c *Cache) Save(ctx context.Context, st state.State) error {
	if err := c.base.Save(ctx, st); err != nil {
		return err
	}

	c.store(ctx, st)
	return nil
}

func (c *Cache) loadFromCache(ctx context.Context) (state.State, bool) {
	if c.redis == nil {
		return state.State{}, false
	}
	data, err := c.redis.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the backing store without failing.
			_ = c.redis.Del(ctx, cacheKey).Err()
		}
		return state.State{}, false
	}

	var cached cachedSnapshot
	if err := json.Unmarshal(data, &cached); err != nil {
		_ = c.redis.Del(ctx, cacheKey).Err()
		return state.State{}, false
	}

	st := state.State{Boards: cached.Boards}
	if cached.CurrentBoardID != "" {
		if id, err := uuid.Parse(cached.CurrentBoardID); err == nil {
			st.CurrentBoardID = id
		}
	}
	return st, true
}

func (c *Cache) store(ctx context.Context, st state.State) {
	if c.redis == nil {
		return
	}

	cached := cachedSnapshot{Boards: st.Boards}
	if st.CurrentBoardID != uuid.Nil {
		cached.CurrentBoardID = st.CurrentBoardID.String()
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
		_ = c.redis.Del(ctx, cacheKey).Err()
	}
}
