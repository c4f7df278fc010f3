package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/Insane-9/Thinkboard-X/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyList = "notes:list"

// NoteCache caches the full note listing in Redis. Any write path
// invalidates it; reads repopulate it with a TTL.
type NoteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewNoteCache returns a new NoteCache.
func NewNoteCache(rdb *redis.Client, ttl time.Duration) *NoteCache {
	return &NoteCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached listing or nil on miss.
func (c *NoteCache) GetList(ctx context.Context) ([]dom.Note, error) {
	b, err := c.rdb.Get(ctx, keyList).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Note
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the listing in cache.
func (c *NoteCache) SetList(ctx context.Context, list []dom.Note) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyList, b, c.ttl).Err()
}

// Invalidate removes the cached listing (cache invalidation on write).
func (c *NoteCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, keyList).Err()
}
