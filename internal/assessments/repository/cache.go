package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/recruitbase/assessment-api/internal/assessments/domain"
)

const (
	assessmentKeyPrefix = "assessment:"   // Key for one cached record: assessment:{id}
	defaultCacheTTL     = 5 * time.Minute // Stale entries age out even if invalidation is missed
)

// Cache is a read-through redis cache for assessment lookups by id.
// It is best-effort: a redis failure degrades to a miss, never to an error
// surfaced to the caller.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultCacheTTL}
}

// Get returns the cached record and true on a hit.
func (c *Cache) Get(ctx context.Context, id int) (*domain.Assessment, bool) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err != nil {
		return nil, false
	}
	var a domain.Assessment
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return nil, false
	}
	return &a, true
}

// Set stores the record under its id with the cache TTL.
func (c *Cache) Set(ctx context.Context, a *domain.Assessment) {
	data, err := json.Marshal(a)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.key(a.ID), data, c.ttl)
}

// Invalidate drops the cached record after a successful update or delete.
func (c *Cache) Invalidate(ctx context.Context, id int) {
	c.client.Del(ctx, c.key(id))
}

func (c *Cache) key(id int) string {
	return assessmentKeyPrefix + strconv.Itoa(id)
}
