package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// SearchCacheTTL matches the client-side staleness window: a search page is
// served from cache for at most five minutes.
const SearchCacheTTL = 5 * time.Minute

// CacheService provides a Redis cache-aside layer for search responses.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetSearch retrieves a cached search response for the given filter key.
// Returns nil if not cached or cache is disabled.
func (c *CacheService) GetSearch(ctx context.Context, filterKey string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, searchKey(filterKey)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetSearch stores a search response under its filter key.
func (c *CacheService) SetSearch(ctx context.Context, filterKey string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, searchKey(filterKey), b, SearchCacheTTL).Err()
}

// InvalidateSearches drops every cached search page. Called after an
// ingestion run lands new or updated records.
func (c *CacheService) InvalidateSearches(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, "search:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func searchKey(filterKey string) string {
	return fmt.Sprintf("search:%s", filterKey)
}
