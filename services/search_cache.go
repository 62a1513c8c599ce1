package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/redis/go-redis/v9"
)

const SearchCacheTTL = 2 * time.Minute

// SearchCache keeps recent search results in Redis. A nil client disables
// it, and Redis errors are logged and treated as misses.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSearchCache(client *redis.Client) *SearchCache {
	return &SearchCache{client: client, ttl: SearchCacheTTL}
}

func searchCacheKey(q string) string {
	return "search:" + strings.ToLower(strings.TrimSpace(q))
}

func (s *SearchCache) Get(ctx context.Context, q string) ([]models.Restaurant, bool) {
	if s == nil || s.client == nil {
		return nil, false
	}

	raw, err := s.client.Get(ctx, searchCacheKey(q)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		config.Log.Warnw("search cache read failed", "query", q, "error", err)
		return nil, false
	}

	var restaurants []models.Restaurant
	if err := json.Unmarshal(raw, &restaurants); err != nil {
		config.Log.Warnw("search cache entry corrupt", "query", q, "error", err)
		return nil, false
	}
	return restaurants, true
}

func (s *SearchCache) Set(ctx context.Context, q string, restaurants []models.Restaurant) {
	if s == nil || s.client == nil {
		return
	}

	raw, err := json.Marshal(restaurants)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, searchCacheKey(q), raw, s.ttl).Err(); err != nil {
		config.Log.Warnw("search cache write failed", "query", q, "error", err)
	}
}

var (
	searchCacheMu sync.Mutex
	searchCache   *SearchCache
)

// GetSearchCache returns the cache over config.RedisClient. It is rebuilt
// whenever that client has been replaced.
func GetSearchCache() *SearchCache {
	searchCacheMu.Lock()
	defer searchCacheMu.Unlock()

	if searchCache == nil || searchCache.client != config.RedisClient {
		searchCache = NewSearchCache(config.RedisClient)
	}
	return searchCache
}
