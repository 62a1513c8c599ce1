package config

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient backs the rate limiter and the search cache. Both treat a nil
// client or a failing command as "no limit, no cache".
var RedisClient *redis.Client

const defaultRedisURL = "redis://localhost:6379"

func ConnectRedis() {
	redisURL := GetEnv("REDIS_URL", "")
	if redisURL == "" {
		redisURL = defaultRedisURL
		Log.Warnw("⚠️ REDIS_URL not set, using local Redis", "url", redisURL)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		Log.Fatalw("❌ invalid REDIS_URL", "error", err)
	}

	// A slow Redis must not hold up a search request.
	opt.DialTimeout = 2 * time.Second
	opt.ReadTimeout = 500 * time.Millisecond
	opt.WriteTimeout = 500 * time.Millisecond

	RedisClient = redis.NewClient(opt)

	ctx, cancel := WithTimeout()
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		if IsProduction() {
			Log.Fatalw("❌ failed to connect to Redis", "addr", opt.Addr, "error", err)
		}
		Log.Warnw("⚠️ Redis unreachable, rate limiting and search cache disabled until it recovers",
			"addr", opt.Addr, "error", err)
		return
	}
	Log.Infow("✅ connected to Redis", "addr", opt.Addr, "db", opt.DB)
}

func CloseRedis() {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Close(); err != nil {
		Log.Warnw("closing Redis", "error", err)
	}
}
