package utils

import (
	"context"
	"log"
	"time"

	"mentorhub/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient holds cached upstream reference collections.
	CacheClient *redis.Client
	// SessionClient holds per-user dashboard state: grid sessions, drafts, request lists.
	SessionClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitCache initializes the reference cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
}

// GetCacheClient returns the reference cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitSessionCache initializes the client for dashboard session state.
func InitSessionCache() {
	SessionClient = newRedisClient(config.AppConfig.RedisSessionDB, "Session")
}

// GetSessionClient returns the dashboard session state client.
func GetSessionClient() *redis.Client {
	if SessionClient == nil {
		InitSessionCache()
	}
	return SessionClient
}
