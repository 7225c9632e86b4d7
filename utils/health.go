package utils

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	Upstream  bool      `json:"upstream"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth pings every dependency once and stores the snapshot.
func CheckHealth(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client, upstreamURL string) HealthStatus {
	var redisHealth []bool
	for _, client := range redisClients {
		redisHealth = append(redisHealth, client.Ping(ctx).Err() == nil)
	}

	mongoHealthy := mongoClient != nil && mongoClient.Ping(ctx, nil) == nil

	upstreamHealthy := false
	if upstreamURL != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, upstreamURL, nil)
		if err == nil {
			client := http.Client{Timeout: 5 * time.Second}
			if resp, err := client.Do(req); err == nil {
				resp.Body.Close()
				upstreamHealthy = resp.StatusCode < http.StatusInternalServerError
			}
		}
	}

	status := HealthStatus{
		Mongo:     mongoHealthy,
		Redis:     redisHealth,
		Upstream:  upstreamHealthy,
		CheckedAt: time.Now(),
	}
	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client, upstreamURL string) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		CheckHealth(ctx, redisClients, mongoClient, upstreamURL)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				status := CheckHealth(ctx, redisClients, mongoClient, upstreamURL)
				if !status.Mongo || !status.Upstream {
					GetLogger().Warn("dependency unhealthy",
						zap.Bool("mongo", status.Mongo),
						zap.Bool("upstream", status.Upstream),
						zap.Bools("redis", status.Redis))
				}
			}
		}
	}()
}
