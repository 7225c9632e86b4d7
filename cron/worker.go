package cron

import (
	"context"
	"time"

	"mentorhub/config"
	"mentorhub/services/reference"
	"mentorhub/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReferenceRefresh = "reference:refresh"

// refreshTimeout bounds one refresh run.
const refreshTimeout = 30 * time.Second

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewReferenceRefreshTask builds the task that expires the reference cache.
func NewReferenceRefreshTask() *asynq.Task {
	return asynq.NewTask(TypeReferenceRefresh, nil, asynq.MaxRetry(2), asynq.Timeout(refreshTimeout))
}

// InitReferenceWorker runs the refresh worker and its scheduler in background.
// The returned func stops both.
func InitReferenceWorker(refSvc reference.ReferenceService) func() {
	logger := utils.GetLogger()
	opts := redisOpts()

	srv := asynq.NewServer(
		opts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReferenceRefresh, HandleReferenceRefresh(refSvc))

	scheduler := asynq.NewScheduler(opts, &asynq.SchedulerOpts{Location: config.Location()})
	if _, err := scheduler.Register(config.AppConfig.ReferenceRefreshCron, NewReferenceRefreshTask()); err != nil {
		logger.Error("Invalid reference refresh schedule",
			zap.String("cron", config.AppConfig.ReferenceRefreshCron), zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	go monitorRedisConnection(ctx)

	go func() {
		logger.Info("Starting reference refresh worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Start(mux); err != nil {
				logger.Warn("Failed to start worker",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Error("Max retry attempts reached; reference cache will only refresh on expiry")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
				continue
			}
			break
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Warn("Reference refresh scheduler stopped", zap.Error(err))
		}
	}()

	return func() {
		cancel()
		scheduler.Shutdown()
		srv.Shutdown()
	}
}

// HandleReferenceRefresh drops cached reference collections for every role.
func HandleReferenceRefresh(refSvc reference.ReferenceService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		start := time.Now()
		if err := refSvc.Refresh(ctx); err != nil {
			utils.GetLogger().Warn("Reference refresh failed", zap.Error(err))
			return err
		}
		utils.GetLogger().Debug("Reference cache refreshed", zap.Duration("took", time.Since(start)))
		return nil
	}
}

// monitorRedisConnection pings the queue database periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				utils.GetLogger().Warn("Queue Redis connection lost", zap.Error(err))
			}
		}
	}
}
