package utils

import (
	"context"
	"sync"
	"time"

	"caresched/config"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus is the latest snapshot of the external dependencies the
// scheduler runs against. Redis entries are keyed by concern (cache, holds).
type HealthStatus struct {
	Mongo     bool            `json:"mongo"`
	Redis     map[string]bool `json:"redis"`
	CheckedAt time.Time       `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor pings Mongo and each named Redis client on a fixed
// interval (HEALTH_CHECK_INTERVAL_SECONDS) and stores the result in memory
// for the health endpoint. Failures are logged but never fatal.
func StartHealthMonitor(redisClients map[string]*redis.Client, mongoClient *mongo.Client, logger *zap.Logger) {
	interval := time.Duration(config.AppConfig.HealthCheckIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 60 * time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

			redisHealth := make(map[string]bool, len(redisClients))
			for name, client := range redisClients {
				err := client.Ping(ctx).Err()
				redisHealth[name] = err == nil
				if err != nil {
					logger.Warn("redis health check failed",
						zap.String("client", name), zap.Error(err))
				}
			}

			mongoErr := mongoClient.Ping(ctx, nil)
			if mongoErr != nil {
				logger.Warn("mongo health check failed", zap.Error(mongoErr))
			}
			cancel()

			healthMu.Lock()
			currentHealth = HealthStatus{
				Mongo:     mongoErr == nil,
				Redis:     redisHealth,
				CheckedAt: time.Now(),
			}
			healthMu.Unlock()
		}
	}()
}
