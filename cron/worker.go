package cron

import (
	"context"
	"log"
	"time"

	"caresched/config"
	holdRepo "caresched/database/repository/hold"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeHoldSweep = "holds:sweep"

// InitHoldSweeper runs the background worker that deletes long-expired holds.
// Confirmation checks expiry itself at read time; the sweeper only bounds
// storage growth.
func InitHoldSweeper(repo holdRepo.HoldRepository, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeHoldSweep, handleHoldSweep(repo, logger))

	// Start async worker with retry logic
	go func() {
		log.Println("[HoldSweeper] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[HoldSweeper] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[HoldSweeper] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register("@every 10m", asynq.NewTask(TypeHoldSweep, nil)); err != nil {
		log.Fatalf("[HoldSweeper] Failed to register sweep schedule: %v", err)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[HoldSweeper] Scheduler stopped: %v", err)
		}
	}()
}

func handleHoldSweep(repo holdRepo.HoldRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		grace := time.Duration(config.AppConfig.HoldSweepGraceMinutes) * time.Minute
		cutoff := time.Now().Add(-grace)

		deleted, err := repo.DeleteExpiredBefore(ctx, cutoff)
		if err != nil {
			logger.Error("hold sweep failed", zap.Error(err))
			return err
		}
		if deleted > 0 {
			logger.Info("swept expired holds", zap.Int64("deleted", deleted), zap.Time("cutoff", cutoff))
		}
		return nil
	}
}
