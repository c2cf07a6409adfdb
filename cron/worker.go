package cron

import (
	"context"
	"log"
	"time"

	"librarium/config"
	"librarium/services/ledger"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// QueueRedisOpt is the asynq connection shared by the ledger client and worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitLedgerWorker runs the fine-income ledger worker in background.
func InitLedgerWorker(recorder ledger.Recorder) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(ledger.TypeLedgerIncome, HandleLedgerIncomeTask(recorder))

	// Start Redis health monitor
	go monitorRedisConnection()

	go func() {
		log.Println("[LedgerWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[LedgerWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[LedgerWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
	return srv
}

// HandleLedgerIncomeTask writes one queued income entry. The recorder is
// idempotent on the reference key so asynq retries never double-count.
func HandleLedgerIncomeTask(recorder ledger.Recorder) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		tx, err := ledger.ParseIncomeTask(task)
		if err != nil {
			log.Printf("[LedgerHandler] 🔴 %v", err)
			// A malformed payload will never succeed.
			return asynq.SkipRetry
		}

		log.Printf("[LedgerHandler] 💰 Recording %s %.2f (%s)", tx.Category, tx.Amount, tx.ReferenceKey)
		if err := recorder.RecordIncome(ctx, tx); err != nil {
			log.Printf("[LedgerHandler] ❌ Failed to record income: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[LedgerWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
