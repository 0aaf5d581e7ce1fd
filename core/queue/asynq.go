package queue

import (
	"context"
	"os"

	"event-api/core/config"
	"event-api/core/constants"
	"event-api/core/logger"

	"github.com/hibiken/asynq"
)

// Enqueuer is the subset of *asynq.Client producers depend on.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(RedisOpt(cfg))
}

// NewServer builds the worker server. Notification tasks get the larger share of workers.
func NewServer(redisCfg config.RedisConfig, workerCfg config.WorkerConfig) *asynq.Server {
	return asynq.NewServer(RedisOpt(redisCfg), asynq.Config{
		Concurrency: workerCfg.Concurrency,
		Queues: map[string]int{
			constants.QueueNotifications: 6,
			constants.QueueDefault:       3,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logger.Error("Queue:ProcessTask:Error",
				"type", task.Type(),
				"error", err,
				"retried", retried,
				"max_retry", maxRetry,
			)
		}),
		Logger: asynqLogger{},
	})
}

// asynqLogger routes asynq's own logging through the process logger.
type asynqLogger struct{}

func (asynqLogger) Debug(args ...any) { logger.Debug("asynq", "args", args) }
func (asynqLogger) Info(args ...any)  { logger.Info("asynq", "args", args) }
func (asynqLogger) Warn(args ...any)  { logger.Warn("asynq", "args", args) }
func (asynqLogger) Error(args ...any) { logger.Error("asynq", "args", args) }
func (asynqLogger) Fatal(args ...any) {
	logger.Error("asynq:fatal", "args", args)
	logger.Sync()
	os.Exit(1)
}
