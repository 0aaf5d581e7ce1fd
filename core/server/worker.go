package server

import (
	"context"
	"fmt"

	"event-api/core/config"
	"event-api/core/logger"
	"event-api/core/mailer"
	"event-api/core/queue"
	"event-api/modules/notification"
)

// RunWorker processes notification tasks until ctx is cancelled.
func RunWorker(ctx context.Context, cfg *config.Config) error {
	srv := queue.NewServer(cfg.Redis, cfg.Worker)
	mux := notification.InitWorker(mailer.NewSMTPMailer(cfg.SMTP))

	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	logger.Info("Worker:Run:Started", "concurrency", cfg.Worker.Concurrency, "redis", cfg.Redis.Addr)

	<-ctx.Done()

	logger.Info("Worker:Run:ShuttingDown")
	srv.Shutdown()
	return nil
}
