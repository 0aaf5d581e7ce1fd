package notification

import (
	"event-api/core/mailer"
	"event-api/core/queue"
	"event-api/modules/notification/service"
	"event-api/modules/notification/worker"

	"github.com/hibiken/asynq"
)

// Init returns the producer side used by the HTTP server.
func Init(q queue.Enqueuer) *service.NotificationService {
	return service.NewNotificationService(q)
}

// InitWorker builds the consumer side for the worker process.
func InitWorker(m mailer.Mailer) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	worker.NewNotificationWorker(m).Register(mux)
	return mux
}
