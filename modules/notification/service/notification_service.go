package service

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"event-api/core/constants"
	"event-api/core/logger"
	"event-api/core/queue"
	"event-api/modules/notification/dto"
	"event-api/modules/notification/task"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Notifier is what the registration workflow needs from this module.
type Notifier interface {
	NotifyRegistration(participantID uuid.UUID, email, displayName string, eventDate time.Time)
}

// NotificationService enqueues email tasks without blocking the caller.
// Enqueue failures are logged and never reach the request.
type NotificationService struct {
	queue   queue.Enqueuer
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewNotificationService(q queue.Enqueuer) *NotificationService {
	return &NotificationService{
		queue:   q,
		timeout: constants.EnqueueTimeout,
	}
}

func (s *NotificationService) NotifyRegistration(participantID uuid.UUID, email, displayName string, eventDate time.Time) {
	payload := dto.RegistrationEmailPayload{
		ParticipantID: participantID.String(),
		Email:         email,
		Name:          displayName,
		EventDate:     eventDate.Format(constants.EventDateLayout),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.enqueue(payload)
	}()
}

func (s *NotificationService) enqueue(payload dto.RegistrationEmailPayload) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	t, err := task.NewEventRegistrationEmailTask(payload)
	if err != nil {
		logger.Error("NotificationService:NotifyRegistration:NewTask", "error", err)
		return
	}

	info, err := s.queue.EnqueueContext(ctx, t)
	if err != nil {
		if stderrors.Is(err, asynq.ErrTaskIDConflict) {
			logger.Info("NotificationService:NotifyRegistration:AlreadyQueued", "participant_id", payload.ParticipantID)
			return
		}
		logger.Error("NotificationService:NotifyRegistration:Enqueue",
			"error", err,
			"participant_id", payload.ParticipantID,
		)
		return
	}
	logger.Info("NotificationService:NotifyRegistration:Enqueued",
		"task_id", info.ID,
		"queue", info.Queue,
		"participant_id", payload.ParticipantID,
	)
}

// Close waits for in-flight enqueues, used on shutdown.
func (s *NotificationService) Close() {
	s.wg.Wait()
}
