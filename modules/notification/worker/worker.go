package worker

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"event-api/core/logger"
	"event-api/core/mailer"
	"event-api/modules/notification/dto"
	"event-api/modules/notification/task"

	"github.com/hibiken/asynq"
)

const registrationSubject = "You are registered for an event"

var registrationBody = template.Must(template.New("registration").Parse(
	`Hello {{.Name}},

You have been registered as a member of an event.
The event takes place on {{.EventDate}}.

See you there!
`))

type NotificationWorker struct {
	mailer mailer.Mailer
}

func NewNotificationWorker(m mailer.Mailer) *NotificationWorker {
	return &NotificationWorker{mailer: m}
}

// Register binds the worker's handlers to mux.
func (w *NotificationWorker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(task.TypeEventRegistrationEmail, w.HandleEventRegistrationEmail)
}

// HandleEventRegistrationEmail sends the email. Undecodable payloads are not retried.
func (w *NotificationWorker) HandleEventRegistrationEmail(ctx context.Context, t *asynq.Task) error {
	payload, err := task.ParseEventRegistrationEmailPayload(t)
	if err != nil {
		logger.Error("NotificationWorker:HandleEventRegistrationEmail:Payload", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	body, err := RenderRegistrationBody(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	if err := w.mailer.Send(ctx, mailer.Message{
		To:      []string{payload.Email},
		Subject: registrationSubject,
		Body:    body,
	}); err != nil {
		logger.Warn("NotificationWorker:HandleEventRegistrationEmail:Send",
			"error", err,
			"participant_id", payload.ParticipantID,
		)
		return err
	}

	logger.Info("NotificationWorker:HandleEventRegistrationEmail:Sent", "participant_id", payload.ParticipantID)
	return nil
}

func RenderRegistrationBody(payload dto.RegistrationEmailPayload) (string, error) {
	var buf bytes.Buffer
	if err := registrationBody.Execute(&buf, payload); err != nil {
		return "", fmt.Errorf("render registration email: %w", err)
	}
	return buf.String(), nil
}
