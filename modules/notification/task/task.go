package task

import (
	"encoding/json"
	"fmt"

	"event-api/core/constants"
	"event-api/modules/notification/dto"

	"github.com/hibiken/asynq"
)

const TypeEventRegistrationEmail = "email:event_registration"

const registrationMaxRetry = 5

// NewEventRegistrationEmailTask builds the task. The task id is tied to the participation,
// so enqueueing the same registration twice is rejected by asynq.
func NewEventRegistrationEmailTask(payload dto.RegistrationEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", TypeEventRegistrationEmail, err)
	}
	return asynq.NewTask(TypeEventRegistrationEmail, body,
		asynq.Queue(constants.QueueNotifications),
		asynq.MaxRetry(registrationMaxRetry),
		asynq.TaskID(TaskID(payload.ParticipantID)),
	), nil
}

func TaskID(participantID string) string {
	return TypeEventRegistrationEmail + ":" + participantID
}

func ParseEventRegistrationEmailPayload(t *asynq.Task) (dto.RegistrationEmailPayload, error) {
	var payload dto.RegistrationEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("unmarshal %s payload: %w", TypeEventRegistrationEmail, err)
	}
	if payload.Email == "" {
		return payload, fmt.Errorf("%s payload has no recipient", TypeEventRegistrationEmail)
	}
	return payload, nil
}
