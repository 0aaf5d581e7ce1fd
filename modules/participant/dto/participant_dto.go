package dto

import (
	"time"

	"event-api/core/dto"

	"github.com/google/uuid"
)

// ParticipantRequest joins member to event with role. Ids are uuid strings.
type ParticipantRequest struct {
	Event  string `json:"event"`
	Member string `json:"member"`
	Role   string `json:"role"`
}

type UpdateParticipantRequest struct {
	Role string `json:"role"`
}

type ParticipantResponse struct {
	ID           uuid.UUID `json:"id"`
	Event        uuid.UUID `json:"event"`
	Member       uuid.UUID `json:"member"`
	Role         string    `json:"role"`
	RegisterTime time.Time `json:"register_time"`
}

type PaginatedParticipantResponse = dto.Pagination[ParticipantResponse]
