package dto

import (
	"time"

	"event-api/core/dto"

	"github.com/google/uuid"
)

// EventRequest is the create and update payload. Date is "YYYY-MM-DD HH:MM:SS".
type EventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}

type EventResponse struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Date        dto.DateTime `json:"date"`
	Location    string       `json:"location"`
	AtCreated   time.Time    `json:"at_created"`
	AtUpdated   time.Time    `json:"at_updated"`
}

type PaginatedEventResponse = dto.Pagination[EventResponse]
