package entity

import (
	"time"

	coreEntity "event-api/core/entity"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	Date        time.Time `db:"date"`
	Location    string    `db:"location"`
	CreatedAt   time.Time `db:"at_created"`
	UpdatedAt   time.Time `db:"at_updated"`
}

type PaginatedEventEntity = coreEntity.Pagination[Event]
