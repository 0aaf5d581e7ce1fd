package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"event-api/core/database"
	"event-api/core/logger"
	"event-api/core/params"
	"event-api/modules/event/entity"
	participantEntity "event-api/modules/participant/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type EventRepository struct {
	DB database.IDatabase
}

func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{DB: db}
}

type EventRepositoryInterface interface {
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetEvents(ctx context.Context, params params.QueryParams) (*entity.PaginatedEventEntity, error)
	CreateEventWithOrganizer(ctx context.Context, event *entity.Event, organizerID uuid.UUID) (*entity.Event, error)
	UpdateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

const eventColumns = `id, title, slug, description, date, location, at_created, at_updated`

func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	err := r.DB.GetContext(ctx, &event, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByID", "error", err)
		return nil, err
	}
	return &event, nil
}

// GetEvents filters by title and location (exact) and searches both columns.
func (r *EventRepository) GetEvents(ctx context.Context, params params.QueryParams) (*entity.PaginatedEventEntity, error) {
	baseQuery := ` FROM events`

	var conditions []string
	var args []any
	argIndex := 1

	for _, key := range []string{"title", "location"} {
		if v, ok := params.Filter(key); ok {
			conditions = append(conditions, fmt.Sprintf("%s = $%d", key, argIndex))
			args = append(args, v)
			argIndex++
		}
	}
	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR location ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*)"+baseQuery+whereClause, args...); err != nil {
		logger.Error("EventRepository:GetEvents:Count", "error", err)
		return nil, err
	}

	dataQuery := `SELECT ` + eventColumns + baseQuery + whereClause +
		fmt.Sprintf(" ORDER BY date, id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, params.PageSize, params.Offset())

	events := []entity.Event{}
	if err := r.DB.SelectContext(ctx, &events, dataQuery, args...); err != nil {
		logger.Error("EventRepository:GetEvents:Select", "error", err)
		return nil, err
	}

	return &entity.PaginatedEventEntity{
		Items:      events,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

// CreateEventWithOrganizer inserts the event and the creator's organizer row in one transaction.
// Either both rows exist afterwards or neither does.
func (r *EventRepository) CreateEventWithOrganizer(ctx context.Context, event *entity.Event, organizerID uuid.UUID) (*entity.Event, error) {
	var created entity.Event

	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		insertEvent := `
			INSERT INTO events (title, slug, description, date, location)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING ` + eventColumns
		if err := tx.GetContext(ctx, &created, insertEvent,
			event.Title,
			event.Slug,
			event.Description,
			event.Date,
			event.Location,
		); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}

		insertOrganizer := `INSERT INTO event_participants (event_id, member_id, role) VALUES ($1, $2, $3)`
		if _, err := tx.ExecContext(ctx, insertOrganizer, created.ID, organizerID, participantEntity.RoleOrganizer); err != nil {
			return fmt.Errorf("insert organizer: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("EventRepository:CreateEventWithOrganizer", "error", err)
		return nil, err
	}
	return &created, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		UPDATE events
		SET title = $2, slug = $3, description = $4, date = $5, location = $6, at_updated = now()
		WHERE id = $1
		RETURNING ` + eventColumns

	var updated entity.Event
	err := r.DB.GetContext(ctx, &updated, query,
		event.ID,
		event.Title,
		event.Slug,
		event.Description,
		event.Date,
		event.Location,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("EventRepository:UpdateEvent", "error", err)
		return nil, err
	}
	return &updated, nil
}

// DeleteEvent removes the event; its participations go with it via ON DELETE CASCADE.
func (r *EventRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		logger.Error("EventRepository:DeleteEvent", "error", err)
		return err
	}
	return nil
}
