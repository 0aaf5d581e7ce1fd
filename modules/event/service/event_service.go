package service

import (
	"context"

	"event-api/core/constants"
	"event-api/core/errors"
	"event-api/core/logger"
	"event-api/core/middleware"
	"event-api/core/params"
	"event-api/modules/event/dto"
	"event-api/modules/event/mapper"
	"event-api/modules/event/repository"
	permissionService "event-api/modules/permission/service"

	"github.com/google/uuid"
)

type EventServiceInterface interface {
	GetEvents(ctx context.Context, params params.QueryParams) (*dto.PaginatedEventResponse, *errors.AppError)
	GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError)
	CreateEvent(ctx context.Context, actor *middleware.Principal, req *dto.EventRequest) (*dto.EventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, actor *middleware.Principal, id uuid.UUID, req *dto.EventRequest) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, actor *middleware.Principal, id uuid.UUID) *errors.AppError
}

type EventService struct {
	repo        repository.EventRepositoryInterface
	permissions permissionService.PermissionServiceInterface
}

func NewEventService(repo repository.EventRepositoryInterface, permissions permissionService.PermissionServiceInterface) *EventService {
	return &EventService{
		repo:        repo,
		permissions: permissions,
	}
}

func (s *EventService) GetEvents(ctx context.Context, params params.QueryParams) (*dto.PaginatedEventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.GetEvents(ctx, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get events", err)
	}
	return mapper.ToEventPaginationResponse(page), nil
}

func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, permissionService.MsgEventNotFound, nil)
	}
	return mapper.ToEventResponse(event), nil
}

// CreateEvent makes the caller the event's organizer in the same transaction.
func (s *EventService) CreateEvent(ctx context.Context, actor *middleware.Principal, req *dto.EventRequest) (*dto.EventResponse, *errors.AppError) {
	if actor == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	event, err := mapper.ToEventEntity(req)
	if err != nil {
		return nil, errors.NewValidationError("Invalid request data", map[string][]string{"date": {err.Error()}})
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	created, err := s.repo.CreateEventWithOrganizer(ctx, event, actor.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create event", err)
	}

	logger.Info("EventService:CreateEvent:Created", "event_id", created.ID, "organizer_id", actor.ID)
	return mapper.ToEventResponse(created), nil
}

func (s *EventService) UpdateEvent(ctx context.Context, actor *middleware.Principal, id uuid.UUID, req *dto.EventRequest) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := s.permissions.CanManageEvent(ctx, actor, id); appErr != nil {
		return nil, appErr
	}

	event, err := mapper.ToEventEntity(req)
	if err != nil {
		return nil, errors.NewValidationError("Invalid request data", map[string][]string{"date": {err.Error()}})
	}
	event.ID = id

	updated, err := s.repo.UpdateEvent(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update event", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, permissionService.MsgEventNotFound, nil)
	}
	return mapper.ToEventResponse(updated), nil
}

func (s *EventService) DeleteEvent(ctx context.Context, actor *middleware.Principal, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := s.permissions.CanManageEvent(ctx, actor, id); appErr != nil {
		return appErr
	}

	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete event", err)
	}
	logger.Info("EventService:DeleteEvent:Deleted", "event_id", id, "actor_id", actor.ID)
	return nil
}
