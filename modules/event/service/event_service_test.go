package service

import (
	"context"
	stderrors "errors"
	"testing"

	"event-api/core/errors"
	"event-api/core/middleware"
	"event-api/core/params"
	"event-api/modules/event/dto"
	"event-api/modules/event/entity"
	participantEntity "event-api/modules/participant/entity"

	"github.com/google/uuid"
)

type fakeEventRepo struct {
	createErr error
	created   *entity.Event
	organizer uuid.UUID
	updated   *entity.Event
}

func (f *fakeEventRepo) GetEventByID(context.Context, uuid.UUID) (*entity.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) GetEvents(context.Context, params.QueryParams) (*entity.PaginatedEventEntity, error) {
	return &entity.PaginatedEventEntity{}, nil
}

func (f *fakeEventRepo) CreateEventWithOrganizer(_ context.Context, event *entity.Event, organizerID uuid.UUID) (*entity.Event, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *event
	created.ID = uuid.New()
	f.created = &created
	f.organizer = organizerID
	return &created, nil
}

func (f *fakeEventRepo) UpdateEvent(_ context.Context, event *entity.Event) (*entity.Event, error) {
	f.updated = event
	return event, nil
}

func (f *fakeEventRepo) DeleteEvent(context.Context, uuid.UUID) error {
	return nil
}

// fakePermissions allows or denies every event mutation.
type fakePermissions struct {
	deny *errors.AppError
}

func (f fakePermissions) CanManageEvent(context.Context, *middleware.Principal, uuid.UUID) *errors.AppError {
	return f.deny
}

func (f fakePermissions) CanManageParticipant(context.Context, *middleware.Principal, uuid.UUID) (*participantEntity.Participant, *errors.AppError) {
	return nil, f.deny
}

func (f fakePermissions) CanChangeRole(context.Context, *middleware.Principal, *participantEntity.Participant, participantEntity.Role) *errors.AppError {
	return f.deny
}

func (f fakePermissions) CanJoin(context.Context, *middleware.Principal, uuid.UUID, uuid.UUID, participantEntity.Role) *errors.AppError {
	return f.deny
}

func (f fakePermissions) IsOrganizer(context.Context, uuid.UUID, uuid.UUID) (bool, *errors.AppError) {
	return f.deny == nil, nil
}

func (f fakePermissions) CanAccessUser(*middleware.Principal, uuid.UUID) *errors.AppError {
	return f.deny
}

func (f fakePermissions) RequireStaff(*middleware.Principal) *errors.AppError {
	return f.deny
}

func validRequest() *dto.EventRequest {
	return &dto.EventRequest{
		Title:       "Go Meetup Lisbon",
		Description: "talks",
		Date:        "2025-02-12 14:00:00",
		Location:    "Lisbon",
	}
}

func TestCreateEvent(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewEventService(repo, fakePermissions{})
	actor := &middleware.Principal{ID: uuid.New()}

	resp, appErr := svc.CreateEvent(context.Background(), actor, validRequest())
	if appErr != nil {
		t.Fatalf("CreateEvent: %v", appErr)
	}
	if repo.organizer != actor.ID {
		t.Fatalf("organizer = %s, want %s", repo.organizer, actor.ID)
	}
	if resp.Slug != "go-meetup-lisbon" {
		t.Fatalf("slug = %q", resp.Slug)
	}
	if resp.Date.String() != "2025-02-12 14:00:00" {
		t.Fatalf("date = %q", resp.Date.String())
	}
}

func TestCreateEvent_StoreFailure(t *testing.T) {
	repo := &fakeEventRepo{createErr: stderrors.New("insert organizer: connection reset")}
	svc := NewEventService(repo, fakePermissions{})

	_, appErr := svc.CreateEvent(context.Background(), &middleware.Principal{ID: uuid.New()}, validRequest())
	if appErr == nil || appErr.Code != errors.ErrCreateFailed {
		t.Fatalf("got %v, want %s", appErr, errors.ErrCreateFailed)
	}
}

func TestCreateEvent_BadDate(t *testing.T) {
	svc := NewEventService(&fakeEventRepo{}, fakePermissions{})
	req := validRequest()
	req.Date = "12/02/2025 14:00"

	_, appErr := svc.CreateEvent(context.Background(), &middleware.Principal{ID: uuid.New()}, req)
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("got %v, want %s", appErr, errors.ErrInvalidInput)
	}
}

func TestUpdateEvent_Denied(t *testing.T) {
	repo := &fakeEventRepo{}
	deny := errors.NewAppError(errors.ErrForbidden, "Participants cannot modify the event.", nil)
	svc := NewEventService(repo, fakePermissions{deny: deny})

	_, appErr := svc.UpdateEvent(context.Background(), &middleware.Principal{ID: uuid.New()}, uuid.New(), validRequest())
	if appErr != deny {
		t.Fatalf("got %v, want the permission error", appErr)
	}
	if repo.updated != nil {
		t.Fatal("event was updated despite the denial")
	}
}

func TestUpdateEvent(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewEventService(repo, fakePermissions{})
	id := uuid.New()

	resp, appErr := svc.UpdateEvent(context.Background(), &middleware.Principal{ID: uuid.New()}, id, validRequest())
	if appErr != nil {
		t.Fatalf("UpdateEvent: %v", appErr)
	}
	if resp.ID != id || repo.updated.ID != id {
		t.Fatalf("updated id = %s, want %s", resp.ID, id)
	}
}
