package service

import (
	"context"
	"testing"
	"time"

	"event-api/core/errors"
	"event-api/core/middleware"
	authEntity "event-api/modules/auth/entity"
	"event-api/modules/participant/dto"
	"event-api/modules/participant/entity"
	"event-api/modules/participant/repository"
	permissionService "event-api/modules/permission/service"

	"github.com/google/uuid"
)

type workflowFixture struct {
	store     *memStore
	notifier  *fakeNotifier
	svc       *ParticipantService
	eventDate time.Time
	eventID   uuid.UUID
	organizer *authEntity.User
	member    *authEntity.User
	outsider  *authEntity.User
}

func newWorkflowFixture() *workflowFixture {
	store := newMemStore()
	notifier := &fakeNotifier{}
	permissions := permissionService.NewPermissionService(store, store)

	date := time.Date(2025, 2, 12, 14, 0, 0, 0, time.UTC)
	event := store.addEvent("Go meetup", date)
	organizer := store.addUser("ann@example.com", "Ann", "Lee")
	member := store.addUser("bob@example.com", "Bob", "Stone")
	outsider := store.addUser("cat@example.com", "Cat", "Ray")
	store.addParticipant(event.ID, organizer.ID, entity.RoleOrganizer)

	return &workflowFixture{
		store:     store,
		notifier:  notifier,
		svc:       NewParticipantService(store, store, store, permissions, notifier),
		eventDate: date,
		eventID:   event.ID,
		organizer: organizer,
		member:    member,
		outsider:  outsider,
	}
}

func principal(u *authEntity.User) *middleware.Principal {
	return &middleware.Principal{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

func joinRequest(eventID, memberID uuid.UUID, role entity.Role) *dto.ParticipantRequest {
	return &dto.ParticipantRequest{Event: eventID.String(), Member: memberID.String(), Role: role.String()}
}

func TestCreateParticipant_MemberJoinNotifiesOnce(t *testing.T) {
	f := newWorkflowFixture()

	resp, appErr := f.svc.CreateParticipant(context.Background(), principal(f.member), joinRequest(f.eventID, f.member.ID, entity.RoleMember))
	if appErr != nil {
		t.Fatalf("CreateParticipant: %v", appErr)
	}
	if resp.Role != "member" || resp.Event != f.eventID || resp.Member != f.member.ID {
		t.Fatalf("unexpected response %+v", resp)
	}

	if got := f.notifier.count(); got != 1 {
		t.Fatalf("notifications = %d, want 1", got)
	}
	sent := f.notifier.sent[0]
	if sent.email != "bob@example.com" || sent.name != "Bob Stone" || !sent.eventDate.Equal(f.eventDate) {
		t.Fatalf("unexpected notification %+v", sent)
	}
	if sent.participantID != resp.ID {
		t.Fatalf("notification participant = %s, want %s", sent.participantID, resp.ID)
	}
}

func TestCreateParticipant_OrganizerJoinDoesNotNotify(t *testing.T) {
	f := newWorkflowFixture()

	_, appErr := f.svc.CreateParticipant(context.Background(), principal(f.organizer), joinRequest(f.eventID, f.outsider.ID, entity.RoleOrganizer))
	if appErr != nil {
		t.Fatalf("CreateParticipant: %v", appErr)
	}
	if got := f.notifier.count(); got != 0 {
		t.Fatalf("notifications = %d, want 0", got)
	}
}

func TestCreateParticipant_DuplicateIsConflict(t *testing.T) {
	f := newWorkflowFixture()
	ctx := context.Background()
	req := joinRequest(f.eventID, f.member.ID, entity.RoleMember)

	if _, appErr := f.svc.CreateParticipant(ctx, principal(f.member), req); appErr != nil {
		t.Fatalf("first join: %v", appErr)
	}
	_, appErr := f.svc.CreateParticipant(ctx, principal(f.member), req)
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("second join = %v, want %s", appErr, errors.ErrAlreadyExists)
	}
	if appErr.Message != MsgAlreadyRegistered {
		t.Fatalf("message = %q", appErr.Message)
	}

	if rows := f.store.rowsFor(f.eventID); len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (organizer + member)", len(rows))
	}
	if got := f.notifier.count(); got != 1 {
		t.Fatalf("notifications = %d, want 1", got)
	}
}

// lookupBlindStore hides existing rows from the duplicate check, as a concurrent
// request would see them before either insert commits.
type lookupBlindStore struct {
	*memStore
}

func (lookupBlindStore) GetParticipantByEventAndMember(context.Context, uuid.UUID, uuid.UUID) (*entity.Participant, error) {
	return nil, nil
}

func TestCreateParticipant_InsertConflictIsConflict(t *testing.T) {
	f := newWorkflowFixture()
	f.store.addParticipant(f.eventID, f.member.ID, entity.RoleMember)

	blind := lookupBlindStore{f.store}
	svc := NewParticipantService(blind, f.store, f.store, permissionService.NewPermissionService(f.store, f.store), f.notifier)

	_, appErr := svc.CreateParticipant(context.Background(), principal(f.member), joinRequest(f.eventID, f.member.ID, entity.RoleMember))
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("got %v, want %s", appErr, errors.ErrAlreadyExists)
	}
	if got := f.notifier.count(); got != 0 {
		t.Fatalf("notifications = %d, want 0", got)
	}
}

// vanishingStore accepts the reference checks but fails the insert the way the
// database does when the event or member is deleted in between.
type vanishingStore struct {
	*memStore
	err error
}

func (s vanishingStore) CreateParticipant(context.Context, *entity.Participant) (*entity.Participant, error) {
	return nil, s.err
}

func TestCreateParticipant_ReferenceRemovedBeforeInsert(t *testing.T) {
	tests := []struct {
		err   error
		field string
	}{
		{repository.ErrUnknownEvent, "event"},
		{repository.ErrUnknownMember, "member"},
	}
	for _, tt := range tests {
		f := newWorkflowFixture()
		store := vanishingStore{f.store, tt.err}
		svc := NewParticipantService(store, f.store, f.store, permissionService.NewPermissionService(f.store, f.store), f.notifier)

		_, appErr := svc.CreateParticipant(context.Background(), principal(f.member), joinRequest(f.eventID, f.member.ID, entity.RoleMember))
		if appErr == nil || appErr.Code != errors.ErrInvalidInput {
			t.Fatalf("%s: got %v, want %s", tt.field, appErr, errors.ErrInvalidInput)
		}
		details, _ := appErr.Details.(map[string][]string)
		if len(details[tt.field]) == 0 || len(details) != 1 {
			t.Fatalf("%s: details = %v", tt.field, details)
		}
		if got := f.notifier.count(); got != 0 {
			t.Fatalf("%s: notifications = %d, want 0", tt.field, got)
		}
	}
}

func TestCreateParticipant_UnknownReferences(t *testing.T) {
	f := newWorkflowFixture()

	_, appErr := f.svc.CreateParticipant(context.Background(), principal(f.member), joinRequest(uuid.New(), uuid.New(), entity.RoleMember))
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("got %v, want %s", appErr, errors.ErrInvalidInput)
	}
	details, ok := appErr.Details.(map[string][]string)
	if !ok {
		t.Fatalf("details type %T", appErr.Details)
	}
	if len(details["event"]) == 0 || len(details["member"]) == 0 {
		t.Fatalf("expected event and member errors, got %v", details)
	}
}

func TestCreateParticipant_RegisteringOthersNeedsOrganizer(t *testing.T) {
	f := newWorkflowFixture()

	_, appErr := f.svc.CreateParticipant(context.Background(), principal(f.member), joinRequest(f.eventID, f.outsider.ID, entity.RoleMember))
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("got %v, want %s", appErr, errors.ErrForbidden)
	}
	if rows := f.store.rowsFor(f.eventID); len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if got := f.notifier.count(); got != 0 {
		t.Fatalf("notifications = %d, want 0", got)
	}
}

func TestCreateParticipant_ExistingPairHiddenFromOthers(t *testing.T) {
	f := newWorkflowFixture()
	f.store.addParticipant(f.eventID, f.member.ID, entity.RoleMember)

	_, appErr := f.svc.CreateParticipant(context.Background(), principal(f.outsider), joinRequest(f.eventID, f.member.ID, entity.RoleMember))
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("got %v, want %s", appErr, errors.ErrForbidden)
	}
}

func TestUpdateParticipant(t *testing.T) {
	f := newWorkflowFixture()
	ctx := context.Background()
	row := f.store.addParticipant(f.eventID, f.member.ID, entity.RoleMember)
	promote := &dto.UpdateParticipantRequest{Role: "organizer"}

	if _, appErr := f.svc.UpdateParticipant(ctx, principal(f.member), row.ID, promote); appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("member self-promotion = %v, want %s", appErr, errors.ErrForbidden)
	}
	if _, appErr := f.svc.UpdateParticipant(ctx, principal(f.outsider), row.ID, promote); appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("outsider update = %v, want %s", appErr, errors.ErrForbidden)
	}

	resp, appErr := f.svc.UpdateParticipant(ctx, principal(f.organizer), row.ID, promote)
	if appErr != nil {
		t.Fatalf("organizer update: %v", appErr)
	}
	if resp.Role != "organizer" {
		t.Fatalf("role = %q, want organizer", resp.Role)
	}
}

func TestDeleteParticipant(t *testing.T) {
	f := newWorkflowFixture()
	ctx := context.Background()
	organizerRow, _ := f.store.GetParticipantByEventAndMember(ctx, f.eventID, f.organizer.ID)
	memberRow := f.store.addParticipant(f.eventID, f.member.ID, entity.RoleMember)

	if appErr := f.svc.DeleteParticipant(ctx, principal(f.member), organizerRow.ID); appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("member deleting organizer row = %v, want %s", appErr, errors.ErrForbidden)
	}
	if appErr := f.svc.DeleteParticipant(ctx, principal(f.member), memberRow.ID); appErr != nil {
		t.Fatalf("member deleting own row: %v", appErr)
	}
	if appErr := f.svc.DeleteParticipant(ctx, principal(f.member), memberRow.ID); appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("second delete = %v, want %s", appErr, errors.ErrNotFound)
	}
}

func TestLastOrganizerIsKept(t *testing.T) {
	f := newWorkflowFixture()
	ctx := context.Background()
	organizerRow, _ := f.store.GetParticipantByEventAndMember(ctx, f.eventID, f.organizer.ID)
	demote := &dto.UpdateParticipantRequest{Role: "member"}

	if _, appErr := f.svc.UpdateParticipant(ctx, principal(f.organizer), organizerRow.ID, demote); appErr == nil || appErr.Code != errors.ErrConflict {
		t.Fatalf("demoting last organizer = %v, want %s", appErr, errors.ErrConflict)
	}
	if appErr := f.svc.DeleteParticipant(ctx, principal(f.organizer), organizerRow.ID); appErr == nil || appErr.Code != errors.ErrConflict {
		t.Fatalf("deleting last organizer = %v, want %s", appErr, errors.ErrConflict)
	}
	if rows := f.store.rowsFor(f.eventID); len(rows) != 1 || rows[0].Role != entity.RoleOrganizer {
		t.Fatalf("rows = %+v", rows)
	}

	f.store.addParticipant(f.eventID, f.member.ID, entity.RoleOrganizer)

	resp, appErr := f.svc.UpdateParticipant(ctx, principal(f.organizer), organizerRow.ID, demote)
	if appErr != nil {
		t.Fatalf("demote with a second organizer: %v", appErr)
	}
	if resp.Role != "member" {
		t.Fatalf("role = %q, want member", resp.Role)
	}
	if appErr := f.svc.DeleteParticipant(ctx, principal(f.organizer), organizerRow.ID); appErr != nil {
		t.Fatalf("leaving as member: %v", appErr)
	}
}
