package service

import (
	"context"

	"event-api/core/errors"
	"event-api/core/logger"
	"event-api/core/middleware"
	eventEntity "event-api/modules/event/entity"
	"event-api/modules/participant/entity"

	"github.com/google/uuid"
)

const (
	MsgEventNotFound       = "This event does not exist."
	MsgParticipantNotFound = "This participant does not exist."
	MsgMemberCannotModify  = "Participants cannot modify the event."
	MsgNotAllowed          = "You do not have permission to perform this action."
	MsgOwnProfileOnly      = "You can only do this with your own profile"
	MsgStaffOnly           = "Only staff users can do this."
	MsgOrganizerOnly       = "Only an organizer of the event can do this."
)

type EventReader interface {
	GetEventByID(ctx context.Context, id uuid.UUID) (*eventEntity.Event, error)
}

type ParticipantReader interface {
	GetParticipantByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error)
	GetParticipantByEventAndMember(ctx context.Context, eventID, memberID uuid.UUID) (*entity.Participant, error)
}

// PermissionServiceInterface decides whether an actor may act on a resource.
// Every check reads the store at call time; nothing is cached.
type PermissionServiceInterface interface {
	CanManageEvent(ctx context.Context, actor *middleware.Principal, eventID uuid.UUID) *errors.AppError
	CanManageParticipant(ctx context.Context, actor *middleware.Principal, participantID uuid.UUID) (*entity.Participant, *errors.AppError)
	CanChangeRole(ctx context.Context, actor *middleware.Principal, target *entity.Participant, role entity.Role) *errors.AppError
	CanJoin(ctx context.Context, actor *middleware.Principal, eventID, memberID uuid.UUID, role entity.Role) *errors.AppError
	IsOrganizer(ctx context.Context, userID, eventID uuid.UUID) (bool, *errors.AppError)
	CanAccessUser(actor *middleware.Principal, targetID uuid.UUID) *errors.AppError
	RequireStaff(actor *middleware.Principal) *errors.AppError
}

type PermissionService struct {
	events       EventReader
	participants ParticipantReader
}

func NewPermissionService(events EventReader, participants ParticipantReader) PermissionServiceInterface {
	return &PermissionService{
		events:       events,
		participants: participants,
	}
}

// CanManageEvent allows organizers of the event. A missing event is reported as not found,
// a member gets an explicit refusal, and a user with no participation a generic one.
func (s *PermissionService) CanManageEvent(ctx context.Context, actor *middleware.Principal, eventID uuid.UUID) *errors.AppError {
	if actor == nil {
		return errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	event, err := s.events.GetEventByID(ctx, eventID)
	if err != nil {
		logger.Error("PermissionService:CanManageEvent:GetEventByID", "error", err, "event_id", eventID)
		return errors.NewAppError(errors.ErrInternalServer, "failed to check permission", err)
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, MsgEventNotFound, nil)
	}

	participant, err := s.participants.GetParticipantByEventAndMember(ctx, eventID, actor.ID)
	if err != nil {
		logger.Error("PermissionService:CanManageEvent:GetParticipant", "error", err, "event_id", eventID)
		return errors.NewAppError(errors.ErrInternalServer, "failed to check permission", err)
	}

	switch {
	case participant == nil:
		return errors.NewAppError(errors.ErrForbidden, MsgNotAllowed, nil)
	case participant.Role == entity.RoleOrganizer:
		return nil
	case participant.Role == entity.RoleMember:
		return errors.NewAppError(errors.ErrForbidden, MsgMemberCannotModify, nil)
	default:
		return errors.NewAppError(errors.ErrForbidden, MsgNotAllowed, nil)
	}
}

// CanManageParticipant allows the participant themself and any organizer of the same event.
// The loaded participation is returned so callers do not read it twice.
func (s *PermissionService) CanManageParticipant(ctx context.Context, actor *middleware.Principal, participantID uuid.UUID) (*entity.Participant, *errors.AppError) {
	if actor == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	target, err := s.participants.GetParticipantByID(ctx, participantID)
	if err != nil {
		logger.Error("PermissionService:CanManageParticipant:GetParticipantByID", "error", err, "participant_id", participantID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check permission", err)
	}
	if target == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, MsgParticipantNotFound, nil)
	}

	if target.MemberID == actor.ID {
		return target, nil
	}

	isOrganizer, appErr := s.IsOrganizer(ctx, actor.ID, target.EventID)
	if appErr != nil {
		return nil, appErr
	}
	if !isOrganizer {
		return nil, errors.NewAppError(errors.ErrForbidden, MsgNotAllowed, nil)
	}
	return target, nil
}

// CanChangeRole requires an organizer of the target's event whenever the role actually changes.
func (s *PermissionService) CanChangeRole(ctx context.Context, actor *middleware.Principal, target *entity.Participant, role entity.Role) *errors.AppError {
	if target.Role == role {
		return nil
	}
	if actor == nil {
		return errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	isOrganizer, appErr := s.IsOrganizer(ctx, actor.ID, target.EventID)
	if appErr != nil {
		return appErr
	}
	if !isOrganizer {
		return errors.NewAppError(errors.ErrForbidden, MsgOrganizerOnly, nil)
	}
	return nil
}

// CanJoin lets a user register themself as a member. Registering someone else, or any
// organizer row, needs an organizer of the event.
func (s *PermissionService) CanJoin(ctx context.Context, actor *middleware.Principal, eventID, memberID uuid.UUID, role entity.Role) *errors.AppError {
	if actor == nil {
		return errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	if actor.ID == memberID && role == entity.RoleMember {
		return nil
	}

	isOrganizer, appErr := s.IsOrganizer(ctx, actor.ID, eventID)
	if appErr != nil {
		return appErr
	}
	if !isOrganizer {
		return errors.NewAppError(errors.ErrForbidden, MsgOrganizerOnly, nil)
	}
	return nil
}

func (s *PermissionService) IsOrganizer(ctx context.Context, userID, eventID uuid.UUID) (bool, *errors.AppError) {
	participant, err := s.participants.GetParticipantByEventAndMember(ctx, eventID, userID)
	if err != nil {
		logger.Error("PermissionService:IsOrganizer:GetParticipant", "error", err, "event_id", eventID, "user_id", userID)
		return false, errors.NewAppError(errors.ErrInternalServer, "failed to check permission", err)
	}
	return participant != nil && participant.IsOrganizer(), nil
}

func (s *PermissionService) CanAccessUser(actor *middleware.Principal, targetID uuid.UUID) *errors.AppError {
	if actor == nil {
		return errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	if actor.ID != targetID {
		return errors.NewAppError(errors.ErrForbidden, MsgOwnProfileOnly, nil)
	}
	return nil
}

func (s *PermissionService) RequireStaff(actor *middleware.Principal) *errors.AppError {
	if actor == nil {
		return errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	if !actor.IsStaff {
		return errors.NewAppError(errors.ErrForbidden, MsgStaffOnly, nil)
	}
	return nil
}
