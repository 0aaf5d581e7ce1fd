package service

import (
	"context"

	"event-api/core/constants"
	"event-api/core/errors"
	"event-api/core/logger"
	"event-api/core/middleware"
	"event-api/core/params"
	"event-api/core/utils"
	authEntity "event-api/modules/auth/entity"
	notificationService "event-api/modules/notification/service"
	"event-api/modules/participant/dto"
	"event-api/modules/participant/entity"
	"event-api/modules/participant/mapper"
	"event-api/modules/participant/repository"
	permissionService "event-api/modules/permission/service"

	"github.com/google/uuid"
)

const (
	MsgAlreadyRegistered = "You are already registered for this event."
	MsgLastOrganizer     = "An event must keep at least one organizer."
	msgObjectNotFound    = "Object with this id does not exist."
)

// MemberReader loads the user a participation points at.
type MemberReader interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*authEntity.User, error)
}

type ParticipantServiceInterface interface {
	GetParticipants(ctx context.Context, params params.QueryParams) (*dto.PaginatedParticipantResponse, *errors.AppError)
	CreateParticipant(ctx context.Context, actor *middleware.Principal, req *dto.ParticipantRequest) (*dto.ParticipantResponse, *errors.AppError)
	GetParticipant(ctx context.Context, actor *middleware.Principal, id uuid.UUID) (*dto.ParticipantResponse, *errors.AppError)
	UpdateParticipant(ctx context.Context, actor *middleware.Principal, id uuid.UUID, req *dto.UpdateParticipantRequest) (*dto.ParticipantResponse, *errors.AppError)
	DeleteParticipant(ctx context.Context, actor *middleware.Principal, id uuid.UUID) *errors.AppError
}

type ParticipantService struct {
	repo        repository.ParticipantRepositoryInterface
	events      permissionService.EventReader
	members     MemberReader
	permissions permissionService.PermissionServiceInterface
	notifier    notificationService.Notifier
}

func NewParticipantService(
	repo repository.ParticipantRepositoryInterface,
	events permissionService.EventReader,
	members MemberReader,
	permissions permissionService.PermissionServiceInterface,
	notifier notificationService.Notifier,
) *ParticipantService {
	return &ParticipantService{
		repo:        repo,
		events:      events,
		members:     members,
		permissions: permissions,
		notifier:    notifier,
	}
}

func (s *ParticipantService) GetParticipants(ctx context.Context, params params.QueryParams) (*dto.PaginatedParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.GetParticipants(ctx, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get participants", err)
	}
	return mapper.ToParticipantPaginationResponse(page), nil
}

// CreateParticipant runs the join workflow: reference validation, authorization,
// duplicate check, insert, then the member notification. Only callers allowed to make the
// join learn whether it already exists. The notification is enqueued in the background
// and never fails the request.
func (s *ParticipantService) CreateParticipant(ctx context.Context, actor *middleware.Principal, req *dto.ParticipantRequest) (*dto.ParticipantResponse, *errors.AppError) {
	eventID, _ := utils.ParseUUID(req.Event)
	memberID, _ := utils.ParseUUID(req.Member)
	role, ok := entity.ParseRole(req.Role)
	if !ok {
		return nil, errors.NewValidationError("Invalid request data", map[string][]string{"role": {`"` + req.Role + `" is not a valid choice.`}})
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, err := s.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to register participant", err)
	}
	member, err := s.members.GetUserByID(ctx, memberID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to register participant", err)
	}

	details := map[string][]string{}
	if event == nil {
		details["event"] = []string{msgObjectNotFound}
	}
	if member == nil || !member.IsActive {
		details["member"] = []string{msgObjectNotFound}
	}
	if len(details) > 0 {
		return nil, errors.NewValidationError("Invalid request data", details)
	}

	if appErr := s.permissions.CanJoin(ctx, actor, eventID, memberID, role); appErr != nil {
		return nil, appErr
	}

	existing, err := s.repo.GetParticipantByEventAndMember(ctx, eventID, memberID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to register participant", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, MsgAlreadyRegistered, nil)
	}

	created, err := s.repo.CreateParticipant(ctx, &entity.Participant{
		EventID:  eventID,
		MemberID: memberID,
		Role:     role,
	})
	switch err {
	case nil:
	case repository.ErrDuplicateParticipant:
		return nil, errors.NewAppError(errors.ErrAlreadyExists, MsgAlreadyRegistered, nil)
	case repository.ErrUnknownEvent:
		return nil, errors.NewValidationError("Invalid request data", map[string][]string{"event": {msgObjectNotFound}})
	case repository.ErrUnknownMember:
		return nil, errors.NewValidationError("Invalid request data", map[string][]string{"member": {msgObjectNotFound}})
	default:
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to register participant", err)
	}

	logger.Info("ParticipantService:CreateParticipant:Created",
		"participant_id", created.ID,
		"event_id", created.EventID,
		"member_id", created.MemberID,
		"role", created.Role,
	)

	if created.Role == entity.RoleMember {
		s.notifier.NotifyRegistration(created.ID, member.Email, member.FullName(), event.Date)
	}

	return mapper.ToParticipantResponse(created), nil
}

func (s *ParticipantService) GetParticipant(ctx context.Context, actor *middleware.Principal, id uuid.UUID) (*dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	target, appErr := s.permissions.CanManageParticipant(ctx, actor, id)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToParticipantResponse(target), nil
}

// UpdateParticipant only changes the role. Moving a participation to another event or user
// is a delete followed by a new join.
func (s *ParticipantService) UpdateParticipant(ctx context.Context, actor *middleware.Principal, id uuid.UUID, req *dto.UpdateParticipantRequest) (*dto.ParticipantResponse, *errors.AppError) {
	role, ok := entity.ParseRole(req.Role)
	if !ok {
		return nil, errors.NewValidationError("Invalid request data", map[string][]string{"role": {`"` + req.Role + `" is not a valid choice.`}})
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	target, appErr := s.permissions.CanManageParticipant(ctx, actor, id)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.permissions.CanChangeRole(ctx, actor, target, role); appErr != nil {
		return nil, appErr
	}
	if target.Role == role {
		return mapper.ToParticipantResponse(target), nil
	}
	if target.IsOrganizer() {
		if appErr := s.keepsAnOrganizer(ctx, target.EventID); appErr != nil {
			return nil, appErr
		}
	}

	updated, err := s.repo.UpdateParticipantRole(ctx, id, role)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update participant", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, permissionService.MsgParticipantNotFound, nil)
	}
	return mapper.ToParticipantResponse(updated), nil
}

func (s *ParticipantService) DeleteParticipant(ctx context.Context, actor *middleware.Principal, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	target, appErr := s.permissions.CanManageParticipant(ctx, actor, id)
	if appErr != nil {
		return appErr
	}
	if target.IsOrganizer() {
		if appErr := s.keepsAnOrganizer(ctx, target.EventID); appErr != nil {
			return appErr
		}
	}

	if err := s.repo.DeleteParticipant(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete participant", err)
	}
	logger.Info("ParticipantService:DeleteParticipant:Deleted", "participant_id", id, "actor_id", actor.ID)
	return nil
}

// keepsAnOrganizer refuses to remove an organizer row when it is the event's last one.
// Dropping the whole event is still done through the event itself.
func (s *ParticipantService) keepsAnOrganizer(ctx context.Context, eventID uuid.UUID) *errors.AppError {
	count, err := s.repo.CountOrganizers(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to check organizers", err)
	}
	if count <= 1 {
		return errors.NewAppError(errors.ErrConflict, MsgLastOrganizer, nil)
	}
	return nil
}
