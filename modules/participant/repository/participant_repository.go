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
	"event-api/modules/participant/entity"

	"github.com/google/uuid"
)

var (
	// ErrDuplicateParticipant is returned when (event, member) already has a row.
	ErrDuplicateParticipant = stderrors.New("participant already registered for event")
	// ErrUnknownEvent and ErrUnknownMember report a reference removed before the insert landed.
	ErrUnknownEvent  = stderrors.New("participant event does not exist")
	ErrUnknownMember = stderrors.New("participant member does not exist")
)

const fkParticipantMember = "fk_event_participants_member"

type ParticipantRepository struct {
	DB database.IDatabase
}

func NewParticipantRepository(db database.IDatabase) *ParticipantRepository {
	return &ParticipantRepository{DB: db}
}

type ParticipantRepositoryInterface interface {
	CreateParticipant(ctx context.Context, participant *entity.Participant) (*entity.Participant, error)
	GetParticipantByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error)
	GetParticipantByEventAndMember(ctx context.Context, eventID, memberID uuid.UUID) (*entity.Participant, error)
	GetParticipants(ctx context.Context, params params.QueryParams) (*entity.PaginatedParticipantEntity, error)
	UpdateParticipantRole(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.Participant, error)
	DeleteParticipant(ctx context.Context, id uuid.UUID) error
	CountOrganizers(ctx context.Context, eventID uuid.UUID) (int, error)
}

const participantColumns = `p.id, p.event_id, p.member_id, p.role, p.register_time`

func (r *ParticipantRepository) CreateParticipant(ctx context.Context, participant *entity.Participant) (*entity.Participant, error) {
	query := `
		INSERT INTO event_participants (event_id, member_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, event_id, member_id, role, register_time
	`

	var created entity.Participant
	err := r.DB.GetContext(ctx, &created, query, participant.EventID, participant.MemberID, participant.Role)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateParticipant
		}
		if database.IsForeignKeyViolation(err) {
			if database.ViolatedConstraint(err) == fkParticipantMember {
				return nil, ErrUnknownMember
			}
			return nil, ErrUnknownEvent
		}
		logger.Error("ParticipantRepository:CreateParticipant", "error", err)
		return nil, err
	}
	return &created, nil
}

func (r *ParticipantRepository) GetParticipantByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM event_participants p WHERE p.id = $1`

	var participant entity.Participant
	err := r.DB.GetContext(ctx, &participant, query, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("ParticipantRepository:GetParticipantByID", "error", err)
		return nil, err
	}
	return &participant, nil
}

func (r *ParticipantRepository) GetParticipantByEventAndMember(ctx context.Context, eventID, memberID uuid.UUID) (*entity.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM event_participants p WHERE p.event_id = $1 AND p.member_id = $2`

	var participant entity.Participant
	err := r.DB.GetContext(ctx, &participant, query, eventID, memberID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("ParticipantRepository:GetParticipantByEventAndMember", "error", err)
		return nil, err
	}
	return &participant, nil
}

// GetParticipants filters by event, member (exact) and role (case-insensitive), and searches
// event title, member email and role.
func (r *ParticipantRepository) GetParticipants(ctx context.Context, params params.QueryParams) (*entity.PaginatedParticipantEntity, error) {
	baseQuery := `
		FROM event_participants p
		JOIN events e ON e.id = p.event_id
		JOIN users u ON u.id = p.member_id`

	var conditions []string
	var args []any
	argIndex := 1

	if v, ok := params.Filter("event"); ok {
		conditions = append(conditions, fmt.Sprintf("p.event_id = $%d", argIndex))
		args = append(args, v)
		argIndex++
	}
	if v, ok := params.Filter("member"); ok {
		conditions = append(conditions, fmt.Sprintf("p.member_id = $%d", argIndex))
		args = append(args, v)
		argIndex++
	}
	if v, ok := params.Filter("role"); ok {
		conditions = append(conditions, fmt.Sprintf("LOWER(p.role) = LOWER($%d)", argIndex))
		args = append(args, v)
		argIndex++
	}
	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(e.title ILIKE $%d OR u.email ILIKE $%d OR p.role ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery+whereClause, args...); err != nil {
		logger.Error("ParticipantRepository:GetParticipants:Count", "error", err)
		return nil, err
	}

	dataQuery := `SELECT ` + participantColumns + baseQuery + whereClause +
		fmt.Sprintf(" ORDER BY p.register_time DESC, p.id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, params.PageSize, params.Offset())

	participants := []entity.Participant{}
	if err := r.DB.SelectContext(ctx, &participants, dataQuery, args...); err != nil {
		logger.Error("ParticipantRepository:GetParticipants:Select", "error", err)
		return nil, err
	}

	return &entity.PaginatedParticipantEntity{
		Items:      participants,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *ParticipantRepository) UpdateParticipantRole(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.Participant, error) {
	query := `
		UPDATE event_participants SET role = $2
		WHERE id = $1
		RETURNING id, event_id, member_id, role, register_time
	`

	var updated entity.Participant
	err := r.DB.GetContext(ctx, &updated, query, id, role)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("ParticipantRepository:UpdateParticipantRole", "error", err)
		return nil, err
	}
	return &updated, nil
}

func (r *ParticipantRepository) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	err := r.DB.ExecContext(ctx, `DELETE FROM event_participants WHERE id = $1`, id)
	if err != nil {
		logger.Error("ParticipantRepository:DeleteParticipant", "error", err)
		return err
	}
	return nil
}

func (r *ParticipantRepository) CountOrganizers(ctx context.Context, eventID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM event_participants WHERE event_id = $1 AND role = $2`
	if err := r.DB.GetContext(ctx, &count, query, eventID, entity.RoleOrganizer); err != nil {
		logger.Error("ParticipantRepository:CountOrganizers", "error", err)
		return 0, err
	}
	return count, nil
}
