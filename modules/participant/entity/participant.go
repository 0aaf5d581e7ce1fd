package entity

import (
	"time"

	coreEntity "event-api/core/entity"

	"github.com/google/uuid"
)

// Role is the closed set of roles a user can hold on an event.
type Role string

const (
	RoleMember    Role = "member"
	RoleOrganizer Role = "organizer"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleMember, RoleOrganizer:
		return Role(s), true
	default:
		return "", false
	}
}

func (r Role) String() string {
	return string(r)
}

// Participant links a user (member) to an event with a role.
type Participant struct {
	ID           uuid.UUID `db:"id"`
	EventID      uuid.UUID `db:"event_id"`
	MemberID     uuid.UUID `db:"member_id"`
	Role         Role      `db:"role"`
	RegisterTime time.Time `db:"register_time"`
}

func (p *Participant) IsOrganizer() bool {
	return p.Role == RoleOrganizer
}

type PaginatedParticipantEntity = coreEntity.Pagination[Participant]
