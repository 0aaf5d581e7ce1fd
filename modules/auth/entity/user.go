package entity

import (
	"event-api/core/entity"
)

type User struct {
	entity.BaseEntity
	Email     string `db:"email"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Password  string `db:"password"`
	IsActive  bool   `db:"is_active"`
	IsStaff   bool   `db:"is_staff"`
}

// FullName is the display name used in notifications.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

type PaginatedUserEntity = entity.Pagination[User]
