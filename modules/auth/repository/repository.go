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
	"event-api/modules/auth/entity"

	"github.com/google/uuid"
)

// ErrEmailTaken is returned when the users.email unique constraint rejects a write.
var ErrEmailTaken = stderrors.New("email already in use")

// AuthRepository persists user accounts.
type AuthRepository struct {
	DB database.IDatabase
}

func NewAuthRepository(db database.IDatabase) *AuthRepository {
	return &AuthRepository{DB: db}
}

type AuthRepositoryInterface interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) error
	GetUsers(ctx context.Context, params params.QueryParams) (*entity.PaginatedUserEntity, error)
}

const userColumns = `id, email, first_name, last_name, password, is_active, is_staff, created_at, updated_at`

func (r *AuthRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.DB.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByID", "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.DB.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByEmail", "error", err)
		return nil, err
	}
	return &user, nil
}

// EmailExists reports whether another user already owns email. Pass uuid.Nil to check all users.
func (r *AuthRepository) EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
	if err := r.DB.GetContext(ctx, &exists, query, email, excludeID); err != nil {
		logger.Error("AuthRepository:EmailExists", "error", err)
		return false, err
	}
	return exists, nil
}

func (r *AuthRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (email, first_name, last_name, password, is_active, is_staff)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	var created entity.User
	err := r.DB.GetContext(ctx, &created, query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Password,
		user.IsActive,
		user.IsStaff,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		logger.Error("AuthRepository:CreateUser", "error", err)
		return nil, err
	}
	return &created, nil
}

// UpdateUser writes the profile fields and password. Returns (nil, nil) when the user is gone.
func (r *AuthRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, password = $5, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	var updated entity.User
	err := r.DB.GetContext(ctx, &updated, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Password,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		logger.Error("AuthRepository:UpdateUser", "error", err)
		return nil, err
	}
	return &updated, nil
}

func (r *AuthRepository) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET is_active = false, updated_at = now() WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id); err != nil {
		logger.Error("AuthRepository:DeactivateUser", "error", err)
		return err
	}
	return nil
}

// GetUsers filters by email, first_name and last_name (exact) and searches the same three columns.
func (r *AuthRepository) GetUsers(ctx context.Context, params params.QueryParams) (*entity.PaginatedUserEntity, error) {
	baseQuery := ` FROM users`

	var conditions []string
	var args []any
	argIndex := 1

	for _, key := range []string{"email", "first_name", "last_name"} {
		if v, ok := params.Filter(key); ok {
			conditions = append(conditions, fmt.Sprintf("%s = $%d", key, argIndex))
			args = append(args, v)
			argIndex++
		}
	}
	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(email ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*)"+baseQuery+whereClause, args...); err != nil {
		logger.Error("AuthRepository:GetUsers:Count", "error", err)
		return nil, err
	}

	dataQuery := `SELECT ` + userColumns + baseQuery + whereClause +
		fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, params.PageSize, params.Offset())

	users := []entity.User{}
	if err := r.DB.SelectContext(ctx, &users, dataQuery, args...); err != nil {
		logger.Error("AuthRepository:GetUsers:Select", "error", err)
		return nil, err
	}

	return &entity.PaginatedUserEntity{
		Items:      users,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}
