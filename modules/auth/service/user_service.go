package service

import (
	"context"

	"event-api/core/constants"
	"event-api/core/errors"
	"event-api/core/logger"
	"event-api/core/middleware"
	"event-api/core/params"
	"event-api/core/utils"
	"event-api/modules/auth/dto"
	"event-api/modules/auth/mapper"
	"event-api/modules/auth/repository"

	"github.com/google/uuid"
)

func (service *AuthService) GetUser(ctx context.Context, actor *middleware.Principal, id uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	if appErr := service.permissions.CanAccessUser(actor, id); appErr != nil {
		return nil, appErr
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user, err := service.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, MsgUserNotFound, nil)
	}
	return mapper.ToUserResponse(user), nil
}

func (service *AuthService) UpdateUser(ctx context.Context, actor *middleware.Principal, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, *errors.AppError) {
	if appErr := service.permissions.CanAccessUser(actor, id); appErr != nil {
		return nil, appErr
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user, err := service.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, MsgUserNotFound, nil)
	}

	email := utils.NormalizeEmail(req.Email)
	if email != user.Email {
		exists, err := service.repo.EmailExists(ctx, email, user.ID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update user", err)
		}
		if exists {
			return nil, emailTakenError()
		}
	}

	user.Email = email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if req.Password != "" {
		hashedPassword, err := utils.HashPassword(req.Password)
		if err != nil {
			logger.Error("AuthService:UpdateUser:HashPassword", "error", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
		}
		user.Password = hashedPassword
	}

	updated, err := service.repo.UpdateUser(ctx, user)
	if err != nil {
		if err == repository.ErrEmailTaken {
			return nil, emailTakenError()
		}
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update user", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, MsgUserNotFound, nil)
	}
	return mapper.ToUserResponse(updated), nil
}

// DeleteUser deactivates the account. Rows are kept so participations stay intact.
func (service *AuthService) DeleteUser(ctx context.Context, actor *middleware.Principal, id uuid.UUID) *errors.AppError {
	if appErr := service.permissions.CanAccessUser(actor, id); appErr != nil {
		return appErr
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if err := service.repo.DeactivateUser(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete user", err)
	}
	logger.Info("AuthService:DeleteUser:Deactivated", "user_id", id)
	return nil
}

func (service *AuthService) ListUsers(ctx context.Context, actor *middleware.Principal, params params.QueryParams) (*dto.PaginatedUserResponse, *errors.AppError) {
	if appErr := service.permissions.RequireStaff(actor); appErr != nil {
		return nil, appErr
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := service.repo.GetUsers(ctx, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get users", err)
	}
	return mapper.ToUserPaginationResponse(page), nil
}
