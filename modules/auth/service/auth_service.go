package service

import (
	"context"
	"strings"

	"event-api/core/cache"
	"event-api/core/constants"
	"event-api/core/errors"
	"event-api/core/logger"
	"event-api/core/middleware"
	"event-api/core/params"
	"event-api/core/utils"
	"event-api/modules/auth/dto"
	"event-api/modules/auth/entity"
	"event-api/modules/auth/mapper"
	"event-api/modules/auth/repository"
	permissionService "event-api/modules/permission/service"

	"github.com/google/uuid"
)

const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgEmailTaken         = "user with this email already exists."
	MsgUserNotFound       = "User not found."
	MsgTooManyAttempts    = "Too many failed login attempts, try again later."
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, *errors.AppError)
	CreateStaff(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.LoginResponse, *errors.AppError)
	Logout(ctx context.Context, accessToken string, claims *utils.TokenClaims, refreshToken string) *errors.AppError
	ResolvePrincipal(ctx context.Context, userID uuid.UUID) (*middleware.Principal, *errors.AppError)

	GetUser(ctx context.Context, actor *middleware.Principal, id uuid.UUID) (*dto.UserResponse, *errors.AppError)
	UpdateUser(ctx context.Context, actor *middleware.Principal, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, *errors.AppError)
	DeleteUser(ctx context.Context, actor *middleware.Principal, id uuid.UUID) *errors.AppError
	ListUsers(ctx context.Context, actor *middleware.Principal, params params.QueryParams) (*dto.PaginatedUserResponse, *errors.AppError)
}

type AuthService struct {
	repo        repository.AuthRepositoryInterface
	cache       cache.Cache
	permissions permissionService.PermissionServiceInterface
}

func NewAuthService(repo repository.AuthRepositoryInterface, cache cache.Cache, permissions permissionService.PermissionServiceInterface) *AuthService {
	return &AuthService{
		repo:        repo,
		cache:       cache,
		permissions: permissions,
	}
}

func (service *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, *errors.AppError) {
	return service.createUser(ctx, req, false)
}

// CreateStaff is the command line path for accounts that may list users.
func (service *AuthService) CreateStaff(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, *errors.AppError) {
	return service.createUser(ctx, req, true)
}

func (service *AuthService) createUser(ctx context.Context, req *dto.RegisterRequest, isStaff bool) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user := mapper.ToUserEntity(req)
	user.IsStaff = isStaff

	exists, err := service.repo.EmailExists(ctx, user.Email, uuid.Nil)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to register user", err)
	}
	if exists {
		return nil, emailTakenError()
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("AuthService:Register:HashPassword", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}
	user.Password = hashedPassword

	created, err := service.repo.CreateUser(ctx, user)
	if err != nil {
		if err == repository.ErrEmailTaken {
			return nil, emailTakenError()
		}
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to register user", err)
	}

	logger.Info("AuthService:Register:Created", "user_id", created.ID, "is_staff", created.IsStaff)
	return mapper.ToUserResponse(created), nil
}

// Login answers every failed check with the same message so callers cannot tell
// an unknown email from a wrong password or a deactivated account.
func (service *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	email := utils.NormalizeEmail(req.Email)
	attemptKey := constants.RedisKeyLoginAttempt + strings.ToLower(email)

	blocked, err := service.cache.IsLoginBlocked(ctx, attemptKey)
	if err != nil {
		logger.Error("AuthService:Login:IsLoginBlocked", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check login attempts", err)
	}
	if blocked {
		return nil, errors.NewAppError(errors.ErrTooManyRequests, MsgTooManyAttempts, nil)
	}

	user, err := service.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil || !user.IsActive || !utils.ComparePassword(user.Password, req.Password) {
		if errIncr := service.cache.IncrementLoginAttempt(ctx, attemptKey); errIncr != nil {
			logger.Warn("AuthService:Login:IncrementLoginAttempt", "error", errIncr)
		}
		return nil, errors.NewAppError(errors.ErrInvalidCredentials, MsgInvalidCredentials, nil)
	}

	if errDel := service.cache.Del(ctx, attemptKey); errDel != nil {
		logger.Warn("AuthService:Login:ResetLoginAttempts", "error", errDel)
	}

	return service.issueTokenPair(user)
}

// RefreshToken trades a refresh token for a new pair. The presented token is revoked.
func (service *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.LoginResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	blacklisted, err := service.cache.IsTokenBlacklisted(ctx, refreshToken)
	if err != nil {
		logger.Error("AuthService:RefreshToken:IsTokenBlacklisted", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check token blacklist", err)
	}
	if blacklisted {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Token is blacklisted", nil)
	}

	claims, err := utils.ValidateAndParseToken(refreshToken)
	if err != nil {
		if err == utils.ErrTokenExpired {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "Token is expired", nil)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Token is invalid", nil)
	}
	if claims.Scope != constants.ScopeTokenRefresh {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Token has wrong type", nil)
	}

	user, err := service.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil || !user.IsActive {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not found or inactive", nil)
	}

	if err := service.cache.AddToTokenBlacklist(ctx, refreshToken, claims.RemainingTTL()); err != nil {
		logger.Error("AuthService:RefreshToken:AddToTokenBlacklist", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}

	return service.issueTokenPair(user)
}

func (service *AuthService) Logout(ctx context.Context, accessToken string, claims *utils.TokenClaims, refreshToken string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if err := service.cache.AddToTokenBlacklist(ctx, accessToken, claims.RemainingTTL()); err != nil {
		logger.Error("AuthService:Logout:AddToTokenBlacklist", "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}

	if refreshToken == "" {
		return nil
	}
	refreshClaims, err := utils.ValidateAndParseToken(refreshToken)
	if err != nil || refreshClaims.Scope != constants.ScopeTokenRefresh || refreshClaims.UserID != claims.UserID {
		// an unusable refresh token needs no revocation
		return nil
	}
	if err := service.cache.AddToTokenBlacklist(ctx, refreshToken, refreshClaims.RemainingTTL()); err != nil {
		logger.Error("AuthService:Logout:AddToTokenBlacklist:Refresh", "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}
	return nil
}

// ResolvePrincipal backs the auth middleware. Missing and deactivated users are both unauthorized.
func (service *AuthService) ResolvePrincipal(ctx context.Context, userID uuid.UUID) (*middleware.Principal, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user, err := service.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil || !user.IsActive {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not found or inactive", nil)
	}
	return toPrincipal(user), nil
}

func (service *AuthService) issueTokenPair(user *entity.User) (*dto.LoginResponse, *errors.AppError) {
	access, err := utils.GenerateToken(user.ID, user.Email, constants.ScopeTokenAccess)
	if err != nil {
		logger.Error("AuthService:GenerateToken:Access", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate token", err)
	}
	refresh, err := utils.GenerateToken(user.ID, user.Email, constants.ScopeTokenRefresh)
	if err != nil {
		logger.Error("AuthService:GenerateToken:Refresh", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate token", err)
	}
	return &dto.LoginResponse{Access: access, Refresh: refresh}, nil
}

func toPrincipal(user *entity.User) *middleware.Principal {
	return &middleware.Principal{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsStaff:   user.IsStaff,
	}
}

func emailTakenError() *errors.AppError {
	return errors.NewValidationError("Invalid request data", map[string][]string{
		"email": {MsgEmailTaken},
	})
}
