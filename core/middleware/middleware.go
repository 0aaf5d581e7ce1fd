package middleware

import (
	"context"
	"strings"

	"event-api/core/cache"
	"event-api/core/constants"
	"event-api/core/controller"
	"event-api/core/errors"
	"event-api/core/logger"
	"event-api/core/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Principal is the authenticated caller as of the current request.
type Principal struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	IsStaff   bool
}

// PrincipalResolver loads the active user behind a token.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID uuid.UUID) (*Principal, *errors.AppError)
}

type Middleware struct {
	resolver PrincipalResolver
	cache    cache.Cache
}

func NewMiddleware(resolver PrincipalResolver, cache cache.Cache) *Middleware {
	return &Middleware{
		resolver: resolver,
		cache:    cache,
	}
}

// AuthMiddleware requires a valid, non-blacklisted access token of an active user.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	base := controller.NewBaseController()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return base.Unauthorized(errors.ErrMissingAuthorizationHeader, "Authentication credentials were not provided.")
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return base.Unauthorized(errors.ErrInvalidTokenFormat, "Authorization header must be Bearer {token}")
			}
			token = strings.TrimSpace(token)

			ctx := c.Request().Context()
			blacklisted, err := m.cache.IsTokenBlacklisted(ctx, token)
			if err != nil {
				logger.Error("Middleware:AuthMiddleware:IsTokenBlacklisted", "error", err)
				return base.InternalServerError(errors.ErrInternalServer, "failed to check token")
			}
			if blacklisted {
				return base.Unauthorized(errors.ErrUnauthorized, "Token is blacklisted")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				if err == utils.ErrTokenExpired {
					return base.Unauthorized(errors.ErrTokenExpired, "Token is expired")
				}
				return base.Unauthorized(errors.ErrUnauthorized, "Token is invalid")
			}
			if claims.Scope != constants.ScopeTokenAccess {
				return base.Unauthorized(errors.ErrUnauthorized, "Token has wrong type")
			}

			principal, appErr := m.resolver.ResolvePrincipal(ctx, claims.UserID)
			if appErr != nil {
				return base.ErrorResponse(c, appErr)
			}

			c.Set(constants.ContextTokenData, claims)
			c.Set(constants.ContextPrincipal, principal)
			c.Set(constants.ContextRawToken, token)
			return next(c)
		}
	}
}

// GetPrincipal returns the caller stored by AuthMiddleware.
func GetPrincipal(c echo.Context) (*Principal, error) {
	principal, ok := c.Get(constants.ContextPrincipal).(*Principal)
	if !ok || principal == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return principal, nil
}

func GetTokenClaims(c echo.Context) (*utils.TokenClaims, string, error) {
	claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return nil, "", errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}
	raw, _ := c.Get(constants.ContextRawToken).(string)
	return claims, raw, nil
}
