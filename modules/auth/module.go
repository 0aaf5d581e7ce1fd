package auth

import (
	"event-api/core/cache"
	"event-api/core/database"
	"event-api/core/middleware"
	"event-api/modules/auth/controller"
	"event-api/modules/auth/repository"
	"event-api/modules/auth/router"
	"event-api/modules/auth/service"
	permissionService "event-api/modules/permission/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, mw *middleware.Middleware, authService service.AuthServiceInterface) {
	ctrl := controller.NewAuthController(authService)
	router.NewAuthRouter(ctrl).Register(g, mw)
}

// GetService creates the AuthService. The server also hands it to the auth middleware as its PrincipalResolver.
func GetService(db database.IDatabase, cache cache.Cache, permissions permissionService.PermissionServiceInterface) service.AuthServiceInterface {
	repo := repository.NewAuthRepository(db)
	return service.NewAuthService(repo, cache, permissions)
}
