package event

import (
	"event-api/core/middleware"
	"event-api/modules/event/controller"
	"event-api/modules/event/repository"
	"event-api/modules/event/router"
	"event-api/modules/event/service"
	permissionService "event-api/modules/permission/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, mw *middleware.Middleware, repo repository.EventRepositoryInterface, permissions permissionService.PermissionServiceInterface) {
	svc := service.NewEventService(repo, permissions)
	ctrl := controller.NewEventController(svc)
	router.NewEventRouter(ctrl).Register(g, mw)
}
