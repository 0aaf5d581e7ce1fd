package participant

import (
	"event-api/core/middleware"
	notificationService "event-api/modules/notification/service"
	"event-api/modules/participant/controller"
	"event-api/modules/participant/repository"
	"event-api/modules/participant/router"
	"event-api/modules/participant/service"
	permissionService "event-api/modules/permission/service"

	"github.com/labstack/echo/v4"
)

func Init(
	g *echo.Group,
	mw *middleware.Middleware,
	repo repository.ParticipantRepositoryInterface,
	events permissionService.EventReader,
	members service.MemberReader,
	permissions permissionService.PermissionServiceInterface,
	notifier notificationService.Notifier,
) {
	svc := service.NewParticipantService(repo, events, members, permissions, notifier)
	ctrl := controller.NewParticipantController(svc)
	router.NewParticipantRouter(ctrl).Register(g, mw)
}
