package router

import (
	"event-api/core/middleware"
	"event-api/modules/participant/controller"

	"github.com/labstack/echo/v4"
)

type ParticipantRouter struct {
	controller *controller.ParticipantController
}

func NewParticipantRouter(controller *controller.ParticipantController) *ParticipantRouter {
	return &ParticipantRouter{
		controller: controller,
	}
}

func (r *ParticipantRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	auth := mw.AuthMiddleware()

	g.GET("/participants/", r.controller.GetParticipants, auth)
	g.POST("/participants/", r.controller.CreateParticipant, auth)
	g.GET("/participants/:id/", r.controller.GetParticipant, auth)
	g.PUT("/participants/:id/", r.controller.UpdateParticipant, auth)
	g.DELETE("/participants/:id/", r.controller.DeleteParticipant, auth)
}
