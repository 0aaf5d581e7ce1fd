package router

import (
	"event-api/core/middleware"
	"event-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	controller *controller.EventController
}

func NewEventRouter(controller *controller.EventController) *EventRouter {
	return &EventRouter{
		controller: controller,
	}
}

func (r *EventRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	auth := mw.AuthMiddleware()

	g.GET("/events/", r.controller.GetEvents, auth)
	g.POST("/events/", r.controller.CreateEvent, auth)
	g.GET("/event/:id/", r.controller.GetEvent, auth)
	g.PUT("/event/:id/", r.controller.UpdateEvent, auth)
	g.DELETE("/event/:id/", r.controller.DeleteEvent, auth)
}
