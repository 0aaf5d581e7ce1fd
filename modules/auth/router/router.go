package router

import (
	"event-api/core/middleware"
	"event-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		controller: controller,
	}
}

func (r *AuthRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	g.POST("/register/", r.controller.Register)
	g.POST("/login/", r.controller.Login)
	g.POST("/login/refresh/", r.controller.RefreshToken)

	auth := mw.AuthMiddleware()
	g.POST("/logout/", r.controller.Logout, auth)
	g.GET("/list_users/", r.controller.ListUsers, auth)
	g.GET("/user/:id/", r.controller.GetUser, auth)
	g.PUT("/user/:id/", r.controller.UpdateUser, auth)
	g.DELETE("/user/:id/", r.controller.DeleteUser, auth)
}
