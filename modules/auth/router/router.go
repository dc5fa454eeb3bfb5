package router

import (
	"tutortrack/core/middleware"
	"tutortrack/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{controller: controller}
}

// Register wires the public auth endpoints and the token-protected profile
// endpoints
func (r *AuthRouter) Register(public *echo.Group, private *echo.Group, mw *middleware.Middleware) {
	auth := public.Group("/auth")
	auth.GET("/google/login", r.controller.GoogleLogin)
	auth.GET("/google/callback", r.controller.GoogleCallback)
	auth.POST("/refresh", r.controller.RefreshToken)
	auth.POST("/logout", r.controller.Logout)

	users := private.Group("/users", mw.AuthMiddleware())
	users.GET("/me", r.controller.GetProfile)
	users.PUT("/me", r.controller.UpdateProfile)
	users.POST("/me/avatar", r.controller.UploadAvatar)
}
