package router

import (
	"tutortrack/core/middleware"
	"tutortrack/modules/pupil/controller"

	"github.com/labstack/echo/v4"
)

type PupilRouter struct {
	controller *controller.PupilController
}

func NewPupilRouter(controller *controller.PupilController) *PupilRouter {
	return &PupilRouter{controller: controller}
}

func (r *PupilRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	group := e.Group("/pupils", mw.AuthMiddleware())
	group.POST("", r.controller.CreatePupil)
	group.GET("", r.controller.GetPupils)
	group.GET("/:id", r.controller.GetPupil)
	group.PUT("/:id", r.controller.UpdatePupil)
	group.DELETE("/:id", r.controller.DeletePupil)
}
