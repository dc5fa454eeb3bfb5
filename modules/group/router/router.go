package router

import (
	"tutortrack/core/middleware"
	"tutortrack/modules/group/controller"

	"github.com/labstack/echo/v4"
)

type GroupRouter struct {
	controller *controller.GroupController
}

func NewGroupRouter(controller *controller.GroupController) *GroupRouter {
	return &GroupRouter{controller: controller}
}

func (r *GroupRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	group := e.Group("/groups", mw.AuthMiddleware())
	group.POST("", r.controller.CreateGroup)
	group.GET("", r.controller.GetGroups)
	group.GET("/:id", r.controller.GetGroup)
	group.PUT("/:id", r.controller.UpdateGroup)
	group.DELETE("/:id", r.controller.DeleteGroup)

	group.GET("/:id/pupils", r.controller.GetGroupPupils)
	group.POST("/:id/pupils", r.controller.AddGroupPupils)
	group.DELETE("/:id/pupils", r.controller.RemoveGroupPupils)
}
