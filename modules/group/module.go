package group

import (
	"tutortrack/core/database"
	"tutortrack/core/middleware"
	"tutortrack/modules/group/controller"
	"tutortrack/modules/group/repository"
	"tutortrack/modules/group/router"
	"tutortrack/modules/group/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the group module and registers routes
func Init(e *echo.Group, db database.Database, mw *middleware.Middleware) *service.GroupService {
	repo := repository.NewGroupRepository(db)
	svc := service.NewGroupService(repo)
	ctrl := controller.NewGroupController(svc)

	router.NewGroupRouter(ctrl).Register(e, mw)

	return svc
}
