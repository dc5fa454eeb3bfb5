package event

import (
	"tutortrack/core/cache"
	"tutortrack/core/database"
	"tutortrack/core/middleware"
	"tutortrack/core/queue"
	"tutortrack/modules/event/controller"
	"tutortrack/modules/event/repository"
	"tutortrack/modules/event/router"
	"tutortrack/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the event module and registers routes
func Init(e *echo.Group, db database.Database, mw *middleware.Middleware, c cache.Cache, q queue.Queue) {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, c, q)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Register(e, mw)
}
