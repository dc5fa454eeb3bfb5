package notification

import (
	"tutortrack/core/database"
	"tutortrack/core/middleware"
	"tutortrack/modules/notification/controller"
	"tutortrack/modules/notification/repository"
	"tutortrack/modules/notification/router"
	"tutortrack/modules/notification/service"
	"tutortrack/modules/notification/worker"

	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and registers routes. The
// returned worker is registered on the asynq mux by the server.
func Init(e *echo.Group, db database.Database, mw *middleware.Middleware) *worker.Worker {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(e, mw)

	return worker.NewWorker(svc)
}
