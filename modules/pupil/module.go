package pupil

import (
	"tutortrack/core/database"
	"tutortrack/core/middleware"
	"tutortrack/modules/pupil/controller"
	"tutortrack/modules/pupil/repository"
	"tutortrack/modules/pupil/router"
	"tutortrack/modules/pupil/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the pupil module and registers routes
func Init(e *echo.Group, db database.Database, mw *middleware.Middleware) *service.PupilService {
	repo := repository.NewPupilRepository(db)
	svc := service.NewPupilService(repo)
	ctrl := controller.NewPupilController(svc)

	router.NewPupilRouter(ctrl).Register(e, mw)

	return svc
}
