package auth

import (
	"tutortrack/core/cache"
	"tutortrack/core/config"
	"tutortrack/core/database"
	"tutortrack/core/middleware"
	"tutortrack/core/storage"
	"tutortrack/modules/auth/controller"
	"tutortrack/modules/auth/repository"
	"tutortrack/modules/auth/router"
	"tutortrack/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// NewService builds the auth service. It is created before the other modules
// because the request middleware needs it as token validator.
func NewService(db database.Database, cfg *config.Config, c cache.Cache, st storage.ObjectStorage) *service.AuthService {
	repo := repository.NewAuthRepository(db)
	return service.NewAuthService(repo, cfg, c, st)
}

// Init registers the auth and profile routes
func Init(public *echo.Group, private *echo.Group, svc *service.AuthService, mw *middleware.Middleware) {
	ctrl := controller.NewAuthController(svc)
	router.NewAuthRouter(ctrl).Register(public, private, mw)
}
