package payment

import (
	"tutortrack/core/database"
	"tutortrack/core/middleware"
	"tutortrack/modules/payment/controller"
	"tutortrack/modules/payment/repository"
	"tutortrack/modules/payment/router"
	"tutortrack/modules/payment/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the payment module and registers routes
func Init(e *echo.Group, db database.Database, mw *middleware.Middleware) *service.PaymentService {
	repo := repository.NewPaymentRepository(db)
	svc := service.NewPaymentService(repo)
	ctrl := controller.NewPaymentController(svc)

	router.NewPaymentRouter(ctrl).Register(e, mw)

	return svc
}
