package router

import (
	"tutortrack/core/middleware"
	"tutortrack/modules/payment/controller"

	"github.com/labstack/echo/v4"
)

type PaymentRouter struct {
	controller *controller.PaymentController
}

func NewPaymentRouter(controller *controller.PaymentController) *PaymentRouter {
	return &PaymentRouter{controller: controller}
}

func (r *PaymentRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	group := e.Group("/payments", mw.AuthMiddleware())
	group.POST("", r.controller.CreatePayment)
	group.GET("", r.controller.GetPayments)
	group.GET("/:id", r.controller.GetPayment)
	group.PUT("/:id", r.controller.UpdatePayment)
	group.DELETE("/:id", r.controller.DeletePayment)
}
