package router

import (
	"tutortrack/core/middleware"
	"tutortrack/modules/event/controller"

	"github.com/labstack/echo/v4"
)

// EventRouter handles event routes
type EventRouter struct {
	EventController *controller.EventController
}

// NewEventRouter creates a new router
func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{
		EventController: eventController,
	}
}

// Register registers event routes on the private group
func (r *EventRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	eventRoutes := e.Group("/events", mw.AuthMiddleware())

	// CRUD + occurrence expansion
	eventRoutes.POST("", r.EventController.CreateEvent)
	eventRoutes.GET("", r.EventController.GetEvents)
	eventRoutes.GET("/:id", r.EventController.GetEvent)
	eventRoutes.PUT("/:id", r.EventController.UpdateEvent)
	eventRoutes.DELETE("/:id", r.EventController.DeleteEvent)

	// Repeat days
	eventRoutes.GET("/:id/repeat-days", r.EventController.GetRepeatDays)
	eventRoutes.POST("/:id/repeat-days", r.EventController.AddRepeatDays)
	eventRoutes.PUT("/:id/repeat-days", r.EventController.ReplaceRepeatDays)
	eventRoutes.DELETE("/:id/repeat-days", r.EventController.DeleteRepeatDays)

	// Pupil assignments
	eventRoutes.GET("/:id/pupils", r.EventController.GetEventPupils)
	eventRoutes.POST("/:id/pupils", r.EventController.AddEventPupils)
	eventRoutes.DELETE("/:id/pupils", r.EventController.RemoveEventPupils)
}
