package controller

import (
	"time"

	"tutortrack/core/constants"
	"tutortrack/core/controller"
	"tutortrack/core/errors"
	"tutortrack/core/utils"
	"tutortrack/modules/event/dto"
	"tutortrack/modules/event/entity"
	"tutortrack/modules/event/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// EventController handles event HTTP requests
type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
}

// NewEventController creates a new controller
func NewEventController(svc service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   svc,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *EventController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// CreateEvent handles POST /events
// @Summary Create event
// @Description Create a single or recurring event with optional repeat days
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event details"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} errors.AppError
// @Router /private/events [post]
func (c *EventController) CreateEvent(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.EventService.CreateEvent(ctx.Request().Context(), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event created successfully")
}

// GetEvents handles GET /events
// @Summary List calendar occurrences
// @Description Expand events into concrete occurrences within a date window; defaults to the current month
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param start_date query string false "Window start (YYYY-MM-DD)"
// @Param end_date query string false "Window end (YYYY-MM-DD)"
// @Param event_type query string false "once or repeat"
// @Param include_repeats query bool false "Expand recurring events (default true)"
// @Success 200 {array} dto.OccurrenceResponse
// @Router /private/events [get]
func (c *EventController) GetEvents(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	windowStart, windowEnd, appErr := parseWindow(ctx)
	if appErr != nil {
		return c.BadRequest(appErr.Code, appErr.Message)
	}

	q := service.OccurrenceQuery{
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		OwnerID:     &ownerID,
	}
	if raw := ctx.QueryParam("event_type"); raw != "" {
		eventType := entity.EventType(raw)
		if eventType != entity.EventTypeOnce && eventType != entity.EventTypeRepeat {
			return c.BadRequest(errors.ErrInvalidInput, "Event type must be once or repeat")
		}
		q.EventType = &eventType
	}

	if ctx.QueryParam("include_repeats") == "false" {
		result, svcErr := c.EventService.GetEventsInWindow(ctx.Request().Context(), q)
		if svcErr != nil {
			return c.ErrorResponse(ctx, svcErr)
		}
		return c.SuccessResponse(ctx, result, "Success")
	}

	result, svcErr := c.EventService.GetOccurrences(ctx.Request().Context(), q)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetEvent handles GET /events/:id
// @Summary Get event
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} errors.AppError
// @Router /private/events/{id} [get]
func (c *EventController) GetEvent(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	result, appErr := c.EventService.GetEventByID(ctx.Request().Context(), eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateEvent handles PUT /events/:id
// @Summary Update event
// @Description Update an event; scope=future freezes the series and edits only occurrences from today onward
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param scope query string false "all (default) or future"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} errors.AppError
// @Router /private/events/{id} [put]
func (c *EventController) UpdateEvent(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	scope, ok := dto.ParseScope(ctx.QueryParam("scope"))
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Scope must be all or future")
	}

	var req dto.UpdateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.EventService.UpdateEvent(ctx.Request().Context(), eventID, ownerID, &req, scope, time.Now().UTC())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event updated successfully")
}

// DeleteEvent handles DELETE /events/:id
// @Summary Delete event
// @Description Delete an event; scope=future truncates the series so past occurrences stay queryable
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Param scope query string false "all (default) or future"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} errors.AppError
// @Router /private/events/{id} [delete]
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	scope, ok := dto.ParseScope(ctx.QueryParam("scope"))
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Scope must be all or future")
	}

	if appErr := c.EventService.DeleteEvent(ctx.Request().Context(), eventID, ownerID, scope, time.Now().UTC()); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	message := "Event deleted successfully"
	if scope == dto.ScopeFuture {
		message = "Future occurrences of event deleted"
	}
	return c.SuccessResponse(ctx, nil, message)
}

// GetRepeatDays handles GET /events/:id/repeat-days
func (c *EventController) GetRepeatDays(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	result, appErr := c.EventService.GetRepeatDays(ctx.Request().Context(), eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// AddRepeatDays handles POST /events/:id/repeat-days
func (c *EventController) AddRepeatDays(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	var req dto.ReplaceRepeatDaysRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.EventService.AddRepeatDays(ctx.Request().Context(), eventID, req.Days)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Repeat days added successfully")
}

// ReplaceRepeatDays handles PUT /events/:id/repeat-days
func (c *EventController) ReplaceRepeatDays(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	var req dto.ReplaceRepeatDaysRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.EventService.ReplaceRepeatDays(ctx.Request().Context(), eventID, req.Days)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Repeat days replaced successfully")
}

// DeleteRepeatDays handles DELETE /events/:id/repeat-days
func (c *EventController) DeleteRepeatDays(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	var req struct {
		IDs []uuid.UUID `json:"ids"`
	}
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	if appErr := c.EventService.DeleteRepeatDays(ctx.Request().Context(), eventID, req.IDs); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Repeat days deleted successfully")
}

// GetEventPupils handles GET /events/:id/pupils
func (c *EventController) GetEventPupils(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	result, appErr := c.EventService.GetEventPupils(ctx.Request().Context(), eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// AddEventPupils handles POST /events/:id/pupils
func (c *EventController) AddEventPupils(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	var req dto.EventPupilsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.EventService.AddEventPupils(ctx.Request().Context(), eventID, req.PupilIDs)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Pupils added to event successfully")
}

// RemoveEventPupils handles DELETE /events/:id/pupils
func (c *EventController) RemoveEventPupils(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	var req dto.EventPupilsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	if appErr := c.EventService.RemoveEventPupils(ctx.Request().Context(), eventID, req.PupilIDs); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Pupils removed from event successfully")
}

// parseWindow reads the query window, defaulting to the current month
func parseWindow(ctx echo.Context) (time.Time, time.Time, *errors.AppError) {
	defaultStart, _ := service.DefaultWindow(time.Now().UTC())

	windowStart := defaultStart
	if raw := ctx.QueryParam("start_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "start_date must be YYYY-MM-DD", err)
		}
		windowStart = parsed
	}

	// The default window end follows the (possibly overridden) start month
	_, windowEnd := service.DefaultWindow(windowStart)
	if raw := ctx.QueryParam("end_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "end_date must be YYYY-MM-DD", err)
		}
		windowEnd = parsed
	}

	if windowEnd.Before(windowStart) {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "end_date must not be before start_date", nil)
	}

	return windowStart, windowEnd, nil
}
