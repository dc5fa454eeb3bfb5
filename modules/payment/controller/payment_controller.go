package controller

import (
	"strconv"

	"tutortrack/core/constants"
	"tutortrack/core/controller"
	"tutortrack/core/errors"
	"tutortrack/core/params"
	"tutortrack/core/utils"
	"tutortrack/modules/payment/dto"
	"tutortrack/modules/payment/service"
	"tutortrack/modules/payment/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type PaymentController struct {
	controller.BaseController
	PaymentService *service.PaymentService
}

func NewPaymentController(svc *service.PaymentService) *PaymentController {
	return &PaymentController{
		BaseController: controller.NewBaseController(),
		PaymentService: svc,
	}
}

func (c *PaymentController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// CreatePayment handles POST /payments
// @Summary Record payment
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.PaymentRequest true "Payment details"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} errors.AppError
// @Router /private/payments [post]
func (c *PaymentController) CreatePayment(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestData := new(dto.PaymentRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidatePaymentRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	payment, appErr := c.PaymentService.Create(ctx.Request().Context(), userID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, payment, "create payment success")
}

// GetPayments handles GET /payments with pupil/month/year filters
// @Summary List payments
// @Tags Payment
// @Security BearerAuth
// @Produce json
// @Param pupil_id query string false "Filter by pupil"
// @Param month query int false "Filter by month (1-12)"
// @Param year query int false "Filter by year"
// @Success 200 {object} dto.PaginatedPaymentResponse
// @Router /private/payments [get]
func (c *PaymentController) GetPayments(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	filter, appErr := c.parseFilter(ctx)
	if appErr != nil {
		return c.BadRequest(appErr.Code, appErr.Message, nil)
	}

	queryParams := params.NewQueryParams(ctx)

	payments, svcErr := c.PaymentService.GetPayments(ctx.Request().Context(), userID, *filter, *queryParams)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}

	return c.SuccessResponse(ctx, payments, "get payments success")
}

// GetPayment handles GET /payments/:id
func (c *PaymentController) GetPayment(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	paymentID := utils.ToUUID(ctx.Param("id"))
	if paymentID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid payment ID", nil)
	}

	payment, appErr := c.PaymentService.GetByID(ctx.Request().Context(), userID, paymentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, payment, "get payment success")
}

// UpdatePayment handles PUT /payments/:id
func (c *PaymentController) UpdatePayment(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	paymentID := utils.ToUUID(ctx.Param("id"))
	if paymentID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid payment ID", nil)
	}

	requestData := new(dto.PaymentRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidatePaymentRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	payment, appErr := c.PaymentService.Update(ctx.Request().Context(), userID, paymentID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, payment, "update payment success")
}

// DeletePayment handles DELETE /payments/:id
func (c *PaymentController) DeletePayment(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	paymentID := utils.ToUUID(ctx.Param("id"))
	if paymentID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid payment ID", nil)
	}

	if appErr := c.PaymentService.Delete(ctx.Request().Context(), userID, paymentID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "delete payment success")
}

func (c *PaymentController) parseFilter(ctx echo.Context) (*dto.PaymentFilter, *errors.AppError) {
	filter := &dto.PaymentFilter{}

	if raw := ctx.QueryParam("pupil_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid pupil_id filter", err)
		}
		filter.PupilID = &id
	}
	if raw := ctx.QueryParam("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "month must be between 1 and 12", err)
		}
		filter.Month = &month
	}
	if raw := ctx.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1900 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "year must be 1900 or later", err)
		}
		filter.Year = &year
	}

	return filter, nil
}
