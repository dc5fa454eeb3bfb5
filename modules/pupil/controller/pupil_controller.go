package controller

import (
	"tutortrack/core/constants"
	"tutortrack/core/controller"
	"tutortrack/core/errors"
	"tutortrack/core/params"
	"tutortrack/core/utils"
	"tutortrack/modules/pupil/dto"
	"tutortrack/modules/pupil/service"
	"tutortrack/modules/pupil/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type PupilController struct {
	controller.BaseController
	PupilService *service.PupilService
}

func NewPupilController(svc *service.PupilService) *PupilController {
	return &PupilController{
		BaseController: controller.NewBaseController(),
		PupilService:   svc,
	}
}

func (c *PupilController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// CreatePupil handles POST /pupils
// @Summary Create pupil
// @Tags Pupil
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.PupilRequest true "Pupil details"
// @Success 200 {object} dto.PupilResponse
// @Failure 400 {object} errors.AppError
// @Router /private/pupils [post]
func (c *PupilController) CreatePupil(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestData := new(dto.PupilRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidatePupilRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	pupil, appErr := c.PupilService.Create(ctx.Request().Context(), userID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, pupil, "create pupil success")
}

// GetPupils handles GET /pupils with pagination and name search
// @Summary List pupils
// @Tags Pupil
// @Security BearerAuth
// @Produce json
// @Param page_number query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Name search"
// @Success 200 {object} dto.PaginatedPupilResponse
// @Router /private/pupils [get]
func (c *PupilController) GetPupils(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	queryParams := params.NewQueryParams(ctx)

	pupils, appErr := c.PupilService.GetPupils(ctx.Request().Context(), userID, *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, pupils, "get pupils success")
}

// GetPupil handles GET /pupils/:id
func (c *PupilController) GetPupil(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	pupilID := utils.ToUUID(ctx.Param("id"))
	if pupilID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid pupil ID", nil)
	}

	pupil, appErr := c.PupilService.GetByID(ctx.Request().Context(), userID, pupilID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, pupil, "get pupil success")
}

// UpdatePupil handles PUT /pupils/:id
func (c *PupilController) UpdatePupil(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	pupilID := utils.ToUUID(ctx.Param("id"))
	if pupilID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid pupil ID", nil)
	}

	requestData := new(dto.PupilRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidatePupilRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	pupil, appErr := c.PupilService.Update(ctx.Request().Context(), userID, pupilID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, pupil, "update pupil success")
}

// DeletePupil handles DELETE /pupils/:id
func (c *PupilController) DeletePupil(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	pupilID := utils.ToUUID(ctx.Param("id"))
	if pupilID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid pupil ID", nil)
	}

	if appErr := c.PupilService.Delete(ctx.Request().Context(), userID, pupilID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "delete pupil success")
}
