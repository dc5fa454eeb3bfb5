package controller

import (
	"tutortrack/core/constants"
	"tutortrack/core/controller"
	"tutortrack/core/errors"
	"tutortrack/core/params"
	"tutortrack/core/utils"
	"tutortrack/modules/group/dto"
	"tutortrack/modules/group/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type GroupController struct {
	controller.BaseController
	GroupService *service.GroupService
}

func NewGroupController(svc *service.GroupService) *GroupController {
	return &GroupController{
		BaseController: controller.NewBaseController(),
		GroupService:   svc,
	}
}

func (c *GroupController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// CreateGroup handles POST /groups
// @Summary Create group
// @Tags Group
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.GroupRequest true "Group details"
// @Success 200 {object} dto.GroupResponse
// @Failure 400 {object} errors.AppError
// @Router /private/groups [post]
func (c *GroupController) CreateGroup(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestData := new(dto.GroupRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	group, appErr := c.GroupService.Create(ctx.Request().Context(), userID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, group, "create group success")
}

// GetGroups handles GET /groups
func (c *GroupController) GetGroups(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	queryParams := params.NewQueryParams(ctx)

	groups, appErr := c.GroupService.GetGroups(ctx.Request().Context(), userID, *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, groups, "get groups success")
}

// GetGroup handles GET /groups/:id
func (c *GroupController) GetGroup(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	groupID := utils.ToUUID(ctx.Param("id"))
	if groupID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID", nil)
	}

	group, appErr := c.GroupService.GetByID(ctx.Request().Context(), userID, groupID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, group, "get group success")
}

// UpdateGroup handles PUT /groups/:id
func (c *GroupController) UpdateGroup(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	groupID := utils.ToUUID(ctx.Param("id"))
	if groupID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID", nil)
	}

	requestData := new(dto.GroupRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	group, appErr := c.GroupService.Update(ctx.Request().Context(), userID, groupID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, group, "update group success")
}

// DeleteGroup handles DELETE /groups/:id
func (c *GroupController) DeleteGroup(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	groupID := utils.ToUUID(ctx.Param("id"))
	if groupID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID", nil)
	}

	if appErr := c.GroupService.Delete(ctx.Request().Context(), userID, groupID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "delete group success")
}

// GetGroupPupils handles GET /groups/:id/pupils
func (c *GroupController) GetGroupPupils(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	groupID := utils.ToUUID(ctx.Param("id"))
	if groupID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID", nil)
	}

	members, appErr := c.GroupService.GetPupils(ctx.Request().Context(), userID, groupID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, members, "get group pupils success")
}

// AddGroupPupils handles POST /groups/:id/pupils
func (c *GroupController) AddGroupPupils(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	groupID := utils.ToUUID(ctx.Param("id"))
	if groupID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID", nil)
	}

	requestData := new(dto.AddPupilsToGroupRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	if appErr := c.GroupService.AddPupils(ctx.Request().Context(), userID, groupID, requestData); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "add pupils to group success")
}

// RemoveGroupPupils handles DELETE /groups/:id/pupils
func (c *GroupController) RemoveGroupPupils(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	groupID := utils.ToUUID(ctx.Param("id"))
	if groupID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID", nil)
	}

	requestData := new(dto.AddPupilsToGroupRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	if appErr := c.GroupService.RemovePupils(ctx.Request().Context(), userID, groupID, requestData.PupilIDs); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "remove pupils from group success")
}
