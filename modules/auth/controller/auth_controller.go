package controller

import (
	"tutortrack/core/constants"
	"tutortrack/core/controller"
	"tutortrack/core/errors"
	"tutortrack/core/utils"
	"tutortrack/modules/auth/dto"
	"tutortrack/modules/auth/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	AuthService *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
	}
}

func (c *AuthController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// GoogleLogin handles GET /auth/google/login
// @Summary Get Google sign-in URL
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.GoogleAuthURLResponse
// @Router /auth/google/login [get]
func (c *AuthController) GoogleLogin(ctx echo.Context) error {
	result, appErr := c.AuthService.GetGoogleAuthURL(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "get google auth url success")
}

// GoogleCallback handles GET /auth/google/callback
// @Summary Google OAuth callback
// @Tags Auth
// @Produce json
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 401 {object} errors.AppError
// @Router /auth/google/callback [get]
func (c *AuthController) GoogleCallback(ctx echo.Context) error {
	state := ctx.QueryParam("state")
	code := ctx.QueryParam("code")
	if state == "" || code == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Missing state or code", nil)
	}

	tokens, appErr := c.AuthService.HandleGoogleCallback(ctx.Request().Context(), state, code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, tokens, "login success")
}

// RefreshToken handles POST /auth/refresh
func (c *AuthController) RefreshToken(ctx echo.Context) error {
	requestData := new(dto.RefreshTokenRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if requestData.RefreshToken == "" {
		return c.BadRequest(errors.ErrInvalidInput, "refresh_token is required", nil)
	}

	tokens, appErr := c.AuthService.RefreshToken(ctx.Request().Context(), requestData.RefreshToken)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, tokens, "refresh token success")
}

// Logout handles POST /auth/logout
func (c *AuthController) Logout(ctx echo.Context) error {
	requestData := new(dto.LogoutRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if requestData.RefreshToken == "" {
		return c.BadRequest(errors.ErrInvalidInput, "refresh_token is required", nil)
	}

	if appErr := c.AuthService.Logout(ctx.Request().Context(), requestData.RefreshToken); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "logout success")
}

// GetProfile handles GET /users/me
// @Summary Get current user profile
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Router /private/users/me [get]
func (c *AuthController) GetProfile(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	user, appErr := c.AuthService.GetProfile(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, user, "get profile success")
}

// UpdateProfile handles PUT /users/me
func (c *AuthController) UpdateProfile(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestData := new(dto.UpdateProfileRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	user, appErr := c.AuthService.UpdateProfile(ctx.Request().Context(), userID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, user, "update profile success")
}

// UploadAvatar handles POST /users/me/avatar with a multipart "avatar" file
func (c *AuthController) UploadAvatar(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Missing avatar file", nil)
	}

	result, appErr := c.AuthService.UploadAvatar(ctx.Request().Context(), userID, file)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "upload avatar success")
}
