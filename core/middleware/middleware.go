package middleware

import (
	"context"
	"net/http"
	"strings"

	"tutortrack/core/constants"
	"tutortrack/core/controller"
	"tutortrack/core/errors"
	"tutortrack/core/utils"

	"github.com/labstack/echo/v4"
)

// TokenValidator validates an access token and returns its claims. The auth
// module provides the implementation; keeping it an interface avoids a
// core -> modules dependency.
type TokenValidator interface {
	ValidateAccessToken(ctx context.Context, token string) (*utils.TokenClaims, *errors.AppError)
}

// Middleware holds request middlewares shared by module routers
type Middleware struct {
	validator TokenValidator
}

// NewMiddleware creates the middleware set
func NewMiddleware(validator TokenValidator) *Middleware {
	return &Middleware{validator: validator}
}

// AuthMiddleware authenticates requests with a Bearer JWT and stores the
// token claims on the echo context
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrMissingAuthorizationHeader, "Missing Authorization header")
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrInvalidTokenFormat, "Authorization header must be a Bearer token")
			}

			claims, appErr := m.validator.ValidateAccessToken(c.Request().Context(), token)
			if appErr != nil {
				return controller.NewErrorResponse(http.StatusUnauthorized, appErr.Code, appErr.Message)
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
