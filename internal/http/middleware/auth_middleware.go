package middleware

import (
	"net/http"

	"insuretrack/internal/domain/entity"
	"insuretrack/internal/utils"
	"insuretrack/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UserRepository interface {
	FindActiveBySub(sub string) (*entity.User, error)
}

type AuthMiddlewareConfig struct {
	UserRepo UserRepository
}

// NewAuthMiddleware creates the handler with dependencies injected
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := utils.ParseTokenDataCtx(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			user, err := cfg.UserRepo.FindActiveBySub(tokenData.Sub)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}

			if user == nil {
				// User deleted in DB but still has a valid token???
				return c.JSON(http.StatusUnauthorized, apierror.IDPUserNotFoundError)
			}

			if user.Suspended || !user.Active {
				return c.JSON(http.StatusForbidden, apierror.MissingAccessError)
			}

			c.Set("user", user)
			c.Set("sub", tokenData.Sub)
			return next(c)
		}
	}
}

// RequireAdmin gates a route group to administrator users. It must run
// after the auth middleware, which places the user in the context.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, cerr := utils.GetUserFromContext(c)
			if cerr != nil {
				return c.JSON(cerr.Code(), cerr)
			}

			if !user.IsAdmin() {
				return c.JSON(http.StatusForbidden, apierror.AdminOnlyError)
			}
			return next(c)
		}
	}
}
