package middleware

import (
	"errors"

	"planit/internal/common"
	"planit/internal/models"
	"planit/internal/repositories"
	"planit/internal/services"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

var errUnknownUser = errors.New("token user does not exist")

// JWTMiddleware authenticates the bearer token and loads its user. The user
// is stored on the echo context and on the request context.
func JWTMiddleware(credentials services.CredentialService, users repositories.UserStore) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: common.EchoIdentityKey,
		ParseTokenFunc: func(c echo.Context, auth string) (any, error) {
			claims, err := credentials.ValidateToken(auth)
			if err != nil {
				return nil, err
			}
			user, err := users.GetUserByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return nil, errUnknownUser
				}
				return nil, common.NewInternal("failed to load token user", err)
			}
			return user, nil
		},
		SuccessHandler: func(c echo.Context) {
			if user, ok := c.Get(common.EchoIdentityKey).(*models.User); ok {
				c.SetRequest(c.Request().WithContext(common.WithIdentity(c.Request().Context(), user)))
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var appErr *common.Error
			switch {
			case errors.As(err, &appErr):
				return appErr
			case errors.Is(err, errUnknownUser):
				return common.NewUnauthenticated("User not found")
			case errors.Is(err, echojwt.ErrJWTMissing):
				return common.NewUnauthenticated("Authorization token missing")
			default:
				return common.NewUnauthenticated("Invalid or expired token")
			}
		},
	})
}

// CurrentUser returns the user resolved by JWTMiddleware, or nil.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(common.EchoIdentityKey).(*models.User)
	return user
}
