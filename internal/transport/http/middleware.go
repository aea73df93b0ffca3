package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/zipcart/auth-api/internal/domain"
	"github.com/zipcart/auth-api/internal/service"
	"github.com/zipcart/auth-api/internal/util"
)

const (
	contextUserKey  = "auth.user"
	contextTokenKey = "auth.token"
)

func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, util.Fail("Unauthenticated"))
			}
			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, util.Fail("Unauthenticated"))
			}
			c.Set(contextUserKey, user)
			c.Set(contextTokenKey, token)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if strings.TrimSpace(authHeader) == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(contextUserKey).(*domain.User)
	return user, ok
}
