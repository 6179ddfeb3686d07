// File: internal/middleware/middleware.go
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"canteen/internal/database"
	"canteen/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const ContextUserKey = "user"

var isAdmin = service.IsAdmin

func extractClaims(c echo.Context) (*service.CustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	claims, err := service.VerifyAccessToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
	}
	return claims, nil
}

// Claims 取得 RequireAuth 放入 context 的 claims，未登入時為 nil
func Claims(c echo.Context) *service.CustomClaims {
	claims, _ := c.Get(ContextUserKey).(*service.CustomClaims)
	return claims
}

func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := extractClaims(c)
		if err != nil {
			return err
		}
		c.Set(ContextUserKey, claims)
		return next(c)
	}
}

// RequireAdmin checks the caller's role in the database rather than the
// is_admin claim, so a demoted admin loses access before the token expires.
func RequireAdmin(db database.Querier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return RequireAuth(func(c echo.Context) error {
			claims := Claims(c)
			ok, err := isAdmin(c.Request().Context(), db, claims.UserID)
			if err != nil {
				logrus.WithError(err).WithField("user_id", claims.UserID).Error("admin lookup failed")
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Access forbidden: Admins only")
			}
			return next(c)
		})
	}
}
