package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookshelf/storefront/internal/core/domain"
)

// Context keys shared by the middlewares and the handlers behind them.
const (
	KeyUserID = "user_id"
	KeyRole   = "role"
)

// SessionReader is the part of the session manager the gateway gates on.
type SessionReader interface {
	Current() domain.Session
}

// RequireSession rejects requests unless the gateway's session is
// authenticated, and injects the session user into the context.
func RequireSession(session SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := session.Current()
			if s.Loading {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session is still loading")
			}
			if !s.Authenticated || s.User == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}

			c.Set(KeyUserID, s.User.ID)
			c.Set(KeyRole, s.Role.Normalize())

			return next(c)
		}
	}
}
