package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sitecrew/workforce-scheduler/internal/api/handler"
	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/pkg/token"
)

// SessionResolver looks up the live session a token points at.
type SessionResolver interface {
	Lookup(ctx context.Context, id string) (*domain.Session, error)
}

// Auth validates the JWT, checks that its session is still open and injects
// the caller's identity into context. The role comes from the session, not
// the token, so role changes and sign-outs take effect immediately.
func Auth(jwtSecret string, sessions SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := token.Parse(jwtSecret, parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sess, err := sessions.Lookup(c.Request().Context(), claims.SessionID())
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
				}
				return err
			}
			if sess.UserID != claims.UserID() {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(handler.CtxUserID, sess.UserID)
			c.Set(handler.CtxRole, string(sess.Role))
			c.Set(handler.CtxSessionID, sess.ID)

			return next(c)
		}
	}
}
