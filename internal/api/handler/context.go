package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

// Context keys written by the Auth middleware.
const (
	CtxUserID    = "user_id"
	CtxRole      = "role"
	CtxSessionID = "session_id"
)

// identity is the authenticated caller of a request.
type identity struct {
	UserID    string
	Role      domain.Role
	SessionID string
}

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: user id, role and
// session id must all be present, which proves the middleware ran.
func ctxIdentity(c echo.Context) (identity, error) {
	id := identity{
		UserID:    stringFromCtx(c, CtxUserID),
		Role:      domain.Role(stringFromCtx(c, CtxRole)),
		SessionID: stringFromCtx(c, CtxSessionID),
	}
	if id.UserID == "" || id.SessionID == "" || !id.Role.Valid() {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

func stringFromCtx(c echo.Context, key string) string {
	switch v := c.Get(key).(type) {
	case string:
		return v
	case domain.Role:
		return string(v)
	default:
		return ""
	}
}
