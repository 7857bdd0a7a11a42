package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mercadito/commerce-api/internal/core/domain"
)

// ctxUser extracts the identity injected by the Auth middleware and
// fast-fails before any service call when it is absent. Presence of the
// identity proves the middleware ran; handlers behind the auth chain must
// never be reachable without it.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("identity").(*domain.User)
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// ctxSessionID extracts the live session identifier set by the Auth middleware.
func ctxSessionID(c echo.Context) (string, error) {
	sid, _ := c.Get("session_id").(string)
	if sid == "" {
		return "", domain.ErrUnauthorized
	}
	return sid, nil
}
