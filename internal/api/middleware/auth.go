package middleware

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/mercadito/commerce-api/internal/core/domain"
	"github.com/mercadito/commerce-api/internal/core/ports"
)

// Auth authenticates a request in two independent steps: a live server-side
// session must exist for the session cookie, and the JWT must verify against
// the shared secret. A missing or dead session rejects the request before the
// token is even looked at.
//
// The token only identifies the user; the current record is re-read from the
// store on every request, so role edits and deactivation take effect
// immediately instead of waiting out the 30-day token.
func Auth(jwtSecret string, sessions ports.SessionStore, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			cookie, err := c.Cookie(domain.SessionCookie)
			if err != nil || cookie.Value == "" {
				return domain.ErrUnauthorized
			}

			session, err := sessions.Find(ctx, cookie.Value)
			if err != nil {
				return domain.ErrUnauthorized
			}
			if session.Expired(time.Now().UTC()) {
				return domain.ErrUnauthorized
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(bearerToken(c), claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return domain.ErrInvalidToken
			}

			uid, _ := claims["uid"].(string)
			if uid == "" || uid != session.UserID {
				return domain.ErrInvalidToken
			}

			user, err := users.FindByID(ctx, uid)
			if err != nil || !user.Active {
				return domain.ErrUnauthorized
			}

			c.Set("identity", user)
			c.Set("role", user.Role)
			c.Set("session_id", session.ID)

			return next(c)
		}
	}
}

// bearerToken extracts the JWT from the Authorization header, falling back to
// the bare token header older clients send.
func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	return c.Request().Header.Get("token")
}
