package ports

import (
	"context"

	"github.com/mercadito/commerce-api/internal/core/domain"
)

// LoginResult carries everything the login handler needs: the authenticated
// user, the signed token and the server-side session backing the cookie.
type LoginResult struct {
	User    *domain.User
	Token   string
	Session *domain.Session
}

type AuthService interface {
	Login(ctx context.Context, email, pass string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
}
