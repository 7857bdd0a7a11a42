package ports

import (
	"context"

	"github.com/mercadito/commerce-api/internal/core/domain"
)

// SessionStore holds live session records keyed by the session cookie value.
// Implementations are expected to expire records on their own after the
// session TTL.
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
