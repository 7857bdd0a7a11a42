package ports

import (
	"context"

	"github.com/mercadito/commerce-api/internal/core/domain"
)

// RegisterUserInput is the validated payload for user registration. Pass is
// the plaintext password; the service checks the strength policy and hashes
// it before anything touches the store.
type RegisterUserInput struct {
	Name  string
	Email string
	Pass  string
	Role  string
}

// UpdateUserInput is the subset of fields an admin may change. Empty strings
// mean "leave untouched"; a non-empty Pass is strength-checked and re-hashed.
type UpdateUserInput struct {
	Name  string
	Email string
	Role  string
	Pass  string
}

type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
