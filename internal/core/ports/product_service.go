package ports

import (
	"context"

	"github.com/mercadito/commerce-api/internal/core/domain"
)

// CreateProductInput is the validated payload for product creation. Photos
// holds the stored references produced by the upload pipeline; when empty the
// service assigns the placeholder set.
type CreateProductInput struct {
	Code     string
	Name     string
	Price    float64
	Stock    int
	Category string
	Photos   []string
}

// UpdateProductInput mirrors CreateProductInput for partial updates. Empty
// strings and nil numeric pointers mean "leave untouched"; a non-empty
// Photos slice replaces the photo list wholesale.
type UpdateProductInput struct {
	Code     string
	Name     string
	Price    *float64
	Stock    *int
	Category string
	Photos   []string
}

type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
