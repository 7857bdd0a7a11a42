package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercadito/commerce-api/internal/core/domain"
	"github.com/mercadito/commerce-api/internal/core/ports"
)

// ProductService implements catalogue CRUD. Photo references produced by the
// upload pipeline replace a product's photo list wholesale; on delete the
// non-placeholder ones are handed to the cleaner for best-effort removal.
type ProductService struct {
	repo    ports.ProductRepository
	cleaner ports.FileCleaner
	logger  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cleaner ports.FileCleaner, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cleaner: cleaner, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	photos := input.Photos
	if len(photos) == 0 {
		photos = domain.DefaultPhotos()
	}

	product := &domain.Product{
		Code:      input.Code,
		Name:      input.Name,
		Price:     input.Price,
		Stock:     input.Stock,
		Category:  input.Category,
		Photos:    photos,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("codigo", created.Code).Msg("product created")
	return created, nil
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	var update domain.ProductUpdate

	if input.Code != "" {
		update.Code = &input.Code
	}
	if input.Name != "" {
		update.Name = &input.Name
	}
	if input.Price != nil {
		update.Price = input.Price
	}
	if input.Stock != nil {
		update.Stock = input.Stock
	}
	if input.Category != "" {
		update.Category = &input.Category
	}
	if len(input.Photos) > 0 {
		update.Photos = input.Photos
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return updated, nil
}

// SetActive toggles only the activo flag.
func (s *ProductService) SetActive(ctx context.Context, id string, active bool) (*domain.Product, error) {
	updated, err := s.repo.Update(ctx, id, domain.ProductUpdate{Active: &active})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("product_id", id).Bool("activo", active).Msg("product active flag changed")
	return updated, nil
}

// Delete removes the product document, then schedules deletion of its
// uploaded photos. Placeholder assets are never enqueued, and cleanup
// failures never affect the delete itself.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	var stored []string
	for _, photo := range product.Photos {
		if !domain.IsPlaceholderPhoto(photo) {
			stored = append(stored, photo)
		}
	}
	if len(stored) > 0 {
		s.cleaner.Enqueue(stored...)
	}

	s.logger.Info().Str("product_id", id).Int("photos_enqueued", len(stored)).Msg("product deleted")
	return nil
}
