package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/utafrali/brandcatalog/internal/domain"
	"github.com/utafrali/brandcatalog/internal/repository"
	apperrors "github.com/utafrali/brandcatalog/pkg/errors"
)

// EventPublisher publishes brand domain events. *event.Producer and
// event.NoopPublisher implement it.
type EventPublisher interface {
	PublishBrandCreated(ctx context.Context, brand *domain.Brand) error
	PublishBrandUpdated(ctx context.Context, brand *domain.Brand) error
	PublishBrandDeleted(ctx context.Context, id int64) error
}

// BrandService implements the business logic for brand operations.
type BrandService struct {
	uow       repository.UnitOfWork
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewBrandService creates a new brand service.
func NewBrandService(uow repository.UnitOfWork, publisher EventPublisher, logger *slog.Logger) *BrandService {
	return &BrandService{
		uow:       uow,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateBrandInput holds the parameters for creating a brand.
type CreateBrandInput struct {
	Name        string
	Description string
}

// UpdateBrandInput holds the parameters for updating a brand.
type UpdateBrandInput struct {
	ID          int64
	Name        string
	Description string
}

// ListBrands returns every brand.
func (s *BrandService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	brands, err := s.uow.Brands().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}

// GetBrand retrieves a brand by id.
func (s *BrandService) GetBrand(ctx context.Context, id int64) (*domain.Brand, error) {
	brand, err := s.uow.Brands().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "get brand")
	}
	return brand, nil
}

// CreateBrand stores a new brand stamped with the current UTC time.
func (s *BrandService) CreateBrand(ctx context.Context, input *CreateBrandInput) (*domain.Brand, error) {
	brand := &domain.Brand{
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   s.now().UTC(),
	}
	if err := brand.Validate(); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	err := s.uow.WithinTx(ctx, func(brands repository.BrandRepository) error {
		return brands.Create(ctx, brand)
	})
	if err != nil {
		return nil, fmt.Errorf("create brand: %w", err)
	}

	if err := s.publisher.PublishBrandCreated(ctx, brand); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish brand.created event",
			slog.Int64("brand_id", brand.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "brand created",
		slog.Int64("brand_id", brand.ID),
		slog.String("name", brand.Name),
	)

	return brand, nil
}

// UpdateBrand replaces the name and description of an existing brand. The id
// and creation time are never changed.
func (s *BrandService) UpdateBrand(ctx context.Context, input *UpdateBrandInput) (*domain.Brand, error) {
	if !domain.IsValidID(input.ID) {
		return nil, apperrors.InvalidArgument(domain.MsgInvalidID)
	}

	var updated *domain.Brand
	err := s.uow.WithinTx(ctx, func(brands repository.BrandRepository) error {
		current, err := brands.GetByID(ctx, input.ID)
		if err != nil {
			return notFoundOr(err, "get brand for update")
		}

		next := *current
		next.Name = input.Name
		next.Description = input.Description
		if err := next.Validate(); err != nil {
			return apperrors.InvalidInput(err.Error())
		}

		if err := brands.Update(ctx, &next); err != nil {
			return notFoundOr(err, "update brand")
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update brand %d: %w", input.ID, err)
	}

	if err := s.publisher.PublishBrandUpdated(ctx, updated); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish brand.updated event",
			slog.Int64("brand_id", updated.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "brand updated",
		slog.Int64("brand_id", updated.ID),
	)

	return updated, nil
}

// DeleteBrand permanently removes a brand.
func (s *BrandService) DeleteBrand(ctx context.Context, id int64) error {
	if !domain.IsValidID(id) {
		return apperrors.InvalidArgument(domain.MsgInvalidID)
	}

	err := s.uow.WithinTx(ctx, func(brands repository.BrandRepository) error {
		return brands.Delete(ctx, id)
	})
	if err != nil {
		return notFoundOr(err, "delete brand")
	}

	if err := s.publisher.PublishBrandDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish brand.deleted event",
			slog.Int64("brand_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "brand deleted",
		slog.Int64("brand_id", id),
	)

	return nil
}

// notFoundOr replaces a store not-found error with the client-facing one and
// wraps anything else with op.
func notFoundOr(err error, op string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NotFoundWithMessage(domain.MsgBrandNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
