package repository

import (
	"context"

	"github.com/utafrali/brandcatalog/internal/domain"
)

// BrandRepository defines the interface for brand persistence operations.
type BrandRepository interface {
	// List returns every brand ordered by id. It never returns a nil slice.
	List(ctx context.Context) ([]domain.Brand, error)

	// GetByID retrieves a brand by id. It returns apperrors.ErrNotFound when
	// no row matches.
	GetByID(ctx context.Context, id int64) (*domain.Brand, error)

	// Create inserts a new brand and writes the store-assigned id back into it.
	Create(ctx context.Context, brand *domain.Brand) error

	// Update replaces the name and description of the brand matched by id.
	Update(ctx context.Context, brand *domain.Brand) error

	// Delete removes the brand with the given id.
	Delete(ctx context.Context, id int64) error
}

// UnitOfWork hands out brand repositories bound either to the connection
// pool or to a single transaction.
type UnitOfWork interface {
	// Brands returns a repository that runs each statement on its own.
	Brands() BrandRepository

	// WithinTx runs fn against a repository bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(brands BrandRepository) error) error
}
