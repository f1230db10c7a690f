package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/brandcatalog/internal/repository"
	"github.com/utafrali/brandcatalog/pkg/database"
)

// UnitOfWork implements repository.UnitOfWork on top of a pgx pool.
type UnitOfWork struct {
	db database.DBTX
}

// NewUnitOfWork creates a unit of work backed by db, usually a *pgxpool.Pool.
func NewUnitOfWork(db database.DBTX) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Brands returns a repository bound to the pool.
func (u *UnitOfWork) Brands() repository.BrandRepository {
	return NewBrandRepository(u.db)
}

// WithinTx runs fn with a repository bound to a new transaction.
func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(repository.BrandRepository) error) error {
	return database.WithTx(ctx, u.db, func(tx pgx.Tx) error {
		return fn(NewBrandRepository(tx))
	})
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)
