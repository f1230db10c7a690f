package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/brandcatalog/internal/domain"
	"github.com/utafrali/brandcatalog/pkg/database"
	apperrors "github.com/utafrali/brandcatalog/pkg/errors"
)

const (
	listBrandsQuery = `
		SELECT id, name, description, created_at
		FROM brands
		ORDER BY id`

	getBrandQuery = `
		SELECT id, name, description, created_at
		FROM brands
		WHERE id = $1`

	insertBrandQuery = `
		INSERT INTO brands (name, description, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	updateBrandQuery = `
		UPDATE brands
		SET name = $1, description = $2
		WHERE id = $3`

	deleteBrandQuery = `DELETE FROM brands WHERE id = $1`
)

// BrandRepository implements brand persistence operations using PostgreSQL.
// It runs against whatever database.DBTX it was built with: the pool or a
// transaction.
type BrandRepository struct {
	db database.DBTX
}

// NewBrandRepository creates a new PostgreSQL-backed brand repository.
func NewBrandRepository(db database.DBTX) *BrandRepository {
	return &BrandRepository{db: db}
}

// List returns all brands ordered by id.
func (r *BrandRepository) List(ctx context.Context) (_ []domain.Brand, err error) {
	ctx, end := database.TraceQuery(ctx, "ListBrands", listBrandsQuery)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, listBrandsQuery)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands := []domain.Brand{}
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan brand row: %w", err)
		}
		b.CreatedAt = b.CreatedAt.UTC()
		brands = append(brands, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brand rows: %w", err)
	}

	return brands, nil
}

// GetByID retrieves a brand by its id.
func (r *BrandRepository) GetByID(ctx context.Context, id int64) (_ *domain.Brand, err error) {
	ctx, end := database.TraceQuery(ctx, "GetBrand", getBrandQuery)
	defer func() { end(err) }()

	var b domain.Brand
	err = r.db.QueryRow(ctx, getBrandQuery, id).Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("brand", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("get brand %d: %w", id, err)
	}
	b.CreatedAt = b.CreatedAt.UTC()

	return &b, nil
}

// Create inserts a new brand and stores the generated id in b.ID.
func (r *BrandRepository) Create(ctx context.Context, b *domain.Brand) (err error) {
	ctx, end := database.TraceQuery(ctx, "CreateBrand", insertBrandQuery)
	defer func() { end(err) }()

	var id int64
	if err = r.db.QueryRow(ctx, insertBrandQuery, b.Name, b.Description, b.CreatedAt).Scan(&id); err != nil {
		return fmt.Errorf("insert brand: %w", err)
	}
	b.ID = id

	return nil
}

// Update replaces the name and description of an existing brand. The
// creation timestamp is never written.
func (r *BrandRepository) Update(ctx context.Context, b *domain.Brand) (err error) {
	ctx, end := database.TraceQuery(ctx, "UpdateBrand", updateBrandQuery)
	defer func() { end(err) }()

	ct, err := r.db.Exec(ctx, updateBrandQuery, b.Name, b.Description, b.ID)
	if err != nil {
		return fmt.Errorf("update brand %d: %w", b.ID, err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("brand", strconv.FormatInt(b.ID, 10))
	}

	return nil
}

// Delete removes a brand by its id.
func (r *BrandRepository) Delete(ctx context.Context, id int64) (err error) {
	ctx, end := database.TraceQuery(ctx, "DeleteBrand", deleteBrandQuery)
	defer func() { end(err) }()

	ct, err := r.db.Exec(ctx, deleteBrandQuery, id)
	if err != nil {
		return fmt.Errorf("delete brand %d: %w", id, err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("brand", strconv.FormatInt(id, 10))
	}

	return nil
}
