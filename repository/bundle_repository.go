package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"oakfield-backend/db"
	"oakfield-backend/models"
)

// BundleRepository handles database operations for bundles
type BundleRepository struct{}

// NewBundleRepository creates a new BundleRepository
func NewBundleRepository() *BundleRepository {
	return &BundleRepository{}
}

// Ensure BundleRepository implements BundleRepositoryInterface
var _ BundleRepositoryInterface = (*BundleRepository)(nil)

var bundleColumns = []string{
	"bundle_code", "bundle_name", "description", "additional_revenue", "additional_margin", "margin_percent",
}

func scanBundle(row sq.RowScanner) (*models.Bundle, error) {
	var bundle models.Bundle
	var name, description sql.NullString
	var revenue, margin, marginPct sql.NullFloat64

	err := row.Scan(&bundle.BundleCode, &name, &description, &revenue, &margin, &marginPct)
	if err != nil {
		return nil, err
	}

	bundle.BundleName = nullString(name)
	bundle.Description = nullString(description)
	bundle.AdditionalRevenue = nullFloatPtr(revenue)
	bundle.AdditionalMargin = nullFloatPtr(margin)
	bundle.MarginPercent = nullFloatPtr(marginPct)
	return &bundle, nil
}

// List retrieves bundles
func (r *BundleRepository) List(ctx context.Context, skip, limit int) ([]models.Bundle, error) {
	rows, err := psql.Select(bundleColumns...).
		From("oakfield_bundles").
		OrderBy("bundle_code ASC").
		Offset(uint64(skip)).
		Limit(uint64(limit)).
		RunWith(db.DB).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bundles: %w", err)
	}
	defer rows.Close()

	var bundles []models.Bundle
	for rows.Next() {
		bundle, err := scanBundle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bundle: %w", err)
		}
		bundles = append(bundles, *bundle)
	}
	return bundles, rows.Err()
}

// GetByCode retrieves a single bundle
func (r *BundleRepository) GetByCode(ctx context.Context, bundleCode string) (*models.Bundle, error) {
	row := psql.Select(bundleColumns...).
		From("oakfield_bundles").
		Where(sq.Eq{"bundle_code": bundleCode}).
		RunWith(db.DB).
		QueryRowContext(ctx)

	bundle, err := scanBundle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bundle %s: %w", bundleCode, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bundle: %w", err)
	}
	return bundle, nil
}

// GetAllByCode loads the whole bundle catalogue keyed by bundle_code.
// Used as the lookup snapshot for missed-opportunity estimation.
func (r *BundleRepository) GetAllByCode(ctx context.Context) (map[string]models.Bundle, error) {
	rows, err := psql.Select(bundleColumns...).
		From("oakfield_bundles").
		RunWith(db.DB).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bundle catalogue: %w", err)
	}
	defer rows.Close()

	byCode := make(map[string]models.Bundle)
	for rows.Next() {
		bundle, err := scanBundle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bundle: %w", err)
		}
		byCode[bundle.BundleCode] = *bundle
	}
	return byCode, rows.Err()
}

// Insert creates a new bundle; a duplicate bundle_code yields ErrConflict
func (r *BundleRepository) Insert(ctx context.Context, bundle *models.Bundle) error {
	existing, err := r.GetByCode(ctx, bundle.BundleCode)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("bundle_code %s: %w", bundle.BundleCode, ErrConflict)
	}

	_, err = psql.Insert("oakfield_bundles").
		Columns(bundleColumns...).
		Values(bundle.BundleCode, bundle.BundleName, bundle.Description,
			bundle.AdditionalRevenue, bundle.AdditionalMargin, bundle.MarginPercent).
		RunWith(db.DB).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert bundle: %w", err)
	}
	return nil
}

// Update applies the provided fields one by one and returns the updated row
func (r *BundleRepository) Update(ctx context.Context, bundleCode string, req *models.BundleUpdateRequest) (*models.Bundle, error) {
	query := psql.Update("oakfield_bundles").Where(sq.Eq{"bundle_code": bundleCode})

	set := 0
	if req.BundleName != nil {
		query = query.Set("bundle_name", *req.BundleName)
		set++
	}
	if req.Description != nil {
		query = query.Set("description", *req.Description)
		set++
	}
	if req.AdditionalRevenue != nil {
		query = query.Set("additional_revenue", *req.AdditionalRevenue)
		set++
	}
	if req.AdditionalMargin != nil {
		query = query.Set("additional_margin", *req.AdditionalMargin)
		set++
	}
	if req.MarginPercent != nil {
		query = query.Set("margin_percent", *req.MarginPercent)
		set++
	}

	if set > 0 {
		result, err := query.RunWith(db.DB).ExecContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to update bundle: %w", err)
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return nil, fmt.Errorf("bundle %s: %w", bundleCode, ErrNotFound)
		}
	}

	return r.GetByCode(ctx, bundleCode)
}
