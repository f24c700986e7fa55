package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	sq "github.com/Masterminds/squirrel"

	"oakfield-backend/db"
	"oakfield-backend/models"
)

// DevelopmentRepository handles database operations for developments
type DevelopmentRepository struct{}

// NewDevelopmentRepository creates a new DevelopmentRepository
func NewDevelopmentRepository() *DevelopmentRepository {
	return &DevelopmentRepository{}
}

// Ensure DevelopmentRepository implements DevelopmentRepositoryInterface
var _ DevelopmentRepositoryInterface = (*DevelopmentRepository)(nil)

var developmentColumns = []string{
	"dev_code", "development_name", "region", "site_manager", "character",
	"target_basket_min", "target_basket_max", "plot_count_min", "plot_count_max", "notes",
}

func scanDevelopment(row sq.RowScanner) (*models.Development, error) {
	var dev models.Development
	var name, region, manager, character, notes sql.NullString
	var basketMin, basketMax sql.NullFloat64
	var plotMin, plotMax sql.NullInt64

	err := row.Scan(&dev.DevCode, &name, &region, &manager, &character,
		&basketMin, &basketMax, &plotMin, &plotMax, &notes)
	if err != nil {
		return nil, err
	}

	dev.DevelopmentName = nullString(name)
	dev.Region = nullString(region)
	dev.SiteManager = nullString(manager)
	dev.Character = nullString(character)
	dev.Notes = nullString(notes)
	dev.TargetBasketMin = nullFloatPtr(basketMin)
	dev.TargetBasketMax = nullFloatPtr(basketMax)
	dev.PlotCountMin = nullIntPtr(plotMin)
	dev.PlotCountMax = nullIntPtr(plotMax)
	return &dev, nil
}

// List retrieves developments, optionally filtered by region and character
func (r *DevelopmentRepository) List(ctx context.Context, region, character *string, skip, limit int) ([]models.Development, error) {
	query := psql.Select(developmentColumns...).
		From("oakfield_developments").
		OrderBy("dev_code ASC").
		Offset(uint64(skip)).
		Limit(uint64(limit))

	if region != nil && *region != "" {
		query = query.Where(sq.Eq{"region": *region})
	}
	if character != nil && *character != "" {
		query = query.Where(sq.Eq{"character": *character})
	}

	rows, err := query.RunWith(db.DB).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list developments: %w", err)
	}
	defer rows.Close()

	var developments []models.Development
	for rows.Next() {
		dev, err := scanDevelopment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan development: %w", err)
		}
		developments = append(developments, *dev)
	}
	return developments, rows.Err()
}

// GetByCode retrieves a single development by its code
func (r *DevelopmentRepository) GetByCode(ctx context.Context, devCode string) (*models.Development, error) {
	row := psql.Select(developmentColumns...).
		From("oakfield_developments").
		Where(sq.Eq{"dev_code": devCode}).
		RunWith(db.DB).
		QueryRowContext(ctx)

	dev, err := scanDevelopment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("development %s: %w", devCode, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get development: %w", err)
	}
	return dev, nil
}

// Insert creates a new development; a duplicate dev_code yields ErrConflict
func (r *DevelopmentRepository) Insert(ctx context.Context, dev *models.Development) error {
	existing, err := r.GetByCode(ctx, dev.DevCode)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("dev_code %s: %w", dev.DevCode, ErrConflict)
	}

	_, err = psql.Insert("oakfield_developments").
		Columns(developmentColumns...).
		Values(dev.DevCode, dev.DevelopmentName, dev.Region, dev.SiteManager, dev.Character,
			dev.TargetBasketMin, dev.TargetBasketMax, dev.PlotCountMin, dev.PlotCountMax, dev.Notes).
		RunWith(db.DB).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert development: %w", err)
	}

	log.Printf("✓ Inserted development %s", dev.DevCode)
	return nil
}

// Update applies the provided fields one by one and returns the updated row
func (r *DevelopmentRepository) Update(ctx context.Context, devCode string, req *models.DevelopmentUpdateRequest) (*models.Development, error) {
	query := psql.Update("oakfield_developments").Where(sq.Eq{"dev_code": devCode})

	set := 0
	if req.DevelopmentName != nil {
		query = query.Set("development_name", *req.DevelopmentName)
		set++
	}
	if req.Region != nil {
		query = query.Set("region", *req.Region)
		set++
	}
	if req.SiteManager != nil {
		query = query.Set("site_manager", *req.SiteManager)
		set++
	}
	if req.Character != nil {
		query = query.Set("character", *req.Character)
		set++
	}
	if req.TargetBasketMin != nil {
		query = query.Set("target_basket_min", *req.TargetBasketMin)
		set++
	}
	if req.TargetBasketMax != nil {
		query = query.Set("target_basket_max", *req.TargetBasketMax)
		set++
	}
	if req.PlotCountMin != nil {
		query = query.Set("plot_count_min", *req.PlotCountMin)
		set++
	}
	if req.PlotCountMax != nil {
		query = query.Set("plot_count_max", *req.PlotCountMax)
		set++
	}
	if req.Notes != nil {
		query = query.Set("notes", *req.Notes)
		set++
	}

	if set > 0 {
		result, err := query.RunWith(db.DB).ExecContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to update development: %w", err)
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return nil, fmt.Errorf("development %s: %w", devCode, ErrNotFound)
		}
	}

	return r.GetByCode(ctx, devCode)
}

// Delete removes a development by code
func (r *DevelopmentRepository) Delete(ctx context.Context, devCode string) error {
	result, err := psql.Delete("oakfield_developments").
		Where(sq.Eq{"dev_code": devCode}).
		RunWith(db.DB).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete development: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("development %s: %w", devCode, ErrNotFound)
	}
	return nil
}
