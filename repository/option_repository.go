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

// OptionRepository handles database operations for the options catalogue
type OptionRepository struct{}

// NewOptionRepository creates a new OptionRepository
func NewOptionRepository() *OptionRepository {
	return &OptionRepository{}
}

// Ensure OptionRepository implements OptionRepositoryInterface
var _ OptionRepositoryInterface = (*OptionRepository)(nil)

var optionColumns = []string{
	"option_code", "display_name", "category", "internal_cost", "selling_price", "margin_percent", "notes",
}

func scanOption(row sq.RowScanner) (*models.Option, error) {
	var opt models.Option
	var displayName, category, notes sql.NullString
	var cost, price, margin sql.NullFloat64

	err := row.Scan(&opt.OptionCode, &displayName, &category, &cost, &price, &margin, &notes)
	if err != nil {
		return nil, err
	}

	opt.DisplayName = nullString(displayName)
	opt.Category = nullString(category)
	opt.Notes = nullString(notes)
	opt.InternalCost = nullFloatPtr(cost)
	opt.SellingPrice = nullFloatPtr(price)
	opt.MarginPercent = nullFloatPtr(margin)
	return &opt, nil
}

// List retrieves options, optionally filtered by category
func (r *OptionRepository) List(ctx context.Context, category *string, skip, limit int) ([]models.Option, error) {
	query := psql.Select(optionColumns...).
		From("oakfield_options").
		OrderBy("option_code ASC").
		Offset(uint64(skip)).
		Limit(uint64(limit))

	if category != nil && *category != "" {
		query = query.Where(sq.Eq{"category": *category})
	}

	rows, err := query.RunWith(db.DB).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	defer rows.Close()

	var options []models.Option
	for rows.Next() {
		opt, err := scanOption(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, *opt)
	}
	return options, rows.Err()
}

// GetByCode retrieves a single option
func (r *OptionRepository) GetByCode(ctx context.Context, optionCode string) (*models.Option, error) {
	row := psql.Select(optionColumns...).
		From("oakfield_options").
		Where(sq.Eq{"option_code": optionCode}).
		RunWith(db.DB).
		QueryRowContext(ctx)

	opt, err := scanOption(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("option %s: %w", optionCode, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get option: %w", err)
	}
	return opt, nil
}

// Insert creates a new option; a duplicate option_code yields ErrConflict
func (r *OptionRepository) Insert(ctx context.Context, opt *models.Option) error {
	existing, err := r.GetByCode(ctx, opt.OptionCode)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("option_code %s: %w", opt.OptionCode, ErrConflict)
	}

	_, err = psql.Insert("oakfield_options").
		Columns(optionColumns...).
		Values(opt.OptionCode, opt.DisplayName, opt.Category, opt.InternalCost,
			opt.SellingPrice, opt.MarginPercent, opt.Notes).
		RunWith(db.DB).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert option: %w", err)
	}
	return nil
}

// Update applies the provided fields one by one and returns the updated row
func (r *OptionRepository) Update(ctx context.Context, optionCode string, req *models.OptionUpdateRequest) (*models.Option, error) {
	query := psql.Update("oakfield_options").Where(sq.Eq{"option_code": optionCode})

	set := 0
	if req.DisplayName != nil {
		query = query.Set("display_name", *req.DisplayName)
		set++
	}
	if req.Category != nil {
		query = query.Set("category", *req.Category)
		set++
	}
	if req.InternalCost != nil {
		query = query.Set("internal_cost", *req.InternalCost)
		set++
	}
	if req.SellingPrice != nil {
		query = query.Set("selling_price", *req.SellingPrice)
		set++
	}
	if req.MarginPercent != nil {
		query = query.Set("margin_percent", *req.MarginPercent)
		set++
	}
	if req.Notes != nil {
		query = query.Set("notes", *req.Notes)
		set++
	}

	if set > 0 {
		result, err := query.RunWith(db.DB).ExecContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to update option: %w", err)
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return nil, fmt.Errorf("option %s: %w", optionCode, ErrNotFound)
		}
	}

	return r.GetByCode(ctx, optionCode)
}
