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

// BasketRepository handles database operations for option baskets
type BasketRepository struct{}

// NewBasketRepository creates a new BasketRepository
func NewBasketRepository() *BasketRepository {
	return &BasketRepository{}
}

// Ensure BasketRepository implements BasketRepositoryInterface
var _ BasketRepositoryInterface = (*BasketRepository)(nil)

var basketColumns = []string{
	"id", "development_code", "character", "plot_reference", "house_type", "beds",
	"customer_name", "build_stage", "selected_options", "options_revenue", "options_cost",
	"options_margin_percent", "margin_target_percent", "margin_delta_percent",
	"bundles_triggered", "bundle_offered", "demo_purpose",
}

func scanBasket(row sq.RowScanner) (*models.OptionBasket, error) {
	var b models.OptionBasket
	var devCode, character, plotRef, houseType, customer, stage, offered, purpose sql.NullString
	var beds sql.NullInt64
	var revenue, cost, marginPct, marginTarget, marginDelta sql.NullFloat64
	var selectedRaw, triggeredRaw []byte

	err := row.Scan(&b.ID, &devCode, &character, &plotRef, &houseType, &beds,
		&customer, &stage, &selectedRaw, &revenue, &cost,
		&marginPct, &marginTarget, &marginDelta,
		&triggeredRaw, &offered, &purpose)
	if err != nil {
		return nil, err
	}

	b.DevelopmentCode = nullStringPtr(devCode)
	b.Character = nullString(character)
	b.PlotReference = nullString(plotRef)
	b.HouseType = nullString(houseType)
	b.CustomerName = nullString(customer)
	b.BuildStage = nullString(stage)
	b.BundleOffered = nullStringPtr(offered)
	b.DemoPurpose = nullString(purpose)
	if beds.Valid {
		b.Beds = int(beds.Int64)
	}
	b.OptionsRevenue = nullFloatPtr(revenue)
	b.OptionsCost = nullFloatPtr(cost)
	b.OptionsMarginPercent = nullFloatPtr(marginPct)
	b.MarginTargetPercent = nullFloatPtr(marginTarget)
	b.MarginDeltaPercent = nullFloatPtr(marginDelta)

	if b.SelectedOptions, err = decodeCodeList(selectedRaw); err != nil {
		return nil, err
	}
	if b.BundlesTriggered, err = decodeCodeList(triggeredRaw); err != nil {
		return nil, err
	}
	return &b, nil
}

// Filter retrieves baskets matching the provided filters
func (r *BasketRepository) Filter(ctx context.Context, filters models.BasketFilterParams, skip, limit int) ([]models.OptionBasket, error) {
	query := psql.Select(basketColumns...).
		From("oakfield_option_baskets").
		OrderBy("id ASC").
		Offset(uint64(skip)).
		Limit(uint64(limit))

	if filters.DevelopmentCode != nil && *filters.DevelopmentCode != "" {
		query = query.Where(sq.Eq{"development_code": *filters.DevelopmentCode})
	}
	if filters.HouseType != nil && *filters.HouseType != "" {
		query = query.Where(sq.Eq{"house_type": *filters.HouseType})
	}
	if filters.BuildStage != nil && *filters.BuildStage != "" {
		query = query.Where(sq.Eq{"build_stage": *filters.BuildStage})
	}
	if filters.Character != nil && *filters.Character != "" {
		query = query.Where(sq.Eq{"character": *filters.Character})
	}

	rows, err := query.RunWith(db.DB).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to filter baskets: %w", err)
	}
	defer rows.Close()

	var baskets []models.OptionBasket
	for rows.Next() {
		basket, err := scanBasket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan basket: %w", err)
		}
		baskets = append(baskets, *basket)
	}
	return baskets, rows.Err()
}

// GetByID retrieves a single basket
func (r *BasketRepository) GetByID(ctx context.Context, id int) (*models.OptionBasket, error) {
	row := psql.Select(basketColumns...).
		From("oakfield_option_baskets").
		Where(sq.Eq{"id": id}).
		RunWith(db.DB).
		QueryRowContext(ctx)

	basket, err := scanBasket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("basket %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get basket: %w", err)
	}
	return basket, nil
}

// GetByPlotReference resolves an external basket reference
func (r *BasketRepository) GetByPlotReference(ctx context.Context, plotReference string) (*models.OptionBasket, error) {
	row := psql.Select(basketColumns...).
		From("oakfield_option_baskets").
		Where(sq.Eq{"plot_reference": plotReference}).
		OrderBy("id ASC").
		Limit(1).
		RunWith(db.DB).
		QueryRowContext(ctx)

	basket, err := scanBasket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("basket with plot reference %s: %w", plotReference, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get basket by plot reference: %w", err)
	}
	return basket, nil
}

// marginDelta derives margin_delta_percent when both inputs are present
func marginDelta(marginPct, targetPct *float64) *float64 {
	if marginPct == nil || targetPct == nil {
		return nil
	}
	delta := *marginPct - *targetPct
	return &delta
}

// Insert creates a new basket and returns it with its assigned id.
// margin_delta_percent is derived, never taken from the caller.
func (r *BasketRepository) Insert(ctx context.Context, basket *models.OptionBasket) (*models.OptionBasket, error) {
	selected, err := encodeCodeList(basket.SelectedOptions)
	if err != nil {
		return nil, err
	}
	triggered, err := encodeCodeList(basket.BundlesTriggered)
	if err != nil {
		return nil, err
	}

	basket.MarginDeltaPercent = marginDelta(basket.OptionsMarginPercent, basket.MarginTargetPercent)

	err = psql.Insert("oakfield_option_baskets").
		Columns("development_code", "character", "plot_reference", "house_type", "beds",
			"customer_name", "build_stage", "selected_options", "options_revenue", "options_cost",
			"options_margin_percent", "margin_target_percent", "margin_delta_percent",
			"bundles_triggered", "bundle_offered", "demo_purpose").
		Values(basket.DevelopmentCode, basket.Character, basket.PlotReference, basket.HouseType, basket.Beds,
			basket.CustomerName, basket.BuildStage, selected, basket.OptionsRevenue, basket.OptionsCost,
			basket.OptionsMarginPercent, basket.MarginTargetPercent, basket.MarginDeltaPercent,
			triggered, basket.BundleOffered, basket.DemoPurpose).
		Suffix("RETURNING id").
		RunWith(db.DB).
		QueryRowContext(ctx).
		Scan(&basket.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert basket: %w", err)
	}

	log.Printf("✓ Inserted basket %d (plot %s)", basket.ID, basket.PlotReference)
	return basket, nil
}

// buildBasketUpdate assembles the partial UPDATE for a basket. The returned
// set count is zero when the request patches nothing.
// Touching either margin percent re-derives margin_delta_percent in the same
// statement. Column references in a SET clause evaluate against the pre-update
// row, so the derivation uses the incoming value as a bind parameter and only
// falls back to a column for the side the request leaves untouched.
func buildBasketUpdate(id int, req *models.BasketUpdateRequest) (sq.UpdateBuilder, int, error) {
	query := psql.Update("oakfield_option_baskets").Where(sq.Eq{"id": id})

	set := 0
	if req.SelectedOptions != nil {
		encoded, err := encodeCodeList(*req.SelectedOptions)
		if err != nil {
			return query, 0, err
		}
		query = query.Set("selected_options", encoded)
		set++
	}
	if req.OptionsRevenue != nil {
		query = query.Set("options_revenue", *req.OptionsRevenue)
		set++
	}
	if req.OptionsCost != nil {
		query = query.Set("options_cost", *req.OptionsCost)
		set++
	}
	if req.OptionsMarginPercent != nil {
		query = query.Set("options_margin_percent", *req.OptionsMarginPercent)
		set++
	}
	if req.MarginTargetPercent != nil {
		query = query.Set("margin_target_percent", *req.MarginTargetPercent)
		set++
	}
	switch {
	case req.OptionsMarginPercent != nil && req.MarginTargetPercent != nil:
		query = query.Set("margin_delta_percent", *req.OptionsMarginPercent-*req.MarginTargetPercent)
	case req.OptionsMarginPercent != nil:
		query = query.Set("margin_delta_percent",
			sq.Expr("? - margin_target_percent", *req.OptionsMarginPercent))
	case req.MarginTargetPercent != nil:
		query = query.Set("margin_delta_percent",
			sq.Expr("options_margin_percent - ?", *req.MarginTargetPercent))
	}
	if req.BundlesTriggered != nil {
		encoded, err := encodeCodeList(*req.BundlesTriggered)
		if err != nil {
			return query, 0, err
		}
		query = query.Set("bundles_triggered", encoded)
		set++
	}
	if req.BundleOffered != nil {
		query = query.Set("bundle_offered", *req.BundleOffered)
		set++
	}
	if req.BuildStage != nil {
		query = query.Set("build_stage", *req.BuildStage)
		set++
	}
	if req.DemoPurpose != nil {
		query = query.Set("demo_purpose", *req.DemoPurpose)
		set++
	}

	return query, set, nil
}

// Update applies the provided fields one by one and returns the updated row.
// The stored margin delta never drifts from its inputs.
func (r *BasketRepository) Update(ctx context.Context, id int, req *models.BasketUpdateRequest) (*models.OptionBasket, error) {
	query, set, err := buildBasketUpdate(id, req)
	if err != nil {
		return nil, err
	}

	if set > 0 {
		result, err := query.RunWith(db.DB).ExecContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to update basket: %w", err)
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return nil, fmt.Errorf("basket %d: %w", id, ErrNotFound)
		}
	}

	return r.GetByID(ctx, id)
}

// Delete removes a basket by id
func (r *BasketRepository) Delete(ctx context.Context, id int) error {
	result, err := psql.Delete("oakfield_option_baskets").
		Where(sq.Eq{"id": id}).
		RunWith(db.DB).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete basket: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("basket %d: %w", id, ErrNotFound)
	}
	return nil
}

// RecordBundleTriggered appends a bundle code to bundles_triggered in one
// atomic statement. Re-recording an already present code is a no-op, and the
// append cannot race a concurrent edit of selected_options.
func (r *BasketRepository) RecordBundleTriggered(ctx context.Context, id int, bundleCode string) error {
	query := `
		UPDATE oakfield_option_baskets
		SET bundles_triggered = CASE
			WHEN COALESCE(bundles_triggered, '[]'::jsonb) @> to_jsonb(ARRAY[$2])
				THEN bundles_triggered
			ELSE COALESCE(bundles_triggered, '[]'::jsonb) || to_jsonb(ARRAY[$2])
		END
		WHERE id = $1
	`
	result, err := db.DB.ExecContext(ctx, query, id, bundleCode)
	if err != nil {
		return fmt.Errorf("failed to record triggered bundle: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("basket %d: %w", id, ErrNotFound)
	}
	log.Printf("✓ Recorded triggered bundle %s on basket %d", bundleCode, id)
	return nil
}

// RecordBundleOffered sets bundle_offered in one atomic statement
func (r *BasketRepository) RecordBundleOffered(ctx context.Context, id int, bundleCode string) error {
	result, err := psql.Update("oakfield_option_baskets").
		Set("bundle_offered", bundleCode).
		Where(sq.Eq{"id": id}).
		RunWith(db.DB).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to record offered bundle: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("basket %d: %w", id, ErrNotFound)
	}
	log.Printf("✓ Recorded offered bundle %s on basket %d", bundleCode, id)
	return nil
}
