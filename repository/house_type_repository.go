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

// HouseTypeRepository handles database operations for house types
type HouseTypeRepository struct{}

// NewHouseTypeRepository creates a new HouseTypeRepository
func NewHouseTypeRepository() *HouseTypeRepository {
	return &HouseTypeRepository{}
}

// Ensure HouseTypeRepository implements HouseTypeRepositoryInterface
var _ HouseTypeRepositoryInterface = (*HouseTypeRepository)(nil)

var houseTypeColumns = []string{
	"id", "name", "beds", "base_price", "margin_target_percent",
	"typical_spend_min", "typical_spend_max", "available_at",
}

func scanHouseType(row sq.RowScanner) (*models.HouseType, error) {
	var ht models.HouseType
	var name, availableAt sql.NullString
	var beds sql.NullInt64
	var basePrice, marginTarget, spendMin, spendMax sql.NullFloat64

	err := row.Scan(&ht.ID, &name, &beds, &basePrice, &marginTarget, &spendMin, &spendMax, &availableAt)
	if err != nil {
		return nil, err
	}

	ht.Name = nullString(name)
	ht.AvailableAt = nullString(availableAt)
	if beds.Valid {
		ht.Beds = int(beds.Int64)
	}
	ht.BasePrice = nullFloatPtr(basePrice)
	ht.MarginTargetPercent = nullFloatPtr(marginTarget)
	ht.TypicalSpendMin = nullFloatPtr(spendMin)
	ht.TypicalSpendMax = nullFloatPtr(spendMax)
	return &ht, nil
}

// List retrieves house types, optionally filtered by bed count
func (r *HouseTypeRepository) List(ctx context.Context, beds *int, skip, limit int) ([]models.HouseType, error) {
	query := psql.Select(houseTypeColumns...).
		From("oakfield_house_types").
		OrderBy("id ASC").
		Offset(uint64(skip)).
		Limit(uint64(limit))

	if beds != nil {
		query = query.Where(sq.Eq{"beds": *beds})
	}

	rows, err := query.RunWith(db.DB).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list house types: %w", err)
	}
	defer rows.Close()

	var houseTypes []models.HouseType
	for rows.Next() {
		ht, err := scanHouseType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan house type: %w", err)
		}
		houseTypes = append(houseTypes, *ht)
	}
	return houseTypes, rows.Err()
}

// GetByID retrieves a single house type
func (r *HouseTypeRepository) GetByID(ctx context.Context, id int) (*models.HouseType, error) {
	row := psql.Select(houseTypeColumns...).
		From("oakfield_house_types").
		Where(sq.Eq{"id": id}).
		RunWith(db.DB).
		QueryRowContext(ctx)

	ht, err := scanHouseType(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("house type %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get house type: %w", err)
	}
	return ht, nil
}

// Insert creates a new house type and returns it with its assigned id
func (r *HouseTypeRepository) Insert(ctx context.Context, ht *models.HouseType) (*models.HouseType, error) {
	err := psql.Insert("oakfield_house_types").
		Columns("name", "beds", "base_price", "margin_target_percent",
			"typical_spend_min", "typical_spend_max", "available_at").
		Values(ht.Name, ht.Beds, ht.BasePrice, ht.MarginTargetPercent,
			ht.TypicalSpendMin, ht.TypicalSpendMax, ht.AvailableAt).
		Suffix("RETURNING id").
		RunWith(db.DB).
		QueryRowContext(ctx).
		Scan(&ht.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert house type: %w", err)
	}
	return ht, nil
}

// Update applies the provided fields one by one and returns the updated row
func (r *HouseTypeRepository) Update(ctx context.Context, id int, req *models.HouseTypeUpdateRequest) (*models.HouseType, error) {
	query := psql.Update("oakfield_house_types").Where(sq.Eq{"id": id})

	set := 0
	if req.Name != nil {
		query = query.Set("name", *req.Name)
		set++
	}
	if req.Beds != nil {
		query = query.Set("beds", *req.Beds)
		set++
	}
	if req.BasePrice != nil {
		query = query.Set("base_price", *req.BasePrice)
		set++
	}
	if req.MarginTargetPercent != nil {
		query = query.Set("margin_target_percent", *req.MarginTargetPercent)
		set++
	}
	if req.TypicalSpendMin != nil {
		query = query.Set("typical_spend_min", *req.TypicalSpendMin)
		set++
	}
	if req.TypicalSpendMax != nil {
		query = query.Set("typical_spend_max", *req.TypicalSpendMax)
		set++
	}
	if req.AvailableAt != nil {
		query = query.Set("available_at", *req.AvailableAt)
		set++
	}

	if set > 0 {
		result, err := query.RunWith(db.DB).ExecContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to update house type: %w", err)
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return nil, fmt.Errorf("house type %d: %w", id, ErrNotFound)
		}
	}

	return r.GetByID(ctx, id)
}
