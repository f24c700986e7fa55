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

// BundleRuleRepository handles database operations for bundle rules
type BundleRuleRepository struct{}

// NewBundleRuleRepository creates a new BundleRuleRepository
func NewBundleRuleRepository() *BundleRuleRepository {
	return &BundleRuleRepository{}
}

// Ensure BundleRuleRepository implements BundleRuleRepositoryInterface
var _ BundleRuleRepositoryInterface = (*BundleRuleRepository)(nil)

var bundleRuleColumns = []string{
	"id", "bundle_code", "rule_type", "condition", "required_options", "excluded_options",
	"min_beds", "allowed_build_stages", "min_options_revenue", "effect_revenue", "effect_margin",
}

func scanBundleRule(row sq.RowScanner) (*models.BundleRule, error) {
	var rule models.BundleRule
	var ruleType, condition sql.NullString
	var minBeds sql.NullInt64
	var minRevenue, effectRevenue, effectMargin sql.NullFloat64
	var requiredRaw, excludedRaw, stagesRaw []byte

	err := row.Scan(&rule.ID, &rule.BundleCode, &ruleType, &condition,
		&requiredRaw, &excludedRaw, &minBeds, &stagesRaw,
		&minRevenue, &effectRevenue, &effectMargin)
	if err != nil {
		return nil, err
	}

	rule.RuleType = nullString(ruleType)
	rule.Condition = nullString(condition)
	rule.MinBeds = nullIntPtr(minBeds)
	rule.MinOptionsRevenue = nullFloatPtr(minRevenue)
	rule.EffectRevenue = nullFloatPtr(effectRevenue)
	rule.EffectMargin = nullFloatPtr(effectMargin)

	if rule.RequiredOptions, err = decodeCodeList(requiredRaw); err != nil {
		return nil, err
	}
	if rule.ExcludedOptions, err = decodeCodeList(excludedRaw); err != nil {
		return nil, err
	}
	if rule.AllowedBuildStages, err = decodeCodeList(stagesRaw); err != nil {
		return nil, err
	}
	return &rule, nil
}

// List retrieves bundle rules, optionally filtered by bundle_code
func (r *BundleRuleRepository) List(ctx context.Context, bundleCode *string, skip, limit int) ([]models.BundleRule, error) {
	query := psql.Select(bundleRuleColumns...).
		From("oakfield_bundle_rules").
		OrderBy("id ASC").
		Offset(uint64(skip)).
		Limit(uint64(limit))

	if bundleCode != nil && *bundleCode != "" {
		query = query.Where(sq.Eq{"bundle_code": *bundleCode})
	}

	rows, err := query.RunWith(db.DB).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bundle rules: %w", err)
	}
	defer rows.Close()

	var rules []models.BundleRule
	for rows.Next() {
		rule, err := scanBundleRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bundle rule: %w", err)
		}
		rules = append(rules, *rule)
	}
	return rules, rows.Err()
}

// ListByBundle retrieves every rule attached to a bundle, in id order
func (r *BundleRuleRepository) ListByBundle(ctx context.Context, bundleCode string) ([]models.BundleRule, error) {
	rows, err := psql.Select(bundleRuleColumns...).
		From("oakfield_bundle_rules").
		Where(sq.Eq{"bundle_code": bundleCode}).
		OrderBy("id ASC").
		RunWith(db.DB).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules for bundle %s: %w", bundleCode, err)
	}
	defer rows.Close()

	var rules []models.BundleRule
	for rows.Next() {
		rule, err := scanBundleRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bundle rule: %w", err)
		}
		rules = append(rules, *rule)
	}
	return rules, rows.Err()
}

// GetByID retrieves a single bundle rule
func (r *BundleRuleRepository) GetByID(ctx context.Context, id int) (*models.BundleRule, error) {
	row := psql.Select(bundleRuleColumns...).
		From("oakfield_bundle_rules").
		Where(sq.Eq{"id": id}).
		RunWith(db.DB).
		QueryRowContext(ctx)

	rule, err := scanBundleRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bundle rule %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bundle rule: %w", err)
	}
	return rule, nil
}

// Insert creates a new bundle rule and returns it with its assigned id.
// The referenced bundle must exist; dangling rules are rejected at write time.
func (r *BundleRuleRepository) Insert(ctx context.Context, rule *models.BundleRule) (*models.BundleRule, error) {
	required, err := encodeCodeList(rule.RequiredOptions)
	if err != nil {
		return nil, err
	}
	excluded, err := encodeCodeList(rule.ExcludedOptions)
	if err != nil {
		return nil, err
	}
	stages, err := encodeCodeList(rule.AllowedBuildStages)
	if err != nil {
		return nil, err
	}

	err = psql.Insert("oakfield_bundle_rules").
		Columns("bundle_code", "rule_type", "condition", "required_options", "excluded_options",
			"min_beds", "allowed_build_stages", "min_options_revenue", "effect_revenue", "effect_margin").
		Values(rule.BundleCode, rule.RuleType, rule.Condition, required, excluded,
			rule.MinBeds, stages, rule.MinOptionsRevenue, rule.EffectRevenue, rule.EffectMargin).
		Suffix("RETURNING id").
		RunWith(db.DB).
		QueryRowContext(ctx).
		Scan(&rule.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bundle rule: %w", err)
	}
	return rule, nil
}

// Update applies the provided fields one by one and returns the updated row
func (r *BundleRuleRepository) Update(ctx context.Context, id int, req *models.BundleRuleUpdateRequest) (*models.BundleRule, error) {
	query := psql.Update("oakfield_bundle_rules").Where(sq.Eq{"id": id})

	set := 0
	if req.RuleType != nil {
		query = query.Set("rule_type", *req.RuleType)
		set++
	}
	if req.Condition != nil {
		query = query.Set("condition", *req.Condition)
		set++
	}
	if req.RequiredOptions != nil {
		encoded, err := encodeCodeList(*req.RequiredOptions)
		if err != nil {
			return nil, err
		}
		query = query.Set("required_options", encoded)
		set++
	}
	if req.ExcludedOptions != nil {
		encoded, err := encodeCodeList(*req.ExcludedOptions)
		if err != nil {
			return nil, err
		}
		query = query.Set("excluded_options", encoded)
		set++
	}
	if req.MinBeds != nil {
		query = query.Set("min_beds", *req.MinBeds)
		set++
	}
	if req.AllowedBuildStages != nil {
		encoded, err := encodeCodeList(*req.AllowedBuildStages)
		if err != nil {
			return nil, err
		}
		query = query.Set("allowed_build_stages", encoded)
		set++
	}
	if req.MinOptionsRevenue != nil {
		query = query.Set("min_options_revenue", *req.MinOptionsRevenue)
		set++
	}
	if req.EffectRevenue != nil {
		query = query.Set("effect_revenue", *req.EffectRevenue)
		set++
	}
	if req.EffectMargin != nil {
		query = query.Set("effect_margin", *req.EffectMargin)
		set++
	}

	if set > 0 {
		result, err := query.RunWith(db.DB).ExecContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to update bundle rule: %w", err)
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return nil, fmt.Errorf("bundle rule %d: %w", id, ErrNotFound)
		}
	}

	return r.GetByID(ctx, id)
}

// Delete removes a bundle rule by id
func (r *BundleRuleRepository) Delete(ctx context.Context, id int) error {
	result, err := psql.Delete("oakfield_bundle_rules").
		Where(sq.Eq{"id": id}).
		RunWith(db.DB).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete bundle rule: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("bundle rule %d: %w", id, ErrNotFound)
	}
	return nil
}
