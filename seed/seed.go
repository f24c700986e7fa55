package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"oakfield-backend/models"
	"oakfield-backend/repository"
)

// file is the YAML layout of a demo data file
type file struct {
	Developments []developmentRow `yaml:"developments"`
	HouseTypes   []houseTypeRow   `yaml:"house_types"`
	Options      []optionRow      `yaml:"options"`
	Bundles      []bundleRow      `yaml:"bundles"`
	BundleRules  []bundleRuleRow  `yaml:"bundle_rules"`
	Baskets      []basketRow      `yaml:"baskets"`
}

type developmentRow struct {
	DevCode         string   `yaml:"dev_code"`
	DevelopmentName string   `yaml:"development_name"`
	Region          string   `yaml:"region"`
	SiteManager     string   `yaml:"site_manager"`
	Character       string   `yaml:"character"`
	TargetBasketMin *float64 `yaml:"target_basket_min"`
	TargetBasketMax *float64 `yaml:"target_basket_max"`
	PlotCountMin    *int     `yaml:"plot_count_min"`
	PlotCountMax    *int     `yaml:"plot_count_max"`
	Notes           string   `yaml:"notes"`
}

type houseTypeRow struct {
	Name                string   `yaml:"name"`
	Beds                int      `yaml:"beds"`
	BasePrice           *float64 `yaml:"base_price"`
	MarginTargetPercent *float64 `yaml:"margin_target_percent"`
	TypicalSpendMin     *float64 `yaml:"typical_spend_min"`
	TypicalSpendMax     *float64 `yaml:"typical_spend_max"`
	AvailableAt         string   `yaml:"available_at"`
}

type optionRow struct {
	OptionCode    string   `yaml:"option_code"`
	DisplayName   string   `yaml:"display_name"`
	Category      string   `yaml:"category"`
	InternalCost  *float64 `yaml:"internal_cost"`
	SellingPrice  *float64 `yaml:"selling_price"`
	MarginPercent *float64 `yaml:"margin_percent"`
	Notes         string   `yaml:"notes"`
}

type bundleRow struct {
	BundleCode        string   `yaml:"bundle_code"`
	BundleName        string   `yaml:"bundle_name"`
	Description       string   `yaml:"description"`
	AdditionalRevenue *float64 `yaml:"additional_revenue"`
	AdditionalMargin  *float64 `yaml:"additional_margin"`
	MarginPercent     *float64 `yaml:"margin_percent"`
}

type bundleRuleRow struct {
	BundleCode         string   `yaml:"bundle_code"`
	RuleType           string   `yaml:"rule_type"`
	Condition          string   `yaml:"condition"`
	RequiredOptions    []string `yaml:"required_options"`
	ExcludedOptions    []string `yaml:"excluded_options"`
	MinBeds            *int     `yaml:"min_beds"`
	AllowedBuildStages []string `yaml:"allowed_build_stages"`
	MinOptionsRevenue  *float64 `yaml:"min_options_revenue"`
	EffectRevenue      *float64 `yaml:"effect_revenue"`
	EffectMargin       *float64 `yaml:"effect_margin"`
}

type basketRow struct {
	DevelopmentCode      *string  `yaml:"development_code"`
	Character            string   `yaml:"character"`
	PlotReference        string   `yaml:"plot_reference"`
	HouseType            string   `yaml:"house_type"`
	Beds                 int      `yaml:"beds"`
	CustomerName         string   `yaml:"customer_name"`
	BuildStage           string   `yaml:"build_stage"`
	SelectedOptions      []string `yaml:"selected_options"`
	OptionsRevenue       *float64 `yaml:"options_revenue"`
	OptionsCost          *float64 `yaml:"options_cost"`
	OptionsMarginPercent *float64 `yaml:"options_margin_percent"`
	MarginTargetPercent  *float64 `yaml:"margin_target_percent"`
	BundlesTriggered     []string `yaml:"bundles_triggered"`
	BundleOffered        *string  `yaml:"bundle_offered"`
	DemoPurpose          string   `yaml:"demo_purpose"`
}

// Repositories bundles the stores the seeder writes through
type Repositories struct {
	Developments repository.DevelopmentRepositoryInterface
	HouseTypes   repository.HouseTypeRepositoryInterface
	Options      repository.OptionRepositoryInterface
	Bundles      repository.BundleRepositoryInterface
	BundleRules  repository.BundleRuleRepositoryInterface
	Baskets      repository.BasketRepositoryInterface
}

// Load reads a YAML demo data file and inserts its rows through the
// repositories. Rows whose code already exists are skipped, so loading the
// same file twice is harmless.
func Load(ctx context.Context, path string, repos Repositories) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var data file
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	seeded, skipped := 0, 0

	for _, row := range data.Developments {
		dev := models.Development{
			DevCode:         row.DevCode,
			DevelopmentName: row.DevelopmentName,
			Region:          row.Region,
			SiteManager:     row.SiteManager,
			Character:       row.Character,
			TargetBasketMin: row.TargetBasketMin,
			TargetBasketMax: row.TargetBasketMax,
			PlotCountMin:    row.PlotCountMin,
			PlotCountMax:    row.PlotCountMax,
			Notes:           row.Notes,
		}
		if err := repos.Developments.Insert(ctx, &dev); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				skipped++
				continue
			}
			return fmt.Errorf("failed to seed development %s: %w", row.DevCode, err)
		}
		seeded++
	}

	for _, row := range data.HouseTypes {
		ht := models.HouseType{
			Name:                row.Name,
			Beds:                row.Beds,
			BasePrice:           row.BasePrice,
			MarginTargetPercent: row.MarginTargetPercent,
			TypicalSpendMin:     row.TypicalSpendMin,
			TypicalSpendMax:     row.TypicalSpendMax,
			AvailableAt:         row.AvailableAt,
		}
		if _, err := repos.HouseTypes.Insert(ctx, &ht); err != nil {
			return fmt.Errorf("failed to seed house type %s: %w", row.Name, err)
		}
		seeded++
	}

	for _, row := range data.Options {
		opt := models.Option{
			OptionCode:    row.OptionCode,
			DisplayName:   row.DisplayName,
			Category:      row.Category,
			InternalCost:  row.InternalCost,
			SellingPrice:  row.SellingPrice,
			MarginPercent: row.MarginPercent,
			Notes:         row.Notes,
		}
		if err := repos.Options.Insert(ctx, &opt); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				skipped++
				continue
			}
			return fmt.Errorf("failed to seed option %s: %w", row.OptionCode, err)
		}
		seeded++
	}

	for _, row := range data.Bundles {
		bundle := models.Bundle{
			BundleCode:        row.BundleCode,
			BundleName:        row.BundleName,
			Description:       row.Description,
			AdditionalRevenue: row.AdditionalRevenue,
			AdditionalMargin:  row.AdditionalMargin,
			MarginPercent:     row.MarginPercent,
		}
		if err := repos.Bundles.Insert(ctx, &bundle); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				skipped++
				continue
			}
			return fmt.Errorf("failed to seed bundle %s: %w", row.BundleCode, err)
		}
		seeded++
	}

	for _, row := range data.BundleRules {
		rule := models.BundleRule{
			BundleCode:         row.BundleCode,
			RuleType:           row.RuleType,
			Condition:          row.Condition,
			RequiredOptions:    row.RequiredOptions,
			ExcludedOptions:    row.ExcludedOptions,
			MinBeds:            row.MinBeds,
			AllowedBuildStages: row.AllowedBuildStages,
			MinOptionsRevenue:  row.MinOptionsRevenue,
			EffectRevenue:      row.EffectRevenue,
			EffectMargin:       row.EffectMargin,
		}
		if _, err := repos.BundleRules.Insert(ctx, &rule); err != nil {
			return fmt.Errorf("failed to seed bundle rule for %s: %w", row.BundleCode, err)
		}
		seeded++
	}

	for _, row := range data.Baskets {
		basket := models.OptionBasket{
			DevelopmentCode:      row.DevelopmentCode,
			Character:            row.Character,
			PlotReference:        row.PlotReference,
			HouseType:            row.HouseType,
			Beds:                 row.Beds,
			CustomerName:         row.CustomerName,
			BuildStage:           row.BuildStage,
			SelectedOptions:      row.SelectedOptions,
			OptionsRevenue:       row.OptionsRevenue,
			OptionsCost:          row.OptionsCost,
			OptionsMarginPercent: row.OptionsMarginPercent,
			MarginTargetPercent:  row.MarginTargetPercent,
			BundlesTriggered:     row.BundlesTriggered,
			BundleOffered:        row.BundleOffered,
			DemoPurpose:          row.DemoPurpose,
		}
		if _, err := repos.Baskets.Insert(ctx, &basket); err != nil {
			return fmt.Errorf("failed to seed basket %s: %w", row.PlotReference, err)
		}
		seeded++
	}

	log.Printf("✅ Seed: Loaded %s (%d rows inserted, %d skipped)", path, seeded, skipped)
	return nil
}
