package engine

import (
	"testing"

	"oakfield-backend/models"
)

func buildBasket(beds int, buildStage string, selected []string) *models.OptionBasket {
	return &models.OptionBasket{
		ID:              1,
		Beds:            beds,
		BuildStage:      buildStage,
		SelectedOptions: selected,
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestMinBedsRuleFails(t *testing.T) {
	basket := buildBasket(3, "foundation", []string{"OPT-EV-CHRG"})
	rules := []models.BundleRule{{ID: 1, BundleCode: "EV_READY", RuleType: "min_beds", MinBeds: intPtr(4)}}

	result := Evaluate(basket, "EV_READY", rules)
	if result.Eligible {
		t.Fatalf("expected bundle to be ineligible")
	}
	if len(result.Rules) != 1 {
		t.Fatalf("expected 1 rule evaluated, got %d", len(result.Rules))
	}
	failed := result.Rules[0].FailedConstraints
	if len(failed) != 1 || failed[0] != "min_beds" {
		t.Fatalf("expected failed constraint min_beds, got %v", failed)
	}
}

func TestMinBedsRulePasses(t *testing.T) {
	basket := buildBasket(3, "foundation", []string{"OPT-EV-CHRG"})
	rules := []models.BundleRule{{ID: 1, BundleCode: "EV_READY", MinBeds: intPtr(3)}}

	result := Evaluate(basket, "EV_READY", rules)
	if !result.Eligible {
		t.Fatalf("expected bundle to be eligible, failures: %v", result.Rules)
	}
}

func TestZeroRulesIsVacuouslyEligible(t *testing.T) {
	basket := buildBasket(1, "", nil)

	result := Evaluate(basket, "ANY", nil)
	if !result.Eligible {
		t.Fatalf("expected bundle with zero rules to be eligible for every basket")
	}
	if len(result.Rules) != 0 {
		t.Fatalf("expected no rule checks, got %d", len(result.Rules))
	}
}

func TestAllNilFieldsAlwaysSatisfied(t *testing.T) {
	basket := buildBasket(0, "", nil)
	rules := []models.BundleRule{{ID: 7, RuleType: "build_stage"}}

	result := Evaluate(basket, "ANY", rules)
	if !result.Eligible {
		t.Fatalf("rule with all nil fields must impose no constraint")
	}
	if !result.Rules[0].Satisfied {
		t.Fatalf("expected rule check to be satisfied")
	}
}

func TestRequiredOptionsAgainstEmptyBasket(t *testing.T) {
	basket := buildBasket(4, "roofing", nil)
	rules := []models.BundleRule{{ID: 2, RequiredOptions: []string{"OPT-KIT-PREM"}}}

	result := Evaluate(basket, "KITCHEN_PLUS", rules)
	if result.Eligible {
		t.Fatalf("expected required option to fail against empty basket")
	}
	if result.Rules[0].FailedConstraints[0] != "required_options" {
		t.Fatalf("expected required_options failure, got %v", result.Rules[0].FailedConstraints)
	}
}

func TestExcludedOptionsFail(t *testing.T) {
	basket := buildBasket(4, "roofing", []string{"OPT-SOLAR", "OPT-EV-CHRG"})
	rules := []models.BundleRule{{ID: 3, ExcludedOptions: []string{"OPT-SOLAR"}}}

	result := Evaluate(basket, "ECO_PACK", rules)
	if result.Eligible {
		t.Fatalf("expected excluded option to make bundle ineligible")
	}
}

func TestAllowedBuildStages(t *testing.T) {
	basket := buildBasket(4, "foundation", nil)
	rules := []models.BundleRule{{ID: 4, AllowedBuildStages: []string{"pre_construction", "foundation"}}}

	result := Evaluate(basket, "EARLY_BIRD", rules)
	if !result.Eligible {
		t.Fatalf("expected foundation stage to be allowed")
	}

	basket.BuildStage = "completed"
	result = Evaluate(basket, "EARLY_BIRD", rules)
	if result.Eligible {
		t.Fatalf("expected completed stage to be rejected")
	}
}

func TestMinOptionsRevenue(t *testing.T) {
	basket := buildBasket(4, "foundation", nil)
	basket.OptionsRevenue = floatPtr(4999.99)
	rules := []models.BundleRule{{ID: 5, MinOptionsRevenue: floatPtr(5000)}}

	result := Evaluate(basket, "BIG_SPENDER", rules)
	if result.Eligible {
		t.Fatalf("expected revenue below floor to fail")
	}

	basket.OptionsRevenue = floatPtr(5000)
	result = Evaluate(basket, "BIG_SPENDER", rules)
	if !result.Eligible {
		t.Fatalf("expected revenue at floor to pass")
	}

	// nil revenue counts as 0.0, which still fails the floor
	basket.OptionsRevenue = nil
	result = Evaluate(basket, "BIG_SPENDER", rules)
	if result.Eligible {
		t.Fatalf("expected missing revenue to be treated as 0.0")
	}
}

func TestConjunctionAcrossRules(t *testing.T) {
	basket := buildBasket(4, "foundation", []string{"OPT-EV-CHRG"})
	satisfied := models.BundleRule{ID: 1, MinBeds: intPtr(3)}
	binding := models.BundleRule{ID: 2, RequiredOptions: []string{"OPT-SOLAR"}}

	result := Evaluate(basket, "EV_READY", []models.BundleRule{satisfied, binding})
	if result.Eligible {
		t.Fatalf("one failing rule must make the whole bundle ineligible")
	}

	// Removing the binding rule can only keep-or-increase eligibility
	result = Evaluate(basket, "EV_READY", []models.BundleRule{satisfied})
	if !result.Eligible {
		t.Fatalf("expected bundle to become eligible once binding rule is removed")
	}
}

func TestSameRuleTypeRulesBothApply(t *testing.T) {
	basket := buildBasket(3, "foundation", nil)
	rules := []models.BundleRule{
		{ID: 1, RuleType: "min_beds", MinBeds: intPtr(2)},
		{ID: 2, RuleType: "min_beds", MinBeds: intPtr(4)},
	}

	result := Evaluate(basket, "FAMILY", rules)
	if result.Eligible {
		t.Fatalf("rules of the same type are conjunctive, not overriding")
	}
	if !result.Rules[0].Satisfied || result.Rules[1].Satisfied {
		t.Fatalf("expected first rule satisfied and second failed, got %+v", result.Rules)
	}
}

func TestRuleTypeLabelIsNotBranchedOn(t *testing.T) {
	// A rule labelled min_beds with a populated revenue floor still enforces it
	basket := buildBasket(5, "foundation", nil)
	rules := []models.BundleRule{{ID: 1, RuleType: "min_beds", MinOptionsRevenue: floatPtr(1000)}}

	result := Evaluate(basket, "MIXED", rules)
	if result.Eligible {
		t.Fatalf("populated fields must be enforced regardless of rule_type label")
	}
}
