package engine

import (
	"oakfield-backend/models"
)

// Evaluate decides whether a bundle is eligible for a basket. A bundle is
// eligible iff every attached rule is satisfied; a bundle with zero rules is
// vacuously eligible. On each rule only the non-nil fields are constraints.
// Pure: persisting the outcome into bundles_triggered is the caller's job.
func Evaluate(basket *models.OptionBasket, bundleCode string, rules []models.BundleRule) models.EligibilityResult {
	result := models.EligibilityResult{
		BasketID:   basket.ID,
		BundleCode: bundleCode,
		Eligible:   true,
		Rules:      []models.RuleCheck{},
	}

	for _, rule := range rules {
		check := evaluateRule(basket, rule)
		if !check.Satisfied {
			result.Eligible = false
		}
		result.Rules = append(result.Rules, check)
	}

	return result
}

// evaluateRule applies every populated constraint on a single rule row.
// rule_type is recorded in the check but never branched on.
func evaluateRule(basket *models.OptionBasket, rule models.BundleRule) models.RuleCheck {
	check := models.RuleCheck{
		RuleID:            rule.ID,
		RuleType:          rule.RuleType,
		Condition:         rule.Condition,
		Satisfied:         true,
		FailedConstraints: []string{},
	}

	for _, code := range rule.RequiredOptions {
		if !contains(basket.SelectedOptions, code) {
			failConstraint(&check, "required_options")
			break
		}
	}

	for _, code := range rule.ExcludedOptions {
		if contains(basket.SelectedOptions, code) {
			failConstraint(&check, "excluded_options")
			break
		}
	}

	if rule.MinBeds != nil && basket.Beds < *rule.MinBeds {
		failConstraint(&check, "min_beds")
	}

	if rule.AllowedBuildStages != nil && !contains(rule.AllowedBuildStages, basket.BuildStage) {
		failConstraint(&check, "allowed_build_stages")
	}

	if rule.MinOptionsRevenue != nil && floatOrZero(basket.OptionsRevenue) < *rule.MinOptionsRevenue {
		failConstraint(&check, "min_options_revenue")
	}

	return check
}

func failConstraint(check *models.RuleCheck, constraint string) {
	check.Satisfied = false
	check.FailedConstraints = append(check.FailedConstraints, constraint)
}

// contains checks if a string slice contains a value
func contains(slice []string, value string) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}
