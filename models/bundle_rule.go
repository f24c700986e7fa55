package models

// BundleRule is a constraint attached to a bundle. All rules on a bundle must
// pass for the bundle to be eligible; nil fields impose no constraint.
// RuleType is a categorisation label only and is never branched on.
type BundleRule struct {
	ID                 int      `json:"id"`
	BundleCode         string   `json:"bundle_code"`
	RuleType           string   `json:"rule_type"`
	Condition          string   `json:"condition"`
	RequiredOptions    []string `json:"required_options"`
	ExcludedOptions    []string `json:"excluded_options"`
	MinBeds            *int     `json:"min_beds"`
	AllowedBuildStages []string `json:"allowed_build_stages"`
	MinOptionsRevenue  *float64 `json:"min_options_revenue"`
	EffectRevenue      *float64 `json:"effect_revenue"`
	EffectMargin       *float64 `json:"effect_margin"`
}

// BundleRuleUpdateRequest carries the mutable fields of a bundle rule.
// Nil fields are left untouched.
type BundleRuleUpdateRequest struct {
	RuleType           *string   `json:"rule_type"`
	Condition          *string   `json:"condition"`
	RequiredOptions    *[]string `json:"required_options"`
	ExcludedOptions    *[]string `json:"excluded_options"`
	MinBeds            *int      `json:"min_beds"`
	AllowedBuildStages *[]string `json:"allowed_build_stages"`
	MinOptionsRevenue  *float64  `json:"min_options_revenue"`
	EffectRevenue      *float64  `json:"effect_revenue"`
	EffectMargin       *float64  `json:"effect_margin"`
}
