package models

// RuleCheck reports the evaluation of a single bundle rule against a basket
type RuleCheck struct {
	RuleID            int      `json:"rule_id"`
	RuleType          string   `json:"rule_type"`          // categorisation label, informational
	Condition         string   `json:"condition"`          // free-form descriptor from the rule row
	Satisfied         bool     `json:"satisfied"`
	FailedConstraints []string `json:"failed_constraints"` // empty when satisfied
}

// EligibilityResult is the full outcome of evaluating a bundle against a basket
type EligibilityResult struct {
	BasketID   int         `json:"basket_id"`
	BundleCode string      `json:"bundle_code"`
	Eligible   bool        `json:"eligible"`
	Rules      []RuleCheck `json:"rules_evaluated"`
}

// DevelopmentMarginSummary holds per-development basket statistics
type DevelopmentMarginSummary struct {
	DevelopmentCode       string  `json:"development_code"`
	BasketCount           int     `json:"basket_count"`
	AvgOptionsRevenue     float64 `json:"avg_options_revenue"`
	AvgMarginPercent      float64 `json:"avg_margin_percent"`
	AvgMarginDelta        float64 `json:"avg_margin_delta"`
	BasketsBelowTarget    int     `json:"baskets_below_target"`
	BundlesTriggeredCount int     `json:"bundles_triggered_count"`
	BundleOfferedCount    int     `json:"bundle_offered_count"`
}

// MarginSummaryReport wraps the per-development summaries. Message is set only
// when there were no baskets at all, which is distinct from zero-valued rows.
type MarginSummaryReport struct {
	Message string                     `json:"message,omitempty"`
	Data    []DevelopmentMarginSummary `json:"data"`
}

// MissedOpportunity is a basket where bundle rules fired but nothing was offered
type MissedOpportunity struct {
	BasketID                int      `json:"basket_id"`
	DevelopmentCode         *string  `json:"development_code"`
	PlotReference           string   `json:"plot_reference"`
	CustomerName            string   `json:"customer_name"`
	HouseType               string   `json:"house_type"`
	BuildStage              string   `json:"build_stage"`
	TriggeredBundles        []string `json:"triggered_bundles"`
	EstimatedMissedRevenue  float64  `json:"estimated_missed_revenue"`
}

// OpportunityReport is the full missed-opportunity listing
type OpportunityReport struct {
	MissedOpportunityCount int                 `json:"missed_opportunity_count"`
	Data                   []MissedOpportunity `json:"data"`
}
