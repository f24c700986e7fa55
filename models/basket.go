package models

// OptionBasket is a customer's selected set of options for a given plot.
// MarginDeltaPercent is derived: options_margin_percent - margin_target_percent.
type OptionBasket struct {
	ID                   int      `json:"id"`
	DevelopmentCode      *string  `json:"development_code"`
	Character            string   `json:"character"`
	PlotReference        string   `json:"plot_reference"`
	HouseType            string   `json:"house_type"`
	Beds                 int      `json:"beds"`
	CustomerName         string   `json:"customer_name"`
	BuildStage           string   `json:"build_stage"`
	SelectedOptions      []string `json:"selected_options"`
	OptionsRevenue       *float64 `json:"options_revenue"`
	OptionsCost          *float64 `json:"options_cost"`
	OptionsMarginPercent *float64 `json:"options_margin_percent"`
	MarginTargetPercent  *float64 `json:"margin_target_percent"`
	MarginDeltaPercent   *float64 `json:"margin_delta_percent"`
	BundlesTriggered     []string `json:"bundles_triggered"`
	BundleOffered        *string  `json:"bundle_offered"`
	DemoPurpose          string   `json:"demo_purpose"`
}

// BasketUpdateRequest carries the mutable fields of a basket.
// Nil fields are left untouched.
type BasketUpdateRequest struct {
	SelectedOptions      *[]string `json:"selected_options"`
	OptionsRevenue       *float64  `json:"options_revenue"`
	OptionsCost          *float64  `json:"options_cost"`
	OptionsMarginPercent *float64  `json:"options_margin_percent"`
	MarginTargetPercent  *float64  `json:"margin_target_percent"`
	BundlesTriggered     *[]string `json:"bundles_triggered"`
	BundleOffered        *string   `json:"bundle_offered"`
	BuildStage           *string   `json:"build_stage"`
	DemoPurpose          *string   `json:"demo_purpose"`
}

// BasketFilterParams represents optional filter parameters for baskets
type BasketFilterParams struct {
	DevelopmentCode *string
	HouseType       *string
	BuildStage      *string
	Character       *string
}
