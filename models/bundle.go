package models

// Bundle represents a sellable combination of options offered as an upsell
type Bundle struct {
	BundleCode        string   `json:"bundle_code"`
	BundleName        string   `json:"bundle_name"`
	Description       string   `json:"description"`
	AdditionalRevenue *float64 `json:"additional_revenue"`
	AdditionalMargin  *float64 `json:"additional_margin"`
	MarginPercent     *float64 `json:"margin_percent"`
}

// BundleUpdateRequest carries the mutable fields of a bundle.
// Nil fields are left untouched.
type BundleUpdateRequest struct {
	BundleName        *string  `json:"bundle_name"`
	Description       *string  `json:"description"`
	AdditionalRevenue *float64 `json:"additional_revenue"`
	AdditionalMargin  *float64 `json:"additional_margin"`
	MarginPercent     *float64 `json:"margin_percent"`
}
