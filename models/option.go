package models

// Option represents a purchasable upgrade in the options catalogue
type Option struct {
	OptionCode    string   `json:"option_code"`
	DisplayName   string   `json:"display_name"`
	Category      string   `json:"category"`
	InternalCost  *float64 `json:"internal_cost"`
	SellingPrice  *float64 `json:"selling_price"`
	MarginPercent *float64 `json:"margin_percent"`
	Notes         string   `json:"notes"`
}

// OptionUpdateRequest carries the mutable fields of an option.
// Nil fields are left untouched.
type OptionUpdateRequest struct {
	DisplayName   *string  `json:"display_name"`
	Category      *string  `json:"category"`
	InternalCost  *float64 `json:"internal_cost"`
	SellingPrice  *float64 `json:"selling_price"`
	MarginPercent *float64 `json:"margin_percent"`
	Notes         *string  `json:"notes"`
}
