package models

// HouseType represents a buildable house design
type HouseType struct {
	ID                  int      `json:"id"`
	Name                string   `json:"name"`
	Beds                int      `json:"beds"`
	BasePrice           *float64 `json:"base_price"`
	MarginTargetPercent *float64 `json:"margin_target_percent"`
	TypicalSpendMin     *float64 `json:"typical_spend_min"`
	TypicalSpendMax     *float64 `json:"typical_spend_max"`
	AvailableAt         string   `json:"available_at"`
}

// HouseTypeUpdateRequest carries the mutable fields of a house type.
// Nil fields are left untouched.
type HouseTypeUpdateRequest struct {
	Name                *string  `json:"name"`
	Beds                *int     `json:"beds"`
	BasePrice           *float64 `json:"base_price"`
	MarginTargetPercent *float64 `json:"margin_target_percent"`
	TypicalSpendMin     *float64 `json:"typical_spend_min"`
	TypicalSpendMax     *float64 `json:"typical_spend_max"`
	AvailableAt         *string  `json:"available_at"`
}
