package models

// Development represents a residential development site
type Development struct {
	DevCode         string   `json:"dev_code"`
	DevelopmentName string   `json:"development_name"`
	Region          string   `json:"region"`
	SiteManager     string   `json:"site_manager"`
	Character       string   `json:"character"`
	TargetBasketMin *float64 `json:"target_basket_min"`
	TargetBasketMax *float64 `json:"target_basket_max"`
	PlotCountMin    *int     `json:"plot_count_min"`
	PlotCountMax    *int     `json:"plot_count_max"`
	Notes           string   `json:"notes"`
}

// DevelopmentUpdateRequest carries the mutable fields of a development.
// Nil fields are left untouched.
type DevelopmentUpdateRequest struct {
	DevelopmentName *string  `json:"development_name"`
	Region          *string  `json:"region"`
	SiteManager     *string  `json:"site_manager"`
	Character       *string  `json:"character"`
	TargetBasketMin *float64 `json:"target_basket_min"`
	TargetBasketMax *float64 `json:"target_basket_max"`
	PlotCountMin    *int     `json:"plot_count_min"`
	PlotCountMax    *int     `json:"plot_count_max"`
	Notes           *string  `json:"notes"`
}
