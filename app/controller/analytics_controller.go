package controller

import (
	"log"
	"net/http"

	"oakfield-backend/engine"
	"oakfield-backend/models"
	"oakfield-backend/repository"
)

// analyticsFetchLimit caps how many baskets a report is computed over
const analyticsFetchLimit = 1000

// AnalyticsController handles the margin and bundle opportunity reports
type AnalyticsController struct {
	basketRepo repository.BasketRepositoryInterface
	bundleRepo repository.BundleRepositoryInterface
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(
	basketRepo repository.BasketRepositoryInterface,
	bundleRepo repository.BundleRepositoryInterface,
) *AnalyticsController {
	return &AnalyticsController{
		basketRepo: basketRepo,
		bundleRepo: bundleRepo,
	}
}

// MarginSummary handles GET /api/v1/oakfield/analytics/margin-summary?development_code=X
func (c *AnalyticsController) MarginSummary(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 MarginSummary: Received %s request to %s", r.Method, r.URL.Path)

	filters := models.BasketFilterParams{
		DevelopmentCode: optionalQuery(r, "development_code"),
	}

	baskets, err := c.basketRepo.Filter(r.Context(), filters, 0, analyticsFetchLimit)
	if err != nil {
		repoError(w, "Failed to fetch baskets", err)
		return
	}

	report := engine.SummarizeMargins(baskets)

	log.Printf("✅ MarginSummary: Computed summary over %d baskets in %d groups", len(baskets), len(report.Data))
	writeJSON(w, http.StatusOK, report)
}

// BundleOpportunities handles GET /api/v1/oakfield/analytics/bundle-opportunities?development_code=X
func (c *AnalyticsController) BundleOpportunities(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 BundleOpportunities: Received %s request to %s", r.Method, r.URL.Path)

	filters := models.BasketFilterParams{
		DevelopmentCode: optionalQuery(r, "development_code"),
	}

	baskets, err := c.basketRepo.Filter(r.Context(), filters, 0, analyticsFetchLimit)
	if err != nil {
		repoError(w, "Failed to fetch baskets", err)
		return
	}

	bundlesByCode, err := c.bundleRepo.GetAllByCode(r.Context())
	if err != nil {
		repoError(w, "Failed to fetch bundles", err)
		return
	}

	report := engine.FindMissedOpportunities(baskets, bundlesByCode)

	log.Printf("🔍 BundleOpportunities: Found %d missed opportunities across %d baskets", report.MissedOpportunityCount, len(baskets))
	writeJSON(w, http.StatusOK, report)
}
