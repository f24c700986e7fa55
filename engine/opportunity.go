package engine

import (
	"oakfield-backend/models"
)

// FindMissedOpportunities finds baskets where bundle rules fired but no bundle
// was actually offered, and estimates the forgone revenue. A triggered bundle
// code with no matching catalogue row contributes 0.0 rather than aborting the
// report.
func FindMissedOpportunities(baskets []models.OptionBasket, bundlesByCode map[string]models.Bundle) models.OpportunityReport {
	missed := []models.MissedOpportunity{}

	for _, b := range baskets {
		if len(b.BundlesTriggered) == 0 {
			continue
		}
		if b.BundleOffered != nil && *b.BundleOffered != "" {
			continue
		}

		var totalPotential float64
		for _, bundleCode := range b.BundlesTriggered {
			bundle, ok := bundlesByCode[bundleCode]
			if !ok {
				continue
			}
			totalPotential += floatOrZero(bundle.AdditionalRevenue)
		}

		missed = append(missed, models.MissedOpportunity{
			BasketID:               b.ID,
			DevelopmentCode:        b.DevelopmentCode,
			PlotReference:          b.PlotReference,
			CustomerName:           b.CustomerName,
			HouseType:              b.HouseType,
			BuildStage:             b.BuildStage,
			TriggeredBundles:       b.BundlesTriggered,
			EstimatedMissedRevenue: round2(totalPotential),
		})
	}

	return models.OpportunityReport{
		MissedOpportunityCount: len(missed),
		Data:                   missed,
	}
}
