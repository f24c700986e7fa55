package engine

import (
	"math"
	"sort"

	"oakfield-backend/models"
)

// UnknownDevelopment is the bucket for baskets with no development_code.
// Such baskets are grouped, never dropped.
const UnknownDevelopment = "UNKNOWN"

// SummarizeMargins computes per-development margin statistics over a snapshot
// of baskets. Averages treat missing numerics as 0.0 and are rounded to two
// decimal places. An empty snapshot yields an explicit "no baskets" report,
// distinct from zero-valued summaries. Groups are ordered by development code
// so the report is deterministic.
func SummarizeMargins(baskets []models.OptionBasket) models.MarginSummaryReport {
	if len(baskets) == 0 {
		return models.MarginSummaryReport{
			Message: "No baskets found",
			Data:    []models.DevelopmentMarginSummary{},
		}
	}

	groups := make(map[string][]models.OptionBasket)
	for _, b := range baskets {
		code := UnknownDevelopment
		if b.DevelopmentCode != nil && *b.DevelopmentCode != "" {
			code = *b.DevelopmentCode
		}
		groups[code] = append(groups[code], b)
	}

	codes := make([]string, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	result := make([]models.DevelopmentMarginSummary, 0, len(codes))
	for _, code := range codes {
		devBaskets := groups[code]
		count := len(devBaskets)

		var revenueSum, marginSum, deltaSum float64
		var belowTarget, triggered, offered int
		for _, b := range devBaskets {
			revenueSum += floatOrZero(b.OptionsRevenue)
			marginSum += floatOrZero(b.OptionsMarginPercent)
			deltaSum += floatOrZero(b.MarginDeltaPercent)

			if floatOrZero(b.MarginDeltaPercent) < 0 {
				belowTarget++
			}
			if len(b.BundlesTriggered) > 0 {
				triggered++
			}
			if b.BundleOffered != nil && *b.BundleOffered != "" {
				offered++
			}
		}

		result = append(result, models.DevelopmentMarginSummary{
			DevelopmentCode:       code,
			BasketCount:           count,
			AvgOptionsRevenue:     round2(revenueSum / float64(count)),
			AvgMarginPercent:      round2(marginSum / float64(count)),
			AvgMarginDelta:        round2(deltaSum / float64(count)),
			BasketsBelowTarget:    belowTarget,
			BundlesTriggeredCount: triggered,
			BundleOfferedCount:    offered,
		})
	}

	return models.MarginSummaryReport{Data: result}
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0.0
	}
	return *v
}

// round2 rounds to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
