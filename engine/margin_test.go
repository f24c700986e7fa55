package engine

import (
	"testing"

	"oakfield-backend/models"
)

func devBasket(devCode string, revenue, marginPct float64) models.OptionBasket {
	b := models.OptionBasket{
		OptionsRevenue:       floatPtr(revenue),
		OptionsMarginPercent: floatPtr(marginPct),
	}
	if devCode != "" {
		b.DevelopmentCode = strPtr(devCode)
	}
	return b
}

func TestSummarizeGroupsByDevelopment(t *testing.T) {
	baskets := []models.OptionBasket{
		devBasket("PL-001", 8000, 20),
		devBasket("", 3000, 10),
	}

	report := SummarizeMargins(baskets)
	if report.Message != "" {
		t.Fatalf("expected no message for non-empty input, got %q", report.Message)
	}
	if len(report.Data) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(report.Data))
	}

	// Sorted by development code: PL-001 before UNKNOWN
	first := report.Data[0]
	if first.DevelopmentCode != "PL-001" || first.BasketCount != 1 || first.AvgOptionsRevenue != 8000.0 {
		t.Fatalf("unexpected PL-001 group: %+v", first)
	}
	second := report.Data[1]
	if second.DevelopmentCode != UnknownDevelopment || second.BasketCount != 1 || second.AvgOptionsRevenue != 3000.0 {
		t.Fatalf("unexpected UNKNOWN group: %+v", second)
	}
}

func TestSummarizeGroupCountsSumToTotal(t *testing.T) {
	baskets := []models.OptionBasket{
		devBasket("PL-001", 100, 1),
		devBasket("PL-001", 200, 2),
		devBasket("PL-002", 300, 3),
		devBasket("", 400, 4),
		devBasket("", 500, 5),
	}

	report := SummarizeMargins(baskets)
	total := 0
	unknownGroups := 0
	for _, summary := range report.Data {
		total += summary.BasketCount
		if summary.DevelopmentCode == UnknownDevelopment {
			unknownGroups++
		}
	}
	if total != len(baskets) {
		t.Fatalf("group counts sum to %d, want %d", total, len(baskets))
	}
	if unknownGroups != 1 {
		t.Fatalf("expected exactly one UNKNOWN group, got %d", unknownGroups)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	report := SummarizeMargins(nil)
	if report.Message != "No baskets found" {
		t.Fatalf("expected explicit no-baskets message, got %q", report.Message)
	}
	if len(report.Data) != 0 {
		t.Fatalf("expected empty data, got %d rows", len(report.Data))
	}
}

func TestSummarizeAveragesAndRounding(t *testing.T) {
	baskets := []models.OptionBasket{
		devBasket("PL-001", 1000, 30.555),
		devBasket("PL-001", 2000, 30.55),
		{DevelopmentCode: strPtr("PL-001")}, // all numerics missing, treated as 0.0
	}

	report := SummarizeMargins(baskets)
	if len(report.Data) != 1 {
		t.Fatalf("expected 1 group, got %d", len(report.Data))
	}
	group := report.Data[0]
	if group.AvgOptionsRevenue != 1000.0 {
		t.Fatalf("avg revenue = %v, want 1000.0", group.AvgOptionsRevenue)
	}
	// (30.555 + 30.55 + 0) / 3 = 20.368333... -> 20.37
	if group.AvgMarginPercent != 20.37 {
		t.Fatalf("avg margin = %v, want 20.37", group.AvgMarginPercent)
	}
}

func TestSummarizeBelowTargetAndBundleCounts(t *testing.T) {
	under := devBasket("PL-001", 100, 10)
	under.MarginDeltaPercent = floatPtr(-2.5)
	under.BundlesTriggered = []string{"EV_READY"}

	over := devBasket("PL-001", 100, 40)
	over.MarginDeltaPercent = floatPtr(5)
	over.BundleOffered = strPtr("EV_READY")

	flat := devBasket("PL-001", 100, 25) // nil delta counts as 0, not below target

	report := SummarizeMargins([]models.OptionBasket{under, over, flat})
	group := report.Data[0]
	if group.BasketsBelowTarget != 1 {
		t.Fatalf("below target = %d, want 1", group.BasketsBelowTarget)
	}
	if group.BundlesTriggeredCount != 1 {
		t.Fatalf("triggered count = %d, want 1", group.BundlesTriggeredCount)
	}
	if group.BundleOfferedCount != 1 {
		t.Fatalf("offered count = %d, want 1", group.BundleOfferedCount)
	}
}
