package engine

import (
	"testing"

	"oakfield-backend/models"
)

func bundleCatalog(bundles ...models.Bundle) map[string]models.Bundle {
	byCode := make(map[string]models.Bundle, len(bundles))
	for _, b := range bundles {
		byCode[b.BundleCode] = b
	}
	return byCode
}

func TestMissedOpportunityDetected(t *testing.T) {
	baskets := []models.OptionBasket{{
		ID:               42,
		CustomerName:     "J. Whitfield",
		PlotReference:    "P-014",
		BundlesTriggered: []string{"EV_READY"},
	}}
	catalog := bundleCatalog(models.Bundle{BundleCode: "EV_READY", AdditionalRevenue: floatPtr(2000)})

	report := FindMissedOpportunities(baskets, catalog)
	if report.MissedOpportunityCount != 1 {
		t.Fatalf("expected 1 missed opportunity, got %d", report.MissedOpportunityCount)
	}
	missed := report.Data[0]
	if missed.BasketID != 42 || missed.EstimatedMissedRevenue != 2000.0 {
		t.Fatalf("unexpected record: %+v", missed)
	}
	if len(missed.TriggeredBundles) != 1 || missed.TriggeredBundles[0] != "EV_READY" {
		t.Fatalf("expected triggered bundle codes carried through, got %v", missed.TriggeredBundles)
	}
}

func TestOfferedBasketIsNotMissed(t *testing.T) {
	baskets := []models.OptionBasket{{
		ID:               1,
		BundlesTriggered: []string{"EV_READY"},
		BundleOffered:    strPtr("EV_READY"),
	}}
	catalog := bundleCatalog(models.Bundle{BundleCode: "EV_READY", AdditionalRevenue: floatPtr(2000)})

	report := FindMissedOpportunities(baskets, catalog)
	if report.MissedOpportunityCount != 0 {
		t.Fatalf("basket with an offered bundle must not qualify, got %d", report.MissedOpportunityCount)
	}
}

func TestNoTriggersIsNotMissed(t *testing.T) {
	baskets := []models.OptionBasket{{ID: 1}}

	report := FindMissedOpportunities(baskets, bundleCatalog())
	if report.MissedOpportunityCount != 0 {
		t.Fatalf("basket with no triggered bundles must not qualify, got %d", report.MissedOpportunityCount)
	}
}

func TestGhostBundleContributesZero(t *testing.T) {
	baskets := []models.OptionBasket{{
		ID:               9,
		BundlesTriggered: []string{"GHOST_BUNDLE"},
	}}

	report := FindMissedOpportunities(baskets, bundleCatalog())
	if report.MissedOpportunityCount != 1 {
		t.Fatalf("basket must still appear when its bundle is missing from the catalogue")
	}
	if report.Data[0].EstimatedMissedRevenue != 0.0 {
		t.Fatalf("missing bundle must contribute exactly 0.0, got %v", report.Data[0].EstimatedMissedRevenue)
	}
}

func TestEstimateSumsAcrossTriggeredBundles(t *testing.T) {
	baskets := []models.OptionBasket{{
		ID:               3,
		BundlesTriggered: []string{"EV_READY", "KITCHEN_PLUS", "GHOST"},
	}}
	catalog := bundleCatalog(
		models.Bundle{BundleCode: "EV_READY", AdditionalRevenue: floatPtr(2000)},
		models.Bundle{BundleCode: "KITCHEN_PLUS", AdditionalRevenue: floatPtr(1250.5)},
		models.Bundle{BundleCode: "NO_REVENUE"},
	)

	report := FindMissedOpportunities(baskets, catalog)
	if report.Data[0].EstimatedMissedRevenue != 3250.5 {
		t.Fatalf("estimate = %v, want 3250.5", report.Data[0].EstimatedMissedRevenue)
	}
}

func TestDevelopmentFilterIsCallersResponsibility(t *testing.T) {
	// The detector operates on the snapshot it is given; filtering by
	// development happens at the repository read.
	dev := strPtr("PL-001")
	baskets := []models.OptionBasket{
		{ID: 1, DevelopmentCode: dev, BundlesTriggered: []string{"EV_READY"}},
		{ID: 2, BundlesTriggered: []string{"EV_READY"}},
	}
	catalog := bundleCatalog(models.Bundle{BundleCode: "EV_READY", AdditionalRevenue: floatPtr(100)})

	report := FindMissedOpportunities(baskets, catalog)
	if report.MissedOpportunityCount != 2 {
		t.Fatalf("expected both baskets in snapshot to qualify, got %d", report.MissedOpportunityCount)
	}
}
