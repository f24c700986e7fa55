package repository

import (
	"strings"
	"testing"

	"oakfield-backend/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestInsertDeltaDerivedFromBothMargins(t *testing.T) {
	delta := marginDelta(floatPtr(30), floatPtr(25))
	if delta == nil || *delta != 5 {
		t.Fatalf("marginDelta(30, 25) = %v, want 5", delta)
	}

	if marginDelta(nil, floatPtr(25)) != nil {
		t.Fatal("delta must be nil when options margin is absent")
	}
	if marginDelta(floatPtr(30), nil) != nil {
		t.Fatal("delta must be nil when margin target is absent")
	}
}

func TestUpdateDeltaUsesIncomingMarginValue(t *testing.T) {
	req := &models.BasketUpdateRequest{OptionsMarginPercent: floatPtr(30)}

	query, set, err := buildBasketUpdate(1, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set != 1 {
		t.Fatalf("set = %d, want 1", set)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The delta side being patched must come in as a bind parameter; a bare
	// options_margin_percent reference would resolve to the pre-update value
	if !strings.Contains(sql, "margin_delta_percent = $2 - margin_target_percent") {
		t.Fatalf("delta must be derived from the incoming margin, got: %s", sql)
	}
	if strings.Contains(sql, "margin_delta_percent = options_margin_percent") {
		t.Fatalf("delta references the stale margin column: %s", sql)
	}
	want := []any{30.0, 30.0, 1}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("args[%d] = %v, want %v", i, args[i], want[i])
		}
	}
}

func TestUpdateDeltaUsesIncomingTargetValue(t *testing.T) {
	req := &models.BasketUpdateRequest{MarginTargetPercent: floatPtr(25)}

	query, _, err := buildBasketUpdate(7, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(sql, "margin_delta_percent = options_margin_percent - $2") {
		t.Fatalf("delta must subtract the incoming target, got: %s", sql)
	}
	if args[1] != 25.0 {
		t.Fatalf("args[1] = %v, want 25", args[1])
	}
}

func TestUpdateDeltaComputedWhenBothMarginsPatched(t *testing.T) {
	req := &models.BasketUpdateRequest{
		OptionsMarginPercent: floatPtr(30),
		MarginTargetPercent:  floatPtr(25),
	}

	query, _, err := buildBasketUpdate(1, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both sides incoming: the delta is a plain value, no column references
	if !strings.Contains(sql, "margin_delta_percent = $3") {
		t.Fatalf("delta should be bound as a plain value, got: %s", sql)
	}
	if args[2] != 5.0 {
		t.Fatalf("args[2] = %v, want 5", args[2])
	}
}

func TestUpdateWithoutMarginsLeavesDeltaAlone(t *testing.T) {
	stage := "second_fix"
	req := &models.BasketUpdateRequest{BuildStage: &stage}

	query, set, err := buildBasketUpdate(1, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set != 1 {
		t.Fatalf("set = %d, want 1", set)
	}

	sql, _, err := query.ToSql()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(sql, "margin_delta_percent") {
		t.Fatalf("delta must not be touched by a non-margin patch: %s", sql)
	}
}
