package service

import "testing"

func TestDetectIntent(t *testing.T) {
	svc := &StrategistService{}

	cases := []struct {
		query string
		want  string
	}{
		{"Show me the margin summary", "margin"},
		{"Which developments have weak MARGINS?", "margin"},
		{"Any missed upsell chances?", "bundle"},
		{"What bundles are we leaving on the table?", "bundle"},
		{"List our developments", "development"},
		{"How are the northern sites doing?", "development"},
		{"Is plot 12 eligible for the kitchen pack?", "eligibility"},
		{"Which baskets are at second fix stage?", "eligibility"},
		{"Show the options catalogue", "options"},
		{"What house types do we sell?", "house_types"},
		{"How many beds does the Aspen have?", "house_types"},
		{"Hello there", "general"},
	}

	for _, c := range cases {
		if got := svc.DetectIntent(c.query); got != c.want {
			t.Fatalf("DetectIntent(%q) = %q, want %q", c.query, got, c.want)
		}
	}
}
