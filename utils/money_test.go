package utils

import "testing"

func TestFormatGBP(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "£0"},
		{950, "£950"},
		{1200, "£1,200"},
		{950_000, "£950k"},
		{1_200_000, "£1.2m"},
		{-2500, "-£2,500"},
	}

	for _, c := range cases {
		if got := FormatGBP(c.amount); got != c.want {
			t.Fatalf("FormatGBP(%v) = %q, want %q", c.amount, got, c.want)
		}
	}
}
