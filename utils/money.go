package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatGBP formats an amount as a compact sterling string: "£1.2m", "£950k",
// or "£1,200" for smaller amounts. Used for analyst-facing tables.
func FormatGBP(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	var s string
	switch {
	case amount >= 1_000_000:
		s = fmt.Sprintf("£%.1fm", amount/1_000_000)
	case amount >= 10_000:
		s = fmt.Sprintf("£%.0fk", amount/1_000)
	default:
		s = "£" + groupThousands(strconv.FormatFloat(amount, 'f', 0, 64))
	}

	if neg {
		return "-" + s
	}
	return s
}

// groupThousands inserts comma separators into a plain digit string
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/3)

	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
