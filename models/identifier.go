package models

import "strconv"

// BasketRef is a tagged basket identifier. API callers may address a basket by
// its integer id or by an external plot reference; the two are distinguished
// explicitly instead of coercing and catching failures.
type BasketRef struct {
	ID       int
	External string
	IsID     bool
}

// ParseBasketRef classifies a raw path segment as an internal id or an
// external reference.
func ParseBasketRef(raw string) BasketRef {
	if id, err := strconv.Atoi(raw); err == nil {
		return BasketRef{ID: id, IsID: true}
	}
	return BasketRef{External: raw}
}
