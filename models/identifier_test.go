package models

import "testing"

func TestParseBasketRefNumeric(t *testing.T) {
	ref := ParseBasketRef("42")
	if !ref.IsID {
		t.Fatal("expected numeric ref to resolve as an id")
	}
	if ref.ID != 42 {
		t.Fatalf("ID = %d, want 42", ref.ID)
	}
}

func TestParseBasketRefExternal(t *testing.T) {
	ref := ParseBasketRef("PL-204")
	if ref.IsID {
		t.Fatal("expected plot reference to resolve as external")
	}
	if ref.External != "PL-204" {
		t.Fatalf("External = %q, want %q", ref.External, "PL-204")
	}
}

func TestParseBasketRefNegativeNumber(t *testing.T) {
	// Negative numbers still parse as ids; the lookup will simply miss
	ref := ParseBasketRef("-1")
	if !ref.IsID || ref.ID != -1 {
		t.Fatalf("got %+v, want numeric -1", ref)
	}
}
