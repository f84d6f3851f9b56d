package pricing

import "testing"

func TestQuoteSingleSize(t *testing.T) {
	policy := DefaultPolicy()

	quote, err := policy.Quote(SingleSelection("750ml", 1000))
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	if quote.TotalAmount != 70000 {
		t.Errorf("TotalAmount = %v, want 70000", quote.TotalAmount)
	}
	if quote.TotalQuantity != 1000 {
		t.Errorf("TotalQuantity = %d, want 1000", quote.TotalQuantity)
	}
	if quote.PackCount != 84 {
		t.Errorf("PackCount = %d, want 84", quote.PackCount)
	}
}

func TestQuoteMixedSelection(t *testing.T) {
	policy := DefaultPolicy()

	quote, err := policy.Quote(map[string]int{"750ml": 600, "1L": 400})
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	// 600*70 + 400*80
	if quote.TotalAmount != 74000 {
		t.Errorf("TotalAmount = %v, want 74000", quote.TotalAmount)
	}
	if quote.TotalQuantity != 1000 {
		t.Errorf("TotalQuantity = %d, want 1000", quote.TotalQuantity)
	}
	if quote.PackCount != 84 {
		t.Errorf("PackCount = %d, want 84", quote.PackCount)
	}
}

func TestQuoteDeterminism(t *testing.T) {
	policy := DefaultPolicy()
	selection := map[string]int{"750ml": 1200, "1L": 345}

	first, err := policy.Quote(selection)
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	second, err := policy.Quote(selection)
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	if first != second {
		t.Errorf("Quote is not deterministic: %+v vs %+v", first, second)
	}
}

func TestPackRounding(t *testing.T) {
	policy := DefaultPolicy()

	testCases := []struct {
		quantity int
		want     int
	}{
		{1, 1},
		{11, 1},
		{12, 1},
		{13, 2},
		{1000, 84},
		{1200, 100},
		{1201, 101},
	}

	for _, tc := range testCases {
		quote, err := policy.Quote(SingleSelection("750ml", tc.quantity))
		if err != nil {
			t.Fatalf("Quote(%d) failed: %v", tc.quantity, err)
		}
		if quote.PackCount != tc.want {
			t.Errorf("PackCount for quantity %d = %d, want %d", tc.quantity, quote.PackCount, tc.want)
		}
	}
}

func TestQuoteUnknownSize(t *testing.T) {
	policy := DefaultPolicy()

	if _, err := policy.Quote(SingleSelection("2L", 1000)); err == nil {
		t.Error("expected an error for an unrecognized bottle size")
	}
}

func TestQuoteRejectsBadInput(t *testing.T) {
	policy := DefaultPolicy()

	if _, err := policy.Quote(nil); err == nil {
		t.Error("expected an error for an empty selection")
	}
	if _, err := policy.Quote(SingleSelection("750ml", 0)); err == nil {
		t.Error("expected an error for a zero quantity")
	}
	if _, err := policy.Quote(SingleSelection("750ml", -5)); err == nil {
		t.Error("expected an error for a negative quantity")
	}
}

func TestQuoteDoesNotEnforceMinimum(t *testing.T) {
	policy := DefaultPolicy()

	// Quantities below the order minimum still price; the minimum is a
	// call-site validation.
	quote, err := policy.Quote(SingleSelection("750ml", 10))
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if quote.TotalAmount != 700 {
		t.Errorf("TotalAmount = %v, want 700", quote.TotalAmount)
	}

	if err := policy.ValidateQuantity(10); err == nil {
		t.Error("expected ValidateQuantity to reject 10")
	}
	if err := policy.ValidateQuantity(1000); err != nil {
		t.Errorf("ValidateQuantity(1000) failed: %v", err)
	}
}

func TestPolicyOverrides(t *testing.T) {
	policy := DefaultPolicy()
	policy.UnitPrices["500ml"] = 60
	policy.UnitPrices["750ml"] = 75

	quote, err := policy.Quote(map[string]int{"500ml": 100, "750ml": 100})
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if quote.TotalAmount != 60*100+75*100 {
		t.Errorf("TotalAmount = %v, want %d", quote.TotalAmount, 60*100+75*100)
	}
}
