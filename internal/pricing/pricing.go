package pricing

import (
	"fmt"
	"sort"
)

// Default policy values, used for sizes the admin has not overridden.
const (
	DefaultUnitsPerPack    = 12
	DefaultMinimumQuantity = 1000
)

// defaultUnitPrices are the reference per-bottle prices in whole rupees.
var defaultUnitPrices = map[string]int64{
	"750ml": 70,
	"1L":    80,
}

// Policy is the single source of pricing truth: per-size unit prices, the
// pack size, and the minimum order quantity. It is loaded from the price
// settings table and injected wherever price or quantity rules apply.
type Policy struct {
	UnitPrices      map[string]int64
	UnitsPerPack    int
	MinimumQuantity int
}

// DefaultPolicy returns the compiled-in reference policy.
func DefaultPolicy() Policy {
	prices := make(map[string]int64, len(defaultUnitPrices))
	for size, price := range defaultUnitPrices {
		prices[size] = price
	}
	return Policy{
		UnitPrices:      prices,
		UnitsPerPack:    DefaultUnitsPerPack,
		MinimumQuantity: DefaultMinimumQuantity,
	}
}

// Quote is the priced result of a bottle selection.
type Quote struct {
	TotalQuantity int     `json:"total_quantity"`
	TotalAmount   float64 `json:"total_amount"`
	PackCount     int     `json:"pack_count"`
}

// SingleSelection adapts a single size+quantity pair to the mixed form.
func SingleSelection(bottleType string, quantity int) map[string]int {
	return map[string]int{bottleType: quantity}
}

// Quote prices a selection. It is pure: same selection, same result. An
// unrecognized size or a non-positive quantity is an error, never a silent
// zero. The minimum-quantity rule is a call-site concern, not enforced here.
func (p Policy) Quote(selection map[string]int) (Quote, error) {
	if len(selection) == 0 {
		return Quote{}, fmt.Errorf("empty bottle selection")
	}

	// Deterministic iteration keeps error messages stable.
	sizes := make([]string, 0, len(selection))
	for size := range selection {
		sizes = append(sizes, size)
	}
	sort.Strings(sizes)

	var total int64
	var quantity int
	for _, size := range sizes {
		qty := selection[size]
		if qty < 1 {
			return Quote{}, fmt.Errorf("quantity for %s must be at least 1, got %d", size, qty)
		}
		price, ok := p.UnitPrices[size]
		if !ok {
			return Quote{}, fmt.Errorf("no unit price configured for bottle size %q", size)
		}
		total += price * int64(qty)
		quantity += qty
	}

	perPack := p.UnitsPerPack
	if perPack <= 0 {
		perPack = DefaultUnitsPerPack
	}

	return Quote{
		TotalQuantity: quantity,
		TotalAmount:   float64(total),
		PackCount:     (quantity + perPack - 1) / perPack,
	}, nil
}

// ValidateQuantity enforces the minimum order threshold.
func (p Policy) ValidateQuantity(total int) error {
	if total < p.MinimumQuantity {
		return fmt.Errorf("minimum order quantity is %d bottles, got %d", p.MinimumQuantity, total)
	}
	return nil
}
