package entity

import (
	"testing"
	"time"
)

func TestDiscountActive(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	cases := []struct {
		name    string
		product Product
		want    bool
	}{
		{"no discount", Product{DiscountPercent: 0}, false},
		{"open window", Product{DiscountPercent: 20}, true},
		{"inside window", Product{DiscountPercent: 20, DiscountStartDate: &yesterday, DiscountEndDate: &tomorrow}, true},
		{"not started", Product{DiscountPercent: 20, DiscountStartDate: &tomorrow}, false},
		{"expired", Product{DiscountPercent: 20, DiscountEndDate: &yesterday}, false},
		{"open ended start", Product{DiscountPercent: 20, DiscountStartDate: &yesterday}, true},
		{"open ended end", Product{DiscountPercent: 20, DiscountEndDate: &tomorrow}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.product.DiscountActive(); got != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCurrentPrice(t *testing.T) {
	p := Product{Price: 100, DiscountPercent: 25}
	if got := p.CurrentPrice(); !almostEqual(got, 75) {
		t.Errorf("Expected 75, got %v", got)
	}

	tomorrow := time.Now().AddDate(0, 0, 1)
	notYet := Product{Price: 100, DiscountPercent: 25, DiscountStartDate: &tomorrow}
	if got := notYet.CurrentPrice(); !almostEqual(got, 100) {
		t.Errorf("Expected full price 100, got %v", got)
	}
}

func TestVariantLabel(t *testing.T) {
	v := ProductVariant{Size: "M", Color: "Rojo"}
	if got := v.Label(); got != "Rojo - Talla M" {
		t.Errorf("Unexpected label %q", got)
	}
}
