package entity

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSaleItemSubtotal(t *testing.T) {
	item := NewSaleItem(1, 3, 10.00, 10)
	if !almostEqual(item.Subtotal, 27.00) {
		t.Errorf("Expected subtotal 27.00, got %v", item.Subtotal)
	}

	noDiscount := NewSaleItem(1, 2, 15.50, 0)
	if !almostEqual(noDiscount.Subtotal, 31.00) {
		t.Errorf("Expected subtotal 31.00, got %v", noDiscount.Subtotal)
	}

	fullDiscount := NewSaleItem(1, 4, 9.99, 100)
	if !almostEqual(fullDiscount.Subtotal, 0) {
		t.Errorf("Expected subtotal 0, got %v", fullDiscount.Subtotal)
	}
}

func TestSaleAddItemAppends(t *testing.T) {
	sale := NewSale(nil, PaymentCash)
	sale.AddItem(NewSaleItem(1, 2, 10.00, 0))
	sale.AddItem(NewSaleItem(2, 1, 5.00, 0))

	if len(sale.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(sale.Items))
	}
	if !almostEqual(sale.TotalAmount, 25.00) {
		t.Errorf("Expected total 25.00, got %v", sale.TotalAmount)
	}
}

func TestSaleAddItemMergesSameVariant(t *testing.T) {
	sale := NewSale(nil, PaymentCash)
	sale.AddItem(NewSaleItem(7, 2, 10.00, 10))
	merged := sale.AddItem(NewSaleItem(7, 1, 10.00, 10))

	if !merged {
		t.Fatal("Expected merge for same variant")
	}
	if len(sale.Items) != 1 {
		t.Fatalf("Expected 1 item after merge, got %d", len(sale.Items))
	}
	if sale.Items[0].Quantity != 3 {
		t.Errorf("Expected merged quantity 3, got %d", sale.Items[0].Quantity)
	}
	// 3 * 10.00 * 0.9
	if !almostEqual(sale.Items[0].Subtotal, 27.00) {
		t.Errorf("Expected merged subtotal 27.00, got %v", sale.Items[0].Subtotal)
	}
	if !almostEqual(sale.TotalAmount, 27.00) {
		t.Errorf("Expected total 27.00, got %v", sale.TotalAmount)
	}
}

func TestSaleRemoveItem(t *testing.T) {
	sale := NewSale(nil, PaymentCash)
	sale.AddItem(NewSaleItem(1, 1, 10.00, 0))
	sale.AddItem(NewSaleItem(2, 1, 20.00, 0))

	if !sale.RemoveItem(0) {
		t.Fatal("Expected removal of index 0 to succeed")
	}
	if len(sale.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(sale.Items))
	}
	if sale.Items[0].ProductVariantID != 2 {
		t.Errorf("Expected remaining variant 2, got %d", sale.Items[0].ProductVariantID)
	}
	if !almostEqual(sale.TotalAmount, 20.00) {
		t.Errorf("Expected total 20.00, got %v", sale.TotalAmount)
	}

	if sale.RemoveItem(5) {
		t.Error("Expected out-of-range removal to fail")
	}
	if sale.RemoveItem(-1) {
		t.Error("Expected negative index removal to fail")
	}
}

func TestNewSaleDefaults(t *testing.T) {
	sale := NewSale(nil, "")
	if sale.PaymentMethod != PaymentCash {
		t.Errorf("Expected default payment %q, got %q", PaymentCash, sale.PaymentMethod)
	}
	if sale.SaleDate.IsZero() {
		t.Error("Expected sale date to be set")
	}
	if sale.CustomerID != nil {
		t.Error("Expected anonymous sale to have nil customer")
	}
}

func TestPaymentMethods(t *testing.T) {
	methods := PaymentMethods()
	if len(methods) != 3 {
		t.Fatalf("Expected 3 payment methods, got %d", len(methods))
	}
	expected := []string{PaymentCash, PaymentCreditCard, PaymentTransfer}
	for i, m := range expected {
		if methods[i] != m {
			t.Errorf("Expected method %q at %d, got %q", m, i, methods[i])
		}
	}
}
