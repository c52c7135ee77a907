package service

import (
	"context"
	"errors"
	"testing"

	"github.com/modaluna/tienda/internal/store/repository"
	"github.com/modaluna/tienda/internal/store/testutil"
)

func TestAdjustInventory(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	category := testutil.SeedCategory(t, db, "Vestidos")
	_, variant := testutil.SeedProduct(t, db, category.ID, "VES-001", 49.90, "S", "Rojo", 10)

	inv, err := svc.Inventory.Adjust(ctx, variant.ID, 5, "recepción de mercancía")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if inv.Quantity != 15 {
		t.Errorf("Expected 15, got %d", inv.Quantity)
	}

	inv, err = svc.Inventory.Adjust(ctx, variant.ID, -15, "merma")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if inv.Quantity != 0 {
		t.Errorf("Expected 0, got %d", inv.Quantity)
	}

	if _, err := svc.Inventory.Adjust(ctx, variant.ID, -1, ""); !errors.Is(err, ErrNegativeStock) {
		t.Fatalf("Expected ErrNegativeStock, got %v", err)
	}
}

func TestSetQuantityRejectsNegative(t *testing.T) {
	svc, db := setupServices(t)

	category := testutil.SeedCategory(t, db, "Vestidos")
	_, variant := testutil.SeedProduct(t, db, category.ID, "VES-002", 49.90, "M", "Azul", 3)

	err := svc.Inventory.SetQuantity(context.Background(), variant.ID, -2, "", nil, "")
	if !errors.Is(err, ErrNegativeStock) {
		t.Fatalf("Expected ErrNegativeStock, got %v", err)
	}
}

func TestLowStockAndOutOfStock(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	category := testutil.SeedCategory(t, db, "Vestidos")
	testutil.SeedProduct(t, db, category.ID, "VES-003", 10, "S", "Rojo", 2)
	testutil.SeedProduct(t, db, category.ID, "VES-004", 10, "M", "Azul", 0)
	testutil.SeedProduct(t, db, category.ID, "VES-005", 10, "L", "Verde", 20)

	low, err := svc.Inventory.LowStock(ctx, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(low) != 1 || low[0].ProductCode != "VES-003" {
		t.Fatalf("Expected only VES-003 low, got %v", low)
	}

	out, err := svc.Inventory.OutOfStock(ctx)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].ProductCode != "VES-004" {
		t.Fatalf("Expected only VES-004 out, got %v", out)
	}
}

func TestTransactionsFilterByType(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	category := testutil.SeedCategory(t, db, "Vestidos")
	_, variant := testutil.SeedProduct(t, db, category.ID, "VES-006", 10, "S", "Negro", 5)

	if _, err := svc.Inventory.Adjust(ctx, variant.ID, 3, ""); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := svc.Inventory.Adjust(ctx, variant.ID, -2, ""); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	txs, err := svc.Inventory.Transactions(ctx, repository.TransactionListParams{
		VariantID:       variant.ID,
		TransactionType: "ADJUSTMENT",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("Expected 2 adjustments, got %d", len(txs))
	}
	// Newest first.
	if txs[0].QuantityChange != -2 {
		t.Errorf("Expected newest change -2 first, got %d", txs[0].QuantityChange)
	}
}
