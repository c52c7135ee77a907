package service

import (
	"context"
	"errors"
	"testing"

	"github.com/modaluna/tienda/internal/store/repository"
	"github.com/modaluna/tienda/internal/store/testutil"
)

func TestSupplierProductLinks(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	category := testutil.SeedCategory(t, db, "Camisetas")
	product, _ := testutil.SeedProduct(t, db, category.ID, "CAM-300", 12.00, "M", "Rojo", 0)

	supplier, err := svc.Supplier.AddSupplier(ctx, SupplierRequest{
		Name:       "Textiles del Norte",
		Phone:      "5559876",
		ProductIDs: []uint{product.ID},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	rows, err := svc.Supplier.ListProducts(ctx, supplier.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Code != "CAM-300" {
		t.Fatalf("Expected CAM-300 linked, got %v", rows)
	}

	if err := svc.Supplier.LinkProduct(ctx, supplier.ID, product.ID); !errors.Is(err, ErrDuplicateLink) {
		t.Fatalf("Expected ErrDuplicateLink, got %v", err)
	}

	suppliers, err := svc.Supplier.SuppliersForProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(suppliers) != 1 || suppliers[0].Name != "Textiles del Norte" {
		t.Fatalf("Expected one supplier, got %v", suppliers)
	}

	if err := svc.Supplier.UnlinkProduct(ctx, supplier.ID, product.ID); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := svc.Supplier.UnlinkProduct(ctx, supplier.ID, product.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on second unlink, got %v", err)
	}
}

func TestAddSupplierUnknownProduct(t *testing.T) {
	svc, _ := setupServices(t)

	_, err := svc.Supplier.AddSupplier(context.Background(), SupplierRequest{
		Name:       "Fantasma",
		Phone:      "5550000",
		ProductIDs: []uint{9999},
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSupplierRemovesLinks(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	category := testutil.SeedCategory(t, db, "Camisetas")
	product, _ := testutil.SeedProduct(t, db, category.ID, "CAM-301", 12.00, "L", "Azul", 0)

	supplier, err := svc.Supplier.AddSupplier(ctx, SupplierRequest{
		Name: "Mayorista Sur", Phone: "5551111", ProductIDs: []uint{product.ID},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := svc.Supplier.DeleteSupplier(ctx, supplier.ID); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var count int64
	db.Table("supplier_products").Where("supplier_id = ?", supplier.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected links removed, got %d", count)
	}
}
