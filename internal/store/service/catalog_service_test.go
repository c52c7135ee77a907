package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modaluna/tienda/internal/store/entity"
	"github.com/modaluna/tienda/internal/store/testutil"
)

func TestAddProductWithVariants(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	category := testutil.SeedCategory(t, db, "Camisetas")

	product, err := svc.Catalog.AddProduct(ctx, ProductRequest{
		Code:       "CAM-100",
		Name:       "Camiseta básica",
		CategoryID: category.ID,
		Price:      14.90,
		Variants: []VariantInput{
			{Size: "S", Color: "Blanco"},
			{Size: "M", Color: "Blanco"},
		},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	variants, err := svc.Catalog.ListVariants(ctx, product.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(variants) != 2 {
		t.Fatalf("Expected 2 variants, got %d", len(variants))
	}
	// Every variant starts with an empty inventory row.
	for _, v := range variants {
		if v.InventoryQuantity != 0 {
			t.Errorf("Expected zero stock for %s/%s, got %d", v.Size, v.Color, v.InventoryQuantity)
		}
	}
}

func TestAddProductInvalidDiscount(t *testing.T) {
	svc, db := setupServices(t)
	category := testutil.SeedCategory(t, db, "Camisetas")

	_, err := svc.Catalog.AddProduct(context.Background(), ProductRequest{
		Code: "CAM-101", Name: "Mala", CategoryID: category.ID, Price: 10, DiscountPercent: 120,
	})
	if !errors.Is(err, ErrInvalidDiscount) {
		t.Fatalf("Expected ErrInvalidDiscount, got %v", err)
	}
}

func TestAddVariantDuplicate(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	category := testutil.SeedCategory(t, db, "Camisetas")
	product, variant := testutil.SeedProduct(t, db, category.ID, "CAM-102", 10, "M", "Rojo", 0)
	_ = variant

	_, err := svc.Catalog.AddVariant(ctx, product.ID, AddVariantRequest{Size: "M", Color: "Rojo"})
	if !errors.Is(err, ErrDuplicateVariant) {
		t.Fatalf("Expected ErrDuplicateVariant, got %v", err)
	}

	added, err := svc.Catalog.AddVariant(ctx, product.ID, AddVariantRequest{Size: "L", Color: "Rojo", OpeningQty: 4})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if added.InventoryQuantity != 4 {
		t.Errorf("Expected opening stock 4, got %d", added.InventoryQuantity)
	}
}

func TestDeleteProductInUse(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	category := testutil.SeedCategory(t, db, "Camisetas")
	product, variant := testutil.SeedProduct(t, db, category.ID, "CAM-103", 10, "M", "Rojo", 5)

	if _, err := svc.Sale.CreateSale(ctx, CreateSaleRequest{
		Items: []SaleLineInput{{ProductVariantID: variant.ID, Quantity: 1, UnitPrice: 10}},
	}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := svc.Catalog.DeleteProduct(ctx, product.ID); !errors.Is(err, ErrProductInUse) {
		t.Fatalf("Expected ErrProductInUse, got %v", err)
	}
	if err := svc.Catalog.DeleteVariant(ctx, variant.ID); !errors.Is(err, ErrVariantInUse) {
		t.Fatalf("Expected ErrVariantInUse, got %v", err)
	}
}

func TestDeleteUnusedProductCascades(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	category := testutil.SeedCategory(t, db, "Camisetas")
	product, variant := testutil.SeedProduct(t, db, category.ID, "CAM-104", 10, "M", "Rojo", 5)

	if err := svc.Catalog.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var count int64
	db.Table("inventory").Where("product_variant_id = ?", variant.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected inventory row removed, got %d", count)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	category := testutil.SeedCategory(t, db, "Camisetas")
	testutil.SeedProduct(t, db, category.ID, "CAM-105", 10, "M", "Rojo", 0)

	if err := svc.Catalog.DeleteCategory(ctx, category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("Expected ErrCategoryInUse, got %v", err)
	}

	empty, err := svc.Catalog.AddCategory(ctx, CategoryRequest{Name: "Temporada"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := svc.Catalog.DeleteCategory(ctx, empty.ID); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestProductsOnSale(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	category := testutil.SeedCategory(t, db, "Camisetas")
	yesterday := time.Now().AddDate(0, 0, -1)
	tomorrow := time.Now().AddDate(0, 0, 1)

	onSale := &entity.Product{
		Code: "CAM-106", Name: "Rebajada", CategoryID: category.ID, Price: 20,
		DiscountPercent: 30, DiscountStartDate: &yesterday, DiscountEndDate: &tomorrow,
	}
	db.Create(onSale)
	expired := &entity.Product{
		Code: "CAM-107", Name: "Ya no", CategoryID: category.ID, Price: 20,
		DiscountPercent: 30, DiscountEndDate: &yesterday,
	}
	db.Create(expired)

	products, err := svc.Catalog.ProductsOnSale(ctx)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].Code != "CAM-106" {
		t.Fatalf("Expected only CAM-106 on sale, got %v", products)
	}
}
