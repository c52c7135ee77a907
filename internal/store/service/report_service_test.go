package service

import (
	"context"
	"math"
	"testing"

	"github.com/modaluna/tienda/internal/store/entity"
	"github.com/modaluna/tienda/internal/store/testutil"
)

func TestBuildSalesReport(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	category := testutil.SeedCategory(t, db, "Camisetas")
	_, variant := testutil.SeedProduct(t, db, category.ID, "CAM-200", 25.00, "M", "Rojo", 50)

	for _, method := range []string{entity.PaymentCash, entity.PaymentCreditCard} {
		if _, err := svc.Sale.CreateSale(ctx, CreateSaleRequest{
			PaymentMethod: method,
			Items:         []SaleLineInput{{ProductVariantID: variant.ID, Quantity: 2, UnitPrice: 25.00}},
		}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	report, err := svc.Report.BuildSalesReport(ctx, "daily", nil, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if report.Totals.SaleCount != 2 {
		t.Errorf("Expected 2 sales, got %d", report.Totals.SaleCount)
	}
	if math.Abs(report.Totals.TotalAmount-100.00) > 1e-9 {
		t.Errorf("Expected total 100.00, got %v", report.Totals.TotalAmount)
	}
	if len(report.PaymentMethods) != 2 {
		t.Fatalf("Expected 2 payment methods, got %d", len(report.PaymentMethods))
	}
	for _, share := range report.PaymentMethods {
		if math.Abs(share.Percentage-50.0) > 1e-9 {
			t.Errorf("Expected 50%% share for %s, got %v", share.PaymentMethod, share.Percentage)
		}
	}
	if len(report.TopProducts) != 1 || report.TopProducts[0].TotalQuantity != 4 {
		t.Fatalf("Expected CAM-200 with 4 units, got %v", report.TopProducts)
	}
	if len(report.ByCategory) != 1 || report.ByCategory[0].Category != "Camisetas" {
		t.Fatalf("Expected Camisetas category row, got %v", report.ByCategory)
	}
}

func TestBuildInventoryReport(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	category := testutil.SeedCategory(t, db, "Pantalones")
	testutil.SeedProduct(t, db, category.ID, "PAN-200", 40.00, "32", "Negro", 3)
	testutil.SeedProduct(t, db, category.ID, "PAN-201", 60.00, "34", "Azul", 0)

	report, err := svc.Report.BuildInventoryReport(ctx, 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if report.Summary.TotalUnits != 3 {
		t.Errorf("Expected 3 units, got %d", report.Summary.TotalUnits)
	}
	if math.Abs(report.Summary.TotalValue-120.00) > 1e-9 {
		t.Errorf("Expected value 120.00, got %v", report.Summary.TotalValue)
	}
	if len(report.LowStock) != 1 || report.LowStock[0].ProductCode != "PAN-200" {
		t.Fatalf("Expected PAN-200 low, got %v", report.LowStock)
	}
	if len(report.OutOfStock) != 1 || report.OutOfStock[0].ProductCode != "PAN-201" {
		t.Fatalf("Expected PAN-201 out, got %v", report.OutOfStock)
	}
}

func TestTopCustomers(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	big := testutil.SeedCustomer(t, db, "Ana García", "ana@example.com")
	small := testutil.SeedCustomer(t, db, "Luis Pérez", "luis@example.com")
	category := testutil.SeedCategory(t, db, "Camisetas")
	_, variant := testutil.SeedProduct(t, db, category.ID, "CAM-201", 10.00, "M", "Rojo", 50)

	for i := 0; i < 3; i++ {
		if _, err := svc.Sale.CreateSale(ctx, CreateSaleRequest{
			CustomerID: &big.ID,
			Items:      []SaleLineInput{{ProductVariantID: variant.ID, Quantity: 2, UnitPrice: 10.00}},
		}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if _, err := svc.Sale.CreateSale(ctx, CreateSaleRequest{
		CustomerID: &small.ID,
		Items:      []SaleLineInput{{ProductVariantID: variant.ID, Quantity: 1, UnitPrice: 10.00}},
	}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	rows, err := svc.Report.TopCustomers(ctx, 10, nil, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 customers, got %d", len(rows))
	}
	if rows[0].Name != "Ana García" || rows[0].PurchaseCount != 3 {
		t.Errorf("Expected Ana first with 3 purchases, got %+v", rows[0])
	}
	if math.Abs(rows[0].TotalSpent-60.00) > 1e-9 {
		t.Errorf("Expected 60.00 spent, got %v", rows[0].TotalSpent)
	}
}

func TestExportSalesReport(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	category := testutil.SeedCategory(t, db, "Camisetas")
	_, variant := testutil.SeedProduct(t, db, category.ID, "CAM-202", 15.00, "L", "Azul", 10)
	if _, err := svc.Sale.CreateSale(ctx, CreateSaleRequest{
		Items: []SaleLineInput{{ProductVariantID: variant.ID, Quantity: 2, UnitPrice: 15.00}},
	}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	f, filename, err := svc.Report.ExportSalesReport(ctx, "daily", nil, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer f.Close()

	if filename == "" {
		t.Error("Expected a filename")
	}
	rows, err := f.GetRows("Ventas")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// Header, one period row, summary row.
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Período" {
		t.Errorf("Unexpected header %q", rows[0][0])
	}
}
