package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/modaluna/tienda/internal/store/repository"
	"github.com/modaluna/tienda/internal/store/service"
	"github.com/modaluna/tienda/internal/store/testutil"
	"gorm.io/gorm"
)

func setupSaleTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	services := service.NewServices(repository.NewRepositories(db))
	h := NewSaleHandler(services.Sale)

	api := router.Group("/api/v1")
	api.POST("/sales", h.Create)
	api.GET("/sales/:id", h.Get)
	api.GET("/sales/payment-methods", h.PaymentMethods)
	api.DELETE("/sales/:id", h.Cancel)

	return router, db
}

func TestCreateSaleEndpoint(t *testing.T) {
	router, db := setupSaleTest(t)

	category := testutil.SeedCategory(t, db, "Camisetas")
	_, variant := testutil.SeedProduct(t, db, category.ID, "CAM-400", 10.00, "M", "Rojo", 5)

	w := testutil.DoRequest(router, "POST", "/api/v1/sales", map[string]interface{}{
		"payment_method": "CASH",
		"items": []map[string]interface{}{
			{"product_variant_id": variant.ID, "quantity": 3, "unit_price": 10.00, "discount_percent": 10},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if total := data["total_amount"].(float64); total != 27.00 {
		t.Errorf("Expected total 27.00, got %v", total)
	}

	// Selling more than the remaining stock is a 400.
	w2 := testutil.DoRequest(router, "POST", "/api/v1/sales", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_variant_id": variant.ID, "quantity": 10, "unit_price": 10.00},
		},
	})
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w2.Code, w2.Body.String())
	}
}

func TestPaymentMethodsEndpoint(t *testing.T) {
	router, _ := setupSaleTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/sales/payment-methods", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 3 {
		t.Fatalf("Expected 3 methods, got %d", len(items))
	}
	if items[0] != "CASH" {
		t.Errorf("Expected CASH first, got %v", items[0])
	}
}
