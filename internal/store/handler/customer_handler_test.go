package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/modaluna/tienda/internal/store/repository"
	"github.com/modaluna/tienda/internal/store/service"
	"github.com/modaluna/tienda/internal/store/testutil"
)

func setupCustomerTest(t *testing.T) *gin.Engine {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	services := service.NewServices(repository.NewRepositories(db))
	h := NewCustomerHandler(services.Customer)

	api := router.Group("/api/v1")
	api.POST("/customers", h.Create)
	api.GET("/customers", h.List)
	api.GET("/customers/:id", h.Get)
	api.PUT("/customers/:id", h.Update)
	api.DELETE("/customers/:id", h.Delete)

	return router
}

func TestCustomerLifecycle(t *testing.T) {
	router := setupCustomerTest(t)

	// Create
	w := testutil.DoRequest(router, "POST", "/api/v1/customers", map[string]interface{}{
		"name":  "Ana García",
		"email": "ana@example.com",
		"phone": "5551234",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["name"] != "Ana García" {
		t.Errorf("Unexpected name %v", data["name"])
	}

	// Duplicate email is a conflict
	w2 := testutil.DoRequest(router, "POST", "/api/v1/customers", map[string]interface{}{
		"name":  "Otra Ana",
		"email": "ana@example.com",
	})
	if w2.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d: %s", w2.Code, w2.Body.String())
	}

	// Missing name fails validation
	w3 := testutil.DoRequest(router, "POST", "/api/v1/customers", map[string]interface{}{
		"email": "nadie@example.com",
	})
	if w3.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w3.Code, w3.Body.String())
	}

	// Update
	w4 := testutil.DoRequest(router, "PUT", "/api/v1/customers/1", map[string]interface{}{
		"name":    "Ana María García",
		"email":   "ana@example.com",
		"phone":   "5554321",
		"address": "Calle Mayor 1",
	})
	if w4.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w4.Code, w4.Body.String())
	}

	// Get
	w5 := testutil.DoRequest(router, "GET", "/api/v1/customers/1", nil)
	if w5.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w5.Code, w5.Body.String())
	}
	resp5 := testutil.ParseResponse(w5)
	data5 := resp5["data"].(map[string]interface{})
	if data5["name"] != "Ana María García" {
		t.Errorf("Unexpected name %v", data5["name"])
	}

	// Delete, then 404
	w6 := testutil.DoRequest(router, "DELETE", "/api/v1/customers/1", nil)
	if w6.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w6.Code, w6.Body.String())
	}
	w7 := testutil.DoRequest(router, "GET", "/api/v1/customers/1", nil)
	if w7.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w7.Code, w7.Body.String())
	}
}

func TestCustomerSearchParam(t *testing.T) {
	router := setupCustomerTest(t)

	for _, name := range []string{"Ana García", "Mariana López", "Luis Pérez"} {
		w := testutil.DoRequest(router, "POST", "/api/v1/customers", map[string]interface{}{"name": name})
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	w := testutil.DoRequest(router, "GET", "/api/v1/customers?q=ana", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(items))
	}
}
