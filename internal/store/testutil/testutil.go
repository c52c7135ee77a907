package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modaluna/tienda/internal/store/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an isolated in-memory SQLite database with the full
// schema migrated. It is torn down when the test finishes.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Shared-cache memory DBs vanish when the last connection closes;
	// hold exactly one so the schema survives for the whole test.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db.Exec("PRAGMA foreign_keys = ON")

	if err := entity.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// SetupRouter creates a gin test router.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// DoRequest executes an HTTP request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedCategory inserts a category for tests.
func SeedCategory(t *testing.T, db *gorm.DB, name string) *entity.Category {
	t.Helper()
	category := &entity.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	return category
}

// SeedProduct inserts a product with one variant and an opening stock.
func SeedProduct(t *testing.T, db *gorm.DB, categoryID uint, code string, price float64, size, color string, stock int) (*entity.Product, *entity.ProductVariant) {
	t.Helper()
	product := &entity.Product{
		Code:       code,
		Name:       "Producto " + code,
		CategoryID: categoryID,
		Price:      price,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	variant := &entity.ProductVariant{
		ProductID: product.ID,
		Size:      size,
		Color:     color,
	}
	if err := db.Create(variant).Error; err != nil {
		t.Fatalf("Failed to seed variant: %v", err)
	}
	inv := &entity.Inventory{
		ProductVariantID: variant.ID,
		Quantity:         stock,
		LastUpdated:      time.Now(),
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("Failed to seed inventory: %v", err)
	}
	return product, variant
}

// SeedCustomer inserts a customer for tests.
func SeedCustomer(t *testing.T, db *gorm.DB, name, email string) *entity.Customer {
	t.Helper()
	customer := &entity.Customer{Name: name, Phone: "5550000"}
	if email != "" {
		customer.Email = &email
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}
	return customer
}
