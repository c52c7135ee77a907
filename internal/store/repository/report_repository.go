package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Period granularities for sales-over-time reports.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// PeriodSalesRow aggregates sales over one time bucket.
type PeriodSalesRow struct {
	Period      string  `json:"period"`
	SaleCount   int     `json:"sale_count"`
	TotalSales  float64 `json:"total_sales"`
	AverageSale float64 `json:"average_sale"`
}

// SalesByPeriod buckets sales by day, ISO week or month using SQLite's
// strftime. periodType must be one of the Period constants.
func (r *ReportRepository) SalesByPeriod(ctx context.Context, periodType string, start, end time.Time) ([]PeriodSalesRow, error) {
	var format string
	switch periodType {
	case PeriodDaily:
		format = "%Y-%m-%d"
	case PeriodWeekly:
		format = "%Y-%W"
	case PeriodMonthly:
		format = "%Y-%m"
	default:
		return nil, fmt.Errorf("unknown period type %q", periodType)
	}

	var rows []PeriodSalesRow
	err := r.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT strftime('%s', sale_date) AS period,
		       COUNT(*) AS sale_count,
		       SUM(total_amount) AS total_sales,
		       AVG(total_amount) AS average_sale
		FROM sales
		WHERE sale_date BETWEEN ? AND ?
		GROUP BY period
		ORDER BY period
	`, format), start, end).Scan(&rows).Error
	return rows, err
}

// CategorySalesRow aggregates sales per product category.
type CategorySalesRow struct {
	Category   string  `json:"category"`
	SaleCount  int     `json:"sale_count"`
	UnitsSold  int     `json:"units_sold"`
	TotalSales float64 `json:"total_sales"`
}

func (r *ReportRepository) SalesByCategory(ctx context.Context, start, end *time.Time) ([]CategorySalesRow, error) {
	sql := `
		SELECT c.name AS category,
		       COUNT(DISTINCT s.id) AS sale_count,
		       SUM(si.quantity) AS units_sold,
		       SUM(si.subtotal) AS total_sales
		FROM sale_items si
		JOIN sales s ON si.sale_id = s.id
		JOIN product_variants pv ON si.product_variant_id = pv.id
		JOIN products p ON pv.product_id = p.id
		JOIN categories c ON p.category_id = c.id
		WHERE 1=1`
	args := []interface{}{}
	if start != nil {
		sql += " AND s.sale_date >= ?"
		args = append(args, *start)
	}
	if end != nil {
		sql += " AND s.sale_date <= ?"
		args = append(args, *end)
	}
	sql += " GROUP BY c.id ORDER BY total_sales DESC"

	var rows []CategorySalesRow
	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	return rows, err
}

// InventoryValueTotals sums stock valued at list price.
type InventoryValueTotals struct {
	TotalValue   float64 `json:"total_value"`
	ProductCount int     `json:"product_count"`
	TotalUnits   int     `json:"total_units"`
}

// InventoryValueCategory is the per-category breakdown of InventoryValueTotals.
type InventoryValueCategory struct {
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	ProductCount int     `json:"product_count"`
	Units        int     `json:"units"`
}

func (r *ReportRepository) InventoryValue(ctx context.Context) (*InventoryValueTotals, []InventoryValueCategory, error) {
	var totals InventoryValueTotals
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(i.quantity * p.price), 0) AS total_value,
		       COUNT(DISTINCT p.id) AS product_count,
		       COALESCE(SUM(i.quantity), 0) AS total_units
		FROM inventory i
		JOIN product_variants pv ON i.product_variant_id = pv.id
		JOIN products p ON pv.product_id = p.id
		WHERE i.quantity > 0
	`).Scan(&totals).Error
	if err != nil {
		return nil, nil, err
	}

	var categories []InventoryValueCategory
	err = r.db.WithContext(ctx).Raw(`
		SELECT c.name,
		       SUM(i.quantity * p.price) AS value,
		       COUNT(DISTINCT p.id) AS product_count,
		       SUM(i.quantity) AS units
		FROM inventory i
		JOIN product_variants pv ON i.product_variant_id = pv.id
		JOIN products p ON pv.product_id = p.id
		JOIN categories c ON p.category_id = c.id
		WHERE i.quantity > 0
		GROUP BY c.id
		ORDER BY value DESC
	`).Scan(&categories).Error
	return &totals, categories, err
}

// TopCustomerRow aggregates purchases per customer.
type TopCustomerRow struct {
	CustomerID    uint    `json:"customer_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	PurchaseCount int     `json:"purchase_count"`
	TotalSpent    float64 `json:"total_spent"`
	LastPurchase  string  `json:"last_purchase"`
}

// TopCustomers ranks customers by amount spent within the window.
func (r *ReportRepository) TopCustomers(ctx context.Context, limit int, start, end *time.Time) ([]TopCustomerRow, error) {
	if limit <= 0 {
		limit = 10
	}
	sql := `
		SELECT c.id AS customer_id, c.name, COALESCE(c.email, '') AS email, c.phone,
		       COUNT(s.id) AS purchase_count,
		       SUM(s.total_amount) AS total_spent,
		       MAX(s.sale_date) AS last_purchase
		FROM customers c
		JOIN sales s ON c.id = s.customer_id
		WHERE 1=1`
	args := []interface{}{}
	if start != nil {
		sql += " AND s.sale_date >= ?"
		args = append(args, *start)
	}
	if end != nil {
		sql += " AND s.sale_date <= ?"
		args = append(args, *end)
	}
	sql += " GROUP BY c.id ORDER BY total_spent DESC LIMIT ?"
	args = append(args, limit)

	var rows []TopCustomerRow
	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	return rows, err
}

// SalesTotals is the headline block of the sales report.
type SalesTotals struct {
	SaleCount   int     `json:"sale_count"`
	TotalAmount float64 `json:"total_amount"`
	AverageSale float64 `json:"average_sale"`
}

func (r *ReportRepository) SalesTotals(ctx context.Context, start, end time.Time) (*SalesTotals, error) {
	var totals SalesTotals
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS sale_count,
		       COALESCE(SUM(total_amount), 0) AS total_amount,
		       COALESCE(AVG(total_amount), 0) AS average_sale
		FROM sales
		WHERE sale_date BETWEEN ? AND ?
	`, start, end).Scan(&totals).Error
	return &totals, err
}

// InventorySummary is the headline block of the inventory report.
type InventorySummary struct {
	ProductCount int     `json:"product_count"`
	VariantCount int     `json:"variant_count"`
	TotalUnits   int     `json:"total_units"`
	TotalValue   float64 `json:"total_value"`
}

func (r *ReportRepository) InventorySummary(ctx context.Context) (*InventorySummary, error) {
	var summary InventorySummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT p.id) AS product_count,
		       COUNT(pv.id) AS variant_count,
		       COALESCE(SUM(i.quantity), 0) AS total_units,
		       COALESCE(SUM(i.quantity * p.price), 0) AS total_value
		FROM inventory i
		JOIN product_variants pv ON i.product_variant_id = pv.id
		JOIN products p ON pv.product_id = p.id
	`).Scan(&summary).Error
	return &summary, err
}

// DiscountedProductRow is a product with an active discount and its stock.
type DiscountedProductRow struct {
	ProductID       uint    `json:"product_id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	RegularPrice    float64 `json:"regular_price"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountedPrice float64 `json:"discounted_price"`
	TotalStock      int     `json:"total_stock"`
}

// DiscountedProducts lists products on active discount with total stock,
// steepest discount first.
func (r *ReportRepository) DiscountedProducts(ctx context.Context, now time.Time) ([]DiscountedProductRow, error) {
	var rows []DiscountedProductRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id, p.code, p.name, c.name AS category,
		       p.price AS regular_price, p.discount_percent,
		       p.price * (1 - p.discount_percent / 100) AS discounted_price,
		       COALESCE(SUM(i.quantity), 0) AS total_stock
		FROM products p
		JOIN categories c ON p.category_id = c.id
		JOIN product_variants pv ON p.id = pv.product_id
		JOIN inventory i ON pv.id = i.product_variant_id
		WHERE p.discount_percent > 0
		  AND (p.discount_start_date IS NULL OR p.discount_start_date <= ?)
		  AND (p.discount_end_date IS NULL OR p.discount_end_date >= ?)
		GROUP BY p.id
		ORDER BY p.discount_percent DESC
	`, now, now).Scan(&rows).Error
	return rows, err
}
