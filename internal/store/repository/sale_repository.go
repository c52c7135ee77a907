package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/modaluna/tienda/internal/store/entity"
	"gorm.io/gorm"
)

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) DB() *gorm.DB {
	return r.db
}

// CreateWithMovements persists the sale and its items, decrements inventory
// for every line and records the SALE movements, as one transaction. Stock
// is re-checked row by row inside the transaction; any shortfall aborts the
// whole sale with ErrInsufficientStock.
func (r *SaleRepository) CreateWithMovements(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := sale.Items
		sale.Items = nil
		if err := tx.Create(sale).Error; err != nil {
			return err
		}
		now := time.Now()
		for i := range items {
			items[i].SaleID = sale.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}

			var inv entity.Inventory
			if err := tx.Where("product_variant_id = ?", items[i].ProductVariantID).First(&inv).Error; err != nil {
				return notFound(err)
			}
			if inv.Quantity < items[i].Quantity {
				return ErrInsufficientStock
			}
			if err := tx.Model(&entity.Inventory{}).
				Where("product_variant_id = ?", items[i].ProductVariantID).
				Updates(map[string]interface{}{
					"quantity":     inv.Quantity - items[i].Quantity,
					"last_updated": now,
				}).Error; err != nil {
				return err
			}

			saleID := sale.ID
			movement := entity.InventoryTransaction{
				ProductVariantID: items[i].ProductVariantID,
				QuantityChange:   -items[i].Quantity,
				TransactionType:  entity.TxTypeSale,
				ReferenceID:      &saleID,
				TransactionDate:  now,
				Notes:            fmt.Sprintf("Venta #%d", saleID),
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}
		sale.Items = items
		return nil
	})
}

func (r *SaleRepository) FindByID(ctx context.Context, id uint) (*entity.Sale, error) {
	var sale entity.Sale
	if err := r.db.WithContext(ctx).Preload("Customer").First(&sale, id).Error; err != nil {
		return nil, notFound(err)
	}
	items, err := r.ListDetailedItems(ctx, id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return &sale, nil
}

// SaleListParams filter the sales listing.
type SaleListParams struct {
	Start *time.Time
	End   *time.Time
	Limit int
}

// List returns sales newest-first without items, customer preloaded.
func (r *SaleRepository) List(ctx context.Context, params SaleListParams) ([]entity.Sale, error) {
	query := r.db.WithContext(ctx).Preload("Customer")
	if params.Start != nil {
		query = query.Where("sale_date >= ?", *params.Start)
	}
	if params.End != nil {
		query = query.Where("sale_date <= ?", *params.End)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}
	var sales []entity.Sale
	err := query.Order("sale_date DESC").Limit(limit).Find(&sales).Error
	return sales, err
}

// CancelWithRestock reverses the sale: every line's quantity is returned to
// inventory with a RETURN movement, then the items and the sale row are
// deleted, as one transaction.
func (r *SaleRepository) CancelWithRestock(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sale entity.Sale
		if err := tx.First(&sale, id).Error; err != nil {
			return notFound(err)
		}
		var items []entity.SaleItem
		if err := tx.Where("sale_id = ?", id).Find(&items).Error; err != nil {
			return err
		}
		now := time.Now()
		for _, item := range items {
			var inv entity.Inventory
			if err := tx.Where("product_variant_id = ?", item.ProductVariantID).First(&inv).Error; err != nil {
				return notFound(err)
			}
			if err := tx.Model(&entity.Inventory{}).
				Where("product_variant_id = ?", item.ProductVariantID).
				Updates(map[string]interface{}{
					"quantity":     inv.Quantity + item.Quantity,
					"last_updated": now,
				}).Error; err != nil {
				return err
			}
			saleID := id
			movement := entity.InventoryTransaction{
				ProductVariantID: item.ProductVariantID,
				QuantityChange:   item.Quantity,
				TransactionType:  entity.TxTypeReturn,
				ReferenceID:      &saleID,
				TransactionDate:  now,
				Notes:            fmt.Sprintf("Cancelación de venta #%d", saleID),
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("sale_id = ?", id).Delete(&entity.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Sale{}, id).Error
	})
}

// saleItemDetailRow is a sale item joined against its product and variant.
type saleItemDetailRow struct {
	ID               uint
	SaleID           uint
	ProductVariantID uint
	Quantity         int
	UnitPrice        float64
	DiscountPercent  float64
	Subtotal         float64
	ProductName      string
	ProductCode      string
	Size             string
	Color            string
}

// ListDetailedItems returns the line items of a sale enriched with product
// name/code and variant size/color, in database row order.
func (r *SaleRepository) ListDetailedItems(ctx context.Context, saleID uint) ([]entity.SaleItem, error) {
	var rows []saleItemDetailRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT si.id, si.sale_id, si.product_variant_id, si.quantity,
		       si.unit_price, si.discount_percent, si.subtotal,
		       p.name AS product_name, p.code AS product_code, pv.size, pv.color
		FROM sale_items si
		JOIN product_variants pv ON si.product_variant_id = pv.id
		JOIN products p ON pv.product_id = p.id
		WHERE si.sale_id = ?
		ORDER BY si.id
	`, saleID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]entity.SaleItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, entity.SaleItem{
			ID:               row.ID,
			SaleID:           row.SaleID,
			ProductVariantID: row.ProductVariantID,
			Quantity:         row.Quantity,
			UnitPrice:        row.UnitPrice,
			DiscountPercent:  row.DiscountPercent,
			Subtotal:         row.Subtotal,
			ProductName:      row.ProductName,
			ProductCode:      row.ProductCode,
			Size:             row.Size,
			Color:            row.Color,
		})
	}
	return items, nil
}

// PaymentMethodStat aggregates sales for one payment method.
type PaymentMethodStat struct {
	PaymentMethod string  `json:"payment_method"`
	Count         int     `json:"count"`
	Total         float64 `json:"total"`
}

func (r *SaleRepository) TotalsByPaymentMethod(ctx context.Context, start, end *time.Time) ([]PaymentMethodStat, error) {
	query := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Select("payment_method, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total")
	if start != nil {
		query = query.Where("sale_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("sale_date <= ?", *end)
	}
	var stats []PaymentMethodStat
	err := query.Group("payment_method").Order("total DESC").Scan(&stats).Error
	return stats, err
}

// TopProductRow aggregates sales per product.
type TopProductRow struct {
	ProductID     uint    `json:"product_id"`
	ProductCode   string  `json:"product_code"`
	ProductName   string  `json:"product_name"`
	Category      string  `json:"category"`
	TotalQuantity int     `json:"total_quantity"`
	TotalAmount   float64 `json:"total_amount"`
	SaleCount     int     `json:"sale_count"`
}

// TopSellingProducts ranks products by units sold within the window.
func (r *SaleRepository) TopSellingProducts(ctx context.Context, limit int, start, end *time.Time) ([]TopProductRow, error) {
	if limit <= 0 {
		limit = 10
	}
	sql := `
		SELECT p.id AS product_id, p.code AS product_code, p.name AS product_name,
		       c.name AS category,
		       SUM(si.quantity) AS total_quantity,
		       SUM(si.subtotal) AS total_amount,
		       COUNT(DISTINCT s.id) AS sale_count
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
	sql += " GROUP BY p.id ORDER BY total_quantity DESC LIMIT ?"
	args = append(args, limit)

	var rows []TopProductRow
	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	return rows, err
}
