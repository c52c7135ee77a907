package repository

import (
	"context"
	"time"

	"github.com/modaluna/tienda/internal/store/entity"
	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) DB() *gorm.DB {
	return r.db
}

func (r *InventoryRepository) GetByVariant(ctx context.Context, variantID uint) (*entity.Inventory, error) {
	var inv entity.Inventory
	if err := r.db.WithContext(ctx).Where("product_variant_id = ?", variantID).First(&inv).Error; err != nil {
		return nil, notFound(err)
	}
	return &inv, nil
}

// SetQuantity sets the variant's stock to newQty and records the signed
// movement in the transaction ledger, atomically.
func (r *InventoryRepository) SetQuantity(ctx context.Context, variantID uint, newQty int, txType string, referenceID *uint, notes string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv entity.Inventory
		if err := tx.Where("product_variant_id = ?", variantID).First(&inv).Error; err != nil {
			return notFound(err)
		}
		if newQty < 0 {
			return ErrInsufficientStock
		}
		now := time.Now()
		change := newQty - inv.Quantity
		if err := tx.Model(&entity.Inventory{}).
			Where("product_variant_id = ?", variantID).
			Updates(map[string]interface{}{"quantity": newQty, "last_updated": now}).Error; err != nil {
			return err
		}
		record := entity.InventoryTransaction{
			ProductVariantID: variantID,
			QuantityChange:   change,
			TransactionType:  txType,
			ReferenceID:      referenceID,
			TransactionDate:  now,
			Notes:            notes,
		}
		return tx.Create(&record).Error
	})
}

// StockRow is one variant with product context, as shown on stock listings.
type StockRow struct {
	ProductID   uint   `json:"product_id"`
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
	VariantID   uint   `json:"variant_id"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Quantity    int    `json:"quantity"`
}

// LowStock lists variants with 0 < quantity <= threshold, scarcest first.
func (r *InventoryRepository) LowStock(ctx context.Context, threshold int) ([]StockRow, error) {
	var rows []StockRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id, p.code AS product_code, p.name AS product_name,
		       pv.id AS variant_id, pv.size, pv.color, i.quantity
		FROM inventory i
		JOIN product_variants pv ON i.product_variant_id = pv.id
		JOIN products p ON pv.product_id = p.id
		WHERE i.quantity > 0 AND i.quantity <= ?
		ORDER BY i.quantity, p.name
	`, threshold).Scan(&rows).Error
	return rows, err
}

// OutOfStock lists variants with zero stock.
func (r *InventoryRepository) OutOfStock(ctx context.Context) ([]StockRow, error) {
	var rows []StockRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id, p.code AS product_code, p.name AS product_name,
		       pv.id AS variant_id, pv.size, pv.color, i.quantity
		FROM inventory i
		JOIN product_variants pv ON i.product_variant_id = pv.id
		JOIN products p ON pv.product_id = p.id
		WHERE i.quantity = 0
		ORDER BY p.name
	`).Scan(&rows).Error
	return rows, err
}

// CategoryStockRow aggregates stock per category.
type CategoryStockRow struct {
	Category     string `json:"category"`
	ProductCount int    `json:"product_count"`
	TotalUnits   int    `json:"total_units"`
}

func (r *InventoryRepository) StockByCategory(ctx context.Context) ([]CategoryStockRow, error) {
	var rows []CategoryStockRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.name AS category,
		       COUNT(DISTINCT p.id) AS product_count,
		       COALESCE(SUM(i.quantity), 0) AS total_units
		FROM categories c
		JOIN products p ON c.id = p.category_id
		JOIN product_variants pv ON p.id = pv.product_id
		JOIN inventory i ON pv.id = i.product_variant_id
		GROUP BY c.id
		ORDER BY c.name
	`).Scan(&rows).Error
	return rows, err
}

// TransactionListParams filter the movement ledger.
type TransactionListParams struct {
	VariantID       uint
	TransactionType string
	Start           *time.Time
	End             *time.Time
	Limit           int
}

// ListTransactions returns ledger entries newest-first with variant context.
func (r *InventoryRepository) ListTransactions(ctx context.Context, params TransactionListParams) ([]entity.InventoryTransaction, error) {
	query := r.db.WithContext(ctx).Model(&entity.InventoryTransaction{})
	if params.VariantID != 0 {
		query = query.Where("product_variant_id = ?", params.VariantID)
	}
	if params.TransactionType != "" {
		query = query.Where("transaction_type = ?", params.TransactionType)
	}
	if params.Start != nil {
		query = query.Where("transaction_date >= ?", *params.Start)
	}
	if params.End != nil {
		query = query.Where("transaction_date <= ?", *params.End)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}
	var txs []entity.InventoryTransaction
	if err := query.Order("transaction_date DESC").Limit(limit).Find(&txs).Error; err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return txs, nil
	}

	// Attach product name and size/color for listings.
	ids := make([]uint, 0, len(txs))
	for _, t := range txs {
		ids = append(ids, t.ProductVariantID)
	}
	type variantInfo struct {
		ID          uint
		ProductName string
		Size        string
		Color       string
	}
	var infos []variantInfo
	err := r.db.WithContext(ctx).Raw(`
		SELECT pv.id, p.name AS product_name, pv.size, pv.color
		FROM product_variants pv
		JOIN products p ON pv.product_id = p.id
		WHERE pv.id IN ?
	`, ids).Scan(&infos).Error
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]variantInfo, len(infos))
	for _, info := range infos {
		byID[info.ID] = info
	}
	for i := range txs {
		info := byID[txs[i].ProductVariantID]
		txs[i].ProductName = info.ProductName
		txs[i].Size = info.Size
		txs[i].Color = info.Color
	}
	return txs, nil
}
