package entity

import (
	"time"
)

// Inventory transaction types.
const (
	TxTypeSale       = "SALE"
	TxTypePurchase   = "PURCHASE"
	TxTypeAdjustment = "ADJUSTMENT"
	TxTypeReturn     = "RETURN"
)

// Inventory holds the current stock of one product variant. Exactly one row
// exists per variant, created together with it.
type Inventory struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ProductVariantID uint      `json:"product_variant_id" gorm:"not null;uniqueIndex"`
	Quantity         int       `json:"quantity" gorm:"not null;default:0"`
	LastUpdated      time.Time `json:"last_updated" gorm:"not null"`
}

func (Inventory) TableName() string {
	return "inventory"
}

// InStock reports whether any units remain.
func (i *Inventory) InStock() bool {
	return i.Quantity > 0
}

// LowStock reports whether the quantity is positive but under threshold.
func (i *Inventory) LowStock(threshold int) bool {
	return i.Quantity > 0 && i.Quantity < threshold
}

// InventoryTransaction is one ledger entry for a stock movement. Positive
// QuantityChange adds stock, negative removes it.
type InventoryTransaction struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ProductVariantID uint      `json:"product_variant_id" gorm:"not null;index"`
	QuantityChange   int       `json:"quantity_change" gorm:"not null"`
	TransactionType  string    `json:"transaction_type" gorm:"size:20;not null;index"`
	ReferenceID      *uint     `json:"reference_id"`
	TransactionDate  time.Time `json:"transaction_date" gorm:"not null;index"`
	Notes            string    `json:"notes" gorm:"size:500"`

	// Joined variant context for listings.
	ProductName string `json:"product_name,omitempty" gorm:"-"`
	Size        string `json:"size,omitempty" gorm:"-"`
	Color       string `json:"color,omitempty" gorm:"-"`
}

func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}
