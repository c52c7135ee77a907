package entity

import (
	"time"
)

// Customer is a store customer. Email is optional but must be unique among
// customers when present; a nil pointer stays out of the unique index.
type Customer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Email     *string   `json:"email" gorm:"size:100;uniqueIndex"`
	Phone     string    `json:"phone" gorm:"size:30"`
	Address   string    `json:"address" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Loaded on read; a customer row does not own its sales.
	PurchaseHistory []PurchaseSummary `json:"purchase_history,omitempty" gorm:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

// TotalPurchases sums the loaded purchase history.
func (c *Customer) TotalPurchases() float64 {
	var total float64
	for _, s := range c.PurchaseHistory {
		total += s.TotalAmount
	}
	return total
}

// PurchaseSummary is one sale as seen from the customer's history.
type PurchaseSummary struct {
	SaleID        uint       `json:"sale_id"`
	SaleDate      time.Time  `json:"sale_date"`
	PaymentMethod string     `json:"payment_method"`
	TotalAmount   float64    `json:"total_amount"`
	Items         []SaleItem `json:"items,omitempty"`
}
