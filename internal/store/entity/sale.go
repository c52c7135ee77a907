package entity

import (
	"time"
)

// Payment methods accepted at the register.
const (
	PaymentCash       = "CASH"
	PaymentCreditCard = "CREDIT_CARD"
	PaymentTransfer   = "TRANSFER"
)

// Sale is a completed (or in-progress) register transaction. TotalAmount is
// derived from the items and is recomputed after every mutation; the stored
// column is never treated as authoritative.
type Sale struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	CustomerID    *uint      `json:"customer_id" gorm:"index"`
	SaleDate      time.Time  `json:"sale_date" gorm:"not null;index"`
	PaymentMethod string     `json:"payment_method" gorm:"size:20;not null;default:CASH"`
	TotalAmount   float64    `json:"total_amount" gorm:"not null;default:0"`

	Customer *Customer  `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	Items    []SaleItem `json:"items,omitempty" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`

	// Populated from the customers join on read, not a column.
	CustomerName string `json:"customer_name,omitempty" gorm:"-"`
}

func (Sale) TableName() string {
	return "sales"
}

// NewSale returns a sale dated now.
func NewSale(customerID *uint, paymentMethod string) *Sale {
	if paymentMethod == "" {
		paymentMethod = PaymentCash
	}
	return &Sale{
		CustomerID:    customerID,
		SaleDate:      time.Now(),
		PaymentMethod: paymentMethod,
	}
}

// AddItem adds a line item. When a line for the same product variant already
// exists the quantities are merged into that line instead of appending a
// duplicate row. The sale total is recomputed either way.
func (s *Sale) AddItem(item SaleItem) bool {
	for i := range s.Items {
		if s.Items[i].ProductVariantID == item.ProductVariantID {
			s.Items[i].Quantity += item.Quantity
			s.Items[i].RecalculateSubtotal()
			s.RecalculateTotal()
			return true
		}
	}
	s.Items = append(s.Items, item)
	s.RecalculateTotal()
	return true
}

// RemoveItem removes the item at index. Returns false and leaves the sale
// untouched when index is out of range.
func (s *Sale) RemoveItem(index int) bool {
	if index < 0 || index >= len(s.Items) {
		return false
	}
	s.Items = append(s.Items[:index], s.Items[index+1:]...)
	s.RecalculateTotal()
	return true
}

// RecalculateTotal sets TotalAmount to the sum of item subtotals.
func (s *Sale) RecalculateTotal() {
	var total float64
	for i := range s.Items {
		total += s.Items[i].Subtotal
	}
	s.TotalAmount = total
}

// PaymentMethods lists the accepted payment methods in presentation order.
func PaymentMethods() []string {
	return []string{PaymentCash, PaymentCreditCard, PaymentTransfer}
}

// SaleItem is one product variant line within a sale.
type SaleItem struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	SaleID           uint    `json:"sale_id" gorm:"not null;index"`
	ProductVariantID uint    `json:"product_variant_id" gorm:"not null"`
	Quantity         int     `json:"quantity" gorm:"not null"`
	UnitPrice        float64 `json:"unit_price" gorm:"not null"`
	DiscountPercent  float64 `json:"discount_percent" gorm:"not null;default:0"`
	Subtotal         float64 `json:"subtotal" gorm:"not null"`

	// Joined product context for presentation, not columns.
	ProductName string `json:"product_name,omitempty" gorm:"-"`
	ProductCode string `json:"product_code,omitempty" gorm:"-"`
	Size        string `json:"size,omitempty" gorm:"-"`
	Color       string `json:"color,omitempty" gorm:"-"`
}

func (SaleItem) TableName() string {
	return "sale_items"
}

// NewSaleItem builds a line item with its subtotal computed.
func NewSaleItem(variantID uint, quantity int, unitPrice, discountPercent float64) SaleItem {
	item := SaleItem{
		ProductVariantID: variantID,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		DiscountPercent:  discountPercent,
	}
	item.RecalculateSubtotal()
	return item
}

// CalculateSubtotal returns quantity x unit price after the line discount.
func (i *SaleItem) CalculateSubtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice * (1 - i.DiscountPercent/100)
}

// RecalculateSubtotal recomputes and stores the subtotal. The owning sale
// calls this whenever the quantity changes through a merge.
func (i *SaleItem) RecalculateSubtotal() {
	i.Subtotal = i.CalculateSubtotal()
}
