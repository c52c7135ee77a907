package entity

import (
	"fmt"
	"time"
)

// Category groups products for navigation and reporting.
type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Description string `json:"description" gorm:"size:500"`
}

func (Category) TableName() string {
	return "categories"
}

// Product is a catalog entry. Concrete size/color combinations live in
// ProductVariant; stock is tracked per variant, never on the product.
type Product struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	Code              string     `json:"code" gorm:"size:50;not null;uniqueIndex"`
	Name              string     `json:"name" gorm:"size:200;not null"`
	Description       string     `json:"description" gorm:"size:1000"`
	CategoryID        uint       `json:"category_id" gorm:"not null;index"`
	Price             float64    `json:"price" gorm:"not null"`
	DiscountPercent   float64    `json:"discount_percent" gorm:"not null;default:0"`
	DiscountStartDate *time.Time `json:"discount_start_date"`
	DiscountEndDate   *time.Time `json:"discount_end_date"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Category *Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Variants []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string {
	return "products"
}

// DiscountActive reports whether the discount applies right now. Either end
// of the date window may be open.
func (p *Product) DiscountActive() bool {
	if p.DiscountPercent <= 0 {
		return false
	}
	now := time.Now()
	if p.DiscountStartDate != nil && now.Before(*p.DiscountStartDate) {
		return false
	}
	if p.DiscountEndDate != nil && now.After(*p.DiscountEndDate) {
		return false
	}
	return true
}

// CurrentPrice returns the list price with any active discount applied.
func (p *Product) CurrentPrice() float64 {
	if p.DiscountActive() {
		return p.Price * (1 - p.DiscountPercent/100)
	}
	return p.Price
}

// ProductVariant is a concrete size/color combination of a product.
type ProductVariant struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"product_id" gorm:"not null;uniqueIndex:idx_variant_combo"`
	Size      string `json:"size" gorm:"size:20;not null;uniqueIndex:idx_variant_combo"`
	Color     string `json:"color" gorm:"size:50;not null;uniqueIndex:idx_variant_combo"`

	// Stock loaded from the inventory row for presentation.
	InventoryQuantity int `json:"inventory_quantity" gorm:"-"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// Label renders the variant the way receipts and pickers show it.
func (v *ProductVariant) Label() string {
	return fmt.Sprintf("%s - Talla %s", v.Color, v.Size)
}
