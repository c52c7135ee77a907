package entity

import (
	"time"
)

// Supplier is a wholesale source for catalog products.
type Supplier struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"size:200;not null"`
	ContactPerson string    `json:"contact_person" gorm:"size:100"`
	Email         string    `json:"email" gorm:"size:100"`
	Phone         string    `json:"phone" gorm:"size:30;not null"`
	Address       string    `json:"address" gorm:"size:500"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Products []Product `json:"products,omitempty" gorm:"many2many:supplier_products;constraint:OnDelete:CASCADE"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
