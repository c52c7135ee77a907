package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock is returned when a stock movement would drive an
	// inventory quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repositories is the data-access layer collection.
type Repositories struct {
	Customer  *CustomerRepository
	Product   *ProductRepository
	Inventory *InventoryRepository
	Sale      *SaleRepository
	Supplier  *SupplierRepository
	Report    *ReportRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Customer:  NewCustomerRepository(db),
		Product:   NewProductRepository(db),
		Inventory: NewInventoryRepository(db),
		Sale:      NewSaleRepository(db),
		Supplier:  NewSupplierRepository(db),
		Report:    NewReportRepository(db),
	}
}

// notFound maps gorm's sentinel onto the package one.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
