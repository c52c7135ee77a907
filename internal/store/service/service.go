package service

import (
	"errors"

	"github.com/modaluna/tienda/internal/store/repository"
)

// Business-rule failures surfaced to handlers.
var (
	ErrDuplicateEmail    = errors.New("a customer with this email already exists")
	ErrDuplicateVariant  = errors.New("a variant with this size and color already exists for this product")
	ErrDuplicateLink     = errors.New("this product is already linked to this supplier")
	ErrProductInUse      = errors.New("product is referenced by existing sales")
	ErrVariantInUse      = errors.New("variant is referenced by existing sales")
	ErrCategoryInUse     = errors.New("category has products attached")
	ErrNegativeStock     = errors.New("inventory quantity cannot be negative")
	ErrInvalidPayment    = errors.New("unknown payment method")
	ErrInvalidDiscount   = errors.New("discount percent must be between 0 and 100")
	ErrEmptySale         = errors.New("a sale needs at least one item")
)

// Services is the business-logic layer collection.
type Services struct {
	Customer  *CustomerService
	Catalog   *CatalogService
	Inventory *InventoryService
	Sale      *SaleService
	Supplier  *SupplierService
	Report    *ReportService
}

func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Customer:  NewCustomerService(repos.Customer, repos.Sale),
		Catalog:   NewCatalogService(repos.Product),
		Inventory: NewInventoryService(repos.Inventory),
		Sale:      NewSaleService(repos.Sale, repos.Customer, repos.Product, repos.Inventory),
		Supplier:  NewSupplierService(repos.Supplier, repos.Product),
		Report:    NewReportService(repos.Report, repos.Sale, repos.Inventory),
	}
}
