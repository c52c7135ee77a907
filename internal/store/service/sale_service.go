package service

import (
	"context"
	"fmt"
	"time"

	"github.com/modaluna/tienda/internal/store/entity"
	"github.com/modaluna/tienda/internal/store/repository"
)

type SaleService struct {
	repo         *repository.SaleRepository
	customerRepo *repository.CustomerRepository
	productRepo  *repository.ProductRepository
	invRepo      *repository.InventoryRepository
}

func NewSaleService(repo *repository.SaleRepository, customerRepo *repository.CustomerRepository, productRepo *repository.ProductRepository, invRepo *repository.InventoryRepository) *SaleService {
	return &SaleService{repo: repo, customerRepo: customerRepo, productRepo: productRepo, invRepo: invRepo}
}

type SaleLineInput struct {
	ProductVariantID uint    `json:"product_variant_id" binding:"required"`
	Quantity         int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice        float64 `json:"unit_price" binding:"required,gt=0"`
	DiscountPercent  float64 `json:"discount_percent"`
}

type CreateSaleRequest struct {
	CustomerID    *uint           `json:"customer_id"`
	PaymentMethod string          `json:"payment_method"`
	SaleDate      *time.Time      `json:"sale_date"`
	Items         []SaleLineInput `json:"items" binding:"required,min=1"`
}

func validPaymentMethod(method string) bool {
	for _, m := range entity.PaymentMethods() {
		if m == method {
			return true
		}
	}
	return false
}

// CreateSale validates stock for every line, then writes the sale, the
// inventory decrements and the SALE ledger entries as one transaction.
// Lines for the same variant are merged before anything is checked, so the
// stock validation sees the combined quantity.
func (s *SaleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*entity.Sale, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptySale
	}
	if req.PaymentMethod != "" && !validPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPayment
	}
	if req.CustomerID != nil {
		if _, err := s.customerRepo.FindByID(ctx, *req.CustomerID); err != nil {
			return nil, fmt.Errorf("customer: %w", err)
		}
	}
	for _, line := range req.Items {
		if line.DiscountPercent < 0 || line.DiscountPercent > 100 {
			return nil, ErrInvalidDiscount
		}
	}

	sale := entity.NewSale(req.CustomerID, req.PaymentMethod)
	if req.SaleDate != nil {
		sale.SaleDate = *req.SaleDate
	}
	for _, line := range req.Items {
		sale.AddItem(entity.NewSaleItem(line.ProductVariantID, line.Quantity, line.UnitPrice, line.DiscountPercent))
	}

	for _, item := range sale.Items {
		if err := s.checkStock(ctx, item); err != nil {
			return nil, err
		}
	}

	if err := s.repo.CreateWithMovements(ctx, sale); err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}
	return sale, nil
}

// checkStock verifies the variant has enough units and names the product in
// the failure so the caller can show it verbatim.
func (s *SaleService) checkStock(ctx context.Context, item entity.SaleItem) error {
	inv, err := s.invRepo.GetByVariant(ctx, item.ProductVariantID)
	if err != nil {
		return fmt.Errorf("variant %d not found in inventory: %w", item.ProductVariantID, err)
	}
	if inv.Quantity >= item.Quantity {
		return nil
	}
	variant, err := s.productRepo.FindVariantByID(ctx, item.ProductVariantID)
	if err != nil {
		return fmt.Errorf("%w: variant %d: available %d, requested %d",
			repository.ErrInsufficientStock, item.ProductVariantID, inv.Quantity, item.Quantity)
	}
	product, err := s.productRepo.FindByID(ctx, variant.ProductID)
	if err != nil {
		return fmt.Errorf("%w: variant %d: available %d, requested %d",
			repository.ErrInsufficientStock, item.ProductVariantID, inv.Quantity, item.Quantity)
	}
	return fmt.Errorf("%w for %s (%s, size %s): available %d, requested %d",
		repository.ErrInsufficientStock, product.Name, variant.Color, variant.Size, inv.Quantity, item.Quantity)
}

// GetSale returns the sale with its customer and enriched line items.
func (s *SaleService) GetSale(ctx context.Context, id uint) (*entity.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.Customer != nil {
		sale.CustomerName = sale.Customer.Name
	}
	return sale, nil
}

// ListSales returns sales newest-first without line items.
func (s *SaleService) ListSales(ctx context.Context, params repository.SaleListParams) ([]entity.Sale, error) {
	sales, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		if sales[i].Customer != nil {
			sales[i].CustomerName = sales[i].Customer.Name
		}
	}
	return sales, nil
}

// CancelSale restores the sold stock and deletes the sale.
func (s *SaleService) CancelSale(ctx context.Context, id uint) error {
	if err := s.repo.CancelWithRestock(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return err
		}
		return fmt.Errorf("cancel sale: %w", err)
	}
	return nil
}

// PaymentMethods lists the accepted payment methods.
func (s *SaleService) PaymentMethods() []string {
	return entity.PaymentMethods()
}

func (s *SaleService) SalesByPaymentMethod(ctx context.Context, start, end *time.Time) ([]repository.PaymentMethodStat, error) {
	return s.repo.TotalsByPaymentMethod(ctx, start, end)
}

func (s *SaleService) TopSellingProducts(ctx context.Context, limit int, start, end *time.Time) ([]repository.TopProductRow, error) {
	return s.repo.TopSellingProducts(ctx, limit, start, end)
}
