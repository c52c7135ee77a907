package service

import (
	"context"
	"fmt"

	"github.com/modaluna/tienda/internal/store/entity"
	"github.com/modaluna/tienda/internal/store/repository"
)

// DefaultLowStockThreshold is used when a listing does not specify one.
const DefaultLowStockThreshold = 5

type InventoryService struct {
	repo *repository.InventoryRepository
}

func NewInventoryService(repo *repository.InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

func (s *InventoryService) Get(ctx context.Context, variantID uint) (*entity.Inventory, error) {
	return s.repo.GetByVariant(ctx, variantID)
}

// SetQuantity sets the variant's stock to an absolute value and records the
// movement in the ledger.
func (s *InventoryService) SetQuantity(ctx context.Context, variantID uint, quantity int, txType string, referenceID *uint, notes string) error {
	if quantity < 0 {
		return ErrNegativeStock
	}
	if txType == "" {
		txType = entity.TxTypeAdjustment
	}
	if err := s.repo.SetQuantity(ctx, variantID, quantity, txType, referenceID, notes); err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

// Adjust applies a signed delta to the variant's stock. A delta that would
// take the quantity below zero is refused.
func (s *InventoryService) Adjust(ctx context.Context, variantID uint, delta int, notes string) (*entity.Inventory, error) {
	inv, err := s.repo.GetByVariant(ctx, variantID)
	if err != nil {
		return nil, err
	}
	newQty := inv.Quantity + delta
	if newQty < 0 {
		return nil, ErrNegativeStock
	}
	if err := s.repo.SetQuantity(ctx, variantID, newQty, entity.TxTypeAdjustment, nil, notes); err != nil {
		return nil, fmt.Errorf("adjust inventory: %w", err)
	}
	return s.repo.GetByVariant(ctx, variantID)
}

func (s *InventoryService) LowStock(ctx context.Context, threshold int) ([]repository.StockRow, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return s.repo.LowStock(ctx, threshold)
}

func (s *InventoryService) OutOfStock(ctx context.Context) ([]repository.StockRow, error) {
	return s.repo.OutOfStock(ctx)
}

func (s *InventoryService) StockByCategory(ctx context.Context) ([]repository.CategoryStockRow, error) {
	return s.repo.StockByCategory(ctx)
}

func (s *InventoryService) Transactions(ctx context.Context, params repository.TransactionListParams) ([]entity.InventoryTransaction, error) {
	return s.repo.ListTransactions(ctx, params)
}
