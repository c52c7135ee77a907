package service

import (
	"context"
	"fmt"

	"github.com/modaluna/tienda/internal/store/entity"
	"github.com/modaluna/tienda/internal/store/repository"
)

type SupplierService struct {
	repo        *repository.SupplierRepository
	productRepo *repository.ProductRepository
}

func NewSupplierService(repo *repository.SupplierRepository, productRepo *repository.ProductRepository) *SupplierService {
	return &SupplierService{repo: repo, productRepo: productRepo}
}

type SupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	ProductIDs    []uint `json:"product_ids"`
}

// AddSupplier inserts the supplier and links any referenced products in one
// transaction. Every product id must exist.
func (s *SupplierService) AddSupplier(ctx context.Context, req SupplierRequest) (*entity.Supplier, error) {
	for _, pid := range req.ProductIDs {
		if _, err := s.productRepo.FindByID(ctx, pid); err != nil {
			return nil, fmt.Errorf("product %d: %w", pid, err)
		}
	}
	supplier := &entity.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	}
	if err := s.repo.Create(ctx, supplier, req.ProductIDs); err != nil {
		return nil, fmt.Errorf("add supplier: %w", err)
	}
	return supplier, nil
}

// UpdateSupplier updates contact fields only; product links are managed
// through LinkProduct and UnlinkProduct.
func (s *SupplierService) UpdateSupplier(ctx context.Context, id uint, req SupplierRequest) (*entity.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	supplier.Name = req.Name
	supplier.ContactPerson = req.ContactPerson
	supplier.Email = req.Email
	supplier.Phone = req.Phone
	supplier.Address = req.Address
	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("update supplier: %w", err)
	}
	return supplier, nil
}

func (s *SupplierService) DeleteSupplier(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

func (s *SupplierService) GetSupplier(ctx context.Context, id uint) (*entity.Supplier, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SupplierService) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	return s.repo.List(ctx)
}

func (s *SupplierService) SearchSuppliers(ctx context.Context, term string) ([]entity.Supplier, error) {
	return s.repo.Search(ctx, term)
}

// LinkProduct adds a product to the supplier's offering. Linking the same
// pair twice is refused with ErrDuplicateLink.
func (s *SupplierService) LinkProduct(ctx context.Context, supplierID, productID uint) error {
	if _, err := s.repo.FindByID(ctx, supplierID); err != nil {
		return err
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	linked, err := s.repo.ProductLinked(ctx, supplierID, productID)
	if err != nil {
		return fmt.Errorf("link product: %w", err)
	}
	if linked {
		return ErrDuplicateLink
	}
	if err := s.repo.LinkProduct(ctx, supplierID, productID); err != nil {
		return fmt.Errorf("link product: %w", err)
	}
	return nil
}

func (s *SupplierService) UnlinkProduct(ctx context.Context, supplierID, productID uint) error {
	linked, err := s.repo.ProductLinked(ctx, supplierID, productID)
	if err != nil {
		return fmt.Errorf("unlink product: %w", err)
	}
	if !linked {
		return repository.ErrNotFound
	}
	if err := s.repo.UnlinkProduct(ctx, supplierID, productID); err != nil {
		return fmt.Errorf("unlink product: %w", err)
	}
	return nil
}

func (s *SupplierService) ListProducts(ctx context.Context, supplierID uint) ([]repository.SupplierProductRow, error) {
	if _, err := s.repo.FindByID(ctx, supplierID); err != nil {
		return nil, err
	}
	return s.repo.ListProducts(ctx, supplierID)
}

func (s *SupplierService) SuppliersForProduct(ctx context.Context, productID uint) ([]entity.Supplier, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.SuppliersForProduct(ctx, productID)
}
