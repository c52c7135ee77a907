package service

import (
	"context"
	"fmt"
	"time"

	"github.com/modaluna/tienda/internal/store/entity"
	"github.com/modaluna/tienda/internal/store/repository"
)

// CatalogService manages products, their variants and categories.
type CatalogService struct {
	repo *repository.ProductRepository
}

func NewCatalogService(repo *repository.ProductRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

type VariantInput struct {
	Size  string `json:"size" binding:"required"`
	Color string `json:"color" binding:"required"`
}

type ProductRequest struct {
	Code              string         `json:"code" binding:"required"`
	Name              string         `json:"name" binding:"required"`
	Description       string         `json:"description"`
	CategoryID        uint           `json:"category_id" binding:"required"`
	Price             float64        `json:"price" binding:"required,gt=0"`
	DiscountPercent   float64        `json:"discount_percent"`
	DiscountStartDate *time.Time     `json:"discount_start_date"`
	DiscountEndDate   *time.Time     `json:"discount_end_date"`
	Variants          []VariantInput `json:"variants"`
}

// AddProduct inserts the product with its variants; every variant starts
// with an empty inventory row.
func (s *CatalogService) AddProduct(ctx context.Context, req ProductRequest) (*entity.Product, error) {
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		return nil, ErrInvalidDiscount
	}
	product := &entity.Product{
		Code:              req.Code,
		Name:              req.Name,
		Description:       req.Description,
		CategoryID:        req.CategoryID,
		Price:             req.Price,
		DiscountPercent:   req.DiscountPercent,
		DiscountStartDate: req.DiscountStartDate,
		DiscountEndDate:   req.DiscountEndDate,
	}
	variants := make([]entity.ProductVariant, 0, len(req.Variants))
	for _, v := range req.Variants {
		variants = append(variants, entity.ProductVariant{Size: v.Size, Color: v.Color})
	}
	if err := s.repo.CreateWithVariants(ctx, product, variants); err != nil {
		return nil, fmt.Errorf("add product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req ProductRequest) (*entity.Product, error) {
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		return nil, ErrInvalidDiscount
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Code = req.Code
	product.Name = req.Name
	product.Description = req.Description
	product.CategoryID = req.CategoryID
	product.Price = req.Price
	product.DiscountPercent = req.DiscountPercent
	product.DiscountStartDate = req.DiscountStartDate
	product.DiscountEndDate = req.DiscountEndDate
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes the product and its variants unless any variant is
// referenced by a sale.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	refs, err := s.repo.SaleReferenceCount(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if refs > 0 {
		return ErrProductInUse
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, categoryID uint, includeVariants bool) ([]entity.Product, error) {
	products, err := s.repo.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if includeVariants {
		for i := range products {
			variants, err := s.repo.ListVariants(ctx, products[i].ID)
			if err != nil {
				return nil, err
			}
			products[i].Variants = variants
		}
	}
	return products, nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, term string) ([]entity.Product, error) {
	return s.repo.Search(ctx, term)
}

// ProductsOnSale lists products whose discount window is active now.
func (s *CatalogService) ProductsOnSale(ctx context.Context) ([]entity.Product, error) {
	return s.repo.OnSale(ctx, time.Now())
}

// --- Variants ---

type AddVariantRequest struct {
	Size       string `json:"size" binding:"required"`
	Color      string `json:"color" binding:"required"`
	OpeningQty int    `json:"opening_qty"`
}

// AddVariant adds a size/color combination to an existing product. The pair
// must be unique within the product.
func (s *CatalogService) AddVariant(ctx context.Context, productID uint, req AddVariantRequest) (*entity.ProductVariant, error) {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	exists, err := s.repo.VariantExists(ctx, productID, req.Size, req.Color, 0)
	if err != nil {
		return nil, fmt.Errorf("add variant: %w", err)
	}
	if exists {
		return nil, ErrDuplicateVariant
	}
	variant := &entity.ProductVariant{
		ProductID: productID,
		Size:      req.Size,
		Color:     req.Color,
	}
	if err := s.repo.CreateVariant(ctx, variant, req.OpeningQty); err != nil {
		return nil, fmt.Errorf("add variant: %w", err)
	}
	variant.InventoryQuantity = req.OpeningQty
	return variant, nil
}

func (s *CatalogService) UpdateVariant(ctx context.Context, variantID uint, size, color string) (*entity.ProductVariant, error) {
	variant, err := s.repo.FindVariantByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.VariantExists(ctx, variant.ProductID, size, color, variantID)
	if err != nil {
		return nil, fmt.Errorf("update variant: %w", err)
	}
	if exists {
		return nil, ErrDuplicateVariant
	}
	variant.Size = size
	variant.Color = color
	if err := s.repo.UpdateVariant(ctx, variant); err != nil {
		return nil, fmt.Errorf("update variant: %w", err)
	}
	return variant, nil
}

// DeleteVariant removes a variant and its inventory row unless a sale
// references it.
func (s *CatalogService) DeleteVariant(ctx context.Context, variantID uint) error {
	if _, err := s.repo.FindVariantByID(ctx, variantID); err != nil {
		return err
	}
	refs, err := s.repo.VariantSaleReferenceCount(ctx, variantID)
	if err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	if refs > 0 {
		return ErrVariantInUse
	}
	if err := s.repo.DeleteVariant(ctx, variantID); err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	return nil
}

func (s *CatalogService) ListVariants(ctx context.Context, productID uint) ([]entity.ProductVariant, error) {
	return s.repo.ListVariants(ctx, productID)
}

// --- Categories ---

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CatalogService) AddCategory(ctx context.Context, req CategoryRequest) (*entity.Category, error) {
	category := &entity.Category{Name: req.Name, Description: req.Description}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("add category: %w", err)
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, req CategoryRequest) (*entity.Category, error) {
	category := &entity.Category{ID: id, Name: req.Name, Description: req.Description}
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category unless products are attached to it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	count, err := s.repo.CategoryProductCount(ctx, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
