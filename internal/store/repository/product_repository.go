package repository

import (
	"context"
	"strings"
	"time"

	"github.com/modaluna/tienda/internal/store/entity"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) DB() *gorm.DB {
	return r.db
}

// CreateWithVariants inserts the product, its variants and a zero-quantity
// inventory row per variant, as one transaction.
func (r *ProductRepository) CreateWithVariants(ctx context.Context, p *entity.Product, variants []entity.ProductVariant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Variants").Create(p).Error; err != nil {
			return err
		}
		now := time.Now()
		for i := range variants {
			variants[i].ProductID = p.ID
			if err := tx.Create(&variants[i]).Error; err != nil {
				return err
			}
			inv := entity.Inventory{
				ProductVariantID: variants[i].ID,
				Quantity:         0,
				LastUpdated:      now,
			}
			if err := tx.Create(&inv).Error; err != nil {
				return err
			}
		}
		p.Variants = variants
		return nil
	})
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	return r.db.WithContext(ctx).Omit("Variants", "Category").Save(p).Error
}

// Delete removes the product; variants and their inventory rows go with it.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			DELETE FROM inventory WHERE product_variant_id IN
			(SELECT id FROM product_variants WHERE product_id = ?)
		`, id).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&entity.ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Product{}, id).Error
	})
}

// SaleReferenceCount counts sale items that reference any variant of the
// product. A non-zero count blocks deletion.
func (r *ProductRepository) SaleReferenceCount(ctx context.Context, productID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.SaleItem{}).
		Joins("JOIN product_variants ON sale_items.product_variant_id = product_variants.id").
		Where("product_variants.product_id = ?", productID).
		Count(&count).Error
	return count, err
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	variants, err := r.ListVariants(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return &p, nil
}

func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context, categoryID uint) ([]entity.Product, error) {
	query := r.db.WithContext(ctx).Preload("Category").Order("name ASC")
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	var products []entity.Product
	err := query.Find(&products).Error
	return products, err
}

// Search matches name, description or code case-insensitively.
func (r *ProductRepository) Search(ctx context.Context, term string) ([]entity.Product, error) {
	kw := "%" + strings.ToLower(term) + "%"
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(code) LIKE ?", kw, kw, kw).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

// OnSale returns products whose discount window covers now. Open-ended
// windows count.
func (r *ProductRepository) OnSale(ctx context.Context, now time.Time) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("discount_percent > 0").
		Where("discount_start_date IS NULL OR discount_start_date <= ?", now).
		Where("discount_end_date IS NULL OR discount_end_date >= ?", now).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

// --- Variants ---

// VariantExists reports whether the product already has a variant with the
// size/color pair, excluding excludeID (0 for creates).
func (r *ProductRepository) VariantExists(ctx context.Context, productID uint, size, color string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.ProductVariant{}).
		Where("product_id = ? AND size = ? AND color = ?", productID, size, color)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CreateVariant inserts the variant and its inventory row with the given
// opening quantity.
func (r *ProductRepository) CreateVariant(ctx context.Context, v *entity.ProductVariant, openingQty int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(v).Error; err != nil {
			return err
		}
		inv := entity.Inventory{
			ProductVariantID: v.ID,
			Quantity:         openingQty,
			LastUpdated:      time.Now(),
		}
		return tx.Create(&inv).Error
	})
}

func (r *ProductRepository) UpdateVariant(ctx context.Context, v *entity.ProductVariant) error {
	return r.db.WithContext(ctx).Model(&entity.ProductVariant{}).
		Where("id = ?", v.ID).
		Updates(map[string]interface{}{"size": v.Size, "color": v.Color}).Error
}

func (r *ProductRepository) FindVariantByID(ctx context.Context, id uint) (*entity.ProductVariant, error) {
	var v entity.ProductVariant
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}

func (r *ProductRepository) VariantSaleReferenceCount(ctx context.Context, variantID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.SaleItem{}).
		Where("product_variant_id = ?", variantID).
		Count(&count).Error
	return count, err
}

// DeleteVariant removes the variant and its inventory row.
func (r *ProductRepository) DeleteVariant(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_variant_id = ?", id).Delete(&entity.Inventory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.ProductVariant{}, id).Error
	})
}

// ListVariants returns the product's variants with current stock attached.
func (r *ProductRepository) ListVariants(ctx context.Context, productID uint) ([]entity.ProductVariant, error) {
	var variants []entity.ProductVariant
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return variants, nil
	}
	ids := make([]uint, 0, len(variants))
	for _, v := range variants {
		ids = append(ids, v.ID)
	}
	var stocks []entity.Inventory
	if err := r.db.WithContext(ctx).Where("product_variant_id IN ?", ids).Find(&stocks).Error; err != nil {
		return nil, err
	}
	byVariant := make(map[uint]int, len(stocks))
	for _, s := range stocks {
		byVariant[s.ProductVariantID] = s.Quantity
	}
	for i := range variants {
		variants[i].InventoryQuantity = byVariant[variants[i].ID]
	}
	return variants, nil
}

// --- Categories ---

func (r *ProductRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *ProductRepository) CreateCategory(ctx context.Context, c *entity.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ProductRepository) UpdateCategory(ctx context.Context, c *entity.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ProductRepository) DeleteCategory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Category{}, id).Error
}

// CategoryProductCount counts products attached to the category. A non-zero
// count blocks deletion.
func (r *ProductRepository) CategoryProductCount(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
