package repository

import (
	"context"
	"strings"

	"github.com/modaluna/tienda/internal/store/entity"
	"gorm.io/gorm"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) DB() *gorm.DB {
	return r.db
}

// Create inserts the supplier and links any referenced products.
func (r *SupplierRepository) Create(ctx context.Context, s *entity.Supplier, productIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Products").Create(s).Error; err != nil {
			return err
		}
		for _, pid := range productIDs {
			if err := tx.Exec(
				"INSERT INTO supplier_products (supplier_id, product_id) VALUES (?, ?)",
				s.ID, pid,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SupplierRepository) Update(ctx context.Context, s *entity.Supplier) error {
	return r.db.WithContext(ctx).Omit("Products").Save(s).Error
}

// Delete removes the supplier; product links go with it.
func (r *SupplierRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM supplier_products WHERE supplier_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Supplier{}, id).Error
	})
}

func (r *SupplierRepository) FindByID(ctx context.Context, id uint) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *SupplierRepository) List(ctx context.Context) ([]entity.Supplier, error) {
	var suppliers []entity.Supplier
	err := r.db.WithContext(ctx).Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

// Search matches name, contact person, email or phone case-insensitively.
func (r *SupplierRepository) Search(ctx context.Context, term string) ([]entity.Supplier, error) {
	kw := "%" + strings.ToLower(term) + "%"
	var suppliers []entity.Supplier
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(contact_person) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?",
			kw, kw, kw, kw).
		Order("name ASC").
		Find(&suppliers).Error
	return suppliers, err
}

// ProductLinked reports whether the supplier already offers the product.
func (r *SupplierRepository) ProductLinked(ctx context.Context, supplierID, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("supplier_products").
		Where("supplier_id = ? AND product_id = ?", supplierID, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *SupplierRepository) LinkProduct(ctx context.Context, supplierID, productID uint) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO supplier_products (supplier_id, product_id) VALUES (?, ?)",
		supplierID, productID,
	).Error
}

func (r *SupplierRepository) UnlinkProduct(ctx context.Context, supplierID, productID uint) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM supplier_products WHERE supplier_id = ? AND product_id = ?",
		supplierID, productID,
	).Error
}

// SupplierProductRow is one offered product with its category name.
type SupplierProductRow struct {
	ProductID   uint    `json:"product_id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

// ListProducts returns the products a supplier offers, ordered by name.
func (r *SupplierRepository) ListProducts(ctx context.Context, supplierID uint) ([]SupplierProductRow, error) {
	var rows []SupplierProductRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id, p.code, p.name, p.description,
		       c.name AS category, p.price
		FROM supplier_products sp
		JOIN products p ON sp.product_id = p.id
		JOIN categories c ON p.category_id = c.id
		WHERE sp.supplier_id = ?
		ORDER BY p.name
	`, supplierID).Scan(&rows).Error
	return rows, err
}

// SuppliersForProduct returns every supplier offering the product.
func (r *SupplierRepository) SuppliersForProduct(ctx context.Context, productID uint) ([]entity.Supplier, error) {
	var suppliers []entity.Supplier
	err := r.db.WithContext(ctx).
		Joins("JOIN supplier_products sp ON sp.supplier_id = suppliers.id").
		Where("sp.product_id = ?", productID).
		Order("suppliers.name ASC").
		Find(&suppliers).Error
	return suppliers, err
}
