package repository

import (
	"context"
	"strings"

	"github.com/modaluna/tienda/internal/store/entity"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) DB() *gorm.DB {
	return r.db
}

func (r *CustomerRepository) Create(ctx context.Context, c *entity.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CustomerRepository) Update(ctx context.Context, c *entity.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// DetachAndDelete clears the customer reference on every sale belonging to
// the customer, then deletes the row. Sales survive the deletion anonymised.
func (r *CustomerRepository) DetachAndDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Sale{}).Where("customer_id = ?", id).
			Update("customer_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Customer{}, id).Error
	})
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// EmailTaken reports whether another customer (id != excludeID) already
// holds the email. Pass excludeID 0 when creating.
func (r *CustomerRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Customer{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *CustomerRepository) List(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&customers).Error
	return customers, err
}

// Search matches the term case-insensitively against name, email or phone.
func (r *CustomerRepository) Search(ctx context.Context, term string) ([]entity.Customer, error) {
	kw := "%" + strings.ToLower(term) + "%"
	var customers []entity.Customer
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?", kw, kw, kw).
		Order("name ASC").
		Find(&customers).Error
	return customers, err
}

// ListPurchaseSummaries returns the customer's sales newest-first, without
// line items.
func (r *CustomerRepository) ListPurchaseSummaries(ctx context.Context, customerID uint) ([]entity.PurchaseSummary, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("sale_date DESC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	summaries := make([]entity.PurchaseSummary, 0, len(sales))
	for _, s := range sales {
		summaries = append(summaries, entity.PurchaseSummary{
			SaleID:        s.ID,
			SaleDate:      s.SaleDate,
			PaymentMethod: s.PaymentMethod,
			TotalAmount:   s.TotalAmount,
		})
	}
	return summaries, nil
}
