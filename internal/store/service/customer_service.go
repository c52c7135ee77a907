package service

import (
	"context"
	"fmt"

	"github.com/modaluna/tienda/internal/store/entity"
	"github.com/modaluna/tienda/internal/store/repository"
)

type CustomerService struct {
	repo     *repository.CustomerRepository
	saleRepo *repository.SaleRepository
}

func NewCustomerService(repo *repository.CustomerRepository, saleRepo *repository.SaleRepository) *CustomerService {
	return &CustomerService{repo: repo, saleRepo: saleRepo}
}

type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// AddCustomer inserts a new customer. An email already held by any customer
// is refused with ErrDuplicateEmail before anything is written.
func (s *CustomerService) AddCustomer(ctx context.Context, req CustomerRequest) (*entity.Customer, error) {
	if req.Email != "" {
		taken, err := s.repo.EmailTaken(ctx, req.Email, 0)
		if err != nil {
			return nil, fmt.Errorf("add customer: %w", err)
		}
		if taken {
			return nil, ErrDuplicateEmail
		}
	}

	customer := &entity.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if req.Email != "" {
		customer.Email = &req.Email
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("add customer: %w", err)
	}
	return customer, nil
}

// UpdateCustomer updates the mutable fields. An email held by a different
// customer is refused with ErrDuplicateEmail.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uint, req CustomerRequest) (*entity.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Email != "" {
		taken, err := s.repo.EmailTaken(ctx, req.Email, id)
		if err != nil {
			return nil, fmt.Errorf("update customer: %w", err)
		}
		if taken {
			return nil, ErrDuplicateEmail
		}
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Address = req.Address
	if req.Email != "" {
		customer.Email = &req.Email
	} else {
		customer.Email = nil
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return customer, nil
}

// DeleteCustomer removes the customer. Their sales are kept but detached
// from the identity, never cascaded.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DetachAndDelete(ctx, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// GetCustomer returns the customer with their purchase summaries loaded
// newest-first.
func (s *CustomerService) GetCustomer(ctx context.Context, id uint) (*entity.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.ListPurchaseSummaries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load purchase history: %w", err)
	}
	customer.PurchaseHistory = history
	return customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	return s.repo.List(ctx)
}

func (s *CustomerService) SearchCustomers(ctx context.Context, term string) ([]entity.Customer, error) {
	return s.repo.Search(ctx, term)
}

// PurchaseHistory returns the customer's sales newest-first, each with its
// line items joined against product and variant data.
func (s *CustomerService) PurchaseHistory(ctx context.Context, id uint) ([]entity.PurchaseSummary, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	summaries, err := s.repo.ListPurchaseSummaries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load purchase history: %w", err)
	}
	for i := range summaries {
		items, err := s.saleRepo.ListDetailedItems(ctx, summaries[i].SaleID)
		if err != nil {
			return nil, fmt.Errorf("load sale items: %w", err)
		}
		summaries[i].Items = items
	}
	return summaries, nil
}
