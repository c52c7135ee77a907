package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/modaluna/tienda/internal/store/service"
)

type CustomerHandler struct {
	svc *service.CustomerService
}

func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// Create POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	customer, err := h.svc.AddCustomer(c.Request.Context(), req)
	if err != nil {
		FromError(c, err)
		return
	}

	Created(c, customer)
}

// Update PUT /customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	customer, err := h.svc.UpdateCustomer(c.Request.Context(), id, req)
	if err != nil {
		FromError(c, err)
		return
	}

	Success(c, customer)
}

// Delete DELETE /customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteCustomer(c.Request.Context(), id); err != nil {
		FromError(c, err)
		return
	}
	Success(c, nil)
}

// Get GET /customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	customer, err := h.svc.GetCustomer(c.Request.Context(), id)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, customer)
}

// List GET /customers?q=xxx
func (h *CustomerHandler) List(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		customers, err := h.svc.SearchCustomers(c.Request.Context(), q)
		if err != nil {
			FromError(c, err)
			return
		}
		Success(c, gin.H{"items": customers})
		return
	}

	customers, err := h.svc.ListCustomers(c.Request.Context())
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": customers})
}

// PurchaseHistory GET /customers/:id/purchases
func (h *CustomerHandler) PurchaseHistory(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	history, err := h.svc.PurchaseHistory(c.Request.Context(), id)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": history})
}
