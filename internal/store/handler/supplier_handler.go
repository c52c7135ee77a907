package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/modaluna/tienda/internal/store/service"
)

type SupplierHandler struct {
	svc *service.SupplierService
}

func NewSupplierHandler(svc *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

// Create POST /suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req service.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	supplier, err := h.svc.AddSupplier(c.Request.Context(), req)
	if err != nil {
		FromError(c, err)
		return
	}

	Created(c, supplier)
}

// Update PUT /suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	supplier, err := h.svc.UpdateSupplier(c.Request.Context(), id, req)
	if err != nil {
		FromError(c, err)
		return
	}

	Success(c, supplier)
}

// Delete DELETE /suppliers/:id
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteSupplier(c.Request.Context(), id); err != nil {
		FromError(c, err)
		return
	}
	Success(c, nil)
}

// Get GET /suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	supplier, err := h.svc.GetSupplier(c.Request.Context(), id)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, supplier)
}

// List GET /suppliers?q=xxx
func (h *SupplierHandler) List(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		suppliers, err := h.svc.SearchSuppliers(c.Request.Context(), q)
		if err != nil {
			FromError(c, err)
			return
		}
		Success(c, gin.H{"items": suppliers})
		return
	}

	suppliers, err := h.svc.ListSuppliers(c.Request.Context())
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": suppliers})
}

// ListProducts GET /suppliers/:id/products
func (h *SupplierHandler) ListProducts(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	rows, err := h.svc.ListProducts(c.Request.Context(), id)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": rows})
}

// LinkProduct POST /suppliers/:id/products/:productId
func (h *SupplierHandler) LinkProduct(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	productID, ok := ParamID(c, "productId")
	if !ok {
		return
	}
	if err := h.svc.LinkProduct(c.Request.Context(), id, productID); err != nil {
		FromError(c, err)
		return
	}
	Created(c, nil)
}

// UnlinkProduct DELETE /suppliers/:id/products/:productId
func (h *SupplierHandler) UnlinkProduct(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	productID, ok := ParamID(c, "productId")
	if !ok {
		return
	}
	if err := h.svc.UnlinkProduct(c.Request.Context(), id, productID); err != nil {
		FromError(c, err)
		return
	}
	Success(c, nil)
}

// SuppliersForProduct GET /products/:id/suppliers
func (h *SupplierHandler) SuppliersForProduct(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	suppliers, err := h.svc.SuppliersForProduct(c.Request.Context(), id)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": suppliers})
}
