package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/modaluna/tienda/internal/store/service"
)

type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// CreateProduct POST /products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	product, err := h.svc.AddProduct(c.Request.Context(), req)
	if err != nil {
		FromError(c, err)
		return
	}

	Created(c, product)
}

// UpdateProduct PUT /products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	product, err := h.svc.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		FromError(c, err)
		return
	}

	Success(c, product)
}

// DeleteProduct DELETE /products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		FromError(c, err)
		return
	}
	Success(c, nil)
}

// GetProduct GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	product, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, product)
}

// ListProducts GET /products?q=xxx&category_id=n&with_variants=true&on_sale=true
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if q := c.Query("q"); q != "" {
		products, err := h.svc.SearchProducts(ctx, q)
		if err != nil {
			FromError(c, err)
			return
		}
		Success(c, gin.H{"items": products})
		return
	}

	if c.Query("on_sale") == "true" {
		products, err := h.svc.ProductsOnSale(ctx)
		if err != nil {
			FromError(c, err)
			return
		}
		Success(c, gin.H{"items": products})
		return
	}

	var categoryID uint
	if raw := c.Query("category_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			BadRequest(c, "invalid category_id")
			return
		}
		categoryID = uint(v)
	}

	products, err := h.svc.ListProducts(ctx, categoryID, c.Query("with_variants") == "true")
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": products})
}

// CreateVariant POST /products/:id/variants
func (h *CatalogHandler) CreateVariant(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.AddVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	variant, err := h.svc.AddVariant(c.Request.Context(), id, req)
	if err != nil {
		FromError(c, err)
		return
	}

	Created(c, variant)
}

// ListVariants GET /products/:id/variants
func (h *CatalogHandler) ListVariants(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	variants, err := h.svc.ListVariants(c.Request.Context(), id)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": variants})
}

// UpdateVariant PUT /variants/:id
func (h *CatalogHandler) UpdateVariant(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.VariantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	variant, err := h.svc.UpdateVariant(c.Request.Context(), id, req.Size, req.Color)
	if err != nil {
		FromError(c, err)
		return
	}

	Success(c, variant)
}

// DeleteVariant DELETE /variants/:id
func (h *CatalogHandler) DeleteVariant(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteVariant(c.Request.Context(), id); err != nil {
		FromError(c, err)
		return
	}
	Success(c, nil)
}

// ListCategories GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": categories})
}

// CreateCategory POST /categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	category, err := h.svc.AddCategory(c.Request.Context(), req)
	if err != nil {
		FromError(c, err)
		return
	}

	Created(c, category)
}

// UpdateCategory PUT /categories/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	category, err := h.svc.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		FromError(c, err)
		return
	}

	Success(c, category)
}

// DeleteCategory DELETE /categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteCategory(c.Request.Context(), id); err != nil {
		FromError(c, err)
		return
	}
	Success(c, nil)
}
