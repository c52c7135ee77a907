package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/modaluna/tienda/internal/store/repository"
	"github.com/modaluna/tienda/internal/store/service"
)

type InventoryHandler struct {
	svc *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Get GET /inventory/:variantId
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "variantId")
	if !ok {
		return
	}
	inv, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, inv)
}

// SetQuantity PUT /inventory/:variantId
func (h *InventoryHandler) SetQuantity(c *gin.Context) {
	id, ok := ParamID(c, "variantId")
	if !ok {
		return
	}
	var req struct {
		Quantity        int    `json:"quantity"`
		TransactionType string `json:"transaction_type"`
		ReferenceID     *uint  `json:"reference_id"`
		Notes           string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.svc.SetQuantity(c.Request.Context(), id, req.Quantity, req.TransactionType, req.ReferenceID, req.Notes); err != nil {
		FromError(c, err)
		return
	}

	inv, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, inv)
}

// Adjust POST /inventory/:variantId/adjust
func (h *InventoryHandler) Adjust(c *gin.Context) {
	id, ok := ParamID(c, "variantId")
	if !ok {
		return
	}
	var req struct {
		Delta int    `json:"delta" binding:"required"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	inv, err := h.svc.Adjust(c.Request.Context(), id, req.Delta, req.Notes)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, inv)
}

// LowStock GET /inventory/low-stock?threshold=n
func (h *InventoryHandler) LowStock(c *gin.Context) {
	threshold := 0
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			BadRequest(c, "invalid threshold")
			return
		}
		threshold = v
	}

	rows, err := h.svc.LowStock(c.Request.Context(), threshold)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": rows})
}

// OutOfStock GET /inventory/out-of-stock
func (h *InventoryHandler) OutOfStock(c *gin.Context) {
	rows, err := h.svc.OutOfStock(c.Request.Context())
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": rows})
}

// StockByCategory GET /inventory/by-category
func (h *InventoryHandler) StockByCategory(c *gin.Context) {
	rows, err := h.svc.StockByCategory(c.Request.Context())
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": rows})
}

// Transactions GET /inventory/transactions?variant_id=n&type=SALE&start=&end=&limit=n
func (h *InventoryHandler) Transactions(c *gin.Context) {
	params := repository.TransactionListParams{
		TransactionType: c.Query("type"),
	}
	if raw := c.Query("variant_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			BadRequest(c, "invalid variant_id")
			return
		}
		params.VariantID = uint(v)
	}
	start, end, ok := QueryTimeRange(c)
	if !ok {
		return
	}
	params.Start = start
	params.End = end
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			BadRequest(c, "invalid limit")
			return
		}
		params.Limit = v
	}

	txs, err := h.svc.Transactions(c.Request.Context(), params)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": txs})
}
