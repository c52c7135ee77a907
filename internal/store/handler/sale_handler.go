package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/modaluna/tienda/internal/store/repository"
	"github.com/modaluna/tienda/internal/store/service"
)

type SaleHandler struct {
	svc *service.SaleService
}

func NewSaleHandler(svc *service.SaleService) *SaleHandler {
	return &SaleHandler{svc: svc}
}

// Create POST /sales
func (h *SaleHandler) Create(c *gin.Context) {
	var req service.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	sale, err := h.svc.CreateSale(c.Request.Context(), req)
	if err != nil {
		FromError(c, err)
		return
	}

	Created(c, sale)
}

// Get GET /sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	sale, err := h.svc.GetSale(c.Request.Context(), id)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, sale)
}

// List GET /sales?start=&end=&limit=n
func (h *SaleHandler) List(c *gin.Context) {
	var params repository.SaleListParams
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

	sales, err := h.svc.ListSales(c.Request.Context(), params)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": sales})
}

// Cancel DELETE /sales/:id
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.CancelSale(c.Request.Context(), id); err != nil {
		FromError(c, err)
		return
	}
	Success(c, nil)
}

// PaymentMethods GET /sales/payment-methods
func (h *SaleHandler) PaymentMethods(c *gin.Context) {
	Success(c, gin.H{"items": h.svc.PaymentMethods()})
}

// ByPaymentMethod GET /sales/by-payment-method?start=&end=
func (h *SaleHandler) ByPaymentMethod(c *gin.Context) {
	start, end, ok := QueryTimeRange(c)
	if !ok {
		return
	}
	stats, err := h.svc.SalesByPaymentMethod(c.Request.Context(), start, end)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": stats})
}

// TopProducts GET /sales/top-products?limit=n&start=&end=
func (h *SaleHandler) TopProducts(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			BadRequest(c, "invalid limit")
			return
		}
		limit = v
	}
	start, end, ok := QueryTimeRange(c)
	if !ok {
		return
	}

	rows, err := h.svc.TopSellingProducts(c.Request.Context(), limit, start, end)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": rows})
}
