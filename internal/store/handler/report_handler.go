package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/modaluna/tienda/internal/store/service"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// SalesByPeriod GET /reports/sales-by-period?period=daily&start=&end=
func (h *ReportHandler) SalesByPeriod(c *gin.Context) {
	start, end, ok := QueryTimeRange(c)
	if !ok {
		return
	}
	rows, err := h.svc.SalesByPeriod(c.Request.Context(), c.Query("period"), start, end)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": rows})
}

// SalesByCategory GET /reports/sales-by-category?start=&end=
func (h *ReportHandler) SalesByCategory(c *gin.Context) {
	start, end, ok := QueryTimeRange(c)
	if !ok {
		return
	}
	rows, err := h.svc.SalesByCategory(c.Request.Context(), start, end)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": rows})
}

// TopCustomers GET /reports/top-customers?limit=n&start=&end=
func (h *ReportHandler) TopCustomers(c *gin.Context) {
	limit := 0
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

	rows, err := h.svc.TopCustomers(c.Request.Context(), limit, start, end)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"items": rows})
}

// InventoryValue GET /reports/inventory-value
func (h *ReportHandler) InventoryValue(c *gin.Context) {
	report, err := h.svc.InventoryValue(c.Request.Context())
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, report)
}

// SalesReport GET /reports/sales?period=daily&start=&end=
func (h *ReportHandler) SalesReport(c *gin.Context) {
	start, end, ok := QueryTimeRange(c)
	if !ok {
		return
	}
	report, err := h.svc.BuildSalesReport(c.Request.Context(), c.Query("period"), start, end)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, report)
}

// InventoryReport GET /reports/inventory?threshold=n
func (h *ReportHandler) InventoryReport(c *gin.Context) {
	threshold := 0
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			BadRequest(c, "invalid threshold")
			return
		}
		threshold = v
	}

	report, err := h.svc.BuildInventoryReport(c.Request.Context(), threshold)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, report)
}

// ExportSales GET /reports/sales/export?period=daily&start=&end=
func (h *ReportHandler) ExportSales(c *gin.Context) {
	start, end, ok := QueryTimeRange(c)
	if !ok {
		return
	}
	f, filename, err := h.svc.ExportSalesReport(c.Request.Context(), c.Query("period"), start, end)
	if err != nil {
		FromError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}

// ExportInventory GET /reports/inventory/export?threshold=n
func (h *ReportHandler) ExportInventory(c *gin.Context) {
	threshold := 0
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			BadRequest(c, "invalid threshold")
			return
		}
		threshold = v
	}

	f, filename, err := h.svc.ExportInventoryReport(c.Request.Context(), threshold)
	if err != nil {
		FromError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}
