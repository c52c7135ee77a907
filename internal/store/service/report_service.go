package service

import (
	"context"
	"fmt"
	"time"

	"github.com/modaluna/tienda/internal/store/repository"
	"github.com/xuri/excelize/v2"
)

type ReportService struct {
	repo     *repository.ReportRepository
	saleRepo *repository.SaleRepository
	invRepo  *repository.InventoryRepository
}

func NewReportService(repo *repository.ReportRepository, saleRepo *repository.SaleRepository, invRepo *repository.InventoryRepository) *ReportService {
	return &ReportService{repo: repo, saleRepo: saleRepo, invRepo: invRepo}
}

// defaultWindow picks a lookback that fits the bucket size when the caller
// gives no range: 30 days for daily, 90 for weekly, 365 for monthly.
func defaultWindow(periodType string, now time.Time) (time.Time, time.Time) {
	var days int
	switch periodType {
	case repository.PeriodWeekly:
		days = 90
	case repository.PeriodMonthly:
		days = 365
	default:
		days = 30
	}
	return now.AddDate(0, 0, -days), now
}

func (s *ReportService) SalesByPeriod(ctx context.Context, periodType string, start, end *time.Time) ([]repository.PeriodSalesRow, error) {
	if periodType == "" {
		periodType = repository.PeriodDaily
	}
	from, to := defaultWindow(periodType, time.Now())
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}
	return s.repo.SalesByPeriod(ctx, periodType, from, to)
}

func (s *ReportService) SalesByCategory(ctx context.Context, start, end *time.Time) ([]repository.CategorySalesRow, error) {
	return s.repo.SalesByCategory(ctx, start, end)
}

func (s *ReportService) TopCustomers(ctx context.Context, limit int, start, end *time.Time) ([]repository.TopCustomerRow, error) {
	return s.repo.TopCustomers(ctx, limit, start, end)
}

// InventoryValuation is the stock-at-list-price report.
type InventoryValuation struct {
	Totals     *repository.InventoryValueTotals    `json:"totals"`
	Categories []repository.InventoryValueCategory `json:"categories"`
}

func (s *ReportService) InventoryValue(ctx context.Context) (*InventoryValuation, error) {
	totals, categories, err := s.repo.InventoryValue(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory value: %w", err)
	}
	return &InventoryValuation{Totals: totals, Categories: categories}, nil
}

// PaymentMethodShare extends the raw payment totals with each method's share
// of revenue in the window.
type PaymentMethodShare struct {
	PaymentMethod string  `json:"payment_method"`
	SaleCount     int     `json:"sale_count"`
	Total         float64 `json:"total"`
	Percentage    float64 `json:"percentage"`
}

// SalesReport bundles everything the sales overview shows for one window.
type SalesReport struct {
	Start          time.Time                     `json:"start"`
	End            time.Time                     `json:"end"`
	Totals         *repository.SalesTotals       `json:"totals"`
	ByPeriod       []repository.PeriodSalesRow   `json:"by_period"`
	PaymentMethods []PaymentMethodShare          `json:"payment_methods"`
	TopProducts    []repository.TopProductRow    `json:"top_products"`
	ByCategory     []repository.CategorySalesRow `json:"by_category"`
}

func (s *ReportService) BuildSalesReport(ctx context.Context, periodType string, start, end *time.Time) (*SalesReport, error) {
	if periodType == "" {
		periodType = repository.PeriodDaily
	}
	from, to := defaultWindow(periodType, time.Now())
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}

	totals, err := s.repo.SalesTotals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}
	byPeriod, err := s.repo.SalesByPeriod(ctx, periodType, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales by period: %w", err)
	}
	payments, err := s.saleRepo.TotalsByPaymentMethod(ctx, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("payment totals: %w", err)
	}
	shares := make([]PaymentMethodShare, 0, len(payments))
	for _, p := range payments {
		share := PaymentMethodShare{
			PaymentMethod: p.PaymentMethod,
			SaleCount:     p.Count,
			Total:         p.Total,
		}
		if totals.TotalAmount > 0 {
			share.Percentage = p.Total / totals.TotalAmount * 100
		}
		shares = append(shares, share)
	}
	topProducts, err := s.saleRepo.TopSellingProducts(ctx, 10, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	byCategory, err := s.repo.SalesByCategory(ctx, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("sales by category: %w", err)
	}

	return &SalesReport{
		Start:          from,
		End:            to,
		Totals:         totals,
		ByPeriod:       byPeriod,
		PaymentMethods: shares,
		TopProducts:    topProducts,
		ByCategory:     byCategory,
	}, nil
}

// InventoryReport bundles the stock overview: headline totals, alerts and
// the products currently on discount.
type InventoryReport struct {
	Summary    *repository.InventorySummary      `json:"summary"`
	LowStock   []repository.StockRow             `json:"low_stock"`
	OutOfStock []repository.StockRow             `json:"out_of_stock"`
	Categories []repository.CategoryStockRow     `json:"categories"`
	Discounted []repository.DiscountedProductRow `json:"discounted"`
}

func (s *ReportService) BuildInventoryReport(ctx context.Context, lowStockThreshold int) (*InventoryReport, error) {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	summary, err := s.repo.InventorySummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}
	low, err := s.invRepo.LowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	out, err := s.invRepo.OutOfStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("out of stock: %w", err)
	}
	categories, err := s.invRepo.StockByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("stock by category: %w", err)
	}
	discounted, err := s.repo.DiscountedProducts(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("discounted products: %w", err)
	}
	return &InventoryReport{
		Summary:    summary,
		LowStock:   low,
		OutOfStock: out,
		Categories: categories,
		Discounted: discounted,
	}, nil
}

var salesExportHeaders = []string{
	"Período", "Ventas", "Total", "Promedio",
}

// ExportSalesReport writes the period breakdown plus payment-method and
// top-product sheets to an xlsx workbook.
func (s *ReportService) ExportSalesReport(ctx context.Context, periodType string, start, end *time.Time) (*excelize.File, string, error) {
	report, err := s.BuildSalesReport(ctx, periodType, start, end)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Ventas"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range salesExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}
	for rowIdx, row := range report.ByPeriod {
		r := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.Period)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.SaleCount)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.TotalSales)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.AverageSale)
	}
	summaryRow := len(report.ByPeriod) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), report.Totals.SaleCount)
	f.SetCellValue(sheet, fmt.Sprintf("C%d", summaryRow), report.Totals.TotalAmount)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", summaryRow), report.Totals.AverageSale)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("D%d", summaryRow), summaryStyle)
	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "B", "D", 12)

	paySheet := "Métodos de pago"
	f.NewSheet(paySheet)
	for i, h := range []string{"Método", "Ventas", "Total", "Porcentaje"} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(paySheet, cell, h)
		f.SetCellStyle(paySheet, cell, cell, boldStyle)
	}
	for rowIdx, p := range report.PaymentMethods {
		r := rowIdx + 2
		f.SetCellValue(paySheet, fmt.Sprintf("A%d", r), p.PaymentMethod)
		f.SetCellValue(paySheet, fmt.Sprintf("B%d", r), p.SaleCount)
		f.SetCellValue(paySheet, fmt.Sprintf("C%d", r), p.Total)
		f.SetCellValue(paySheet, fmt.Sprintf("D%d", r), p.Percentage)
	}
	f.SetColWidth(paySheet, "A", "A", 16)

	topSheet := "Productos más vendidos"
	f.NewSheet(topSheet)
	for i, h := range []string{"Código", "Producto", "Categoría", "Unidades", "Ingresos"} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(topSheet, cell, h)
		f.SetCellStyle(topSheet, cell, cell, boldStyle)
	}
	for rowIdx, p := range report.TopProducts {
		r := rowIdx + 2
		f.SetCellValue(topSheet, fmt.Sprintf("A%d", r), p.ProductCode)
		f.SetCellValue(topSheet, fmt.Sprintf("B%d", r), p.ProductName)
		f.SetCellValue(topSheet, fmt.Sprintf("C%d", r), p.Category)
		f.SetCellValue(topSheet, fmt.Sprintf("D%d", r), p.TotalQuantity)
		f.SetCellValue(topSheet, fmt.Sprintf("E%d", r), p.TotalAmount)
	}
	f.SetColWidth(topSheet, "B", "C", 22)

	filename := fmt.Sprintf("ventas_%s_%s.xlsx",
		report.Start.Format("2006-01-02"), report.End.Format("2006-01-02"))
	return f, filename, nil
}

var inventoryExportHeaders = []string{
	"Código", "Producto", "Color", "Talla", "Cantidad",
}

// ExportInventoryReport writes the full stock listing with low-stock and
// discount sheets to an xlsx workbook.
func (s *ReportService) ExportInventoryReport(ctx context.Context, lowStockThreshold int) (*excelize.File, string, error) {
	report, err := s.BuildInventoryReport(ctx, lowStockThreshold)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Inventario"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	writeStockSheet := func(name string, rows []repository.StockRow) {
		for i, h := range inventoryExportHeaders {
			col, _ := excelize.ColumnNumberToName(i + 1)
			cell := col + "1"
			f.SetCellValue(name, cell, h)
			f.SetCellStyle(name, cell, cell, boldStyle)
		}
		for rowIdx, row := range rows {
			r := rowIdx + 2
			f.SetCellValue(name, fmt.Sprintf("A%d", r), row.ProductCode)
			f.SetCellValue(name, fmt.Sprintf("B%d", r), row.ProductName)
			f.SetCellValue(name, fmt.Sprintf("C%d", r), row.Color)
			f.SetCellValue(name, fmt.Sprintf("D%d", r), row.Size)
			f.SetCellValue(name, fmt.Sprintf("E%d", r), row.Quantity)
		}
		f.SetColWidth(name, "B", "B", 22)
	}

	lowSheet := "Stock bajo"
	f.NewSheet(lowSheet)
	writeStockSheet(lowSheet, report.LowStock)

	outSheet := "Agotados"
	f.NewSheet(outSheet)
	writeStockSheet(outSheet, report.OutOfStock)

	for i, h := range []string{"Categoría", "Productos", "Unidades"} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}
	for rowIdx, c := range report.Categories {
		r := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), c.Category)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), c.ProductCount)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), c.TotalUnits)
	}
	summaryRow := len(report.Categories) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), report.Summary.ProductCount)
	f.SetCellValue(sheet, fmt.Sprintf("C%d", summaryRow), report.Summary.TotalUnits)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("C%d", summaryRow), summaryStyle)
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+1), "Valor del inventario")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", summaryRow+1), report.Summary.TotalValue)
	f.SetColWidth(sheet, "A", "A", 20)

	filename := fmt.Sprintf("inventario_%s.xlsx", time.Now().Format("2006-01-02"))
	return f, filename, nil
}
