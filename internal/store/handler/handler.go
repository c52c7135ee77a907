package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modaluna/tienda/internal/store/repository"
	"github.com/modaluna/tienda/internal/store/service"
)

// Handlers is the HTTP layer collection.
type Handlers struct {
	Customer  *CustomerHandler
	Catalog   *CatalogHandler
	Inventory *InventoryHandler
	Sale      *SaleHandler
	Supplier  *SupplierHandler
	Report    *ReportHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Customer:  NewCustomerHandler(svc.Customer),
		Catalog:   NewCatalogHandler(svc.Catalog),
		Inventory: NewInventoryHandler(svc.Inventory),
		Sale:      NewSaleHandler(svc.Sale),
		Supplier:  NewSupplierHandler(svc.Supplier),
		Report:    NewReportHandler(svc.Report),
	}
}

// Response is the envelope every JSON endpoint returns.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// FromError maps a service or repository failure onto the right status.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrDuplicateVariant),
		errors.Is(err, service.ErrDuplicateLink),
		errors.Is(err, service.ErrProductInUse),
		errors.Is(err, service.ErrVariantInUse),
		errors.Is(err, service.ErrCategoryInUse):
		Conflict(c, err.Error())
	case errors.Is(err, repository.ErrInsufficientStock),
		errors.Is(err, service.ErrNegativeStock),
		errors.Is(err, service.ErrInvalidPayment),
		errors.Is(err, service.ErrInvalidDiscount),
		errors.Is(err, service.ErrEmptySale):
		BadRequest(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

// ParamID parses the :id path segment as an unsigned integer.
func ParamID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// QueryTimeRange reads optional start/end query params in RFC 3339 or
// YYYY-MM-DD form.
func QueryTimeRange(c *gin.Context) (start, end *time.Time, ok bool) {
	parse := func(key string) (*time.Time, bool) {
		raw := c.Query(key)
		if raw == "" {
			return nil, true
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return &t, true
		}
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return &t, true
		}
		BadRequest(c, "invalid "+key+" date")
		return nil, false
	}
	if start, ok = parse("start"); !ok {
		return nil, nil, false
	}
	if end, ok = parse("end"); !ok {
		return nil, nil, false
	}
	return start, end, true
}
