package handler

import (
	"time"

	saleapp "github.com/dokon/backoffice/internal/application/sale"
	"github.com/dokon/backoffice/internal/domain/sale"
	"github.com/dokon/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleHandler handles sale recording and reporting API endpoints
type SaleHandler struct {
	BaseHandler
	saleService *saleapp.Service
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *saleapp.Service) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// SaleLineRequest is one product line of a sale request
type SaleLineRequest struct {
	ProductID   string  `json:"product_id" binding:"required,uuid"`
	ProductName string  `json:"product_name" binding:"required,min=1,max=200"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	SellPrice   float64 `json:"sell_price" binding:"required,gt=0"`
	BuyPrice    float64 `json:"buy_price" binding:"min=0"`
}

// RecordSaleRequest represents a request to record a multi-line sale
type RecordSaleRequest struct {
	Name          string            `json:"name" binding:"required,min=1,max=200"`
	Phone         string            `json:"phone" binding:"required,min=1,max=30"`
	DueDate       *time.Time        `json:"due_date"`
	Currency      string            `json:"currency" binding:"required"`
	PaymentMethod string            `json:"payment_method"`
	Lines         []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// Record records a sale. Cash and card sales materialize sale records and
// grow the budget; credit sales open a debtor account instead.
func (h *SaleHandler) Record(c *gin.Context) {
	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := saleapp.RecordSaleInput{
		Name:          req.Name,
		Phone:         req.Phone,
		Currency:      req.Currency,
		PaymentMethod: sale.PaymentMethod(req.PaymentMethod),
		Lines:         make([]saleapp.SaleLineInput, 0, len(req.Lines)),
	}
	if req.DueDate != nil {
		input.DueDate = *req.DueDate
	}
	for _, line := range req.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		input.Lines = append(input.Lines, saleapp.SaleLineInput{
			ProductID:   productID,
			ProductName: line.ProductName,
			Quantity:    decimal.NewFromFloat(line.Quantity),
			SellPrice:   decimal.NewFromFloat(line.SellPrice),
			BuyPrice:    decimal.NewFromFloat(line.BuyPrice),
		})
	}

	result, err := h.saleService.RecordSale(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List returns sale records matching the filter
func (h *SaleHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter := req.ToFilter()

	sales, total, err := h.saleService.ListSales(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}

// Delete removes a sale record, restoring its stock and rolling back its
// profit
func (h *SaleHandler) Delete(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	result, err := h.saleService.DeleteSale(c.Request.Context(), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Report returns the sales of the current day, week, month or year
func (h *SaleHandler) Report(c *gin.Context) {
	bucket := saleapp.ReportBucket(c.Param("bucket"))

	sales, err := h.saleService.SalesForBucket(c.Request.Context(), bucket)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sales)
}

// MonthlyReport returns per-product sold quantities for the trailing twelve
// months
func (h *SaleHandler) MonthlyReport(c *gin.Context) {
	buckets, err := h.saleService.LastTwelveMonths(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, buckets)
}

// RegisterRoutes registers all sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Record)
		sales.GET("", h.List)
		sales.DELETE("/:id", h.Delete)
		sales.GET("/report/:bucket", h.Report)
		sales.GET("/monthly-report", h.MonthlyReport)
	}
}
