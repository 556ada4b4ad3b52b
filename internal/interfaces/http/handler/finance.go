package handler

import (
	financeapp "github.com/dokon/backoffice/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// FinanceHandler handles budget and exchange rate API endpoints
type FinanceHandler struct {
	BaseHandler
	financeService *financeapp.Service
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService *financeapp.Service) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// SetRateRequest represents a request to update the exchange rate
type SetRateRequest struct {
	Rate float64 `json:"rate" binding:"required,gt=0"`
}

// GetBudget returns the shop budget
func (h *FinanceHandler) GetBudget(c *gin.Context) {
	budget, err := h.financeService.GetBudget(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, budget)
}

// GetRate returns the stored exchange rate
func (h *FinanceHandler) GetRate(c *gin.Context) {
	rate, err := h.financeService.GetRate(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rate)
}

// SetRate updates the stored exchange rate
func (h *FinanceHandler) SetRate(c *gin.Context) {
	var req SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rate, err := h.financeService.SetRate(c.Request.Context(), decimal.NewFromFloat(req.Rate))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rate)
}

// CurrentRate returns the stored rate for handlers that need one to convert
// incoming amounts
func (h *FinanceHandler) CurrentRate(c *gin.Context) (decimal.Decimal, error) {
	rate, err := h.financeService.GetRate(c.Request.Context())
	if err != nil {
		return decimal.Zero, err
	}
	return rate.Rate, nil
}

// RegisterRoutes registers all finance routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	finance := rg.Group("/finance")
	{
		finance.GET("/budget", h.GetBudget)
		finance.GET("/rate", h.GetRate)
		finance.PUT("/rate", h.SetRate)
	}
}
