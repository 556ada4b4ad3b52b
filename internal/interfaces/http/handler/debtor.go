package handler

import (
	"time"

	settlementapp "github.com/dokon/backoffice/internal/application/settlement"
	"github.com/dokon/backoffice/internal/domain/sale"
	"github.com/dokon/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtorHandler handles debtor account API endpoints
type DebtorHandler struct {
	BaseHandler
	settlementService *settlementapp.Service
	rateProvider      RateProvider
}

// RateProvider supplies the stored exchange rate for payments that arrive
// without one
type RateProvider interface {
	CurrentRate(c *gin.Context) (decimal.Decimal, error)
}

// NewDebtorHandler creates a new DebtorHandler
func NewDebtorHandler(settlementService *settlementapp.Service, rates RateProvider) *DebtorHandler {
	return &DebtorHandler{
		settlementService: settlementService,
		rateProvider:      rates,
	}
}

// ApplyPaymentRequest represents a payment against a debtor account
type ApplyPaymentRequest struct {
	Amount        float64  `json:"amount" binding:"required,gt=0"`
	Currency      string   `json:"currency" binding:"required"`
	Rate          *float64 `json:"rate" binding:"omitempty,gt=0"`
	PaymentMethod string   `json:"payment_method"`
}

// ReduceDebtRequest represents a debt reduction in dollars
type ReduceDebtRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// ReturnProductRequest represents a product return against an open debt
type ReturnProductRequest struct {
	ProductID string  `json:"product_id" binding:"required,uuid"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
}

// EditDebtorRequest represents an administrative debtor override. Only the
// supplied fields change.
type EditDebtorRequest struct {
	Name       *string                        `json:"name" binding:"omitempty,min=1,max=200"`
	Phone      *string                        `json:"phone" binding:"omitempty,min=1,max=30"`
	DueDate    *time.Time                     `json:"due_date"`
	Currency   *string                        `json:"currency"`
	DebtAmount *float64                       `json:"debt_amount" binding:"omitempty,min=0"`
	Products   *[]settlementapp.OwedLineInput `json:"products"`
}

// List returns debtor accounts matching the filter
func (h *DebtorHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter := req.ToFilter()

	debtors, total, err := h.settlementService.ListDebtors(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, debtors, total, filter.Page, filter.PageSize)
}

// ApplyPayment applies a payment to a debtor account. A payment covering
// the whole debt settles and closes the account.
func (h *DebtorHandler) ApplyPayment(c *gin.Context) {
	debtorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid debtor ID format")
		return
	}

	var req ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rate := decimal.Zero
	if req.Rate != nil {
		rate = decimal.NewFromFloat(*req.Rate)
	} else {
		rate, err = h.rateProvider.CurrentRate(c)
		if err != nil {
			h.HandleError(c, err)
			return
		}
	}

	result, err := h.settlementService.ApplyPayment(c.Request.Context(), settlementapp.ApplyPaymentInput{
		DebtorID:      debtorID,
		Amount:        decimal.NewFromFloat(req.Amount),
		Currency:      req.Currency,
		Rate:          rate,
		PaymentMethod: sale.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ReduceDebt subtracts a dollar amount from the debt without touching stock
func (h *DebtorHandler) ReduceDebt(c *gin.Context) {
	debtorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid debtor ID format")
		return
	}

	var req ReduceDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.settlementService.ReduceDebt(c.Request.Context(), debtorID, decimal.NewFromFloat(req.Amount))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ReturnProduct takes back owed product, restoring stock and shrinking the
// debt by the refund value
func (h *DebtorHandler) ReturnProduct(c *gin.Context) {
	debtorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid debtor ID format")
		return
	}

	var req ReturnProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	result, err := h.settlementService.ReturnProduct(c.Request.Context(), debtorID, productID, decimal.NewFromFloat(req.Quantity))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Edit overwrites debtor fields verbatim
func (h *DebtorHandler) Edit(c *gin.Context) {
	debtorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid debtor ID format")
		return
	}

	var req EditDebtorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	patch := settlementapp.DebtorPatch{
		Name:     req.Name,
		Phone:    req.Phone,
		DueDate:  req.DueDate,
		Currency: req.Currency,
		Products: req.Products,
	}
	if req.DebtAmount != nil {
		amount := decimal.NewFromFloat(*req.DebtAmount)
		patch.DebtAmount = &amount
	}

	updated, err := h.settlementService.EditDebtor(c.Request.Context(), debtorID, patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// Delete removes a debtor account outright
func (h *DebtorHandler) Delete(c *gin.Context) {
	debtorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid debtor ID format")
		return
	}

	if err := h.settlementService.DeleteDebtor(c.Request.Context(), debtorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers all debtor routes
func (h *DebtorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	debtors := rg.Group("/debtors")
	{
		debtors.GET("", h.List)
		debtors.POST("/:id/payments", h.ApplyPayment)
		debtors.POST("/:id/reduce", h.ReduceDebt)
		debtors.POST("/:id/returns", h.ReturnProduct)
		debtors.PUT("/:id", h.Edit)
		debtors.DELETE("/:id", h.Delete)
	}
}
