package handler

import (
	inventoryapp "github.com/dokon/backoffice/internal/application/inventory"
	"github.com/dokon/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockHandler handles stock API endpoints
type StockHandler struct {
	BaseHandler
	inventoryService *inventoryapp.Service
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(inventoryService *inventoryapp.Service) *StockHandler {
	return &StockHandler{inventoryService: inventoryService}
}

// ReceiveStockRequest represents incoming stock for a product
type ReceiveStockRequest struct {
	ProductID   string  `json:"product_id" binding:"required,uuid"`
	ProductName string  `json:"product_name" binding:"required,min=1,max=200"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
}

// List returns stock entries matching the filter
func (h *StockHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter := req.ToFilter()

	entries, total, err := h.inventoryService.ListStock(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// Receive adds quantity to a product's stock entry, creating the entry when
// the product has never been stocked
func (h *StockHandler) Receive(c *gin.Context) {
	var req ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	entry, err := h.inventoryService.ReceiveStock(c.Request.Context(), inventoryapp.ReceiveStockInput{
		ProductID:   productID,
		ProductName: req.ProductName,
		Quantity:    decimal.NewFromFloat(req.Quantity),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// RegisterRoutes registers all stock routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.GET("", h.List)
		stock.POST("", h.Receive)
	}
}
