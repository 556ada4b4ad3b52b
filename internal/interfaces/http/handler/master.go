package handler

import (
	masterapp "github.com/dokon/backoffice/internal/application/master"
	"github.com/dokon/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MasterHandler handles mechanic billing API endpoints
type MasterHandler struct {
	BaseHandler
	masterService *masterapp.Service
}

// NewMasterHandler creates a new MasterHandler
func NewMasterHandler(masterService *masterapp.Service) *MasterHandler {
	return &MasterHandler{masterService: masterService}
}

// CreateMasterRequest represents a request to register a mechanic
type CreateMasterRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Phone string `json:"phone" binding:"max=30"`
}

// AddCarRequest represents a request to open a car job
type AddCarRequest struct {
	Plate string `json:"plate" binding:"required,min=1,max=20"`
	Model string `json:"model" binding:"max=100"`
}

// CarSaleRequest represents a product line billed to a car
type CarSaleRequest struct {
	ProductID   string  `json:"product_id" binding:"required,uuid"`
	ProductName string  `json:"product_name" binding:"required,min=1,max=200"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	SellPrice   float64 `json:"sell_price" binding:"required,gt=0"`
	BuyPrice    float64 `json:"buy_price" binding:"min=0"`
	Currency    string  `json:"currency" binding:"required"`
}

// CarPaymentRequest represents a payment logged against a car
type CarPaymentRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency" binding:"required"`
}

// Create registers a mechanic
func (h *MasterHandler) Create(c *gin.Context) {
	var req CreateMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	master, err := h.masterService.CreateMaster(c.Request.Context(), masterapp.CreateMasterInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, master)
}

// List returns masters matching the filter
func (h *MasterHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter := req.ToFilter()

	masters, total, err := h.masterService.ListMasters(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, masters, total, filter.Page, filter.PageSize)
}

// GetByID returns a master with their cars and billing state
func (h *MasterHandler) GetByID(c *gin.Context) {
	masterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid master ID format")
		return
	}

	master, err := h.masterService.GetMaster(c.Request.Context(), masterID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, master)
}

// AddCar opens a car job under a master
func (h *MasterHandler) AddCar(c *gin.Context) {
	masterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid master ID format")
		return
	}

	var req AddCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	car, err := h.masterService.AddCar(c.Request.Context(), masterID, masterapp.AddCarInput{
		Plate: req.Plate,
		Model: req.Model,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, car)
}

// AddCarSale bills a product to a car, decrementing stock immediately
func (h *MasterHandler) AddCarSale(c *gin.Context) {
	masterID, carID, ok := h.carIDs(c)
	if !ok {
		return
	}

	var req CarSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	car, err := h.masterService.AddCarSale(c.Request.Context(), masterID, carID, masterapp.CarSaleInput{
		ProductID:   productID,
		ProductName: req.ProductName,
		Quantity:    decimal.NewFromFloat(req.Quantity),
		SellPrice:   decimal.NewFromFloat(req.SellPrice),
		BuyPrice:    decimal.NewFromFloat(req.BuyPrice),
		Currency:    req.Currency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, car)
}

// ApplyCarPayment logs a payment against a car. A payment that covers the
// pending sales flushes the billing cycle into sale records.
func (h *MasterHandler) ApplyCarPayment(c *gin.Context) {
	masterID, carID, ok := h.carIDs(c)
	if !ok {
		return
	}

	var req CarPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.masterService.ApplyCarPayment(c.Request.Context(), masterID, carID, masterapp.CarPaymentInput{
		Amount:   decimal.NewFromFloat(req.Amount),
		Currency: req.Currency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a master and all their billing history
func (h *MasterHandler) Delete(c *gin.Context) {
	masterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid master ID format")
		return
	}

	if err := h.masterService.DeleteMaster(c.Request.Context(), masterID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *MasterHandler) carIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	masterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid master ID format")
		return uuid.Nil, uuid.Nil, false
	}
	carID, err := uuid.Parse(c.Param("carId"))
	if err != nil {
		h.BadRequest(c, "Invalid car ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return masterID, carID, true
}

// RegisterRoutes registers all master routes
func (h *MasterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	masters := rg.Group("/masters")
	{
		masters.POST("", h.Create)
		masters.GET("", h.List)
		masters.GET("/:id", h.GetByID)
		masters.POST("/:id/cars", h.AddCar)
		masters.POST("/:id/cars/:carId/sales", h.AddCarSale)
		masters.POST("/:id/cars/:carId/payments", h.ApplyCarPayment)
		masters.DELETE("/:id", h.Delete)
	}
}
