package handler

import (
	"context"

	posapp "github.com/custompos/backend/internal/application/pos"
	"github.com/custompos/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles order-related API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *posapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *posapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrderRequest is the register-facing order payload. The session comes
// from the token, never from the body. custom_order_number is free text and
// travels through unmodified.
type CreateOrderRequest struct {
	CustomOrderNumber string                    `json:"custom_order_number" binding:"max=64"`
	CashierName       string                    `json:"cashier_name" binding:"max=100"`
	Lines             []posapp.OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// Create registers a new order on the authenticated session
func (h *OrderHandler) Create(c *gin.Context) {
	sessionID, err := uuid.Parse(middleware.GetSessionID(c))
	if err != nil {
		h.Unauthorized(c, "Session token is missing or invalid")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cashierName := req.CashierName
	if cashierName == "" {
		cashierName = middleware.GetCashierName(c)
	}

	order, err := h.orderService.Create(c.Request.Context(), posapp.CreateOrderRequest{
		SessionID:         sessionID,
		CustomOrderNumber: req.CustomOrderNumber,
		CashierName:       cashierName,
		Lines:             req.Lines,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID retrieves an order by its ID
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Export returns the receipt payload for the register UI
func (h *OrderHandler) Export(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	export, err := h.orderService.Export(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, export)
}

// List retrieves a paginated list of orders
func (h *OrderHandler) List(c *gin.Context) {
	var filter posapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Pay marks an order as paid
func (h *OrderHandler) Pay(c *gin.Context) {
	h.transition(c, h.orderService.Pay)
}

// Complete marks a paid order as done
func (h *OrderHandler) Complete(c *gin.Context) {
	h.transition(c, h.orderService.Complete)
}

// Cancel cancels an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.orderService.Cancel)
}

func (h *OrderHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*posapp.OrderResponse, error)) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := fn(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
