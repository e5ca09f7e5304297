package pos

import (
	"time"

	"github.com/custompos/backend/internal/domain/pos"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineRequest represents a line in an order creation request
type OrderLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateOrderRequest represents a request to register a new order.
// CustomOrderNumber is optional; when present it is stored exactly as sent.
type CreateOrderRequest struct {
	SessionID         uuid.UUID          `json:"session_id" binding:"required"`
	CustomOrderNumber string             `json:"custom_order_number" binding:"max=64"`
	CashierName       string             `json:"cashier_name" binding:"max=100"`
	Lines             []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                uuid.UUID           `json:"id"`
	OrderNumber       string              `json:"order_number"`
	CustomOrderNumber string              `json:"custom_order_number,omitempty"`
	SessionID         uuid.UUID           `json:"session_id"`
	CashierName       string              `json:"cashier_name"`
	Lines             []OrderLineResponse `json:"lines"`
	TotalAmount       decimal.Decimal     `json:"total_amount"`
	Status            string              `json:"status"`
	PaidAt            *time.Time          `json:"paid_at,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// OrderExport is the trimmed order payload shipped to the register UI for
// receipt display. The custom order number key is present only when the
// client supplied one at creation time.
type OrderExport struct {
	OrderNumber       string              `json:"order_number"`
	CustomOrderNumber string              `json:"custom_order_number,omitempty"`
	CashierName       string              `json:"cashier_name"`
	Lines             []OrderLineResponse `json:"lines"`
	TotalAmount       decimal.Decimal     `json:"total_amount"`
	Status            string              `json:"status"`
	CreatedAt         time.Time           `json:"created_at"`
}

// OrderListFilter represents filter options for order list
type OrderListFilter struct {
	SessionID *uuid.UUID `form:"session_id"`
	Status    string     `form:"status" binding:"omitempty,oneof=draft paid done cancelled"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToOrderLineResponse converts a domain OrderLine
func ToOrderLineResponse(l *pos.OrderLine) OrderLineResponse {
	return OrderLineResponse{
		ID:          l.ID,
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		Amount:      l.Amount,
	}
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *pos.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i := range o.Lines {
		lines[i] = ToOrderLineResponse(&o.Lines[i])
	}
	return OrderResponse{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		CustomOrderNumber: o.CustomOrderNumber,
		SessionID:         o.SessionID,
		CashierName:       o.CashierName,
		Lines:             lines,
		TotalAmount:       o.TotalAmount,
		Status:            string(o.Status),
		PaidAt:            o.PaidAt,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of domain Orders
func ToOrderResponses(orders []pos.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}

// ToOrderExport converts a domain Order to its UI export form
func ToOrderExport(o *pos.Order) OrderExport {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i := range o.Lines {
		lines[i] = ToOrderLineResponse(&o.Lines[i])
	}
	export := OrderExport{
		OrderNumber: o.OrderNumber,
		CashierName: o.CashierName,
		Lines:       lines,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	}
	if o.HasCustomOrderNumber() {
		export.CustomOrderNumber = o.CustomOrderNumber
	}
	return export
}

// OpenSessionRequest represents a request to open a new session
type OpenSessionRequest struct {
	CashierName string `json:"cashier_name" binding:"required,max=100"`
}

// SessionResponse represents a session in API responses
type SessionResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	CashierName string     `json:"cashier_name"`
	Status      string     `json:"status"`
	OpenedAt    *time.Time `json:"opened_at,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// OpenSessionResponse carries the opened session and its access token
type OpenSessionResponse struct {
	Session   SessionResponse `json:"session"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// SessionListFilter represents filter options for session list
type SessionListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=opening opened closed"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToSessionResponse converts a domain Session to SessionResponse
func ToSessionResponse(s *pos.Session) SessionResponse {
	return SessionResponse{
		ID:          s.ID,
		Name:        s.Name,
		CashierName: s.CashierName,
		Status:      string(s.Status),
		OpenedAt:    s.OpenedAt,
		ClosedAt:    s.ClosedAt,
		CreatedAt:   s.CreatedAt,
	}
}

// ToSessionResponses converts a slice of domain Sessions
func ToSessionResponses(sessions []pos.Session) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = ToSessionResponse(&sessions[i])
	}
	return responses
}
