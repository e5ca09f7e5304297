package pos

import (
	"time"

	"github.com/custompos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a point-of-sale order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDone      OrderStatus = "done"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusPaid, OrderStatusDone, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return target == OrderStatusPaid || target == OrderStatusCancelled
	case OrderStatusPaid:
		return target == OrderStatusDone
	case OrderStatusDone, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// MaxCustomOrderNumberLength caps the length of the client-supplied order number.
const MaxCustomOrderNumberLength = 64

// OrderLine represents a line on a point-of-sale order
type OrderLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "pos_order_lines"
}

// NewOrderLine creates a new order line. The amount is Quantity * UnitPrice.
func NewOrderLine(orderID, productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) (*OrderLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be zero")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &OrderLine{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateQuantity updates the line quantity and recalculates the amount.
// Negative quantities are allowed for refund lines; zero is not.
func (l *OrderLine) UpdateQuantity(quantity decimal.Decimal) error {
	if quantity.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be zero")
	}

	l.Quantity = quantity
	l.Amount = quantity.Mul(l.UnitPrice)
	l.UpdatedAt = time.Now()

	return nil
}

// Order represents a point-of-sale order aggregate root.
//
// OrderNumber is the server-assigned receipt reference. CustomOrderNumber is
// an optional reference supplied by the ordering client at creation time; it
// is stored verbatim and never generated or rewritten on the server side.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomOrderNumber string          `gorm:"type:varchar(64)"`
	SessionID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	CashierName       string          `gorm:"type:varchar(100)"`
	Lines             []OrderLine     `gorm:"foreignKey:OrderID"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status            OrderStatus     `gorm:"type:varchar(20);not null;default:'draft'"`
	PaidAt            *time.Time
	DoneAt            *time.Time
	CancelledAt       *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "pos_orders"
}

// NewOrder creates a new point-of-sale order in draft status.
// customOrderNumber may be empty; when present it is kept exactly as given.
func NewOrder(orderNumber string, sessionID uuid.UUID, cashierName, customOrderNumber string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if sessionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SESSION", "Session ID cannot be empty")
	}
	if len(customOrderNumber) > MaxCustomOrderNumberLength {
		return nil, shared.NewDomainError("INVALID_CUSTOM_ORDER_NUMBER", "Custom order number cannot exceed 64 characters")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomOrderNumber: customOrderNumber,
		SessionID:         sessionID,
		CashierName:       cashierName,
		Lines:             make([]OrderLine, 0),
		TotalAmount:       decimal.Zero,
		Status:            OrderStatusDraft,
	}, nil
}

// HasCustomOrderNumber returns true when the client supplied a reference.
// Any non-empty value counts, whitespace included; the stored value is
// preserved verbatim.
func (o *Order) HasCustomOrderNumber() bool {
	return o.CustomOrderNumber != ""
}

// AddLine adds a new line to the order. Only allowed in draft status.
func (o *Order) AddLine(productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) (*OrderLine, error) {
	if o.Status != OrderStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a non-draft order")
	}

	line, err := NewOrderLine(o.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Lines = append(o.Lines, *line)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return line, nil
}

// UpdateLineQuantity updates the quantity of an existing line.
// Only allowed in draft status.
func (o *Order) UpdateLineQuantity(lineID uuid.UUID, quantity decimal.Decimal) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update lines on a non-draft order")
	}

	for idx := range o.Lines {
		if o.Lines[idx].ID == lineID {
			if err := o.Lines[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateTotal()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Order line not found")
}

// RemoveLine removes a line from the order. Only allowed in draft status.
func (o *Order) RemoveLine(lineID uuid.UUID) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove lines from a non-draft order")
	}

	for idx, line := range o.Lines {
		if line.ID == lineID {
			o.Lines = append(o.Lines[:idx], o.Lines[idx+1:]...)
			o.recalculateTotal()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Order line not found")
}

// Pay marks the order as paid. Requires at least one line.
func (o *Order) Pay() error {
	if !o.Status.CanTransitionTo(OrderStatusPaid) {
		return shared.NewDomainError("INVALID_STATE", "Order cannot be paid in its current status")
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot pay an order with no lines")
	}

	now := time.Now()
	o.Status = OrderStatusPaid
	o.PaidAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Complete marks a paid order as done
func (o *Order) Complete() error {
	if !o.Status.CanTransitionTo(OrderStatusDone) {
		return shared.NewDomainError("INVALID_STATE", "Only paid orders can be completed")
	}

	now := time.Now()
	o.Status = OrderStatusDone
	o.DoneAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Cancel cancels a draft order
func (o *Order) Cancel() error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be cancelled")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Amount)
	}
	o.TotalAmount = total
}
