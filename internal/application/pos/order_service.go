package pos

import (
	"context"
	"errors"

	"github.com/custompos/backend/internal/domain/catalog"
	"github.com/custompos/backend/internal/domain/pos"
	"github.com/custompos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderService handles point-of-sale order operations
type OrderService struct {
	orderRepo   pos.OrderRepository
	sessionRepo pos.SessionRepository
	productRepo catalog.ProductRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo pos.OrderRepository,
	sessionRepo pos.SessionRepository,
	productRepo catalog.ProductRepository,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		sessionRepo: sessionRepo,
		productRepo: productRepo,
	}
}

// Create registers a new order against an opened session.
// The custom order number, when present in the request, is stored as-is.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SESSION_NOT_FOUND", "Session not found")
		}
		return nil, err
	}
	if !session.IsOpen() {
		return nil, shared.NewDomainError("SESSION_CLOSED", "Orders can only be registered against an opened session")
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	cashier := req.CashierName
	if cashier == "" {
		cashier = session.CashierName
	}

	order, err := pos.NewOrder(orderNumber, session.ID, cashier, req.CustomOrderNumber)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Lines {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
			}
			return nil, err
		}
		if !product.IsActive() {
			return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Cannot sell an inactive product")
		}
		if _, err := order.AddLine(product.ID, product.Name, line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// Export returns the trimmed payload the register UI renders for an order
func (s *OrderService) Export(ctx context.Context, id uuid.UUID) (*OrderExport, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	export := ToOrderExport(order)
	return &export, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.OrderBy = filter.OrderBy
	f.OrderDir = filter.OrderDir

	filters := make(map[string]interface{})
	if filter.Status != "" {
		filters["status"] = filter.Status
	}
	if filter.SessionID != nil {
		filters["session_id"] = *filter.SessionID
	}
	if len(filters) > 0 {
		f.Filters = filters
	}

	orders, err := s.orderRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// Pay marks an order as paid
func (s *OrderService) Pay(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.Pay(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Complete marks a paid order as done
func (s *OrderService) Complete(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.Complete(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Cancel cancels a draft order
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

func (s *OrderService) findOrder(ctx context.Context, id uuid.UUID) (*pos.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
		}
		return nil, err
	}
	return order, nil
}
