package pos

import (
	"context"

	"github.com/custompos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for point-of-sale order persistence
type OrderRepository interface {
	// FindByID finds an order by ID, lines included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// GenerateOrderNumber produces the next server-assigned order number
	GenerateOrderNumber(ctx context.Context) (string, error)

	// FindByOrderNumber finds an order by its server-assigned number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindAll finds orders with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindBySession finds orders registered against a session
	FindBySession(ctx context.Context, sessionID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindByStatus finds orders by status
	FindByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order together with its lines
	Save(ctx context.Context, order *Order) error

	// Delete deletes an order
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountBySession counts orders registered against a session
	CountBySession(ctx context.Context, sessionID uuid.UUID) (int64, error)
}

// SessionRepository defines the interface for session persistence
type SessionRepository interface {
	// FindByID finds a session by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Session, error)

	// FindByName finds a session by name
	FindByName(ctx context.Context, name string) (*Session, error)

	// FindAll finds sessions with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Session, error)

	// FindOpened finds all currently opened sessions
	FindOpened(ctx context.Context) ([]Session, error)

	// Save creates or updates a session
	Save(ctx context.Context, session *Session) error

	// Delete deletes a session
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts sessions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
