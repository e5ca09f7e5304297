package pos

import (
	"strings"
	"time"

	"github.com/custompos/backend/internal/domain/shared"
)

// SessionStatus represents the lifecycle state of a point-of-sale session
type SessionStatus string

const (
	SessionStatusOpening SessionStatus = "opening"
	SessionStatusOpened  SessionStatus = "opened"
	SessionStatusClosed  SessionStatus = "closed"
)

// IsValid checks if the status is a valid SessionStatus
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusOpening, SessionStatusOpened, SessionStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of SessionStatus
func (s SessionStatus) String() string {
	return string(s)
}

// Session represents a cashier's working session at a point-of-sale terminal.
// Orders are registered against an opened session; closing the session stops
// further order registration.
type Session struct {
	shared.BaseAggregateRoot
	Name        string        `gorm:"type:varchar(100);not null;uniqueIndex"`
	CashierName string        `gorm:"type:varchar(100);not null"`
	Status      SessionStatus `gorm:"type:varchar(20);not null;default:'opening'"`
	OpenedAt    *time.Time
	ClosedAt    *time.Time
}

// TableName returns the table name for GORM
func (Session) TableName() string {
	return "pos_sessions"
}

// NewSession creates a new session in the opening state
func NewSession(name, cashierName string) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Session name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Session name cannot exceed 100 characters")
	}
	if strings.TrimSpace(cashierName) == "" {
		return nil, shared.NewDomainError("INVALID_CASHIER", "Cashier name cannot be empty")
	}

	return &Session{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CashierName:       strings.TrimSpace(cashierName),
		Status:            SessionStatusOpening,
	}, nil
}

// Open transitions the session from opening to opened
func (s *Session) Open() error {
	if s.Status != SessionStatusOpening {
		return shared.NewDomainError("INVALID_STATE", "Only an opening session can be opened")
	}

	now := time.Now()
	s.Status = SessionStatusOpened
	s.OpenedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

// Close closes an opened session
func (s *Session) Close() error {
	if s.Status != SessionStatusOpened {
		return shared.NewDomainError("INVALID_STATE", "Only an opened session can be closed")
	}

	now := time.Now()
	s.Status = SessionStatusClosed
	s.ClosedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

// IsOpen returns true if the session accepts orders
func (s *Session) IsOpen() bool {
	return s.Status == SessionStatusOpened
}
