package pos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custompos/backend/internal/domain/pos"
	"github.com/custompos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SessionTokenIssuer issues access tokens for opened sessions.
// Implemented by the infrastructure auth layer.
type SessionTokenIssuer interface {
	Issue(sessionID uuid.UUID, cashierName string) (token string, expiresAt time.Time, err error)
}

// SessionService handles point-of-sale session lifecycle operations
type SessionService struct {
	sessionRepo pos.SessionRepository
	tokenIssuer SessionTokenIssuer
}

// NewSessionService creates a new SessionService
func NewSessionService(sessionRepo pos.SessionRepository, tokenIssuer SessionTokenIssuer) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		tokenIssuer: tokenIssuer,
	}
}

// Open creates a session, opens it, and returns it with an access token.
// The register presents the token on subsequent order and load calls.
func (s *SessionService) Open(ctx context.Context, req OpenSessionRequest) (*OpenSessionResponse, error) {
	name := generateSessionName(time.Now())

	session, err := pos.NewSession(name, req.CashierName)
	if err != nil {
		return nil, err
	}
	if err := session.Open(); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokenIssuer.Issue(session.ID, session.CashierName)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	return &OpenSessionResponse{
		Session:   ToSessionResponse(session),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Close closes an opened session
func (s *SessionService) Close(ctx context.Context, id uuid.UUID) (*SessionResponse, error) {
	session, err := s.findSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := session.Close(); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	response := ToSessionResponse(session)
	return &response, nil
}

// GetByID retrieves a session by ID
func (s *SessionService) GetByID(ctx context.Context, id uuid.UUID) (*SessionResponse, error) {
	session, err := s.findSession(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSessionResponse(session)
	return &response, nil
}

// List retrieves sessions with filtering and pagination
func (s *SessionService) List(ctx context.Context, filter SessionListFilter) ([]SessionResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		f.Filters = map[string]interface{}{"status": filter.Status}
	}

	sessions, err := s.sessionRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.sessionRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	return ToSessionResponses(sessions), total, nil
}

func (s *SessionService) findSession(ctx context.Context, id uuid.UUID) (*pos.Session, error) {
	session, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Session not found")
		}
		return nil, err
	}
	return session, nil
}

// generateSessionName builds a unique, human readable session name
func generateSessionName(now time.Time) string {
	return fmt.Sprintf("POS/%s/%s", now.Format("2006-01-02"), uuid.NewString()[:8])
}
