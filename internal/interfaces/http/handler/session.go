package handler

import (
	posapp "github.com/custompos/backend/internal/application/pos"
	"github.com/custompos/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHandler handles register session API endpoints
type SessionHandler struct {
	BaseHandler
	sessionService *posapp.SessionService
	loaderService  *posapp.LoaderService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService *posapp.SessionService, loaderService *posapp.LoaderService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		loaderService:  loaderService,
	}
}

// Open opens a new register session and returns its access token
func (h *SessionHandler) Open(c *gin.Context) {
	var req posapp.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.sessionService.Open(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Close closes a register session
func (h *SessionHandler) Close(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	session, err := h.sessionService.Close(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// GetByID retrieves a session by its ID
func (h *SessionHandler) GetByID(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	session, err := h.sessionService.GetByID(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// List retrieves a paginated list of sessions
func (h *SessionHandler) List(c *gin.Context) {
	var filter posapp.SessionListFilter
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

	sessions, total, err := h.sessionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, sessions, total, filter.Page, filter.PageSize)
}

// LoadData returns the catalog payload for the register that owns the token
func (h *SessionHandler) LoadData(c *gin.Context) {
	sessionID, err := uuid.Parse(middleware.GetSessionID(c))
	if err != nil {
		h.Unauthorized(c, "Session token is missing or invalid")
		return
	}

	resp, err := h.loaderService.LoadData(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
