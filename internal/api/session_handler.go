package api

import (
	"alcyxob/physio-app/internal/domain"
	"alcyxob/physio-app/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SessionHandler serves the self-assessment session endpoints.
type SessionHandler struct {
	sessionService service.SessionService
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- DTOs ---

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	BodyPartID         int64               `json:"body_part_id" binding:"required,gt=0"`
	Tests              []TestRatingRequest `json:"tests" binding:"required,min=1,dive"`
	DisclaimerAccepted bool                `json:"disclaimer_accepted"`
}

// TestRatingRequest is one rated muscle test. Pain outside 0-10 is clamped, not rejected.
type TestRatingRequest struct {
	MuscleTestID  int64 `json:"muscle_test_id" binding:"required,gt=0"`
	PainIntensity *int  `json:"pain_intensity" binding:"required"`
}

func (r CreateSessionRequest) toCommand(userID string) domain.CreateSessionCommand {
	tests := make([]domain.TestRating, len(r.Tests))
	for i, t := range r.Tests {
		tests[i] = domain.TestRating{MuscleTestID: t.MuscleTestID, PainIntensity: *t.PainIntensity}
	}
	return domain.CreateSessionCommand{
		UserID:             userID,
		BodyPartID:         r.BodyPartID,
		Tests:              tests,
		DisclaimerAccepted: r.DisclaimerAccepted,
	}
}

// --- Handlers ---

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, codeUnauthorized, "Failed to get user ID from token")
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, codeValidationFailed, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.sessionService.CreateSession(c.Request.Context(), req.toCommand(userID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, codeUnauthorized, "Failed to get user ID from token")
		return
	}
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.GetSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ListSessions handles GET /api/v1/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, codeUnauthorized, "Failed to get user ID from token")
		return
	}

	sessions, err := h.sessionService.ListSessions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// parseIDParam reads a positive integer path parameter, answering 400 otherwise.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, http.StatusBadRequest, codeValidationFailed, "Invalid "+name+" format")
		return 0, false
	}
	return id, true
}
