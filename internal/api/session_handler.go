package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"alcyxob/pt-crm/internal/domain"
	"alcyxob/pt-crm/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler holds the session service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- Request Structs ---

// CreateSessionRequest logs a performed workout. ExerciseData accepts both
// the per-set shape and the legacy flat counters; the domain codec normalizes
// either into per-set entries.
type CreateSessionRequest struct {
	WorkoutID       string                  `json:"workoutId" binding:"required"`
	Date            *time.Time              `json:"date"`
	DurationMinutes *int                    `json:"durationMinutes"`
	Completed       bool                    `json:"completed"`
	Rating          int                     `json:"rating" binding:"omitempty,min=1,max=5"`
	Feedback        string                  `json:"feedback"`
	ExerciseData    []domain.ExerciseResult `json:"exerciseData" binding:"required"`
}

type UpdateFeedbackRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

// --- Handler Methods ---

// CreateSession handles POST /clients/:clientId/sessions. Client-only: the
// service rejects trainers even for their own clients.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	clientID, ok := parseObjectID(c, "clientId")
	if !ok {
		return
	}
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	workoutID, err := parseHexID(req.WorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workoutId format")
		return
	}
	actor := actorFromContext(c)

	session := &domain.WorkoutSession{
		ClientID:        clientID,
		WorkoutID:       workoutID,
		DurationMinutes: req.DurationMinutes,
		Completed:       req.Completed,
		Rating:          req.Rating,
		Feedback:        req.Feedback,
		ExerciseData:    req.ExerciseData,
	}
	if req.Date != nil {
		session.Date = *req.Date
	} else {
		session.Date = time.Now().UTC()
	}

	id, err := h.sessionService.SaveSession(c.Request.Context(), actor, session)
	if err != nil {
		respondError(c, err)
		return
	}
	session.ID = id
	c.JSON(http.StatusCreated, session)
}

// ListSessions handles GET /clients/:clientId/sessions?limit=N.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	clientID, ok := parseObjectID(c, "clientId")
	if !ok {
		return
	}
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			abortWithError(c, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}
	actor := actorFromContext(c)

	sessions, err := h.sessionService.ListSessions(c.Request.Context(), actor, clientID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// GetSession handles GET /sessions/:sessionId.
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID, ok := parseObjectID(c, "sessionId")
	if !ok {
		return
	}
	actor := actorFromContext(c)

	session, err := h.sessionService.GetSession(c.Request.Context(), actor, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateFeedback handles PUT /sessions/:sessionId/feedback. Owner-only.
func (h *SessionHandler) UpdateFeedback(c *gin.Context) {
	sessionID, ok := parseObjectID(c, "sessionId")
	if !ok {
		return
	}
	var req UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	actor := actorFromContext(c)

	session, err := h.sessionService.UpdateFeedback(c.Request.Context(), actor, sessionID, req.Rating, req.Feedback)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetActiveWorkout handles GET /clients/:clientId/workouts/active. This is
// what the session recorder starts from.
func (h *SessionHandler) GetActiveWorkout(c *gin.Context) {
	clientID, ok := parseObjectID(c, "clientId")
	if !ok {
		return
	}
	actor := actorFromContext(c)

	workout, err := h.sessionService.GetActiveWorkout(c.Request.Context(), actor, clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}
