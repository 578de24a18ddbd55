package api

import (
	"fmt"
	"net/http"
	"time"

	"alcyxob/pt-crm/internal/domain"
	"alcyxob/pt-crm/internal/service"

	"github.com/gin-gonic/gin"
)

// TrainerHandler holds the trainer service dependency.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- Request/Response Structs ---

type CreateClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

type UpdateProfileRequest struct {
	Goals      *string    `json:"goals"`
	Notes      *string    `json:"notes"`
	CardExpiry *time.Time `json:"cardExpiry"`
	StartDate  *time.Time `json:"startDate"`
}

type ExerciseInput struct {
	Name   string `json:"name" binding:"required"`
	Sets   int    `json:"sets" binding:"required,min=1"`
	Reps   string `json:"reps" binding:"required"`
	Weight string `json:"weight"`
	Rest   string `json:"rest"`
	Notes  string `json:"notes"`
}

type WorkoutRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	ExpiresAt   *time.Time      `json:"expiresAt"`
	IsActive    bool            `json:"isActive"`
	Exercises   []ExerciseInput `json:"exercises" binding:"required,min=1,dive"`
}

// UpdateWorkoutRequest allows a partial edit: fields left out of the payload
// keep their stored values, including the exercise list.
type UpdateWorkoutRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	ExpiresAt   *time.Time      `json:"expiresAt"`
	IsActive    *bool           `json:"isActive"`
	Exercises   []ExerciseInput `json:"exercises" binding:"omitempty,min=1,dive"`
}

// --- Handler Methods ---

// ListClients handles GET /trainer/clients.
func (h *TrainerHandler) ListClients(c *gin.Context) {
	actor := actorFromContext(c)

	clients, err := h.trainerService.ListClients(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]UserResponse, len(clients))
	for i := range clients {
		resp[i] = MapUserToResponse(&clients[i])
	}
	c.JSON(http.StatusOK, resp)
}

// CreateClient handles POST /trainer/clients. The trainer registers the
// account on the client's behalf.
func (h *TrainerHandler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	actor := actorFromContext(c)

	client, err := h.trainerService.CreateClient(c.Request.Context(), actor, req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapUserToResponse(client))
}

// GetClientDetail handles GET /clients/:clientId. Accessible to the trainer
// and to the client themself.
func (h *TrainerHandler) GetClientDetail(c *gin.Context) {
	clientID, ok := parseObjectID(c, "clientId")
	if !ok {
		return
	}
	actor := actorFromContext(c)

	detail, err := h.trainerService.GetClientDetail(c.Request.Context(), actor, clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateClientProfile handles PUT /clients/:clientId/profile.
func (h *TrainerHandler) UpdateClientProfile(c *gin.Context) {
	clientID, ok := parseObjectID(c, "clientId")
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	actor := actorFromContext(c)

	profile, err := h.trainerService.UpdateClientProfile(c.Request.Context(), actor, clientID, service.ProfileInput{
		Goals:      req.Goals,
		Notes:      req.Notes,
		CardExpiry: req.CardExpiry,
		StartDate:  req.StartDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// CreateWorkout handles POST /clients/:clientId/workouts.
func (h *TrainerHandler) CreateWorkout(c *gin.Context) {
	clientID, ok := parseObjectID(c, "clientId")
	if !ok {
		return
	}
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	actor := actorFromContext(c)

	workout, err := h.trainerService.CreateWorkout(c.Request.Context(), actor, clientID, service.WorkoutInput{
		Name:        req.Name,
		Description: req.Description,
		ExpiresAt:   req.ExpiresAt,
		IsActive:    req.IsActive,
		Exercises:   mapExerciseInputs(req.Exercises),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// UpdateWorkout handles PUT /workouts/:workoutId.
func (h *TrainerHandler) UpdateWorkout(c *gin.Context) {
	workoutID, ok := parseObjectID(c, "workoutId")
	if !ok {
		return
	}
	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	actor := actorFromContext(c)

	input := service.WorkoutUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		ExpiresAt:   req.ExpiresAt,
		IsActive:    req.IsActive,
	}
	if req.Exercises != nil {
		input.Exercises = mapExerciseInputs(req.Exercises)
	}

	workout, err := h.trainerService.UpdateWorkout(c.Request.Context(), actor, workoutID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// DeleteWorkout handles DELETE /workouts/:workoutId.
func (h *TrainerHandler) DeleteWorkout(c *gin.Context) {
	workoutID, ok := parseObjectID(c, "workoutId")
	if !ok {
		return
	}
	actor := actorFromContext(c)

	if err := h.trainerService.DeleteWorkout(c.Request.Context(), actor, workoutID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func mapExerciseInputs(inputs []ExerciseInput) []domain.Exercise {
	exercises := make([]domain.Exercise, len(inputs))
	for i, in := range inputs {
		exercises[i] = domain.Exercise{
			Name:   in.Name,
			Sets:   in.Sets,
			Reps:   in.Reps,
			Weight: in.Weight,
			Rest:   in.Rest,
			Notes:  in.Notes,
		}
	}
	return exercises
}
