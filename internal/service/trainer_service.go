package service

import (
	"context"
	"errors"
	"time"

	"alcyxob/pt-crm/internal/domain"
	"alcyxob/pt-crm/internal/policy"
	"alcyxob/pt-crm/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrClientNotFound    = errors.New("client user not found")
	ErrNotAClient        = errors.New("user found but is not a client")
	ErrWorkoutNotFound   = errors.New("workout not found")
	ErrEmptyExerciseList = errors.New("a workout needs at least one exercise")
	ErrActivationFailed  = errors.New("could not apply workout activation")
)

// WorkoutInput carries the fields of a workout creation.
type WorkoutInput struct {
	Name        string
	Description string
	ExpiresAt   *time.Time
	IsActive    bool
	Exercises   []domain.Exercise
}

// WorkoutUpdateInput carries a partial workout edit. Nil fields keep the
// stored values, so a rename-only update cannot flip an active workout off.
// A non-nil Exercises replaces the stored list wholesale.
type WorkoutUpdateInput struct {
	Name        *string
	Description *string
	ExpiresAt   *time.Time
	IsActive    *bool
	Exercises   []domain.Exercise
}

// ProfileInput carries editable client profile fields. Nil pointers leave
// the stored value untouched.
type ProfileInput struct {
	Goals      *string
	Notes      *string
	CardExpiry *time.Time
	StartDate  *time.Time
}

// ClientDetail is the aggregate record a trainer (or the client themself)
// sees for one client.
type ClientDetail struct {
	User           domain.User             `json:"user"`
	Profile        *domain.ClientProfile   `json:"profile,omitempty"`
	Workouts       []domain.Workout        `json:"workouts"`
	RecentSessions []domain.WorkoutSession `json:"recentSessions"`
	Measurements   []domain.Measurement    `json:"measurements"`
}

// TrainerService covers the trainer-side operations: the client roster and
// workout program management.
type TrainerService interface {
	ListClients(ctx context.Context, actor *domain.Actor) ([]domain.User, error)
	CreateClient(ctx context.Context, actor *domain.Actor, name, email, password, phone string) (*domain.User, error)
	GetClientDetail(ctx context.Context, actor *domain.Actor, clientID primitive.ObjectID) (*ClientDetail, error)
	UpdateClientProfile(ctx context.Context, actor *domain.Actor, clientID primitive.ObjectID, input ProfileInput) (*domain.ClientProfile, error)

	CreateWorkout(ctx context.Context, actor *domain.Actor, clientID primitive.ObjectID, input WorkoutInput) (*domain.Workout, error)
	UpdateWorkout(ctx context.Context, actor *domain.Actor, workoutID primitive.ObjectID, input WorkoutUpdateInput) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, actor *domain.Actor, workoutID primitive.ObjectID) error
}

// trainerService implements the TrainerService interface.
type trainerService struct {
	userRepo        repository.UserRepository
	profileRepo     repository.ClientProfileRepository
	workoutRepo     repository.WorkoutRepository
	sessionRepo     repository.SessionRepository
	measurementRepo repository.MeasurementRepository
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	userRepo repository.UserRepository,
	profileRepo repository.ClientProfileRepository,
	workoutRepo repository.WorkoutRepository,
	sessionRepo repository.SessionRepository,
	measurementRepo repository.MeasurementRepository,
) TrainerService {
	return &trainerService{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		workoutRepo:     workoutRepo,
		sessionRepo:     sessionRepo,
		measurementRepo: measurementRepo,
	}
}

// === Client Roster ===

// ListClients returns every client account, trainer-only.
func (s *trainerService) ListClients(ctx context.Context, actor *domain.Actor) ([]domain.User, error) {
	if err := policy.Authorize(actor, policy.ActionListClients, policy.Global()); err != nil {
		return nil, err
	}
	clients, err := s.userRepo.GetClients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		clients[i].PasswordHash = ""
	}
	return clients, nil
}

// CreateClient registers a client account on the client's behalf.
func (s *trainerService) CreateClient(ctx context.Context, actor *domain.Actor, name, email, password, phone string) (*domain.User, error) {
	if err := policy.Authorize(actor, policy.ActionCreateClient, policy.Global()); err != nil {
		return nil, err
	}
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password are required")
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         domain.RoleClient,
		Phone:        phone,
	}
	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID
	user.PasswordHash = ""
	return user, nil
}

// GetClientDetail assembles the aggregate view of one client: account,
// profile, workouts, recent sessions and measurements. Readable by the
// trainer or by that client.
func (s *trainerService) GetClientDetail(ctx context.Context, actor *domain.Actor, clientID primitive.ObjectID) (*ClientDetail, error) {
	user, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Missing target outranks any role decision.
			return nil, policy.Authorize(actor, policy.ActionReadClient, policy.Missing())
		}
		return nil, err
	}
	// Authorize before inspecting the target's role, so a caller who could
	// not read this id anyway learns nothing about what kind of account it is.
	if err := policy.Authorize(actor, policy.ActionReadClient, policy.OwnedBy(clientID)); err != nil {
		return nil, err
	}
	if !user.IsClient() {
		return nil, ErrNotAClient
	}

	user.PasswordHash = ""
	detail := &ClientDetail{User: *user}

	profile, err := s.profileRepo.GetByUserID(ctx, clientID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	detail.Profile = profile // nil when no workout was ever assigned

	if detail.Workouts, err = s.workoutRepo.GetByClientID(ctx, clientID); err != nil {
		return nil, err
	}
	if detail.RecentSessions, err = s.sessionRepo.GetByClientID(ctx, clientID, 10); err != nil {
		return nil, err
	}
	if detail.Measurements, err = s.measurementRepo.GetByClientID(ctx, clientID); err != nil {
		return nil, err
	}
	return detail, nil
}

// UpdateClientProfile edits a client's profile fields, trainer-only. A
// client without a profile yet gets one created with the given fields.
func (s *trainerService) UpdateClientProfile(ctx context.Context, actor *domain.Actor, clientID primitive.ObjectID, input ProfileInput) (*domain.ClientProfile, error) {
	user, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, policy.Authorize(actor, policy.ActionUpdateClientProfile, policy.Missing())
		}
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionUpdateClientProfile, policy.OwnedBy(clientID)); err != nil {
		return nil, err
	}
	if !user.IsClient() {
		return nil, ErrNotAClient
	}

	profile, err := s.ensureProfile(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if input.Goals != nil {
		profile.Goals = *input.Goals
	}
	if input.Notes != nil {
		profile.Notes = *input.Notes
	}
	if input.CardExpiry != nil {
		profile.CardExpiry = input.CardExpiry
	}
	if input.StartDate != nil {
		profile.StartDate = *input.StartDate
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// === Workout Programs ===

// CreateWorkout assigns a new workout program to a client. The client's
// profile is created lazily if this is their first workout. An active
// workout deactivates the client's other programs atomically.
func (s *trainerService) CreateWorkout(ctx context.Context, actor *domain.Actor, clientID primitive.ObjectID, input WorkoutInput) (*domain.Workout, error) {
	user, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, policy.Authorize(actor, policy.ActionCreateWorkout, policy.Missing())
		}
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionCreateWorkout, policy.OwnedBy(clientID)); err != nil {
		return nil, err
	}
	if !user.IsClient() {
		return nil, ErrNotAClient
	}
	if input.Name == "" {
		return nil, errors.New("workout name is required")
	}
	if len(input.Exercises) == 0 {
		return nil, ErrEmptyExerciseList
	}

	profile, err := s.ensureProfile(ctx, clientID)
	if err != nil {
		return nil, err
	}

	exercises := make([]domain.Exercise, len(input.Exercises))
	copy(exercises, input.Exercises)
	domain.NormalizeExerciseOrder(exercises)

	workout := &domain.Workout{
		ProfileID:   profile.ID,
		ClientID:    clientID,
		Name:        input.Name,
		Description: input.Description,
		ExpiresAt:   input.ExpiresAt,
		IsActive:    input.IsActive,
		Exercises:   exercises,
	}

	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		if errors.Is(err, repository.ErrActivationConflict) {
			return nil, ErrActivationFailed
		}
		return nil, err
	}
	workout.ID = workoutID
	return workout, nil
}

// UpdateWorkout edits a workout program. Only the fields present in the
// input change; a non-nil exercise list replaces the stored one wholesale
// and is renumbered 1..N.
func (s *trainerService) UpdateWorkout(ctx context.Context, actor *domain.Actor, workoutID primitive.ObjectID, input WorkoutUpdateInput) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, policy.Authorize(actor, policy.ActionUpdateWorkout, policy.Missing())
		}
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionUpdateWorkout, policy.OwnedBy(workout.ClientID)); err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, errors.New("workout name cannot be empty")
		}
		workout.Name = *input.Name
	}
	if input.Description != nil {
		workout.Description = *input.Description
	}
	if input.ExpiresAt != nil {
		workout.ExpiresAt = input.ExpiresAt
	}
	if input.IsActive != nil {
		workout.IsActive = *input.IsActive
	}
	if input.Exercises != nil {
		if len(input.Exercises) == 0 {
			return nil, ErrEmptyExerciseList
		}
		exercises := make([]domain.Exercise, len(input.Exercises))
		copy(exercises, input.Exercises)
		domain.NormalizeExerciseOrder(exercises)
		workout.Exercises = exercises
	}

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrActivationConflict) {
			return nil, ErrActivationFailed
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// DeleteWorkout removes a workout program and, with it, its exercises.
func (s *trainerService) DeleteWorkout(ctx context.Context, actor *domain.Actor, workoutID primitive.ObjectID) error {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return policy.Authorize(actor, policy.ActionDeleteWorkout, policy.Missing())
		}
		return err
	}
	if err := policy.Authorize(actor, policy.ActionDeleteWorkout, policy.OwnedBy(workout.ClientID)); err != nil {
		return err
	}
	return s.workoutRepo.Delete(ctx, workoutID)
}

// ensureProfile returns the client's profile, creating an empty one the
// first time it is needed.
func (s *trainerService) ensureProfile(ctx context.Context, clientID primitive.ObjectID) (*domain.ClientProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, clientID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	profile = &domain.ClientProfile{UserID: clientID}
	if _, err := s.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a creation race; the profile exists now.
			return s.profileRepo.GetByUserID(ctx, clientID)
		}
		return nil, err
	}
	return profile, nil
}
