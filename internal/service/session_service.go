package service

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/pt-crm/internal/domain"
	"alcyxob/pt-crm/internal/policy"
	"alcyxob/pt-crm/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound = errors.New("workout session not found")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrNoExerciseData  = errors.New("a session needs at least one recorded exercise")
)

// SessionService covers workout session records: logging a performed
// workout, browsing history and editing feedback. It satisfies
// recording.SessionSaver, so the recording workflow finalizes through it.
type SessionService interface {
	SaveSession(ctx context.Context, actor *domain.Actor, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetSession(ctx context.Context, actor *domain.Actor, id primitive.ObjectID) (*domain.WorkoutSession, error)
	ListSessions(ctx context.Context, actor *domain.Actor, clientID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error)
	UpdateFeedback(ctx context.Context, actor *domain.Actor, id primitive.ObjectID, rating int, feedback string) (*domain.WorkoutSession, error)
	GetActiveWorkout(ctx context.Context, actor *domain.Actor, clientID primitive.ObjectID) (*domain.Workout, error)
}

// sessionService implements the SessionService interface.
type sessionService struct {
	sessionRepo repository.SessionRepository
	workoutRepo repository.WorkoutRepository
	notifier    TrainerNotifier
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	workoutRepo repository.WorkoutRepository,
	notifier TrainerNotifier,
) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		workoutRepo: workoutRepo,
		notifier:    notifier,
	}
}

// SaveSession persists a completed session. Only the owning client may log
// one; trainers cannot log sessions on a client's behalf. Authorization is
// resolved before anything is written, so a deny leaves no record behind.
func (s *sessionService) SaveSession(ctx context.Context, actor *domain.Actor, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	if err := policy.Authorize(actor, policy.ActionCreateSession, policy.OwnedBy(session.ClientID)); err != nil {
		return primitive.NilObjectID, err
	}
	if session.Rating != 0 && (session.Rating < 1 || session.Rating > 5) {
		return primitive.NilObjectID, ErrInvalidRating
	}
	if len(session.ExerciseData) == 0 {
		return primitive.NilObjectID, ErrNoExerciseData
	}

	workout, err := s.workoutRepo.GetByID(ctx, session.WorkoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrWorkoutNotFound
		}
		return primitive.NilObjectID, err
	}
	if workout.ClientID != session.ClientID {
		return primitive.NilObjectID, policy.ErrForbidden
	}

	id, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}

	s.notifier.NotifyTrainer(ctx, domain.NotificationSessionCompleted,
		fmt.Sprintf("Workout %q was completed and rated %d/5", workout.Name, session.Rating))

	return id, nil
}

// GetSession retrieves one session, readable by the trainer or the owner.
func (s *sessionService) GetSession(ctx context.Context, actor *domain.Actor, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, policy.Authorize(actor, policy.ActionReadSessions, policy.Missing())
		}
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionReadSessions, policy.OwnedBy(session.ClientID)); err != nil {
		return nil, err
	}
	return session, nil
}

// ListSessions returns a client's session history, most recent first.
func (s *sessionService) ListSessions(ctx context.Context, actor *domain.Actor, clientID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error) {
	if err := policy.Authorize(actor, policy.ActionReadSessions, policy.OwnedBy(clientID)); err != nil {
		return nil, err
	}
	return s.sessionRepo.GetByClientID(ctx, clientID, limit)
}

// UpdateFeedback edits the rating and feedback of an existing session.
// Strictly owner-only; a trainer or another client gets a deny and the
// stored values stay untouched.
func (s *sessionService) UpdateFeedback(ctx context.Context, actor *domain.Actor, id primitive.ObjectID, rating int, feedback string) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, policy.Authorize(actor, policy.ActionEditSessionFeedback, policy.Missing())
		}
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionEditSessionFeedback, policy.OwnedBy(session.ClientID)); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if err := s.sessionRepo.UpdateFeedback(ctx, id, rating, feedback); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	session.Rating = rating
	session.Feedback = feedback
	return session, nil
}

// GetActiveWorkout returns the client's currently active program, readable
// by the trainer or the owner. ErrWorkoutNotFound when none is active.
func (s *sessionService) GetActiveWorkout(ctx context.Context, actor *domain.Actor, clientID primitive.ObjectID) (*domain.Workout, error) {
	if err := policy.Authorize(actor, policy.ActionReadWorkout, policy.OwnedBy(clientID)); err != nil {
		return nil, err
	}
	workout, err := s.workoutRepo.GetActiveByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}
