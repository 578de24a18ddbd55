package repository

import (
	"context"

	"alcyxob/pt-crm/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate record")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
	// ErrActivationConflict: the deactivate-others/activate-target pair for a
	// workout could not be applied atomically. Nothing was applied.
	ErrActivationConflict = RepositoryError("workout activation conflict")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetClients(ctx context.Context) ([]domain.User, error)
	// GetFirstByRole backs notification targeting; the product currently
	// assumes a single trainer account.
	GetFirstByRole(ctx context.Context, role domain.Role) (*domain.User, error)
}

// ClientProfileRepository stores the 1:1 client profile extension.
type ClientProfileRepository interface {
	Create(ctx context.Context, profile *domain.ClientProfile) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ClientProfile, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.ClientProfile, error)
	Update(ctx context.Context, profile *domain.ClientProfile) error
}

// WorkoutRepository stores workouts with their embedded exercise lists.
// Create and Update take care of the "at most one active workout per client"
// invariant: an activating write deactivates the client's other workouts in
// the same transaction.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Workout, error)
	GetActiveByClientID(ctx context.Context, clientID primitive.ObjectID) (*domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SessionRepository stores workout session records.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error)
	UpdateFeedback(ctx context.Context, id primitive.ObjectID, rating int, feedback string) error
}

// MeasurementRepository stores body measurement snapshots.
type MeasurementRepository interface {
	Create(ctx context.Context, m *domain.Measurement) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Measurement, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Measurement, error)
	Update(ctx context.Context, m *domain.Measurement) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// NotificationRepository stores per-user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Notification, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, unreadOnly bool) ([]domain.Notification, error)
	SetRead(ctx context.Context, id primitive.ObjectID, read bool) error
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) error
}
