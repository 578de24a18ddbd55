// Package policy holds the access-control rules applied at the start of
// every data operation. Authorize is a pure predicate over explicit inputs:
// the resolved actor, the requested action and the target resource. It never
// touches storage and never performs the operation itself; callers must
// short-circuit on a non-nil error.
package policy

import (
	"errors"
	"fmt"

	"alcyxob/pt-crm/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrUnauthenticated: no valid actor resolved for the request (HTTP 401).
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden: actor resolved but not permitted (HTTP 403).
	ErrForbidden = errors.New("access denied")
	// ErrNotFound: target resource absent. Checked before any role predicate
	// on read/update/delete paths so trainers and clients see identical 404s
	// for a missing id.
	ErrNotFound = errors.New("resource not found")
)

// Action enumerates every operation the policy knows how to gate.
type Action string

const (
	ActionListClients         Action = "clients.list"
	ActionCreateClient        Action = "clients.create"
	ActionReadClient          Action = "clients.read"
	ActionUpdateClientProfile Action = "clients.update_profile"

	ActionCreateWorkout Action = "workouts.create"
	ActionReadWorkout   Action = "workouts.read"
	ActionUpdateWorkout Action = "workouts.update"
	ActionDeleteWorkout Action = "workouts.delete"

	ActionCreateSession       Action = "sessions.create"
	ActionReadSessions        Action = "sessions.read"
	ActionEditSessionFeedback Action = "sessions.edit_feedback"

	ActionCreateMeasurement Action = "measurements.create"
	ActionReadMeasurement   Action = "measurements.read"
	ActionUpdateMeasurement Action = "measurements.update"
	ActionDeleteMeasurement Action = "measurements.delete"

	ActionReadNotifications Action = "notifications.read"
	ActionMarkNotification  Action = "notifications.mark"
)

// Resource identifies the target of an action by its owning client id.
// Found is false when the caller looked the target up and it did not exist.
type Resource struct {
	OwnerID primitive.ObjectID
	Found   bool
}

// OwnedBy describes an existing resource owned by the given client user.
func OwnedBy(clientID primitive.ObjectID) Resource {
	return Resource{OwnerID: clientID, Found: true}
}

// Missing describes a target that could not be resolved.
func Missing() Resource {
	return Resource{Found: false}
}

// Global describes an action with no single owning resource (create/list).
func Global() Resource {
	return Resource{Found: true}
}

// Authorize decides whether actor may perform action on res.
// Returns nil on allow, or one of ErrUnauthenticated, ErrNotFound,
// ErrForbidden on deny.
func Authorize(actor *domain.Actor, action Action, res Resource) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !res.Found {
		return ErrNotFound
	}

	switch action {
	case ActionListClients, ActionCreateClient,
		ActionCreateWorkout, ActionUpdateWorkout, ActionDeleteWorkout,
		ActionUpdateClientProfile:
		// Trainer-only operations.
		if actor.IsTrainer() {
			return nil
		}
		return ErrForbidden

	case ActionReadClient, ActionReadWorkout, ActionReadSessions,
		ActionCreateMeasurement, ActionReadMeasurement,
		ActionUpdateMeasurement, ActionDeleteMeasurement:
		// Trainer, or the owning client.
		if actor.IsTrainer() || actor.Owns(res.OwnerID) {
			return nil
		}
		return ErrForbidden

	case ActionCreateSession, ActionEditSessionFeedback:
		// Strictly the owning client. Trainers cannot log sessions on a
		// client's behalf or touch client feedback.
		if actor.Owns(res.OwnerID) {
			return nil
		}
		return ErrForbidden

	case ActionReadNotifications, ActionMarkNotification:
		// Recipient only, regardless of role.
		if actor.ID == res.OwnerID {
			return nil
		}
		return ErrForbidden
	}

	return fmt.Errorf("%w: unknown action %q", ErrForbidden, action)
}
