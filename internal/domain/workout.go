package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is one ordered step of a Workout. The list is embedded in the
// workout document and always replaced wholesale, which keeps Order
// contiguous (1..N) without cross-document bookkeeping.
type Exercise struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Sets   int                `bson:"sets" json:"sets"`
	Reps   string             `bson:"reps" json:"reps"`                         // Free text, ranges like "8-12" allowed
	Weight string             `bson:"weight,omitempty" json:"weight,omitempty"` // Free text, e.g. "60kg" or "bodyweight"
	Rest   string             `bson:"rest,omitempty" json:"rest,omitempty"`     // Free text, parsed by timer.ParseRest
	Notes  string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Order  int                `bson:"order" json:"order"` // 1-based position within the workout
}

// Workout is a named exercise program owned by exactly one client profile.
// At most one workout per client may be active at a time; the repository
// enforces that when an activating write is committed.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProfileID   primitive.ObjectID `bson:"profileId" json:"profileId"`
	ClientID    primitive.ObjectID `bson:"clientId" json:"clientId"` // Denormalized owning user id for auth/query
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ExpiresAt   *time.Time         `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	Exercises   []Exercise         `bson:"exercises" json:"exercises"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NormalizeExerciseOrder renumbers the exercise sequence 1..N in slice order
// and assigns ids to entries that do not have one yet. Called whenever a
// workout's exercise list is created or replaced.
func NormalizeExerciseOrder(exercises []Exercise) {
	for i := range exercises {
		exercises[i].Order = i + 1
		if exercises[i].ID.IsZero() {
			exercises[i].ID = primitive.NewObjectID()
		}
	}
}
