package domain

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetEntry is one recorded set of an exercise. Reps stays free text because
// clients log ranges ("8-12") and AMRAP-style entries.
type SetEntry struct {
	Reps   string `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight string `bson:"weight,omitempty" json:"weight,omitempty"`
}

// ExerciseResult is the per-exercise record inside a workout session.
//
// Two historical shapes exist in stored data and incoming payloads: the
// canonical "sets" array, and an older flat setsCompleted/repsDone/weightUsed
// form. Both decoders below normalize the legacy form into the canonical one,
// so everything past this boundary only ever sees Sets.
type ExerciseResult struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	Sets       []SetEntry         `bson:"sets" json:"sets"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// exerciseResultWire accepts both recorded shapes.
type exerciseResultWire struct {
	ExerciseID    primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
	Sets          []SetEntry         `bson:"sets,omitempty" json:"sets,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	SetsCompleted int                `bson:"setsCompleted,omitempty" json:"setsCompleted,omitempty"`
	RepsDone      string             `bson:"repsDone,omitempty" json:"repsDone,omitempty"`
	WeightUsed    string             `bson:"weightUsed,omitempty" json:"weightUsed,omitempty"`
}

func (w exerciseResultWire) normalize() ExerciseResult {
	result := ExerciseResult{
		ExerciseID: w.ExerciseID,
		Name:       w.Name,
		Sets:       w.Sets,
		Notes:      w.Notes,
	}
	if len(result.Sets) == 0 && w.SetsCompleted > 0 {
		result.Sets = make([]SetEntry, w.SetsCompleted)
		for i := range result.Sets {
			result.Sets[i] = SetEntry{Reps: w.RepsDone, Weight: w.WeightUsed}
		}
	}
	return result
}

func (r *ExerciseResult) UnmarshalJSON(data []byte) error {
	var wire exerciseResultWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = wire.normalize()
	return nil
}

func (r *ExerciseResult) UnmarshalBSON(data []byte) error {
	var wire exerciseResultWire
	if err := bson.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = wire.normalize()
	return nil
}

// WorkoutSession records one performed instance of a workout. Owned by the
// client; trainers can read sessions but never create or edit them.
type WorkoutSession struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID        primitive.ObjectID `bson:"clientId" json:"clientId"`
	WorkoutID       primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	Date            time.Time          `bson:"date" json:"date"`
	DurationMinutes *int               `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Completed       bool               `bson:"completed" json:"completed"`
	Rating          int                `bson:"rating,omitempty" json:"rating,omitempty"` // 1-5, 0 = not rated
	Feedback        string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	ExerciseData    []ExerciseResult   `bson:"exerciseData" json:"exerciseData"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
