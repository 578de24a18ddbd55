package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestExerciseResultUnmarshalCanonicalJSON(t *testing.T) {
	id := primitive.NewObjectID()
	payload := []byte(`{
		"exerciseId": "` + id.Hex() + `",
		"name": "Bench Press",
		"sets": [{"reps": "8", "weight": "60kg"}, {"reps": "6", "weight": "65kg"}],
		"notes": "pb"
	}`)

	var result ExerciseResult
	require.NoError(t, json.Unmarshal(payload, &result))

	assert.Equal(t, id, result.ExerciseID)
	assert.Equal(t, "Bench Press", result.Name)
	require.Len(t, result.Sets, 2)
	assert.Equal(t, SetEntry{Reps: "6", Weight: "65kg"}, result.Sets[1])
	assert.Equal(t, "pb", result.Notes)
}

func TestExerciseResultUnmarshalLegacyJSON(t *testing.T) {
	// Old records carry flat counters instead of per-set entries.
	payload := []byte(`{
		"name": "Squat",
		"setsCompleted": 3,
		"repsDone": "10",
		"weightUsed": "80kg"
	}`)

	var result ExerciseResult
	require.NoError(t, json.Unmarshal(payload, &result))

	require.Len(t, result.Sets, 3)
	for _, set := range result.Sets {
		assert.Equal(t, SetEntry{Reps: "10", Weight: "80kg"}, set)
	}
}

func TestExerciseResultCanonicalShapeWinsOverLegacy(t *testing.T) {
	// A payload carrying both shapes keeps the canonical sets untouched.
	payload := []byte(`{
		"name": "Deadlift",
		"sets": [{"reps": "5", "weight": "100kg"}],
		"setsCompleted": 4,
		"repsDone": "8",
		"weightUsed": "90kg"
	}`)

	var result ExerciseResult
	require.NoError(t, json.Unmarshal(payload, &result))

	require.Len(t, result.Sets, 1)
	assert.Equal(t, SetEntry{Reps: "5", Weight: "100kg"}, result.Sets[0])
}

func TestExerciseResultUnmarshalLegacyBSON(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"exerciseId":    primitive.NewObjectID(),
		"name":          "Row",
		"setsCompleted": 2,
		"repsDone":      "12",
		"weightUsed":    "40kg",
	})
	require.NoError(t, err)

	var result ExerciseResult
	require.NoError(t, bson.Unmarshal(raw, &result))

	require.Len(t, result.Sets, 2)
	assert.Equal(t, SetEntry{Reps: "12", Weight: "40kg"}, result.Sets[0])
}

func TestExerciseResultZeroSetsCompleted(t *testing.T) {
	var result ExerciseResult
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Plank"}`), &result))
	assert.Empty(t, result.Sets)
}

func TestNormalizeExerciseOrder(t *testing.T) {
	existing := primitive.NewObjectID()
	exercises := []Exercise{
		{ID: existing, Name: "A", Order: 7},
		{Name: "B"},
		{Name: "C", Order: 2},
	}

	NormalizeExerciseOrder(exercises)

	for i, ex := range exercises {
		assert.Equal(t, i+1, ex.Order)
		assert.False(t, ex.ID.IsZero(), "every exercise gets an id")
	}
	assert.Equal(t, existing, exercises[0].ID, "existing ids are kept")
}

func TestActorPredicates(t *testing.T) {
	clientID := primitive.NewObjectID()
	trainer := NewActor(primitive.NewObjectID(), RoleTrainer)
	client := NewActor(clientID, RoleClient)

	assert.True(t, trainer.IsTrainer())
	assert.False(t, client.IsTrainer())

	assert.True(t, client.Owns(clientID))
	assert.False(t, client.Owns(primitive.NewObjectID()))
	assert.False(t, trainer.Owns(clientID), "trainers are not owners")

	var nilActor *Actor
	assert.False(t, nilActor.IsTrainer())
	assert.False(t, nilActor.Owns(clientID))
}
