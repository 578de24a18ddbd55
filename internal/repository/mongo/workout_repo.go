// internal/repository/mongo/workout_repo.go
package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"alcyxob/pt-crm/internal/domain"
	"alcyxob/pt-crm/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout. When the workout arrives active, the
// client's other workouts are deactivated in the same transaction, so two
// concurrent activating writes can never leave two workouts active.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.ProfileID == primitive.NilObjectID || workout.ClientID == primitive.NilObjectID || workout.Name == "" {
		return primitive.NilObjectID, errors.New("workout requires profileId, clientId, and name")
	}
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now

	if !workout.IsActive {
		if _, err := r.collection.InsertOne(ctx, workout); err != nil {
			return primitive.NilObjectID, err
		}
		return workout.ID, nil
	}

	err := r.withActivation(ctx, workout.ClientID, workout.ID, func(sessCtx mongo.SessionContext) error {
		_, err := r.collection.InsertOne(sessCtx, workout)
		return err
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return workout.ID, nil
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// GetByClientID retrieves all workouts owned by a client, newest first.
func (r *mongoWorkoutRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Workout, error) {
	filter := bson.M{"clientId": clientID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetActiveByClientID returns the client's single active workout, if any.
func (r *mongoWorkoutRepository) GetActiveByClientID(ctx context.Context, clientID primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	filter := bson.M{"clientId": clientID, "isActive": true}
	err := r.collection.FindOne(ctx, filter).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// Update replaces the workout's mutable fields, including the whole exercise
// list. Activating updates run under the same transactional guarantee as
// Create; deactivating ones never touch sibling workouts.
func (r *mongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == primitive.NilObjectID {
		return errors.New("workout ID is required for update")
	}

	updateDoc := bson.M{
		"$set": bson.M{
			"name":        workout.Name,
			"description": workout.Description,
			"expiresAt":   workout.ExpiresAt,
			"isActive":    workout.IsActive,
			"exercises":   workout.Exercises,
			"updatedAt":   time.Now().UTC(),
		},
	}
	filter := bson.M{"_id": workout.ID}

	if !workout.IsActive {
		result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
		if err != nil {
			return err
		}
		if result.MatchedCount == 0 {
			return repository.ErrNotFound
		}
		return nil
	}

	return r.withActivation(ctx, workout.ClientID, workout.ID, func(sessCtx mongo.SessionContext) error {
		result, err := r.collection.UpdateOne(sessCtx, filter, updateDoc)
		if err != nil {
			return err
		}
		if result.MatchedCount == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

// Delete removes a workout; its exercises live inside the document and go
// with it.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, workoutID primitive.ObjectID) error {
	if workoutID == primitive.NilObjectID {
		return errors.New("workout ID is required for deletion")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": workoutID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// withActivation runs apply inside a transaction that first flips isActive
// off on every other workout of the same client. Either both steps commit or
// neither does; a failed transaction surfaces as ErrActivationConflict with
// nothing applied.
func (r *mongoWorkoutRepository) withActivation(ctx context.Context, clientID, workoutID primitive.ObjectID, apply func(mongo.SessionContext) error) error {
	client := r.collection.Database().Client()
	session, err := client.StartSession()
	if err != nil {
		return repository.ErrActivationConflict
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		deactivate := bson.M{
			"clientId": clientID,
			"_id":      bson.M{"$ne": workoutID},
			"isActive": true,
		}
		if _, err := r.collection.UpdateMany(sessCtx, deactivate, bson.M{
			"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()},
		}); err != nil {
			return nil, err
		}
		return nil, apply(sessCtx)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		log.Printf("ERROR: workout activation transaction failed for client %s: %v", clientID.Hex(), err)
		return repository.ErrActivationConflict
	}
	return nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// Partial unique index backs up the activation transaction: the
			// database itself refuses a second active workout per client.
			Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"isActive": true}),
		},
		{
			Keys:    bson.D{{Key: "profileId", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
