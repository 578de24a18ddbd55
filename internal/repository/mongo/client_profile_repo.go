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

const clientProfileCollectionName = "client_profiles"

// mongoClientProfileRepository implements repository.ClientProfileRepository
type mongoClientProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoClientProfileRepository creates a new ClientProfile repository.
func NewMongoClientProfileRepository(db *mongo.Database) repository.ClientProfileRepository {
	return &mongoClientProfileRepository{
		collection: db.Collection(clientProfileCollectionName),
	}
}

// Create inserts a new client profile. The unique userId index guards the
// 1:1 relation when two lazy creations race.
func (r *mongoClientProfileRepository) Create(ctx context.Context, profile *domain.ClientProfile) (primitive.ObjectID, error) {
	if profile.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("client profile requires userId")
	}

	profile.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if profile.StartDate.IsZero() {
		profile.StartDate = now
	}

	_, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return profile.ID, nil
}

// GetByID retrieves a profile by its own id.
func (r *mongoClientProfileRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ClientProfile, error) {
	var profile domain.ClientProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetByUserID retrieves the profile belonging to a client user.
func (r *mongoClientProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.ClientProfile, error) {
	var profile domain.ClientProfile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Update replaces the editable profile fields.
func (r *mongoClientProfileRepository) Update(ctx context.Context, profile *domain.ClientProfile) error {
	if profile.ID == primitive.NilObjectID {
		return errors.New("client profile ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"goals":      profile.Goals,
			"notes":      profile.Notes,
			"cardExpiry": profile.CardExpiry,
			"startDate":  profile.StartDate,
			"updatedAt":  time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": profile.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureClientProfileIndexes creates necessary indexes. Call during startup.
func EnsureClientProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
