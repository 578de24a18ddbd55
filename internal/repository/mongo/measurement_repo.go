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

const measurementCollectionName = "measurements"

// mongoMeasurementRepository implements repository.MeasurementRepository
type mongoMeasurementRepository struct {
	collection *mongo.Collection
}

// NewMongoMeasurementRepository creates a new Measurement repository.
func NewMongoMeasurementRepository(db *mongo.Database) repository.MeasurementRepository {
	return &mongoMeasurementRepository{
		collection: db.Collection(measurementCollectionName),
	}
}

// Create inserts a new measurement. A missing date defaults to now.
func (r *mongoMeasurementRepository) Create(ctx context.Context, m *domain.Measurement) (primitive.ObjectID, error) {
	if m.ClientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("measurement requires clientId")
	}

	m.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Date.IsZero() {
		m.Date = now
	}

	if _, err := r.collection.InsertOne(ctx, m); err != nil {
		return primitive.NilObjectID, err
	}
	return m.ID, nil
}

// GetByID retrieves a single measurement.
func (r *mongoMeasurementRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Measurement, error) {
	var m domain.Measurement
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// GetByClientID retrieves all measurements for a client, most recent first.
func (r *mongoMeasurementRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Measurement, error) {
	filter := bson.M{"clientId": clientID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	measurements := []domain.Measurement{}
	if err = cursor.All(ctx, &measurements); err != nil {
		return nil, err
	}
	return measurements, nil
}

// Update replaces the measurement's editable fields.
func (r *mongoMeasurementRepository) Update(ctx context.Context, m *domain.Measurement) error {
	if m.ID == primitive.NilObjectID {
		return errors.New("measurement ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"date":             m.Date,
			"weightKg":         m.WeightKg,
			"bodyFatPct":       m.BodyFatPct,
			"chestCm":          m.ChestCm,
			"waistCm":          m.WaistCm,
			"hipsCm":           m.HipsCm,
			"armCm":            m.ArmCm,
			"thighCm":          m.ThighCm,
			"notes":            m.Notes,
			"photoObjectKey":   m.PhotoObjectKey,
			"photoContentType": m.PhotoContentType,
			"updatedAt":        time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": m.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a measurement.
func (r *mongoMeasurementRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMeasurementIndexes creates necessary indexes. Call during startup.
func EnsureMeasurementIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
