package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType identifies the client action a notification reports.
type NotificationType string

const (
	NotificationSessionCompleted NotificationType = "session_completed"
	NotificationMeasurementAdded NotificationType = "measurement_added"
)

// Notification is addressed to a single user (the trainer, in the current
// product) and is only ever mutated to flip its read flag.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"` // Recipient
	Type      NotificationType   `bson:"type" json:"type"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
