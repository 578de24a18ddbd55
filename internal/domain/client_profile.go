// internal/domain/client_profile.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientProfile is the 1:1 extension of a client User: training goals,
// trainer notes and membership data. Created lazily the first time a workout
// is assigned to a client who does not have one yet.
type ClientProfile struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"` // Owning client user, unique
	Goals      string             `bson:"goals,omitempty" json:"goals,omitempty"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CardExpiry *time.Time         `bson:"cardExpiry,omitempty" json:"cardExpiry,omitempty"` // Membership card expiry
	StartDate  time.Time          `bson:"startDate" json:"startDate"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
