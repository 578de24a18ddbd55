// internal/domain/measurement.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Measurement is a dated snapshot of a client's body metrics. Owned by the
// client, but the trainer may manage it on the client's behalf.
type Measurement struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID   primitive.ObjectID `bson:"clientId" json:"clientId"`
	Date       time.Time          `bson:"date" json:"date"`
	WeightKg   *float64           `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	BodyFatPct *float64           `bson:"bodyFatPct,omitempty" json:"bodyFatPct,omitempty"`
	ChestCm    *float64           `bson:"chestCm,omitempty" json:"chestCm,omitempty"`
	WaistCm    *float64           `bson:"waistCm,omitempty" json:"waistCm,omitempty"`
	HipsCm     *float64           `bson:"hipsCm,omitempty" json:"hipsCm,omitempty"`
	ArmCm      *float64           `bson:"armCm,omitempty" json:"armCm,omitempty"`
	ThighCm    *float64           `bson:"thighCm,omitempty" json:"thighCm,omitempty"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	// Progress photo in object storage, if one was uploaded.
	PhotoObjectKey   string    `bson:"photoObjectKey,omitempty" json:"-"`
	PhotoContentType string    `bson:"photoContentType,omitempty" json:"-"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}
