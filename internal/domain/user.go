package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

const (
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
)

// User represents an account in the system (either the Trainer or a Client).
// The role is fixed at registration; there is no promotion path.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsClient() bool {
	return u.Role == RoleClient
}

// Actor is the resolved identity behind a request and the only input the
// authorization rules look at. A nil *Actor means "no session".
type Actor struct {
	ID   primitive.ObjectID
	Role Role
}

// NewActor builds an actor for a user id and role.
func NewActor(id primitive.ObjectID, role Role) *Actor {
	return &Actor{ID: id, Role: role}
}

func (a *Actor) IsTrainer() bool {
	return a != nil && a.Role == RoleTrainer
}

// Owns reports whether the actor is the client identified by clientID.
func (a *Actor) Owns(clientID primitive.ObjectID) bool {
	return a != nil && a.Role == RoleClient && a.ID == clientID
}
