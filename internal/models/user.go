package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // argon2id hash, never in JSON

	// Link is the short public identifier used in profile URLs,
	// distinct from the store-assigned ID.
	Link string `bson:"link" json:"link"`

	// IsDemo marks the restricted demo tier. Set at creation, never changed.
	IsDemo bool `bson:"isDemo" json:"isDemo"`
}
