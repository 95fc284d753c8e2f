package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a "memory" entry. UserID references the owning user by id;
// Link is the short public identifier used in share URLs.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	Title    string `bson:"title" json:"title"`
	Content  string `bson:"content" json:"content"`
	Category string `bson:"category" json:"category"`
	Link     string `bson:"link" json:"link"`

	// Counters only ever move through the store's atomic $inc.
	Likes int64 `bson:"likes" json:"likes"`
	Reads int64 `bson:"reads" json:"reads"`
}
