// internal/domain/models/review.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a user's rating of a bootcamp.
//
// NOTE:
//   - UserID is stamped at creation and never changes; it decides who may
//     update or delete the review.
//   - (bootcamp, user) is unique: one review per user per bootcamp.
type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title      string             `bson:"title" json:"title"`
	Text       string             `bson:"text" json:"text"`
	Rating     int                `bson:"rating" json:"rating"` // 1..10
	BootcampID primitive.ObjectID `bson:"bootcamp" json:"bootcamp"`
	UserID     primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// ReviewWithBootcamp is a review whose bootcamp reference has been expanded.
// Bootcamp is nil when the referenced bootcamp no longer exists.
type ReviewWithBootcamp struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Text      string             `bson:"text" json:"text"`
	Rating    int                `bson:"rating" json:"rating"`
	Bootcamp  *BootcampRef       `bson:"bootcamp,omitempty" json:"bootcamp"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
