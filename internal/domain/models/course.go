// internal/domain/models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course belongs to a bootcamp. Only the seeder writes courses.
type Course struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title                string             `bson:"title" json:"title"`
	Description          string             `bson:"description" json:"description"`
	Weeks                string             `bson:"weeks" json:"weeks"`
	Tuition              float64            `bson:"tuition" json:"tuition"`
	MinimumSkill         string             `bson:"minimumSkill" json:"minimumSkill"` // beginner | intermediate | advanced
	ScholarshipAvailable bool               `bson:"scholarshipAvailable" json:"scholarshipAvailable"`
	BootcampID           primitive.ObjectID `bson:"bootcamp" json:"bootcamp"`
	UserID               primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
}
