// internal/domain/models/bootcamp.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bootcamp is the primary resource that courses and reviews attach to.
// It is read-only over HTTP; documents arrive through the seeder.
type Bootcamp struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	NameCI        string             `bson:"name_ci" json:"-"` // folded name, unique
	Slug          string             `bson:"slug,omitempty" json:"slug,omitempty"`
	Description   string             `bson:"description" json:"description"`
	Website       string             `bson:"website,omitempty" json:"website,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	Careers       []string           `bson:"careers,omitempty" json:"careers,omitempty"`
	AverageRating float64            `bson:"averageRating,omitempty" json:"averageRating,omitempty"`
	AverageCost   float64            `bson:"averageCost,omitempty" json:"averageCost,omitempty"`
	Photo         string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Housing       bool               `bson:"housing" json:"housing"`
	JobAssistance bool               `bson:"jobAssistance" json:"jobAssistance"`
	JobGuarantee  bool               `bson:"jobGuarantee" json:"jobGuarantee"`
	AcceptGi      bool               `bson:"acceptGi" json:"acceptGi"`
	UserID        primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// BootcampRef is the expanded form of a review's bootcamp reference.
type BootcampRef struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
}
