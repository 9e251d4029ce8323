// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an authenticated actor.
//
// NOTE:
//   - PasswordHash and the reset fields are never serialized to JSON.
//   - Role is "user" or "publisher" on self-registration; "admin" is only
//     assigned directly in the database or through fixtures.
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email"` // lowercased, unique
	Role                string             `bson:"role" json:"role"`
	PasswordHash        string             `bson:"password" json:"-"`
	ResetPasswordToken  *string            `bson:"resetPasswordToken,omitempty" json:"-"`  // sha256 hex of the emailed token
	ResetPasswordExpire *time.Time         `bson:"resetPasswordExpire,omitempty" json:"-"` // UTC
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
}
