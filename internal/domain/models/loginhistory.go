// internal/domain/models/loginhistory.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ways a token can be issued.
const (
	LoginMethodPassword = "password"
	LoginMethodRegister = "register"
	LoginMethodReset    = "reset"
)

// LoginRecord captures one token issuance.
// (user_id, created_at) is indexed for per-user history.
type LoginRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	IP        string             `bson:"ip" json:"ip"`
	UserAgent string             `bson:"user_agent,omitempty" json:"userAgent,omitempty"`
	Method    string             `bson:"method" json:"method"`
}
