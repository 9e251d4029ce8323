// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/devcamper/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Same order the seeder loads them.
	ensure("bootcamps", bootcampsSchema())
	ensure("courses", coursesSchema())
	ensure("users", usersSchema())
	ensure("reviews", reviewsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var (
	objectID  = bson.M{"bsonType": "objectId"}
	nonBlank  = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	number    = bson.M{"bsonType": bson.A{"int", "long", "double", "decimal"}}
	anyString = bson.M{"bsonType": "string"}
	anyBool   = bson.M{"bsonType": "bool"}
)

func bootcampsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "name_ci", "description"},
			"properties": bson.M{
				"name":          bson.M{"bsonType": "string", "minLength": 1, "maxLength": 50, "pattern": ".*\\S.*"},
				"name_ci":       nonBlank,
				"description":   bson.M{"bsonType": "string", "minLength": 1, "maxLength": 500},
				"careers":       bson.M{"bsonType": "array", "items": anyString},
				"averageRating": number,
				"averageCost":   number,
				"housing":       anyBool,
				"jobAssistance": anyBool,
				"jobGuarantee":  anyBool,
				"acceptGi":      anyBool,
				"user":          objectID,
			},
		},
	}
}

func coursesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "description", "weeks", "tuition", "minimumSkill", "bootcamp"},
			"properties": bson.M{
				"title":                nonBlank,
				"description":          nonBlank,
				"weeks":                nonBlank,
				"tuition":              number,
				"minimumSkill":         bson.M{"enum": bson.A{"beginner", "intermediate", "advanced"}},
				"scholarshipAvailable": anyBool,
				"bootcamp":             objectID,
				"user":                 objectID,
			},
		},
	}
}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "email", "role", "password"},
			"properties": bson.M{
				"name":                nonBlank,
				"email":               nonBlank,
				"role":                bson.M{"enum": bson.A{models.RoleUser, models.RolePublisher, models.RoleAdmin}},
				"password":            bson.M{"bsonType": "string", "minLength": 1},
				"resetPasswordToken":  anyString,
				"resetPasswordExpire": bson.M{"bsonType": "date"},
			},
		},
	}
}

func reviewsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "text", "rating", "bootcamp", "user"},
			"properties": bson.M{
				"title":    bson.M{"bsonType": "string", "minLength": 1, "maxLength": 100, "pattern": ".*\\S.*"},
				"text":     nonBlank,
				"rating":   bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1, "maximum": 10},
				"bootcamp": objectID,
				"user":     objectID,
			},
		},
	}
}
