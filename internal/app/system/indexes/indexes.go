// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureBootcamps(ctx, db); err != nil {
		problems = append(problems, "bootcamps: "+err.Error())
	}
	if err := ensureCourses(ctx, db); err != nil {
		problems = append(problems, "courses: "+err.Error())
	}
	if err := ensureReviews(ctx, db); err != nil {
		problems = append(problems, "reviews: "+err.Error())
	}
	if err := ensureLoginRecords(ctx, db); err != nil {
		problems = append(problems, "login_records: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// listExisting returns the collection's indexes keyed by key signature.
func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	existing := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

// createErr describes a failed CreateOne, with a hint when a unique index
// cannot be built because duplicates are already stored.
func createErr(coll *mongo.Collection, name, sig string, unique bool, err error) string {
	if isDuplicateKeyErr(err) && unique {
		helper := ""
		switch {
		case coll.Name() == "users" && strings.Contains(sig, "email:1"):
			helper = " (duplicates exist on users.email)"
		case coll.Name() == "reviews" && strings.Contains(sig, "user:1"):
			helper = " (a user has more than one review for a bootcamp)"
		}
		return fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)%s", coll.Name(), name, helper)
	}
	return fmt.Sprintf("%s(%s): %v", coll.Name(), name, err)
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		unique := desiredUnique != nil && *desiredUnique
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()

		ex, found := listExisting(ctx, coll)[desiredSig]
		switch {
		case found && sameBoolPtr(desiredUnique, ex.Unique) && (desiredName == "" || ex.Name == desiredName):
			zap.L().Debug("reusing existing index",
				zap.String("collection", coll.Name()),
				zap.String("name", ex.Name),
				zap.String("keys", desiredSig))
			continue

		case found:
			// Same keys but a different name or uniqueness: drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Bool("unique", unique),
				zap.Error(err))
			errs = append(errs, createErr(coll, desiredName, desiredSig, unique, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", unique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// Reset-password lookups; sparse because most users carry no token.
		{
			Keys:    bson.D{{Key: "resetPasswordToken", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("idx_users_resettoken"),
		},
	})
}

func ensureBootcamps(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("bootcamps")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_bootcamps_nameci"),
		},
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetName("idx_bootcamps_user"),
		},
	})
}

func ensureCourses(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("courses")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "bootcamp", Value: 1}},
			Options: options.Index().SetName("idx_courses_bootcamp"),
		},
	})
}

func ensureReviews(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("reviews")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One review per user per bootcamp. Its bootcamp prefix also serves
		// the per-bootcamp listing.
		{
			Keys:    bson.D{{Key: "bootcamp", Value: 1}, {Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_reviews_bootcamp_user"),
		},
		// Default advanced-results sort.
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_reviews_createdat_id"),
		},
	})
}

func ensureLoginRecords(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("login_records")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_login_records_user_createdat"),
		},
	})
}
