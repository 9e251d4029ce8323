package indexes_test

import (
	"context"
	"testing"

	"github.com/dalemusser/devcamper/internal/app/system/indexes"
	"github.com/dalemusser/devcamper/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func indexNames(t *testing.T, ctx context.Context, c *mongo.Collection) map[string]bool {
	t.Helper()
	cur, err := c.Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	tests := []struct {
		collection string
		expected   []string
	}{
		{"users", []string{"uniq_users_email", "idx_users_resettoken"}},
		{"bootcamps", []string{"uniq_bootcamps_nameci", "idx_bootcamps_user"}},
		{"courses", []string{"idx_courses_bootcamp"}},
		{"reviews", []string{"uniq_reviews_bootcamp_user", "idx_reviews_createdat_id"}},
		{"login_records", []string{"idx_login_records_user_createdat"}},
	}

	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			names := indexNames(t, ctx, db.Collection(tt.collection))
			for _, name := range tt.expected {
				if !names[name] {
					t.Errorf("expected index %q to exist on %s collection", name, tt.collection)
				}
			}
		})
	}
}

func TestEnsureAll_RenamesMisnamedIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("courses").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "bootcamp", Value: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOne failed: %v", err)
	}

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := indexNames(t, ctx, db.Collection("courses"))
	if !names["idx_courses_bootcamp"] {
		t.Error("expected idx_courses_bootcamp after reconcile")
	}
	if names["bootcamp_1"] {
		t.Error("expected default-named index to be replaced")
	}
}

func TestEnsureAll_UniqueReviewPerUserAndBootcamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	bootcamp := primitive.NewObjectID()
	user := primitive.NewObjectID()
	reviews := db.Collection("reviews")

	if _, err := reviews.InsertOne(ctx, bson.M{"bootcamp": bootcamp, "user": user, "title": "a"}); err != nil {
		t.Fatalf("Insert review failed: %v", err)
	}
	if _, err := reviews.InsertOne(ctx, bson.M{"bootcamp": bootcamp, "user": user, "title": "b"}); err == nil {
		t.Error("expected duplicate key error for second review by same user")
	}
	if _, err := reviews.InsertOne(ctx, bson.M{"bootcamp": primitive.NewObjectID(), "user": user, "title": "c"}); err != nil {
		t.Errorf("same user on another bootcamp should succeed: %v", err)
	}
}

func TestEnsureAll_UniqueEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	users := db.Collection("users")
	if _, err := users.InsertOne(ctx, bson.M{"email": "a@example.com"}); err != nil {
		t.Fatalf("Insert user failed: %v", err)
	}
	if _, err := users.InsertOne(ctx, bson.M{"email": "a@example.com"}); err == nil {
		t.Error("expected duplicate key error on users.email")
	}
}
