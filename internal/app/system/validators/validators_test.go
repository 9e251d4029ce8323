package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/devcamper/internal/app/system/validators"
	"github.com/dalemusser/devcamper/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"bootcamps", "courses", "users", "reviews"} {
		if !have[want] {
			t.Errorf("expected collection %q to exist", want)
		}
	}
}

func validReview() bson.M {
	return bson.M{
		"title":     "Great bootcamp",
		"text":      "Learned a lot",
		"rating":    8,
		"bootcamp":  primitive.NewObjectID(),
		"user":      primitive.NewObjectID(),
		"createdAt": time.Now().UTC(),
	}
}

func TestReviewsValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(bson.M)
		wantErr bool
	}{
		{name: "valid", mutate: func(bson.M) {}, wantErr: false},
		{name: "rating 1", mutate: func(d bson.M) { d["rating"] = 1 }, wantErr: false},
		{name: "rating 10", mutate: func(d bson.M) { d["rating"] = 10 }, wantErr: false},
		{name: "rating 0", mutate: func(d bson.M) { d["rating"] = 0 }, wantErr: true},
		{name: "rating 11", mutate: func(d bson.M) { d["rating"] = 11 }, wantErr: true},
		{name: "rating string", mutate: func(d bson.M) { d["rating"] = "5" }, wantErr: true},
		{name: "missing title", mutate: func(d bson.M) { delete(d, "title") }, wantErr: true},
		{name: "blank title", mutate: func(d bson.M) { d["title"] = "   " }, wantErr: true},
		{name: "missing user", mutate: func(d bson.M) { delete(d, "user") }, wantErr: true},
		{name: "bootcamp as string", mutate: func(d bson.M) { d["bootcamp"] = "5d713995b721c3bb38c1f5d0" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validReview()
			tt.mutate(doc)
			_, err := db.Collection("reviews").InsertOne(ctx, doc)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestUsersValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	for _, role := range []string{"user", "publisher", "admin"} {
		_, err := db.Collection("users").InsertOne(ctx, bson.M{
			"name":     "Test " + role,
			"email":    role + "@example.com",
			"role":     role,
			"password": "$2a$10$hash",
		})
		if err != nil {
			t.Errorf("Insert user with role %q failed: %v", role, err)
		}
	}

	_, err := db.Collection("users").InsertOne(ctx, bson.M{
		"name":     "Bad Role",
		"email":    "bad@example.com",
		"role":     "superuser",
		"password": "$2a$10$hash",
	})
	if err == nil {
		t.Error("expected validation error for unknown role")
	}

	_, err = db.Collection("users").InsertOne(ctx, bson.M{"name": "No Password", "email": "np@example.com", "role": "user"})
	if err == nil {
		t.Error("expected validation error when password is missing")
	}
}

func TestBootcampsAndCoursesValidators(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	bootcampID := primitive.NewObjectID()
	_, err := db.Collection("bootcamps").InsertOne(ctx, bson.M{
		"_id":         bootcampID,
		"name":        "Devworks Bootcamp",
		"name_ci":     "devworks bootcamp",
		"description": "Full stack web development",
		"careers":     bson.A{"Web Development", "UI/UX"},
		"housing":     true,
	})
	if err != nil {
		t.Fatalf("Insert valid bootcamp failed: %v", err)
	}

	if _, err := db.Collection("bootcamps").InsertOne(ctx, bson.M{"name": "No Description", "name_ci": "no description"}); err == nil {
		t.Error("expected validation error for bootcamp without description")
	}

	_, err = db.Collection("courses").InsertOne(ctx, bson.M{
		"title":        "Front End Web Development",
		"description":  "HTML, CSS and JavaScript",
		"weeks":        "8",
		"tuition":      8000,
		"minimumSkill": "beginner",
		"bootcamp":     bootcampID,
	})
	if err != nil {
		t.Errorf("Insert valid course failed: %v", err)
	}

	_, err = db.Collection("courses").InsertOne(ctx, bson.M{
		"title":        "Bad Skill",
		"description":  "x",
		"weeks":        "4",
		"tuition":      100,
		"minimumSkill": "expert",
		"bootcamp":     bootcampID,
	})
	if err == nil {
		t.Error("expected validation error for unknown minimumSkill")
	}
}
