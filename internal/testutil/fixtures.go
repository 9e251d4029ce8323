package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/devcamper/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Repeated calls accumulate parameters on the same route context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, _ := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// FixturePassword is the plain-text password of every user made by CreateUser.
const FixturePassword = "123456"

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateBootcamp creates a test bootcamp with the given name.
func (f *Fixtures) CreateBootcamp(ctx context.Context, name string) models.Bootcamp {
	f.t.Helper()

	b := models.Bootcamp{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: "Test bootcamp description",
		Careers:     []string{"Web Development"},
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("bootcamps").InsertOne(ctx, b); err != nil {
		f.t.Fatalf("failed to create test bootcamp: %v", err)
	}
	return b
}

// CreateUser creates a test user whose password is FixturePassword.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	// MinCost keeps fixture setup fast; bcrypt compares any cost.
	hash, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	u := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleAdmin)
}

// CreateReview creates a review of bootcampID by userID.
func (f *Fixtures) CreateReview(ctx context.Context, bootcampID, userID primitive.ObjectID, title string, rating int) models.Review {
	f.t.Helper()

	r := models.Review{
		ID:         primitive.NewObjectID(),
		Title:      title,
		Text:       "Test review text",
		Rating:     rating,
		BootcampID: bootcampID,
		UserID:     userID,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := f.db.Collection("reviews").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test review: %v", err)
	}
	return r
}
