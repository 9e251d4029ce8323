// internal/app/store/reviews/reviewstore.go
package reviewstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/devcamper/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateReview is returned when a user reviews the same bootcamp twice.
var ErrDuplicateReview = errors.New("user has already submitted a review for this bootcamp")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reviews")}
}

// Create inserts a review. ID and CreatedAt are always assigned here;
// BootcampID and UserID must already be stamped by the caller.
func (s *Store) Create(ctx context.Context, r models.Review) (models.Review, error) {
	r.ID = primitive.NewObjectID()
	r.Title = strings.TrimSpace(r.Title)
	r.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Review{}, ErrDuplicateReview
		}
		return models.Review{}, err
	}
	return r, nil
}

// GetByID loads a review. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	var r models.Review
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return models.Review{}, err
	}
	return r, nil
}

// GetWithBootcamp loads a review with its bootcamp expanded to
// {_id, name, description}. Returns mongo.ErrNoDocuments if the review
// does not exist. A dangling bootcamp reference leaves Bootcamp nil.
func (s *Store) GetWithBootcamp(ctx context.Context, id primitive.ObjectID) (models.ReviewWithBootcamp, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
		bson.D{{Key: "$limit", Value: 1}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": "bootcamps",
			"let":  bson.M{"bid": "$bootcamp"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$bid"}}}},
				bson.M{"$project": bson.M{"name": 1, "description": 1}},
			},
			"as": "bootcamp",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$bootcamp",
			"preserveNullAndEmptyArrays": true,
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return models.ReviewWithBootcamp{}, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return models.ReviewWithBootcamp{}, err
		}
		return models.ReviewWithBootcamp{}, mongo.ErrNoDocuments
	}
	var out models.ReviewWithBootcamp
	if err := cur.Decode(&out); err != nil {
		return models.ReviewWithBootcamp{}, err
	}
	return out, nil
}

// ListByBootcamp returns every review of a bootcamp, newest first.
func (s *Store) ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"bootcamp": bootcampID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Review{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Find runs an arbitrary filtered query. Results are raw documents so that
// a projection is reflected exactly in the response.
func (s *Store) Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]bson.M, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []bson.M{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of reviews matching filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Patch holds the mutable review fields. Nil fields are left unchanged.
// bootcamp and user are deliberately absent.
type Patch struct {
	Title  *string
	Text   *string
	Rating *int
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Text == nil && p.Rating == nil
}

// Update applies p and returns the updated document.
// Returns mongo.ErrNoDocuments if the review does not exist.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p Patch) (models.Review, error) {
	if p.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	set := bson.M{}
	if p.Title != nil {
		set["title"] = strings.TrimSpace(*p.Title)
	}
	if p.Text != nil {
		set["text"] = *p.Text
	}
	if p.Rating != nil {
		set["rating"] = *p.Rating
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var r models.Review
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&r); err != nil {
		return models.Review{}, err
	}
	return r, nil
}

// Delete removes a review by ID and returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
