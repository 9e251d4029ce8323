// internal/app/store/bootcamps/bootcampstore.go
package bootcampstore

import (
	"context"

	"github.com/dalemusser/devcamper/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("bootcamps")}
}

// GetByID loads a bootcamp. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Bootcamp, error) {
	var b models.Bootcamp
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return models.Bootcamp{}, err
	}
	return b, nil
}

// Exists reports whether a bootcamp with the given ID is present.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}
