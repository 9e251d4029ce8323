package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/devcamper/internal/app/system/normalize"
	"github.com/dalemusser/devcamper/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "user"|"publisher"|"admin"`)
	errNoPassword     = errors.New("password is required")
)

// HashPassword returns the bcrypt hash of a plain-text password.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches the user's stored hash.
func CheckPassword(u models.User, plain string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Create inserts a new user after normalizing fields and hashing password.
// Role defaults to "user".
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.Email = normalize.Email(u.Email)
	u.Role = normalize.Role(u.Role)
	if u.Role == "" {
		u.Role = models.RoleUser
	}

	switch u.Role {
	case models.RoleUser, models.RolePublisher, models.RoleAdmin:
		// ok
	default:
		return models.User{}, errBadRole
	}

	if password == "" {
		return models.User{}, errNoPassword
	}
	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = hash
	u.ResetPasswordToken = nil
	u.ResetPasswordExpire = nil
	u.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// SetResetToken stores the hashed reset token and its expiry.
func (s *Store) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expire time.Time) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"resetPasswordToken":  tokenHash,
		"resetPasswordExpire": expire.UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ClearResetToken removes any pending reset token.
func (s *Store) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$unset": bson.M{
		"resetPasswordToken":  "",
		"resetPasswordExpire": "",
	}})
	return err
}

// ClearExpiredResetTokens unsets reset fields whose expiry is at or before
// now and returns how many users were touched.
func (s *Store) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"resetPasswordExpire": bson.M{"$lte": now.UTC()}},
		bson.M{"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpire": ""}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// GetByResetToken finds the user holding tokenHash whose expiry is after now.
// Returns mongo.ErrNoDocuments when the token is unknown or expired.
func (s *Store) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{
		"resetPasswordToken":  tokenHash,
		"resetPasswordExpire": bson.M{"$gt": now.UTC()},
	}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// ResetPassword sets a new password and clears the reset token so it
// cannot be used again.
func (s *Store) ResetPassword(ctx context.Context, id primitive.ObjectID, password string) error {
	if password == "" {
		return errNoPassword
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set":   bson.M{"password": hash},
		"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpire": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
