// internal/app/seed/seed.go
package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	userstore "github.com/dalemusser/devcamper/internal/app/store/users"
	"github.com/dalemusser/devcamper/internal/app/system/normalize"
	"github.com/dalemusser/devcamper/internal/app/system/timeouts"
	"github.com/dalemusser/devcamper/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Exit codes returned by Run.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// fixture is one collection the seeder manages, in load order.
type fixture struct {
	collection string
	optional   bool // a missing file is skipped instead of failing
	prepare    func(doc bson.M) error
}

// Seeder loads and clears fixture data.
type Seeder struct {
	db      *mongo.Database
	dataDir string
	log     *zap.Logger
	now     func() time.Time
}

// New returns a Seeder reading <dataDir>/<collection>.json.
func New(db *mongo.Database, dataDir string, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, dataDir: dataDir, log: logger, now: time.Now}
}

func (s *Seeder) fixtures() []fixture {
	return []fixture{
		{collection: "bootcamps", prepare: s.prepareBootcamp},
		{collection: "courses", prepare: s.stampCreated},
		{collection: "users", prepare: s.prepareUser},
		{collection: "reviews", optional: true, prepare: s.stampCreated},
	}
}

// Run selects a mode from the first argument: "-i" imports, "-d" deletes,
// anything else does nothing. It returns the process exit code.
func (s *Seeder) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		return ExitOK
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Batch())
	defer cancel()

	switch args[0] {
	case "-i":
		if err := s.ImportAll(ctx); err != nil {
			s.log.Error("import failed", zap.Error(err))
			return ExitFailure
		}
		s.log.Info("data imported")
	case "-d":
		if err := s.DeleteAll(ctx); err != nil {
			s.log.Error("delete failed", zap.Error(err))
			return ExitFailure
		}
		s.log.Info("data destroyed")
	}
	return ExitOK
}

// ImportAll inserts every fixture file in load order. Inserts are ordered
// and nothing is rolled back when a later collection fails.
func (s *Seeder) ImportAll(ctx context.Context) error {
	for _, f := range s.fixtures() {
		docs, err := s.load(f)
		if errors.Is(err, fs.ErrNotExist) && f.optional {
			s.log.Info("fixture file missing; skipped", zap.String("collection", f.collection))
			continue
		}
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			continue
		}

		res, err := s.db.Collection(f.collection).InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
		if err != nil {
			return fmt.Errorf("insert %s: %w", f.collection, err)
		}
		s.log.Info("fixtures imported",
			zap.String("collection", f.collection),
			zap.Int("count", len(res.InsertedIDs)))
	}
	return nil
}

// DeleteAll removes every document from each managed collection.
func (s *Seeder) DeleteAll(ctx context.Context) error {
	for _, f := range s.fixtures() {
		res, err := s.db.Collection(f.collection).DeleteMany(ctx, bson.M{})
		if err != nil {
			return fmt.Errorf("delete %s: %w", f.collection, err)
		}
		s.log.Info("fixtures deleted",
			zap.String("collection", f.collection),
			zap.Int64("count", res.DeletedCount))
	}
	return nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| file decoding                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Seeder) load(f fixture) ([]any, error) {
	path := filepath.Join(s.dataDir, f.collection+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var items []map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	docs := make([]any, 0, len(items))
	for i, item := range items {
		doc := bson.M{}
		for k, v := range item {
			doc[k] = convert(k, v)
		}
		if err := f.prepare(doc); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", path, i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// refFields hold ObjectID references written as 24-hex strings.
var refFields = map[string]bool{"_id": true, "user": true, "bootcamp": true}

// convert maps decoded JSON to BSON-friendly values: whole numbers become
// int64, reference hex strings become ObjectIDs, and RFC 3339 createdAt
// strings become dates.
func convert(key string, v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	case string:
		if refFields[key] {
			if oid, err := primitive.ObjectIDFromHex(t); err == nil {
				return oid
			}
		}
		if key == "createdAt" {
			if ts, err := time.Parse(time.RFC3339, t); err == nil {
				return ts.UTC()
			}
		}
		return t
	case map[string]any:
		m := bson.M{}
		for k, vv := range t {
			m[k] = convert(k, vv)
		}
		return m
	case []any:
		out := make(bson.A, len(t))
		for i, vv := range t {
			out[i] = convert(key, vv)
		}
		return out
	default:
		return v
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| per-collection preparation                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Seeder) stampCreated(doc bson.M) error {
	if _, ok := doc["createdAt"]; !ok {
		doc["createdAt"] = s.now().UTC()
	}
	return nil
}

func (s *Seeder) prepareBootcamp(doc bson.M) error {
	name, _ := doc["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("bootcamp name is required")
	}
	doc["name"] = name
	doc["name_ci"] = text.Fold(name)
	if _, ok := doc["slug"]; !ok {
		doc["slug"] = slugify(name)
	}
	return s.stampCreated(doc)
}

func (s *Seeder) prepareUser(doc bson.M) error {
	if email, ok := doc["email"].(string); ok {
		doc["email"] = normalize.Email(email)
	}
	role, _ := doc["role"].(string)
	if role = normalize.Role(role); role == "" {
		role = models.RoleUser
	}
	doc["role"] = role

	plain, _ := doc["password"].(string)
	if plain == "" {
		return errors.New("user password is required")
	}
	hash, err := userstore.HashPassword(plain)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	doc["password"] = hash
	return s.stampCreated(doc)
}

// slugify lowercases name and joins its alphanumeric runs with "-".
func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
