// internal/app/system/paging/paging.go
package paging

import (
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/dalemusser/devcamper/internal/app/system/normalize"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultLimit is the page size when ?limit is absent or invalid.
	DefaultLimit = 25
	// MaxLimit caps ?limit.
	MaxLimit = 100
	// MaxPage caps ?page so skip and link arithmetic cannot overflow.
	MaxPage = 1_000_000
	// DefaultSort is applied when ?sort is absent.
	DefaultSort = "-createdAt"
)

// reserved query keys control the query shape and are never filters.
var reserved = map[string]bool{"select": true, "sort": true, "page": true, "limit": true}

// operators maps the bracket suffix of a filter key to its Mongo operator.
var operators = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
	"in":  "$in",
}

// filterKey matches "field" or "field[op]". Field names are restricted so a
// caller cannot smuggle Mongo operators in through the key.
var filterKey = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.]*)(?:\[([a-z]+)\])?$`)

// Query is a parsed advanced-results request.
type Query struct {
	Filter     bson.M
	Projection bson.D // nil means all fields
	Sort       bson.D
	Page       int
	Limit      int
}

// Parse builds a Query from the request's query string. idFields name the
// fields whose 24-hex values are compared as ObjectIDs.
func Parse(r *http.Request, idFields ...string) Query {
	return parse(r.URL.Query(), func(key string) string { return query.Get(r, key) }, idFields)
}

// ParseValues is Parse over already-decoded values.
func ParseValues(v url.Values, idFields ...string) Query {
	return parse(v, v.Get, idFields)
}

// parse reads the reserved keys through get and treats the rest of v as filters.
func parse(v url.Values, get func(string) string, idFields []string) Query {
	ids := make(map[string]bool, len(idFields))
	for _, f := range idFields {
		ids[f] = true
	}

	q := Query{
		Filter: bson.M{},
		Page:   positiveInt(get("page"), 1, MaxPage),
		Limit:  positiveInt(get("limit"), DefaultLimit, MaxLimit),
	}

	if sel := fields(get("select")); len(sel) > 0 {
		q.Projection = make(bson.D, 0, len(sel))
		for _, f := range sel {
			q.Projection = append(q.Projection, bson.E{Key: f, Value: 1})
		}
	}

	sortParam := normalize.QueryParam(get("sort"))
	if sortParam == "" {
		sortParam = DefaultSort
	}
	q.Sort = parseSort(sortParam)

	for key, vals := range v {
		if reserved[key] || len(vals) == 0 {
			continue
		}
		m := filterKey.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		field, op := m[1], m[2]
		raw := normalize.QueryParam(vals[0])

		if op == "" {
			q.Filter[field] = coerce(field, raw, ids)
			continue
		}
		mop, ok := operators[op]
		if !ok {
			continue
		}
		cond, _ := q.Filter[field].(bson.M)
		if cond == nil {
			cond = bson.M{}
		}
		if op == "in" {
			list := bson.A{}
			for _, part := range strings.Split(raw, ",") {
				if part = strings.TrimSpace(part); part != "" {
					list = append(list, coerce(field, part, ids))
				}
			}
			cond[mop] = list
		} else {
			cond[mop] = coerce(field, raw, ids)
		}
		q.Filter[field] = cond
	}

	return q
}

// page returns q.Page clamped to [1, MaxPage].
func (q Query) page() int64 {
	switch {
	case q.Page < 1:
		return 1
	case q.Page > MaxPage:
		return MaxPage
	}
	return int64(q.Page)
}

// Skip is the number of documents before the current page.
func (q Query) Skip() int64 {
	return (q.page() - 1) * int64(q.Limit)
}

// FindOptions returns projection, sort, skip and limit for the page.
func (q Query) FindOptions() *options.FindOptions {
	opts := options.Find().
		SetSort(q.Sort).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))
	if q.Projection != nil {
		opts.SetProjection(q.Projection)
	}
	return opts
}

// Link addresses one page.
type Link struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination is the envelope's pagination object. Absent links are omitted.
type Pagination struct {
	Next *Link `json:"next,omitempty"`
	Prev *Link `json:"prev,omitempty"`
}

// Paginate computes the neighbouring page links given the total number of
// matching documents.
func (q Query) Paginate(total int64) Pagination {
	var p Pagination
	page := q.page()
	if page < MaxPage && page*int64(q.Limit) < total {
		p.Next = &Link{Page: int(page) + 1, Limit: q.Limit}
	}
	if q.Skip() > 0 {
		p.Prev = &Link{Page: int(page) - 1, Limit: q.Limit}
	}
	return p
}

// parseSort turns "-rating,title" into {rating:-1, title:1, _id:±1}. The
// trailing _id keeps page boundaries stable when sort keys tie.
func parseSort(raw string) bson.D {
	var out bson.D
	hasID := false
	lastDir := 1
	for _, f := range fields(raw) {
		dir := 1
		if strings.HasPrefix(f, "-") {
			dir = -1
			f = strings.TrimPrefix(f, "-")
		} else {
			f = strings.TrimPrefix(f, "+")
		}
		if f == "" {
			continue
		}
		if f == "_id" {
			hasID = true
		}
		out = append(out, bson.E{Key: f, Value: dir})
		lastDir = dir
	}
	if !hasID {
		out = append(out, bson.E{Key: "_id", Value: lastDir})
	}
	return out
}

// fields splits a comma-separated list, dropping blanks and names that
// start with "$".
func fields(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" || strings.Contains(f, "$") {
			continue
		}
		out = append(out, f)
	}
	return out
}

// coerce converts a raw query value into the type stored in Mongo.
func coerce(field, raw string, ids map[string]bool) any {
	if ids[field] {
		if oid, err := primitive.ObjectIDFromHex(raw); err == nil {
			return oid
		}
	}
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if !looksNumeric(raw) {
		return raw
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// looksNumeric rejects words ParseFloat would accept, such as "Inf" and "NaN".
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && c != '-' && c != '+' && c != '.' && c != 'e' && c != 'E' {
			return false
		}
	}
	return true
}

// positiveInt parses s, falling back to def when s is not a positive
// integer. Values above max, including ones too large for an int, are
// clamped to max.
func positiveInt(s string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return max
	}
	if err != nil || n < 1 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}
