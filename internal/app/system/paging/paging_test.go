package paging

import (
	"math"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseValues_Defaults(t *testing.T) {
	q := ParseValues(url.Values{})

	if q.Page != 1 {
		t.Errorf("Page = %d, want 1", q.Page)
	}
	if q.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", q.Limit, DefaultLimit)
	}
	if q.Projection != nil {
		t.Errorf("Projection = %v, want nil", q.Projection)
	}
	wantSort := bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
	if !reflect.DeepEqual(q.Sort, wantSort) {
		t.Errorf("Sort = %v, want %v", q.Sort, wantSort)
	}
	if len(q.Filter) != 0 {
		t.Errorf("Filter = %v, want empty", q.Filter)
	}
}

func TestParseValues_PageAndLimit(t *testing.T) {
	tests := []struct {
		page, limit         string
		wantPage, wantLimit int
	}{
		{"2", "10", 2, 10},
		{"0", "0", 1, DefaultLimit},
		{"-3", "abc", 1, DefaultLimit},
		{" 4 ", "500", 4, MaxLimit},
		{"9223372036854775807", "100", MaxPage, MaxLimit},
		{"99999999999999999999999", "100", MaxPage, MaxLimit},
		{"-99999999999999999999999", "10", 1, 10},
	}
	for _, tt := range tests {
		q := ParseValues(url.Values{"page": {tt.page}, "limit": {tt.limit}})
		if q.Page != tt.wantPage || q.Limit != tt.wantLimit {
			t.Errorf("page=%q limit=%q: got (%d,%d), want (%d,%d)",
				tt.page, tt.limit, q.Page, q.Limit, tt.wantPage, tt.wantLimit)
		}
	}
}

func TestParseValues_SelectAndSort(t *testing.T) {
	q := ParseValues(url.Values{
		"select": {"title, rating,$where,"},
		"sort":   {"-rating,title"},
	})

	wantProj := bson.D{{Key: "title", Value: 1}, {Key: "rating", Value: 1}}
	if !reflect.DeepEqual(q.Projection, wantProj) {
		t.Errorf("Projection = %v, want %v", q.Projection, wantProj)
	}
	wantSort := bson.D{{Key: "rating", Value: -1}, {Key: "title", Value: 1}, {Key: "_id", Value: 1}}
	if !reflect.DeepEqual(q.Sort, wantSort) {
		t.Errorf("Sort = %v, want %v", q.Sort, wantSort)
	}
}

func TestParseValues_Filters(t *testing.T) {
	bid := primitive.NewObjectID()
	q := ParseValues(url.Values{
		"rating[gte]": {"8"},
		"rating[lt]":  {"10"},
		"title":       {"Great"},
		"bootcamp":    {bid.Hex()},
		"rating[in]":  {"1, 2"},
		"text[regex]": {".*"},
		"$where":      {"1"},
		"housing":     {"true"},
		"averageCost": {"1.5"},
		"weird[[gt]]": {"1"},
		"limit":       {"5"},
	}, "bootcamp")

	want := bson.M{
		"rating":      bson.M{"$gte": int64(8), "$lt": int64(10), "$in": bson.A{int64(1), int64(2)}},
		"title":       "Great",
		"bootcamp":    bid,
		"housing":     true,
		"averageCost": 1.5,
	}
	if !reflect.DeepEqual(q.Filter, want) {
		t.Errorf("Filter = %#v\nwant %#v", q.Filter, want)
	}
}

func TestCoerce(t *testing.T) {
	ids := map[string]bool{"user": true}
	oid, _ := primitive.ObjectIDFromHex("5d713995b721c3bb38c1f5d0")

	tests := []struct {
		field, raw string
		want       any
	}{
		{"user", oid.Hex(), oid},
		{"title", oid.Hex(), oid.Hex()},
		{"user", "nothex", "nothex"},
		{"rating", "7", int64(7)},
		{"rating", "-2", int64(-2)},
		{"cost", "2.5", 2.5},
		{"title", "Inf", "Inf"},
		{"title", "NaN", "NaN"},
		{"flag", "false", false},
	}
	for _, tt := range tests {
		if got := coerce(tt.field, tt.raw, ids); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("coerce(%q,%q) = %#v, want %#v", tt.field, tt.raw, got, tt.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		total    int64
		wantNext *Link
		wantPrev *Link
	}{
		{name: "single page", page: 1, limit: 25, total: 3},
		{name: "first of many", page: 1, limit: 2, total: 5, wantNext: &Link{Page: 2, Limit: 2}},
		{name: "middle", page: 2, limit: 2, total: 5, wantNext: &Link{Page: 3, Limit: 2}, wantPrev: &Link{Page: 1, Limit: 2}},
		{name: "last", page: 3, limit: 2, total: 5, wantPrev: &Link{Page: 2, Limit: 2}},
		{name: "exact boundary", page: 2, limit: 2, total: 4, wantPrev: &Link{Page: 1, Limit: 2}},
		{name: "past the end", page: 9, limit: 2, total: 4, wantPrev: &Link{Page: 8, Limit: 2}},
		{name: "last allowed page", page: MaxPage, limit: MaxLimit, total: math.MaxInt64, wantPrev: &Link{Page: MaxPage - 1, Limit: MaxLimit}},
		{name: "oversized page clamped", page: math.MaxInt, limit: MaxLimit, total: 10, wantPrev: &Link{Page: MaxPage - 1, Limit: MaxLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Query{Page: tt.page, Limit: tt.limit}
			p := q.Paginate(tt.total)
			if !reflect.DeepEqual(p.Next, tt.wantNext) {
				t.Errorf("Next = %v, want %v", p.Next, tt.wantNext)
			}
			if !reflect.DeepEqual(p.Prev, tt.wantPrev) {
				t.Errorf("Prev = %v, want %v", p.Prev, tt.wantPrev)
			}
		})
	}
}

func TestSkip_HugePageStaysPositive(t *testing.T) {
	q := ParseValues(url.Values{"page": {"9223372036854775807"}, "limit": {"100"}})
	want := int64(MaxPage-1) * MaxLimit
	if got := q.Skip(); got != want {
		t.Errorf("Skip() = %d, want %d", got, want)
	}
	if got := (Query{Page: math.MaxInt, Limit: MaxLimit}).Skip(); got != want {
		t.Errorf("Skip() on unparsed page = %d, want %d", got, want)
	}
}

func TestFindOptions(t *testing.T) {
	q := ParseValues(url.Values{"page": {"3"}, "limit": {"10"}, "select": {"title"}})
	opts := q.FindOptions()

	if opts.Skip == nil || *opts.Skip != 20 {
		t.Errorf("Skip = %v, want 20", opts.Skip)
	}
	if opts.Limit == nil || *opts.Limit != 10 {
		t.Errorf("Limit = %v, want 10", opts.Limit)
	}
	if opts.Projection == nil {
		t.Error("expected projection to be set")
	}
}

func TestParse_FromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/reviews?limit=2&page=2&rating[gt]=5", nil)
	q := Parse(r)

	if q.Page != 2 || q.Limit != 2 {
		t.Errorf("got page=%d limit=%d, want 2/2", q.Page, q.Limit)
	}
	if !reflect.DeepEqual(q.Filter, bson.M{"rating": bson.M{"$gt": int64(5)}}) {
		t.Errorf("Filter = %v", q.Filter)
	}
}
