// internal/app/features/reviews/list.go
package reviews

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/devcamper/internal/app/features/errors"
	reviewstore "github.com/dalemusser/devcamper/internal/app/store/reviews"
	"github.com/dalemusser/devcamper/internal/app/system/httpjson"
	"github.com/dalemusser/devcamper/internal/app/system/paging"
	"github.com/dalemusser/devcamper/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// idFields are compared as ObjectIDs in advanced-results filters.
var idFields = []string{"_id", "bootcamp", "user"}

// ServeList handles GET /reviews and GET /bootcamps/{bootcampId}/reviews.
//
// Scoped to a bootcamp it returns every review of that bootcamp as
// {success, count, data}. Otherwise it returns the advanced-results page
// {success, count, pagination, data} for the query string.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := reviewstore.New(h.DB)

	if raw := chi.URLParam(r, "bootcampId"); raw != "" {
		bootcampID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			h.fail(w, r, uierrors.NotFound("No bootcamp with the id of %s", raw))
			return
		}
		list, err := store.ListByBootcamp(ctx, bootcampID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		_ = httpjson.OKCount(w, len(list), list)
		return
	}

	q := paging.Parse(r, idFields...)
	total, err := store.Count(ctx, q.Filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	docs, err := store.Find(ctx, q.Filter, q.FindOptions())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	count := len(docs)
	_ = httpjson.Write(w, http.StatusOK, httpjson.Envelope{
		Success:    true,
		Count:      &count,
		Pagination: q.Paginate(total),
		Data:       docs,
	})
}
