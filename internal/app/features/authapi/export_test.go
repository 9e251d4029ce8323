package authapi

import "time"

// SetClock replaces the handler's clock for expiry tests.
func SetClock(h *Handler, now func() time.Time) {
	h.now = now
}
