package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/garajdev/garage-api/internal/db"
)

const defaultPageSize = 50

// writeJSON sends a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError sends the standard error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// writeMessage sends the standard success envelope.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

// writeStoreError maps db sentinel errors onto the HTTP taxonomy. Anything
// unexpected becomes a logged 500.
func writeStoreError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, db.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "Invalid id format")
	case errors.Is(err, db.ErrDuplicate):
		writeError(w, http.StatusBadRequest, "Record already exists")
	default:
		log.WithError(err).Error("store operation failed")
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

// parseListQuery extracts search, pagination and date-range parameters. The
// end date's time component is forced to the end of the day so the upper
// bound is inclusive.
func parseListQuery(r *http.Request) db.ListQuery {
	q := db.ListQuery{
		Search: r.URL.Query().Get("search"),
		Limit:  defaultPageSize,
		Page:   1,
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && v > 0 {
		q.Limit = v
	}
	q.StartDate, q.EndDate = parseDateRange(r)
	return q
}

func parseDateRange(r *http.Request) (start, end *time.Time) {
	if v := r.URL.Query().Get("startDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			start = &t
		}
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			eod := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
			end = &eod
		}
	}
	return start, end
}
