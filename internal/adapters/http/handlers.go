package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"flotenn/internal/adapters/http/middleware"
	"flotenn/internal/adapters/storage"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// handleNotFound renders the 404 page.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	renderTemplateStatus(w, r, http.StatusNotFound, "not_found.html", nil)
}

// lookupFailed answers a failed single-record read: 404 for a missing
// record, 500 otherwise.
func lookupFailed(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		handleNotFound(w, r)
		return
	}
	internalError(w, err)
}

// currentSession returns the signed-in session. Admin handlers run behind
// RequireRole, so the session is always present there.
func currentSession(r *http.Request) middleware.Session {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	return sess
}

// redirectTo answers a successful form post.
func redirectTo(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// formText returns a trimmed form value.
func formText(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// formBool reads a checkbox.
func formBool(r *http.Request, key string) bool {
	switch r.FormValue(key) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// formInt reads an integer field, returning def when blank or malformed.
func formInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(formText(r, key))
	if err != nil {
		return def
	}
	return n
}

// formFloat reads a decimal field, returning 0 when blank or malformed.
func formFloat(r *http.Request, key string) float64 {
	v, err := strconv.ParseFloat(formText(r, key), 64)
	if err != nil {
		return 0
	}
	return v
}

// formDate reads a yyyy-mm-dd field; blank or malformed yields the zero time.
func formDate(r *http.Request, key string) time.Time {
	t, err := time.Parse("2006-01-02", formText(r, key))
	if err != nil {
		return time.Time{}
	}
	return t
}

// queryInt reads an integer query parameter.
func queryInt(r *http.Request, key string) (int, bool) {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0, false
	}
	return n, true
}

// writeJSON writes v with status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("json_encode_failed", "error", err)
	}
}
