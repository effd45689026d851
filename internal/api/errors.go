package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/easykanban/easykanban/internal/apperr"
)

// maxBodySize is the maximum allowed request body size (1 MB).
const maxBodySize = 1 << 20

// errorBody is the standard error response shape.
type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// writeError renders err as {message, status}. Errors outside the apperr
// taxonomy become a logged 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := apperr.As(err)
	if !ok || e.Kind == apperr.KindStorage {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: "Internal server error", Status: http.StatusInternalServerError})
		return
	}
	writeJSON(w, e.Status, errorBody{Message: e.Message, Status: e.Status})
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeMessage writes {"message": msg} plus any extra fields.
func writeMessage(w http.ResponseWriter, statusCode int, msg string, extra ...any) {
	body := map[string]any{"message": msg}
	for i := 0; i+1 < len(extra); i += 2 {
		if k, ok := extra[i].(string); ok {
			body[k] = extra[i+1]
		}
	}
	writeJSON(w, statusCode, body)
}

// readJSON decodes the request body into v, enforcing a size limit.
func readJSON(r *http.Request, v any) error {
	lr := io.LimitReader(r.Body, maxBodySize)
	if err := json.NewDecoder(lr).Decode(v); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Invalid id")
	}
	return id, nil
}

// queryLimit parses the optional ?limit= parameter. Anything unparsable is 0.
func queryLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
