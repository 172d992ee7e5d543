package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vistapra/content-hub-go/internal/apperrors"
)

// Object type identifiers carried in the "object" field of every resource.
const (
	ObjectScreen   = "screen"
	ObjectSettings = "settings"
	ObjectUpload   = "upload"
)

// ListResponse is the list envelope for all collection endpoints.
// Example: {"object": "list", "data": [...], "url": "/v1/screens"}
type ListResponse struct {
	Object string `json:"object"` // Always "list"
	Data   any    `json:"data"`
	URL    string `json:"url"`
}

// ErrorResponse wraps errors for the wire.
type ErrorResponse struct {
	Error apperrors.ErrorBody `json:"error"`
}

// WriteJSON sends a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// WriteError serializes an AppError into the error envelope.
// Response format: {"error": {"type": "...", "code": "...", "message": "..."}}
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.EnsureAppError(err)

	response := ErrorResponse{
		Error: appErr.Body(),
	}

	_ = WriteJSON(w, appErr.StatusCode, response)
}

// WriteList writes a list response.
// Example: WriteList(w, "/v1/screens", screens)
func WriteList(w http.ResponseWriter, url string, data any) error {
	return WriteJSON(w, http.StatusOK, ListResponse{
		Object: "list",
		Data:   data,
		URL:    url,
	})
}

// WriteResource writes a single resource directly (no wrapper).
// The resource should already have an "object" field set.
func WriteResource(w http.ResponseWriter, status int, resource any) error {
	return WriteJSON(w, status, resource)
}

// RFC3339Millis formats a timestamp the way every response field does.
func RFC3339Millis(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
