package api

import (
	"context"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/vistapra/content-hub-go/internal/apperrors"
)

// Handler is an http.Handler whose body returns an error instead of
// writing error responses itself. A returned error goes through the
// standard error envelope; anything that is not an AppError becomes a
// generic 500.
type Handler func(w http.ResponseWriter, r *http.Request) error

func (handle Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := handle(w, r); err != nil {
		WriteError(w, r, err)
	}
}

// RecovererMiddleware turns a handler panic into a logged 500 response
// instead of a dropped connection.
func RecovererMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				log.Printf("panic on %s %s [%s]: %v", r.Method, r.URL.Path, RequestID(r), recovered)
				WriteError(w, r, apperrors.NewInternalError("Internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type requestIDKey struct{}

// RequestIDMiddleware tags each request with an id, honoring one the
// caller already sent, and echoes it back in the response header so
// client and server logs line up.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("x-request-id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("x-request-id", id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID returns the id assigned to this request, or "" outside the
// middleware.
func RequestID(r *http.Request) string {
	if r == nil {
		return ""
	}
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}
