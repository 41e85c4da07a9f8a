package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gofrs/uuid/v5"
)

// RequestID tags every request with a UUIDv4, or keeps the caller's
// X-Request-Id, and echoes it on the response. The id is stored under chi's
// middleware.RequestIDKey so middleware.GetReqID keeps working.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			if u, err := uuid.NewV4(); err == nil {
				id = u.String()
			}
		}
		if id != "" {
			w.Header().Set(middleware.RequestIDHeader, id)
			r = r.WithContext(context.WithValue(r.Context(), middleware.RequestIDKey, id))
		}
		next.ServeHTTP(w, r)
	})
}
