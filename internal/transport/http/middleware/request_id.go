package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"talentos/internal/platform/requestctx"
)

type ctxKey int

const (
	ctxKeyUser ctxKey = iota
)

// RequestID accepts a caller-supplied X-Request-ID or generates one, storing
// it on the context and echoing it back in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := requestctx.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
