package middleware

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-Id"

// Logger registra cada requisição com request id, método, rota, status e latência.
func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rid := r.Header.Get(RequestIDHeader)
			if rid == "" {
				rid = fmt.Sprintf("req_%d_%d", time.Now().UnixNano(), rand.Intn(100000))
			}
			w.Header().Set(RequestIDHeader, rid)

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			l.Info().
				Str("request_id", rid).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.statusCode).
				Dur("latency", time.Since(start)).
				Msg("request")
		})
	}
}
