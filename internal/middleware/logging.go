package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// Logging writes one structured line per request, correlated with the
// request ID when RequestID runs earlier in the chain.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		evt := log.Info()
		if rw.status >= http.StatusInternalServerError {
			evt = log.Error()
		}
		logRequest(evt, r, rw, time.Since(start))
	})
}

func logRequest(evt *zerolog.Event, r *http.Request, rw *responseWriter, d time.Duration) {
	evt.
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", rw.status).
		Int("size", rw.size).
		Dur("duration", d).
		Str("remote_addr", r.RemoteAddr)
	if id := GetRequestID(r.Context()); id != "" {
		evt.Str("request_id", id)
	}
	evt.Msg("request")
}
