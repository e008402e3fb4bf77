// Package accesslog provides an HTTP middleware logging every request
// with its resolution status and duration.
package accesslog

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sercandadas/haliyol-marketplace-service/pkg/logger"
)

// Handler returns a middleware that logs every incoming request.
func Handler(logger logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.With(r.Context(),
				"method", r.Method,
				"uri", r.RequestURI,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
				"remote", r.RemoteAddr,
			).Infof("%s %s %d", r.Method, r.RequestURI, ww.Status())
		}
		return http.HandlerFunc(f)
	}
}
