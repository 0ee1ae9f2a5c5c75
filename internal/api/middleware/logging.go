// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"time"

	xglog "github.com/ManuGH/tailcfg/internal/log"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Logging logs one line per request and stores the chi request id in the
// request context for downstream loggers.
func Logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()
			if rid := chimw.GetReqID(ctx); rid != "" {
				ctx = xglog.ContextWithRequestID(ctx, rid)
			}
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			l := xglog.WithContext(ctx, logger)
			l.Debug().
				Str(xglog.FieldEvent, "http.request").
				Str("method", r.Method).
				Str(xglog.FieldPath, r.URL.Path).
				Int("status", ww.Status()).
				Dur(xglog.FieldDuration, time.Since(start)).
				Msg("request handled")
		})
	}
}
