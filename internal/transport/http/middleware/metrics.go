package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dealhunt/engagement-service/internal/metrics"
)

// Metrics пишет prometheus-метрики запросов. Маршрут берётся из
// chi-шаблона (после маршрутизации), чтобы не взрывать кардинальность
// лейблов реальными id из пути.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metrics.InFlight.Inc()
			defer metrics.InFlight.Dec()

			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)
			dur := time.Since(start)

			route := "unknown"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}

			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}

			metrics.RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
			metrics.ReqDuration.WithLabelValues(route, r.Method).Observe(dur.Seconds())
		})
	}
}
