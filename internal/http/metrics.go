package httpx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

var histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2}

func (r *Router) initMetrics() {
	r.metricsOnce.Do(func() {
		r.requestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostrix",
			Subsystem: "dashboard",
			Name:      "http_requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"})

		r.requestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hostrix",
			Subsystem: "dashboard",
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution of page handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"})

		r.rateLimitHits = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostrix",
			Subsystem: "dashboard",
			Name:      "rate_limit_hits_total",
			Help:      "Number of rate-limited form submissions",
		}, []string{"route"})

		r.formSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostrix",
			Subsystem: "dashboard",
			Name:      "form_submissions_total",
			Help:      "Number of accepted form submissions",
		}, []string{"form"})

		r.requestTotal = registerCounter(r.requestTotal)
		r.rateLimitHits = registerCounter(r.rateLimitHits)
		r.formSubmissions = registerCounter(r.formSubmissions)
		if err := prometheus.Register(r.requestLatency); err != nil {
			if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
				if existing, ok := already.ExistingCollector.(*prometheus.HistogramVec); ok {
					r.requestLatency = existing
				}
			}
		}
		r.metricsInitialized = true
	})
}

// registerCounter registers c, or returns the collector already registered
// under the same name so several routers can share one process.
func registerCounter(c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return c
}

func (r *Router) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !r.metricsInitialized {
			next.ServeHTTP(w, req)
			return
		}
		// Unmatched paths share one label to keep cardinality bounded.
		route := "unmatched"
		if current := mux.CurrentRoute(req); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		recorder := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(recorder, req)
		status := recorder.status
		if status == 0 {
			status = http.StatusOK
		}
		r.recordRequest(req.Method, route, status, time.Since(start))
	})
}

func (r *Router) recordRequest(method, route string, status int, duration time.Duration) {
	if !r.metricsInitialized {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	r.requestTotal.With(labels).Inc()
	r.requestLatency.With(labels).Observe(duration.Seconds())
}

func (r *Router) recordRateLimitHit(route string) {
	if !r.metricsInitialized {
		return
	}
	r.rateLimitHits.With(prometheus.Labels{"route": route}).Inc()
}

func (r *Router) recordFormSubmission(form string) {
	if !r.metricsInitialized {
		return
	}
	r.formSubmissions.With(prometheus.Labels{"form": form}).Inc()
}
