package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Prom struct {
	gatherer prometheus.Gatherer

	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// Outbound calls to the banking backend
	BackendDuration *prometheus.HistogramVec
	BackendResults  *prometheus.CounterVec

	// Session store
	StoreDuration *prometheus.HistogramVec
	StoreErrors   *prometheus.CounterVec

	SessionEvents *prometheus.CounterVec
}

func NewProm(reg *prometheus.Registry) *Prom {
	p := &Prom{
		gatherer: reg,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bankportal",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "bankportal",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "bankportal",
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		BackendDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "bankportal",
				Subsystem: "backend",
				Name:      "request_duration_seconds",
				Help:      "Banking backend call latency by logical operation",
				Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 15},
			},
			[]string{"op", "class"},
		),
		BackendResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bankportal",
				Subsystem: "backend",
				Name:      "results_total",
				Help:      "Banking backend call outcomes by operation and status class.",
			},
			[]string{"op", "class"}, // class=2xx|401|4xx|5xx|transport
		),
		StoreDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "bankportal",
				Subsystem: "session_store",
				Name:      "op_duration_seconds",
				Help:      "Session store operation latency",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"backend", "op", "status"},
		),
		StoreErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bankportal",
				Subsystem: "session_store",
				Name:      "errors_total",
				Help:      "Session store errors by backend, op and class.",
			},
			[]string{"backend", "op", "class"},
		),
		SessionEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bankportal",
				Subsystem: "session",
				Name:      "events_total",
				Help:      "Session lifecycle events (logged_in, logged_out, invalidated).",
			},
			[]string{"kind"},
		),
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.InFlight, p.BackendDuration, p.BackendResults, p.StoreDuration, p.StoreErrors, p.SessionEvents)

	return p
}

func (p *Prom) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		// route template is only available after routing; best effort:
		route := ctx.FullPath()

		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		secs := time.Since(start).Seconds()

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(secs)
	}
}

// ObserveBackend records one outbound call. class is produced by the API
// client from the response status.
func (p *Prom) ObserveBackend(op, class string, d time.Duration) {
	p.BackendResults.WithLabelValues(op, class).Inc()
	p.BackendDuration.WithLabelValues(op, class).Observe(d.Seconds())
}

func (p *Prom) IncSessionEvent(kind string) {
	p.SessionEvents.WithLabelValues(kind).Inc()
}
