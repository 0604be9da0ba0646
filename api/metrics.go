package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics はサーバーごとのPrometheusレジストリとコレクターです。
type metrics struct {
	registry       *prometheus.Registry
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	authRejections prometheus.Counter
	rateLimited    prometheus.Counter
	fetchFailures  prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kusa_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"pattern", "method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kusa_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"pattern", "method"},
		),
		authRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kusa_auth_rejections_total",
			Help: "Total number of requests rejected for a missing or invalid API key",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kusa_rate_limited_total",
			Help: "Total number of graph requests rejected by the rate limiter",
		}),
		fetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kusa_contribution_fetch_failures_total",
			Help: "Total number of graphs rendered without contribution data",
		}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.authRejections, m.rateLimited, m.fetchFailures)
	return m
}

// handler は /metrics のハンドラーを返します。
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// middleware はリクエスト数と処理時間を記録します。
// ラベルにはURLではなくマッチしたルートパターンを使います。
func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// WriteHeader が明示的に呼ばれない場合に備えて200で初期化
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)

		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		m.requests.WithLabelValues(pattern, r.Method, strconv.Itoa(ww.statusCode)).Inc()
		m.duration.WithLabelValues(pattern, r.Method).Observe(time.Since(start).Seconds())
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
