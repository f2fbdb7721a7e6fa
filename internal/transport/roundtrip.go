package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// RequestIDHeader is the header used to correlate client and server logs.
	RequestIDHeader = "X-Request-ID"
)

type ctxKey int

const operationKey ctxKey = iota

// withOperation stores the logical operation name so the round-trippers can
// label logs and metrics without exploding cardinality on raw paths.
func withOperation(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operationKey, name)
}

func operationFrom(ctx context.Context) string {
	if name, ok := ctx.Value(operationKey).(string); ok {
		return name
	}
	return "unknown"
}

// requestIDTransport ensures every outbound request carries an X-Request-ID,
// generating a UUID when the caller did not set one.
type requestIDTransport struct {
	next http.RoundTripper
}

func newRequestIDTransport(next http.RoundTripper) http.RoundTripper {
	return &requestIDTransport{next: next}
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return t.next.RoundTrip(req)
}

// loggingTransport writes one JSON object per request to stdout.
// Fields: request_id, operation, method, status, latency (ms).
type loggingTransport struct {
	next http.RoundTripper
	mu   sync.Mutex
	enc  *json.Encoder
}

func newLoggingTransport(next http.RoundTripper) http.RoundTripper {
	return &loggingTransport{next: next, enc: json.NewEncoder(os.Stdout)}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	t.mu.Lock()
	_ = t.enc.Encode(map[string]any{
		"request_id": req.Header.Get(RequestIDHeader),
		"operation":  operationFrom(req.Context()),
		"method":     req.Method,
		"status":     status,
		"latency":    float64(time.Since(start).Milliseconds()),
	})
	t.mu.Unlock()

	return resp, err
}

// Metrics holds the prometheus collectors for outbound requests.
type Metrics struct {
	requestCount *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// NewMetrics registers the client request collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartdoc_client_requests_total",
				Help: "Total number of API requests issued by the client.",
			},
			[]string{"operation", "method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "smartdoc_client_request_duration_seconds",
				Help:    "Latency of API requests issued by the client.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
	if err := reg.Register(m.requestCount); err != nil {
		return nil, err
	}
	if err := reg.Register(m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

var (
	defaultMetricsOnce sync.Once
	defaultMetricsInst *Metrics
)

// defaultMetrics lazily registers collectors on the default registry exactly
// once, so multiple Clients in one process share them.
func defaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		m, err := NewMetrics(prometheus.DefaultRegisterer)
		if err != nil {
			// Registration can only fail on duplicate collectors; run without
			// metrics rather than refusing to start.
			m = nil
		}
		defaultMetricsInst = m
	})
	return defaultMetricsInst
}

// metricsTransport records a counter and a latency observation per request.
// Network failures are counted under status "error".
type metricsTransport struct {
	next    http.RoundTripper
	metrics *Metrics
}

func newMetricsTransport(next http.RoundTripper, m *Metrics) http.RoundTripper {
	if m == nil {
		return next
	}
	return &metricsTransport{next: next, metrics: m}
}

func (t *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	op := operationFrom(req.Context())
	status := "error"
	if resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	t.metrics.requestCount.WithLabelValues(op, req.Method, status).Inc()
	t.metrics.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	return resp, err
}
