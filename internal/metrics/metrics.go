package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// StudentsStored is the number of student records currently held in memory.
	StudentsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "students_stored",
			Help: "Number of student records currently stored",
		},
	)

	// LoginAttempts counts login attempts by result (success, failure).
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/-?[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, StudentsStored, LoginAttempts)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /students/123 -> /students/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// SetStudentsStored sets the stored students gauge.
func SetStudentsStored(n int) {
	StudentsStored.Set(float64(n))
}

// IncLoginAttempt increments the login counter; ok selects the "success" or "failure" label.
func IncLoginAttempt(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	LoginAttempts.WithLabelValues(result).Inc()
}
