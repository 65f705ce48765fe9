// Package metrics collects and exposes Prometheus metrics for the case
// services and the HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the slice of the collector the transport layer uses.
type Recorder interface {
	RecordAttendance(attendanceType string)
	RecordDispensation(outcome string)
	RecordMemberChange(change string)
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

type Collector struct {
	registry      *prometheus.Registry
	attendances   *prometheus.CounterVec
	dispensations *prometheus.CounterVec
	memberChanges *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		registry: reg,
		attendances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "social_care_attendances_total",
			Help: "Attendance records created, by type.",
		}, []string{"type"}),
		dispensations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "social_care_dispensations_total",
			Help: "Benefit dispensation workflow transitions, by outcome.",
		}, []string{"outcome"}),
		memberChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "social_care_family_member_changes_total",
			Help: "Family membership changes, by kind.",
		}, []string{"change"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "social_care_http_requests_total",
			Help: "HTTP requests, by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "social_care_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.attendances,
		c.dispensations,
		c.memberChanges,
		c.httpRequests,
		c.httpDuration,
	)

	return c
}

func (c *Collector) RecordAttendance(attendanceType string) {
	c.attendances.WithLabelValues(attendanceType).Inc()
}

func (c *Collector) RecordDispensation(outcome string) {
	c.dispensations.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordMemberChange(change string) {
	c.memberChanges.WithLabelValues(change).Inc()
}

func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler exposes the registry for the /metrics route.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// NoopRecorder is used when metrics are disabled.
type NoopRecorder struct{}

func (NoopRecorder) RecordAttendance(string)                              {}
func (NoopRecorder) RecordDispensation(string)                            {}
func (NoopRecorder) RecordMemberChange(string)                            {}
func (NoopRecorder) RecordHTTPRequest(string, string, int, time.Duration) {}
