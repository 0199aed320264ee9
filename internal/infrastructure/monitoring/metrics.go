package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Scheduler metrics
	StepsTotal    *prometheus.CounterVec
	StepDuration  *prometheus.HistogramVec
	FaultsTotal   *prometheus.CounterVec
	SwitchesTotal *prometheus.CounterVec
	AppsStarted   *prometheus.CounterVec

	// Watchdog metrics
	WatchdogFeeds prometheus.Counter

	// Memory metrics
	MemoryFree      prometheus.Gauge
	MemoryAllocated prometheus.Gauge
	Reclaims        prometheus.Counter

	// Debug server metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalSteps    uint64 `json:"total_steps"`
	TotalFaults   uint64 `json:"total_faults"`
	TotalSwitches uint64 `json:"total_switches"`
	WatchdogFeeds uint64 `json:"watchdog_feeds"`
	MemoryFree    uint64 `json:"memory_free"`
	CurrentApp    string `json:"current_app"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// NewMetrics creates a metrics collector registered on reg. Passing a
// fresh prometheus.NewRegistry() keeps tests from colliding on the
// default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		StepsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slimeos_app_steps_total",
				Help: "Total number of app steps executed",
			},
			[]string{"app"},
		),
		StepDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "slimeos_app_step_duration_seconds",
				Help:    "Duration of a single app step in seconds",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"app"},
		),
		FaultsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slimeos_app_faults_total",
				Help: "Total number of app faults caught at the step boundary",
			},
			[]string{"app"},
		),
		SwitchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slimeos_app_switches_total",
				Help: "Total number of app transitions by reason",
			},
			[]string{"reason"},
		),
		AppsStarted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slimeos_apps_started_total",
				Help: "Total number of app instances created",
			},
			[]string{"app"},
		),

		WatchdogFeeds: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "slimeos_watchdog_feeds_total",
				Help: "Total number of watchdog feeds",
			},
		),

		MemoryFree: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "slimeos_memory_free_bytes",
				Help: "Estimated free heap after the last reclamation",
			},
		),
		MemoryAllocated: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "slimeos_memory_allocated_bytes",
				Help: "Heap in use after the last reclamation",
			},
		),
		Reclaims: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "slimeos_memory_reclaims_total",
				Help: "Total number of forced reclamation passes",
			},
		),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slimeos_debug_http_requests_total",
				Help: "Total number of debug server requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "slimeos_debug_http_request_duration_seconds",
				Help:    "Debug server request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),

		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "slimeos_uptime_seconds",
				Help: "Kernel uptime in seconds",
			},
		),
	}

	return m
}

// RecordStep records one app step
func (m *Metrics) RecordStep(appID string, duration time.Duration) {
	if m == nil {
		return
	}
	m.StepsTotal.WithLabelValues(appID).Inc()
	m.StepDuration.WithLabelValues(appID).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalSteps++
	m.mu.Unlock()
	m.updateUptime()
}

// RecordFault records an app fault
func (m *Metrics) RecordFault(appID string) {
	if m == nil {
		return
	}
	m.FaultsTotal.WithLabelValues(appID).Inc()

	m.mu.Lock()
	m.snapshot.TotalFaults++
	m.mu.Unlock()
}

// RecordSwitch records an app transition
func (m *Metrics) RecordSwitch(reason string) {
	if m == nil {
		return
	}
	m.SwitchesTotal.WithLabelValues(reason).Inc()

	m.mu.Lock()
	m.snapshot.TotalSwitches++
	m.mu.Unlock()
}

// RecordAppStart records a new app instance
func (m *Metrics) RecordAppStart(appID string) {
	if m == nil {
		return
	}
	m.AppsStarted.WithLabelValues(appID).Inc()

	m.mu.Lock()
	m.snapshot.CurrentApp = appID
	m.mu.Unlock()
}

// IncWatchdogFeeds increments the watchdog feed counter
func (m *Metrics) IncWatchdogFeeds() {
	if m == nil {
		return
	}
	m.WatchdogFeeds.Inc()

	m.mu.Lock()
	m.snapshot.WatchdogFeeds++
	m.mu.Unlock()
}

// RecordReclaim records a reclamation pass and the resulting estimate
func (m *Metrics) RecordReclaim(free, allocated uint64) {
	if m == nil {
		return
	}
	m.Reclaims.Inc()
	m.MemoryFree.Set(float64(free))
	m.MemoryAllocated.Set(float64(allocated))

	m.mu.Lock()
	m.snapshot.MemoryFree = free
	m.mu.Unlock()
}

// RecordHTTPRequest records a debug server request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Snapshot returns the current values for the JSON API
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	s.UptimeSeconds = int64(time.Since(m.startTime).Seconds())
	return s
}

func (m *Metrics) updateUptime() {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}
