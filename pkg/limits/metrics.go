package limits

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus instrumentation for the admission engine.
// All Limiter call sites tolerate a nil *Metrics, so instrumentation is
// strictly opt-in.
type Metrics struct {
	grantsTotal  *prometheus.CounterVec
	denialsTotal *prometheus.CounterVec
	releaseTotal *prometheus.CounterVec
	floodsTotal  *prometheus.CounterVec

	inFlight prometheus.Gauge

	waitSeconds *prometheus.HistogramVec
}

// NewMetrics creates a Metrics instance registered against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		grantsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "telepace_limits_grants_total",
				Help: "Total admissions granted",
			},
			[]string{"method"},
		),

		denialsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "telepace_limits_denials_total",
				Help: "Total admissions denied",
			},
			[]string{"method", "reason"},
		),

		releaseTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "telepace_limits_releases_total",
				Help: "Total grants released, by call outcome",
			},
			[]string{"method", "outcome"},
		),

		floodsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "telepace_limits_flood_waits_total",
				Help: "Total FLOOD_WAIT signals observed from the platform",
			},
			[]string{"method"},
		),

		inFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "telepace_limits_in_flight_calls",
				Help: "Calls currently holding a concurrency slot",
			},
		),

		waitSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "telepace_limits_window_wait_seconds",
				Help:    "Time callers waited for a sliding window slot",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 14), // 10ms to ~80s
			},
			[]string{"window"},
		),
	}
}

func (m *Metrics) recordGrant(method string) {
	if m == nil {
		return
	}
	m.grantsTotal.WithLabelValues(method).Inc()
}

func (m *Metrics) recordDenial(method, reason string) {
	if m == nil {
		return
	}
	m.denialsTotal.WithLabelValues(method, reason).Inc()
}

func (m *Metrics) recordRelease(method string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.releaseTotal.WithLabelValues(method, outcome).Inc()
}

func (m *Metrics) recordFlood(method string) {
	if m == nil {
		return
	}
	m.floodsTotal.WithLabelValues(method).Inc()
}

func (m *Metrics) recordInFlight(delta int) {
	if m == nil {
		return
	}
	m.inFlight.Add(float64(delta))
}

func (m *Metrics) recordWait(windowName string, wait time.Duration) {
	if m == nil {
		return
	}
	m.waitSeconds.WithLabelValues(windowName).Observe(wait.Seconds())
}
