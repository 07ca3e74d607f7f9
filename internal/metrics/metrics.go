package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScansTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roadwatch_scans_total",
		Help: "Total number of completed matching scans",
	})
	ScanDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roadwatch_scan_duration_ms",
		Help:    "Scan duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roadwatch_notifications_total",
		Help: "Total scan-path notifications emitted, by region",
	}, []string{"region"})
	NotifyFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roadwatch_notify_failures_total",
		Help: "Total notification publishes that failed",
	})
	PushDeliveriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roadwatch_push_deliveries_total",
		Help: "Total push-path deliveries for user-submitted incidents",
	})
	IncidentsIngestedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roadwatch_incidents_ingested_total",
		Help: "Total incidents accepted into the region catalog, by region",
	}, []string{"region"})
	SnapshotSkipsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roadwatch_snapshot_skips_total",
		Help: "Total snapshot entries dropped for naming an unknown region",
	})
	ConnectedUsers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roadwatch_connected_users",
		Help: "Number of currently connected users",
	})
)

func init() {
	prometheus.MustRegister(
		ScansTotal,
		ScanDurationMs,
		NotificationsTotal,
		NotifyFailuresTotal,
		PushDeliveriesTotal,
		IncidentsIngestedTotal,
		SnapshotSkipsTotal,
		ConnectedUsers,
	)
}

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
