package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and route
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tournament_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tournament_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tournament_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method"},
	)

	// SchedulesGenerated counts generated schedules by competition format
	SchedulesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tournament_schedules_generated_total",
			Help: "Total number of generated schedules",
		},
		[]string{"format"},
	)

	// MatchesFinalized counts finalized matches by outcome
	MatchesFinalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tournament_matches_finalized_total",
			Help: "Total number of finalized matches",
		},
		[]string{"outcome"},
	)

	// ByesResolved counts bye matches whose participant advanced without playing
	ByesResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tournament_byes_resolved_total",
			Help: "Total number of resolved byes",
		},
	)

	// LedgerOperations counts scoring and card ledger writes
	LedgerOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tournament_ledger_operations_total",
			Help: "Total number of ledger operations",
		},
		[]string{"entry", "operation"}, // entry: event|card, operation: record|reverse
	)

	// AchievementsUnlocked counts unlocked achievements by id
	AchievementsUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tournament_achievements_unlocked_total",
			Help: "Total number of unlocked achievements",
		},
		[]string{"achievement"},
	)

	// AchievementsRevoked counts achievements removed by a ledger reversal
	AchievementsRevoked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tournament_achievements_revoked_total",
			Help: "Total number of revoked achievements",
		},
		[]string{"achievement"},
	)

	// SnapshotExports counts standings snapshot uploads by result
	SnapshotExports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tournament_snapshot_exports_total",
			Help: "Total number of standings snapshot exports",
		},
		[]string{"result"},
	)

	// WebsocketClients tracks connected websocket clients
	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tournament_websocket_clients",
			Help: "Number of connected websocket clients",
		},
	)
)

// RecordAchievements increments the unlock counter for each id.
func RecordAchievements(ids []string) {
	for _, id := range ids {
		AchievementsUnlocked.WithLabelValues(id).Inc()
	}
}
