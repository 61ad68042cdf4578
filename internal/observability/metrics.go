package observability

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// AuthEvents counts registration, login and logout outcomes.
	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barrique_auth_events_total",
		Help: "Authentication events by type and outcome",
	}, []string{"event", "outcome"})

	// OwnershipDenials counts requests refused because the caller does not own the resource.
	OwnershipDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barrique_ownership_denials_total",
		Help: "Requests denied by ownership checks, by resource kind",
	}, []string{"resource"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "barrique_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// RecordAuthEvent increments the auth event counter.
func RecordAuthEvent(event string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	AuthEvents.WithLabelValues(event, outcome).Inc()
}

// RecordOwnershipDenial increments the denial counter for a resource kind.
func RecordOwnershipDenial(resource string) {
	OwnershipDenials.WithLabelValues(resource).Inc()
}

const queryStartKey = "barrique:query_start"

// QueryMetricsPlugin is a GORM plugin that feeds DatabaseQueryLatency.
type QueryMetricsPlugin struct{}

// Name implements gorm.Plugin.
func (QueryMetricsPlugin) Name() string {
	return "barrique:query_metrics"
}

// Initialize registers before/after callbacks around every statement kind.
func (QueryMetricsPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("metrics:before_create", startQuery),
		cb.Create().After("gorm:create").Register("metrics:after_create", observeQuery("create")),
		cb.Query().Before("gorm:query").Register("metrics:before_query", startQuery),
		cb.Query().After("gorm:query").Register("metrics:after_query", observeQuery("query")),
		cb.Update().Before("gorm:update").Register("metrics:before_update", startQuery),
		cb.Update().After("gorm:update").Register("metrics:after_update", observeQuery("update")),
		cb.Delete().Before("gorm:delete").Register("metrics:before_delete", startQuery),
		cb.Delete().After("gorm:delete").Register("metrics:after_delete", observeQuery("delete")),
		cb.Row().Before("gorm:row").Register("metrics:before_row", startQuery),
		cb.Row().After("gorm:row").Register("metrics:after_row", observeQuery("row")),
		cb.Raw().Before("gorm:raw").Register("metrics:before_raw", startQuery),
		cb.Raw().After("gorm:raw").Register("metrics:after_raw", observeQuery("raw")),
	)
}

func startQuery(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func observeQuery(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		DatabaseQueryLatency.WithLabelValues(op, table).Observe(time.Since(start).Seconds())
	}
}
