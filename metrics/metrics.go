package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clients_api_db_queries_total",
		Help: "Statements executed, by kind (read/write) and status",
	}, []string{"kind", "status"})

	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clients_api_db_query_duration_seconds",
		Help:    "Statement latency including connection setup",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	AuditFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clients_api_audit_failures_total",
		Help: "Audit records that could not be written",
	}, []string{"action"})

	TokenAcquisitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clients_api_token_acquisitions_total",
		Help: "Database access token requests, by status",
	}, []string{"status"})
)
