package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "finance_core_"

	resultSuccess = "success"
	resultError   = "error"
)

// Exported result labels for callers.
const (
	ResultSuccess    = resultSuccess
	ResultError      = resultError
	ResultIdempotent = "idempotent"
	ResultRejected   = "rejected"
	ResultBalanced   = "balanced"
	ResultForced     = "forced"
	ResultImbalanced = "imbalanced"
	ResultDelivered  = "delivered"
	ResultRetried    = "retried"
	ResultDropped    = "dead_lettered"
	ResultRedriven   = "redriven"
)

var (
	registerOnce sync.Once

	draftSubmissions *prometheus.CounterVec

	postingsTotal   *prometheus.CounterVec
	postingDuration *prometheus.HistogramVec
	reversalsTotal  *prometheus.CounterVec

	reconciliationCompletions *prometheus.CounterVec
	reportExports             *prometheus.CounterVec

	periodTransitions *prometheus.CounterVec

	auditEvents      *prometheus.CounterVec
	auditDeadLetters prometheus.Gauge
)

// Init registers the service metrics with the default registerer. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		draftSubmissions = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "draft_submissions_total",
				Help: "Total submitted drafts by resulting transaction set status",
			},
			[]string{"status"},
		)

		postingsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "postings_total",
				Help: "Total posting attempts by result",
			},
			[]string{"result"},
		)
		postingDuration = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "posting_duration_seconds",
				Help:    "Posting latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		reversalsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reversals_total",
				Help: "Total journal entry reversals by result",
			},
			[]string{"result"},
		)

		reconciliationCompletions = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reconciliation_completions_total",
				Help: "Total reconciliation completion attempts by result",
			},
			[]string{"result"},
		)
		reportExports = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_exports_total",
				Help: "Total reconciliation report exports by format and result",
			},
			[]string{"format", "result"},
		)

		periodTransitions = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "period_transitions_total",
				Help: "Total accounting period status transitions by target status",
			},
			[]string{"status"},
		)

		auditEvents = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "audit_events_total",
				Help: "Total audit event deliveries by result",
			},
			[]string{"result"},
		)
		auditDeadLetters = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "audit_dead_letters",
				Help: "Audit events waiting in the dead-letter store",
			},
		)

		prometheus.MustRegister(
			draftSubmissions,
			postingsTotal,
			postingDuration,
			reversalsTotal,
			reconciliationCompletions,
			reportExports,
			periodTransitions,
			auditEvents,
			auditDeadLetters,
		)
	})
}

// IncDraftSubmission counts a submitted draft by its resulting status.
func IncDraftSubmission(status string) {
	if status == "" {
		status = "unknown"
	}
	if draftSubmissions != nil {
		draftSubmissions.WithLabelValues(status).Inc()
	}
}

// ObservePosting records posting duration and result.
func ObservePosting(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if postingsTotal != nil {
		postingsTotal.WithLabelValues(result).Inc()
	}
	if postingDuration != nil {
		postingDuration.WithLabelValues(result).Observe(duration.Seconds())
	}
}

func IncReversal(result string) {
	if result == "" {
		result = resultSuccess
	}
	if reversalsTotal != nil {
		reversalsTotal.WithLabelValues(result).Inc()
	}
}

// IncReconciliationCompletion counts a completion attempt.
func IncReconciliationCompletion(result string) {
	if result == "" {
		result = "unknown"
	}
	if reconciliationCompletions != nil {
		reconciliationCompletions.WithLabelValues(result).Inc()
	}
}

func IncReportExport(format, result string) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportExports != nil {
		reportExports.WithLabelValues(format, result).Inc()
	}
}

func IncPeriodTransition(status string) {
	if periodTransitions != nil {
		periodTransitions.WithLabelValues(status).Inc()
	}
}

// IncAuditEvent counts an audit delivery outcome.
func IncAuditEvent(result string) {
	if auditEvents != nil {
		auditEvents.WithLabelValues(result).Inc()
	}
}

// SetAuditDeadLetters sets the dead-letter backlog gauge.
func SetAuditDeadLetters(count int) {
	if count < 0 {
		count = 0
	}
	if auditDeadLetters != nil {
		auditDeadLetters.Set(float64(count))
	}
}
