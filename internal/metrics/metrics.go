package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Case Metrics
var (
	CaseOpensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCaseOpens,
			Help: HelpTextCaseOpens,
		},
		[]string{LabelTemplate, LabelResult},
	)

	CaseOpenErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCaseOpenErrors,
			Help: HelpTextCaseOpenErrors,
		},
		[]string{LabelKind},
	)

	CaseOpenDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameCaseOpenDuration,
			Help:    HelpTextCaseOpenDuration,
			Buckets: CaseOpenLatencyBuckets,
		},
	)

	CaseDropBonusPercent = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameCaseDropBonus,
			Help:    HelpTextCaseDropBonus,
			Buckets: BonusPercentBuckets,
		},
	)

	CaseDuplicateGuardLifted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCaseDuplicateGuardLifts,
			Help: HelpTextCaseDuplicateGuardLifts,
		},
	)

	CasesIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCasesIssued,
			Help: HelpTextCasesIssued,
		},
		[]string{LabelSource},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)
)
