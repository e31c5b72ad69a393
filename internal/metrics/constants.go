package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Case metric names
const (
	MetricNameCaseOpens               = "case_opens_total"
	MetricNameCaseOpenErrors          = "case_open_errors_total"
	MetricNameCaseOpenDuration        = "case_open_duration_seconds"
	MetricNameCaseDropBonus           = "case_drop_bonus_percent"
	MetricNameCaseDuplicateGuardLifts = "case_duplicate_guard_lifted_total"
	MetricNameCasesIssued             = "cases_issued_total"
	MetricNameLevelUps                = "level_ups_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Case metric help text
const (
	HelpTextCaseOpens               = "Total number of case open attempts by template and result"
	HelpTextCaseOpenErrors          = "Total number of failed case opens by error kind"
	HelpTextCaseOpenDuration        = "Case open latency in seconds, lock wait included"
	HelpTextCaseDropBonus           = "Drop bonus percent applied to successful opens"
	HelpTextCaseDuplicateGuardLifts = "Total number of draws where every candidate was already owned"
	HelpTextCasesIssued             = "Total number of cases issued by source"
	HelpTextLevelUps                = "Total number of level ups caused by case opens"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelTemplate = "template"
	LabelResult   = "result"
	LabelKind     = "kind"
	LabelSource   = "source"
)

// UnmatchedRoute labels requests no route matched, keeping scanners out of the path label
const UnmatchedRoute = "unmatched"

// Result label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// CaseOpenLatencyBuckets covers the lock wait ceiling of a few seconds.
var CaseOpenLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// BonusPercentBuckets spans level and achievement bonuses up to triple digits.
var BonusPercentBuckets = []float64{0, 1, 2, 5, 10, 15, 20, 30, 50, 75, 100}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded          = "Metrics recorded for event"
)
