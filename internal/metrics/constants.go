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

// Lottery metric names
const (
	MetricNameDrawsTotal           = "lottery_draws_total"
	MetricNameDrawRejections       = "lottery_draw_rejections_total"
	MetricNameWinnersTotal         = "lottery_winners_total"
	MetricNameEligibleParticipants = "lottery_eligible_participants"
	MetricNameLotteryErrors        = "lottery_errors_total"
	MetricNameSSEClients           = "lottery_sse_clients"
	MetricNameNotifications        = "lottery_notifications_total"
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

// Lottery metric help text
const (
	HelpTextDrawsTotal           = "Total number of accepted draws"
	HelpTextDrawRejections       = "Total number of rejected draw requests by reason"
	HelpTextWinnersTotal         = "Total number of winners selected"
	HelpTextEligibleParticipants = "Eligible participants at the most recent draw"
	HelpTextLotteryErrors        = "Total number of lottery error events by code"
	HelpTextSSEClients           = "Current number of connected display streams"
	HelpTextNotifications        = "Total number of winner notifications by outcome"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelReason  = "reason"
	LabelCode    = "code"
	LabelOutcome = "outcome"
	LabelSource  = "source"
)

// Draw rejection reasons
const (
	ReasonNoEligible     = "no_eligible_participants"
	ReasonDrawInProgress = "draw_in_progress"
	ReasonPersistence    = "persistence_failure"
)

// Notification outcomes
const (
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
)

// UnmatchedRoute labels requests that did not match a chi route
const UnmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadInvalid = "Event payload could not be decoded for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
