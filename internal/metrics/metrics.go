package metrics

import (
	"sync"

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
		[]string{LabelType, LabelSource},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Lottery Metrics
var (
	DrawsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDrawsTotal,
			Help: HelpTextDrawsTotal,
		},
	)

	DrawRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDrawRejections,
			Help: HelpTextDrawRejections,
		},
		[]string{LabelReason},
	)

	WinnersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWinnersTotal,
			Help: HelpTextWinnersTotal,
		},
	)

	EligibleParticipants = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameEligibleParticipants,
			Help: HelpTextEligibleParticipants,
		},
	)

	LotteryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLotteryErrors,
			Help: HelpTextLotteryErrors,
		},
		[]string{LabelCode},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotifications,
			Help: HelpTextNotifications,
		},
		[]string{LabelOutcome},
	)
)

var sseGaugeOnce sync.Once

// RegisterSSEClientGauge exposes the live SSE client count. Only the first
// call registers; later calls are ignored so tests can build several servers.
func RegisterSSEClientGauge(count func() int) {
	sseGaugeOnce.Do(func() {
		promauto.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: MetricNameSSEClients,
				Help: HelpTextSSEClients,
			},
			func() float64 { return float64(count()) },
		)
	})
}
