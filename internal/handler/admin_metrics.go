package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/osse101/WeddingBot_Go/internal/metrics"
	"github.com/osse101/WeddingBot_Go/internal/sse"
)

// AdminMetricsResponse contains JSON-formatted metrics for the admin dashboard
type AdminMetricsResponse struct {
	HTTP     HTTPMetrics     `json:"http"`
	Events   EventMetrics    `json:"events"`
	Lottery  LotteryMetrics  `json:"lottery"`
	SSE      SSEMetrics      `json:"sse"`
}

type HTTPMetrics struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

type EventMetrics struct {
	PublishedTotalByType map[string]float64 `json:"published_total_by_type"`
	HandlerErrorsByType  map[string]float64 `json:"handler_errors_by_type"`
}

type LotteryMetrics struct {
	Draws                float64            `json:"draws"`
	Winners              float64            `json:"winners"`
	EligibleParticipants float64            `json:"eligible_participants"`
	RejectionsByReason   map[string]float64 `json:"rejections_by_reason"`
	NotificationsByState map[string]float64 `json:"notifications_by_outcome"`
}

type SSEMetrics struct {
	ClientCount int `json:"client_count"`
}

// AdminMetricsHandler handles admin metrics requests
type AdminMetricsHandler struct {
	sseHub *sse.Hub
}

// NewAdminMetricsHandler creates a new admin metrics handler
func NewAdminMetricsHandler(sseHub *sse.Hub) *AdminMetricsHandler {
	return &AdminMetricsHandler{sseHub: sseHub}
}

// HandleGetMetrics returns JSON-formatted metrics from Prometheus
// @Summary Dashboard metrics
// @Tags admin
// @Produce json
// @Success 200 {object} AdminMetricsResponse
// @Router /api/v1/admin/metrics [get]
func (h *AdminMetricsHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	resp, err := gatherMetrics()
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrMsgGatherMetrics)
		return
	}

	resp.SSE.ClientCount = h.sseHub.ClientCount()

	respondJSON(w, http.StatusOK, resp)
}

func gatherMetrics() (*AdminMetricsResponse, error) {
	metricFamilies, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, err
	}

	resp := &AdminMetricsResponse{
		HTTP: HTTPMetrics{
			RequestsTotalByStatus: make(map[string]float64),
		},
		Events: EventMetrics{
			PublishedTotalByType: make(map[string]float64),
			HandlerErrorsByType:  make(map[string]float64),
		},
		Lottery: LotteryMetrics{
			RejectionsByReason:   make(map[string]float64),
			NotificationsByState: make(map[string]float64),
		},
	}

	for _, mf := range metricFamilies {
		switch mf.GetName() {
		case metrics.MetricNameHTTPRequestsTotal:
			for _, m := range mf.GetMetric() {
				status := getLabelValue(m, metrics.LabelStatus)
				if status != "" {
					resp.HTTP.RequestsTotalByStatus[status] += m.GetCounter().GetValue()
				}
			}
		case metrics.MetricNameHTTPRequestDuration:
			// Calculate avg and p95 from histogram
			for _, m := range mf.GetMetric() {
				hist := m.GetHistogram()
				if hist != nil {
					// Average latency
					if hist.GetSampleCount() > 0 {
						resp.HTTP.AvgLatencyMs = (hist.GetSampleSum() / float64(hist.GetSampleCount())) * 1000
					}
					// P95 approximation from buckets
					resp.HTTP.P95LatencyMs = estimateQuantile(hist, 0.95) * 1000
				}
			}
		case metrics.MetricNameHTTPRequestsInFlight:
			for _, m := range mf.GetMetric() {
				resp.HTTP.InFlight += m.GetGauge().GetValue()
			}
		case metrics.MetricNameEventsPublished:
			for _, m := range mf.GetMetric() {
				eventType := getLabelValue(m, metrics.LabelType)
				if eventType != "" {
					resp.Events.PublishedTotalByType[eventType] += m.GetCounter().GetValue()
				}
			}
		case metrics.MetricNameEventHandlerErrors:
			for _, m := range mf.GetMetric() {
				eventType := getLabelValue(m, metrics.LabelType)
				if eventType != "" {
					resp.Events.HandlerErrorsByType[eventType] += m.GetCounter().GetValue()
				}
			}
		case metrics.MetricNameDrawsTotal:
			for _, m := range mf.GetMetric() {
				resp.Lottery.Draws += m.GetCounter().GetValue()
			}
		case metrics.MetricNameWinnersTotal:
			for _, m := range mf.GetMetric() {
				resp.Lottery.Winners += m.GetCounter().GetValue()
			}
		case metrics.MetricNameEligibleParticipants:
			for _, m := range mf.GetMetric() {
				resp.Lottery.EligibleParticipants = m.GetGauge().GetValue()
			}
		case metrics.MetricNameDrawRejections:
			for _, m := range mf.GetMetric() {
				if reason := getLabelValue(m, metrics.LabelReason); reason != "" {
					resp.Lottery.RejectionsByReason[reason] += m.GetCounter().GetValue()
				}
			}
		case metrics.MetricNameNotifications:
			for _, m := range mf.GetMetric() {
				if outcome := getLabelValue(m, metrics.LabelOutcome); outcome != "" {
					resp.Lottery.NotificationsByState[outcome] += m.GetCounter().GetValue()
				}
			}
		}
	}

	return resp, nil
}

func getLabelValue(m *dto.Metric, labelName string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == labelName {
			return label.GetValue()
		}
	}
	return ""
}

// estimateQuantile approximates the given quantile from a histogram
func estimateQuantile(hist *dto.Histogram, quantile float64) float64 {
	totalCount := hist.GetSampleCount()
	if totalCount == 0 {
		return 0
	}

	targetCount := float64(totalCount) * quantile
	var cumulativeCount uint64

	buckets := hist.GetBucket()
	for _, bucket := range buckets {
		cumulativeCount = bucket.GetCumulativeCount()
		if float64(cumulativeCount) >= targetCount {
			return bucket.GetUpperBound()
		}
	}

	// If we reach here, return the last bucket's upper bound
	if len(buckets) > 0 {
		return buckets[len(buckets)-1].GetUpperBound()
	}
	return 0
}
