package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "promotions"

// PromotionMetrics records evaluation outcomes and snapshot cache behaviour.
type PromotionMetrics struct {
	evaluations     *prometheus.CounterVec
	exclusions      *prometheus.CounterVec
	refreshes       *prometheus.CounterVec
	lookups         *prometheus.CounterVec
	refreshDuration *prometheus.HistogramVec
}

// NewPromotionMetrics registers the promotion metrics on the provided registerer.
// A nil registerer yields a recorder that drops every observation.
func NewPromotionMetrics(reg prometheus.Registerer) *PromotionMetrics {
	if reg == nil {
		return &PromotionMetrics{}
	}
	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluations_total",
		Help:      "Line item evaluations by outcome.",
	}, []string{"outcome"})
	exclusions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exclusions_total",
		Help:      "Promotions excluded from evaluation for data problems.",
	}, []string{"reason"})
	refreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_refreshes_total",
		Help:      "Snapshot refreshes by result.",
	}, []string{"result"})
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_lookups_total",
		Help:      "Snapshot lookups by serving source.",
	}, []string{"source"})
	refreshDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "snapshot_refresh_duration_seconds",
		Help:      "Duration of snapshot refreshes in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"result"})
	reg.MustRegister(evaluations, exclusions, refreshes, lookups, refreshDuration)
	return &PromotionMetrics{
		evaluations:     evaluations,
		exclusions:      exclusions,
		refreshes:       refreshes,
		lookups:         lookups,
		refreshDuration: refreshDuration,
	}
}

// IncEvaluation counts one evaluation, labelled e.g. "discounted" or "full_price".
func (m *PromotionMetrics) IncEvaluation(outcome string) {
	if m == nil || m.evaluations == nil {
		return
	}
	m.evaluations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncExclusion counts a promotion dropped for the given reason.
func (m *PromotionMetrics) IncExclusion(reason string) {
	if m == nil || m.exclusions == nil {
		return
	}
	m.exclusions.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveRefresh records the result and duration of a snapshot refresh.
func (m *PromotionMetrics) ObserveRefresh(result string, duration time.Duration) {
	if m == nil || m.refreshes == nil {
		return
	}
	label := normalizeLabel(result)
	m.refreshes.WithLabelValues(label).Inc()
	m.refreshDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// IncLookup counts where a snapshot lookup was served from.
func (m *PromotionMetrics) IncLookup(source string) {
	if m == nil || m.lookups == nil {
		return
	}
	m.lookups.WithLabelValues(normalizeLabel(source)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
