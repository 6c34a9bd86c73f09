package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for loan decisions.
type Metrics struct {
	// Decision outcomes: approved, counter_offer, declined
	DecisionOutcome *prometheus.CounterVec

	// Decline reasons, one increment per failed rule
	DeclineReason *prometheus.CounterVec

	// Application handling latency including data lookups
	ApplyLatency prometheus.Histogram

	// Rate-limited requests by route
	RateLimited *prometheus.CounterVec
}

// New registers the loan decision metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DecisionOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_decision_outcomes_total",
			Help: "Total loan decisions by outcome",
		}, []string{"outcome"}),

		DeclineReason: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_decision_rule_failures_total",
			Help: "Total eligibility rule failures by rule",
		}, []string{"rule"}),

		ApplyLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "loan_apply_duration_seconds",
			Help:    "Duration of loan application handling including profile lookups",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		RateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}, []string{"path"}),
	}
}

// IncrementOutcome records a decision outcome.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(outcome).Inc()
	}
}

// IncrementRuleFailure records a failed eligibility rule.
func (m *Metrics) IncrementRuleFailure(rule string) {
	if m != nil {
		m.DeclineReason.WithLabelValues(rule).Inc()
	}
}

// ObserveApplyLatency records the total application handling duration.
func (m *Metrics) ObserveApplyLatency(d time.Duration) {
	if m != nil {
		m.ApplyLatency.Observe(d.Seconds())
	}
}

// IncrementRateLimited records a request rejected by the rate limiter.
func (m *Metrics) IncrementRateLimited(path string) {
	if m != nil {
		m.RateLimited.WithLabelValues(path).Inc()
	}
}
