package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Proposal outcome labels recorded against the proposals counter.
const (
	OutcomeAccepted       = "accepted"
	OutcomeConflict       = "conflict"
	OutcomeInvalidFormat  = "invalid_format"
	OutcomeInvalidOrder   = "invalid_order"
	OutcomeUnknownVariant = "unknown_variant"
	OutcomeNotFound       = "not_found"
	OutcomeValidation     = "validation_error"
	OutcomeStorage        = "storage_error"
)

// LoanMetrics records outcomes of the loan proposal workflow.
type LoanMetrics struct {
	proposals *prometheus.CounterVec
	written   prometheus.Counter
	duration  prometheus.Histogram
}

// NewLoanMetrics registers the loan workflow metrics on the provided registerer.
func NewLoanMetrics(reg prometheus.Registerer) *LoanMetrics {
	if reg == nil {
		return &LoanMetrics{}
	}
	proposals := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "loan_proposals_total",
		Help: "Loan proposals by outcome.",
	}, []string{"outcome"})
	written := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loans_written_total",
		Help: "Loan records appended to the store.",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "loan_proposal_duration_seconds",
		Help:    "Duration of loan proposals in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(proposals, written, duration)
	return &LoanMetrics{
		proposals: proposals,
		written:   written,
		duration:  duration,
	}
}

// IncProposal increments the proposal counter for the given outcome.
func (m *LoanMetrics) IncProposal(outcome string) {
	if m == nil || m.proposals == nil {
		return
	}
	m.proposals.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncWritten counts a loan record appended to the store.
func (m *LoanMetrics) IncWritten() {
	if m == nil || m.written == nil {
		return
	}
	m.written.Inc()
}

// ObserveDuration records how long a proposal took end to end.
func (m *LoanMetrics) ObserveDuration(duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.Observe(duration.Seconds())
}

func normalizeLabel(outcome string) string {
	if outcome == "" {
		return "unknown"
	}
	return outcome
}
