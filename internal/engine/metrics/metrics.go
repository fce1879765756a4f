package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the processing engine.
type Metrics struct {
	// Processing passes by outcome
	ProcessTotal *prometheus.CounterVec

	// Full Process latency including key derivation
	ProcessLatency prometheus.Histogram

	// Fields sealed by AutoEncrypt, by result
	FieldsEncrypted *prometheus.CounterVec

	// Warnings raised, by code
	Warnings *prometheus.CounterVec

	// Laws applied per pass
	LawsApplied *prometheus.CounterVec
}

// New creates a Metrics instance with all engine metrics registered.
func New() *Metrics {
	return &Metrics{
		ProcessTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "privacyguard_engine_process_total",
			Help: "Total processing passes by outcome",
		}, []string{"outcome"}), // outcome: "ok", "error"

		ProcessLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "privacyguard_engine_process_duration_seconds",
			Help:    "Duration of full record processing including encryption",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		FieldsEncrypted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "privacyguard_engine_fields_encrypted_total",
			Help: "Fields processed by the auto-encryption pass, by result",
		}, []string{"result"}), // result: "sealed", "failed"

		Warnings: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "privacyguard_engine_warnings_total",
			Help: "Warnings raised during processing, by code",
		}, []string{"code"}),

		LawsApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "privacyguard_engine_laws_applied_total",
			Help: "Law regimes applied to records",
		}, []string{"law"}),
	}
}

// IncrementProcess records a completed processing pass.
func (m *Metrics) IncrementProcess(outcome string) {
	if m != nil {
		m.ProcessTotal.WithLabelValues(outcome).Inc()
	}
}

// ObserveProcessLatency records the duration of a processing pass.
func (m *Metrics) ObserveProcessLatency(d time.Duration) {
	if m != nil {
		m.ProcessLatency.Observe(d.Seconds())
	}
}

// AddFieldsEncrypted records the outcome of an auto-encryption pass.
func (m *Metrics) AddFieldsEncrypted(sealed, failed int) {
	if m == nil {
		return
	}
	if sealed > 0 {
		m.FieldsEncrypted.WithLabelValues("sealed").Add(float64(sealed))
	}
	if failed > 0 {
		m.FieldsEncrypted.WithLabelValues("failed").Add(float64(failed))
	}
}

// IncrementWarning records a raised warning.
func (m *Metrics) IncrementWarning(code string) {
	if m != nil {
		m.Warnings.WithLabelValues(code).Inc()
	}
}

// IncrementLawApplied records one law application.
func (m *Metrics) IncrementLawApplied(law string) {
	if m != nil {
		m.LawsApplied.WithLabelValues(law).Inc()
	}
}
