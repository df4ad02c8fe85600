package metrics

import (
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// Recorder implements domain.Recorder on a private Prometheus registry.
type Recorder struct {
	registry *prometheus.Registry

	Submissions  *prometheus.CounterVec
	Remediations *prometheus.CounterVec
	Issues       prometheus.Counter
	Duration     prometheus.Histogram
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		Submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "landingzone_submissions_total",
				Help: "Submissions validated, by final verdict",
			},
			[]string{"verdict"},
		),
		Remediations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "landingzone_remediations_total",
				Help: "Remediation actions applied, by action",
			},
			[]string{"action"},
		),
		Issues: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "landingzone_validation_issues_total",
				Help: "Issues reported in final validation verdicts",
			},
		),
		Duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "landingzone_validation_duration_seconds",
				Help:    "Duration of a submission validation in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

func (r *Recorder) ObserveValidation(report *domain.ValidationReport, elapsed time.Duration) {
	r.Submissions.WithLabelValues(report.Status).Inc()
	r.Issues.Add(float64(len(report.Issues)))
	r.Duration.Observe(elapsed.Seconds())
}

func (r *Recorder) RecordRemediation(fixType string) {
	r.Remediations.WithLabelValues(fixType).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile writes the current values in the node exporter textfile
// format. An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
