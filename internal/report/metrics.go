package report

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jcorbin/gorpn/internal/batch"
	"github.com/jcorbin/gorpn/internal/rpn"
)

// Metrics counts outcomes by kind; it is safe to share between concurrent
// runs.
type Metrics struct {
	lines  *prometheus.CounterVec
	tokens prometheus.Histogram
}

// NewMetrics creates and registers outcome metrics with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rpn",
			Name:      "lines_total",
			Help:      "Number of evaluated lines, by outcome.",
		}, []string{"outcome"}),
		tokens: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rpn",
			Name:      "line_tokens",
			Help:      "Number of tokens per evaluated line.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
	}
	for _, c := range []prometheus.Collector{m.lines, m.tokens} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	// zero every outcome series, so that they are all exported
	m.lines.WithLabelValues("ok")
	for _, kind := range rpn.Kinds() {
		m.lines.WithLabelValues(kind.String())
	}
	return m, nil
}

// Report counts o.
func (m *Metrics) Report(o batch.Outcome) error {
	m.lines.WithLabelValues(outcomeLabel(o)).Inc()
	m.tokens.Observe(float64(o.Tokens))
	return nil
}

// WriteTextfile writes everything gathered by g to path, in the text
// exposition format, as used by the node exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

func outcomeLabel(o batch.Outcome) string {
	if o.Err == nil {
		return "ok"
	}
	if kind := o.Kind(); kind != 0 {
		return kind.String()
	}
	return "error"
}
