// Package metrics counts breadcrumbs with Prometheus collectors.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/mrzor/crumbtrail/internal/breadcrumb"
)

// Metrics holds the breadcrumb collectors registered on one registry.
type Metrics struct {
	// Breadcrumbs recorded successfully
	BreadcrumbsTotal *prometheus.CounterVec
	// Failed Record calls
	RecordErrorsTotal *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BreadcrumbsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crumbtrail_breadcrumbs_total",
				Help: "Total number of breadcrumbs recorded",
			},
			[]string{"source", "event"},
		),
		RecordErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crumbtrail_record_errors_total",
				Help: "Total number of breadcrumbs the recorder rejected",
			},
			[]string{"source"},
		),
	}
}

// Recorder wraps next and counts every breadcrumb passing through.
func (m *Metrics) Recorder(next breadcrumb.Recorder) breadcrumb.Recorder {
	return breadcrumb.RecorderFunc(func(crumb breadcrumb.Breadcrumb) error {
		label, event := splitMessage(crumb.Message)
		source := SourceName(label)
		if err := next.Record(crumb); err != nil {
			m.RecordErrorsTotal.WithLabelValues(source).Inc()
			return err
		}
		m.BreadcrumbsTotal.WithLabelValues(source, event).Inc()
		return nil
	})
}

// SourceName strips the instance suffix from a label so that
// "WebContents[3]" and "WebContents[4]" share one series.
func SourceName(label string) string {
	if i := strings.IndexByte(label, '['); i > 0 {
		return label[:i]
	}
	return label
}

func splitMessage(message string) (label, event string) {
	label, event, ok := strings.Cut(message, ".")
	if !ok {
		return message, ""
	}
	return label, event
}

// Summary flattens every counter in g into "name{k=v,...}" keys.
func Summary(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	out := make(map[string]float64)
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, m := range mf.GetMetric() {
			out[seriesKey(mf.GetName(), m.GetLabel())] = m.GetCounter().GetValue()
		}
	}
	return out, nil
}

func seriesKey(name string, labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return name
	}
	pairs := make([]string, 0, len(labels))
	for _, lp := range labels {
		pairs = append(pairs, lp.GetName()+"="+lp.GetValue())
	}
	sort.Strings(pairs)
	return name + "{" + strings.Join(pairs, ",") + "}"
}
