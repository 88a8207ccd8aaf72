package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrzor/crumbtrail/internal/breadcrumb"
)

func TestSourceName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"app", "app"},
		{"Screen", "Screen"},
		{"WebContents[3]", "WebContents"},
		{"WebContents[42]", "WebContents"},
		{"[odd]", "[odd]"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, SourceName(tt.label))
		})
	}
}

func TestRecorder_CountsBreadcrumbs(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	buf := breadcrumb.NewBuffer(10)
	rec := m.Recorder(buf)

	require.NoError(t, rec.Record(breadcrumb.Breadcrumb{Message: "app.ready"}))
	require.NoError(t, rec.Record(breadcrumb.Breadcrumb{Message: "WebContents[1].dom-ready"}))
	require.NoError(t, rec.Record(breadcrumb.Breadcrumb{Message: "WebContents[2].dom-ready"}))

	assert.Equal(t, 3, buf.Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BreadcrumbsTotal.WithLabelValues("app", "ready")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.BreadcrumbsTotal.WithLabelValues("WebContents", "dom-ready")))
	assert.Equal(t, 0, testutil.CollectAndCount(m.RecordErrorsTotal))
}

func TestRecorder_CountsErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	boom := errors.New("boom")
	rec := m.Recorder(breadcrumb.RecorderFunc(func(breadcrumb.Breadcrumb) error { return boom }))

	err := rec.Record(breadcrumb.Breadcrumb{Message: "Screen.display-added"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RecordErrorsTotal.WithLabelValues("Screen")))
	assert.Equal(t, 0, testutil.CollectAndCount(m.BreadcrumbsTotal))
}

func TestSummary(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	rec := m.Recorder(breadcrumb.Discard)

	require.NoError(t, rec.Record(breadcrumb.Breadcrumb{Message: "app.ready"}))
	require.NoError(t, rec.Record(breadcrumb.Breadcrumb{Message: "app.ready"}))
	require.NoError(t, rec.Record(breadcrumb.Breadcrumb{Message: "nodot"}))

	summary, err := Summary(reg)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"crumbtrail_breadcrumbs_total{event=ready,source=app}": 2,
		"crumbtrail_breadcrumbs_total{event=,source=nodot}":    1,
	}, summary)
}
