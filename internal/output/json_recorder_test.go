package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrzor/crumbtrail/internal/breadcrumb"
)

func TestJSONRecorder(t *testing.T) {
	var buf bytes.Buffer
	rec := NewJSONRecorder(&buf)

	require.NoError(t, rec.Record(breadcrumb.Breadcrumb{
		Category: "electron", Message: "app.ready", Timestamp: 1.5, Type: "ui",
	}))
	require.NoError(t, rec.Record(breadcrumb.Breadcrumb{
		Category: "electron", Message: "WebContents[1].dom-ready", Timestamp: 2, Type: "ui",
		Data: map[string]any{"url": "<a>"},
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"category":"electron","message":"app.ready","timestamp":1.5,"type":"ui"}`, lines[0])
	assert.JSONEq(t, `{"category":"electron","message":"WebContents[1].dom-ready","timestamp":2,"type":"ui","data":{"url":"<a>"}}`, lines[1])
	assert.Contains(t, lines[1], "<a>")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestJSONRecorder_WriteError(t *testing.T) {
	rec := NewJSONRecorder(failingWriter{})
	err := rec.Record(breadcrumb.Breadcrumb{Message: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
