package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/mrzor/crumbtrail/internal/breadcrumb"
)

// JSONRecorder writes one JSON object per breadcrumb.
type JSONRecorder struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

// NewJSONRecorder creates a recorder writing to w.
func NewJSONRecorder(w io.Writer) *JSONRecorder {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	return &JSONRecorder{encoder: encoder}
}

// Record writes crumb as a single line.
func (r *JSONRecorder) Record(crumb breadcrumb.Breadcrumb) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.encoder.Encode(crumb); err != nil {
		return fmt.Errorf("write breadcrumb: %w", err)
	}
	return nil
}
