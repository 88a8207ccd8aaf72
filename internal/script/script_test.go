package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const session = `
steps:
  - action: ready
  - action: create-contents
  - action: emit
    target: contents
    contents: 0
    event: dom-ready
  - action: emit
    target: app
    event: browser-window-focus
    args: [1, "x", true]
  - action: destroy-contents
    contents: 0
`

func TestLoad(t *testing.T) {
	s, err := Load(strings.NewReader(session))
	require.NoError(t, err)
	require.Len(t, s.Steps, 5)

	assert.Equal(t, ActionReady, s.Steps[0].Action)
	assert.Equal(t, Step{Action: ActionEmit, Target: TargetContents, Event: "dom-ready"}, s.Steps[2])
	assert.Equal(t, []any{1, "x", true}, s.Steps[3].Args)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "empty document"},
		{"unknown field", "steps:\n  - action: ready\n    bogus: 1\n", "bogus"},
		{"unknown action", "steps:\n  - action: jump\n", `unknown action "jump"`},
		{"missing action", "steps:\n  - event: x\n", "missing action"},
		{"emit without event", "steps:\n  - action: emit\n    target: app\n", "emit without event"},
		{"emit without target", "steps:\n  - action: emit\n    event: x\n", "emit without target"},
		{"unknown target", "steps:\n  - action: emit\n    target: tray\n    event: x\n", `unknown target "tray"`},
		{"contents before create", "steps:\n  - action: emit\n    target: contents\n    event: x\n", "out of range"},
		{"destroy out of range", "steps:\n  - action: create-contents\n  - action: destroy-contents\n    contents: 1\n", "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsStepIndex(t *testing.T) {
	s := &Script{Steps: []Step{{Action: ActionReady}, {Action: "nope"}}}
	err := s.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "step 1")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(session), 0o600))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, s.Steps, 5)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open script")
}
