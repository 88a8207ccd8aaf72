// Package script replays recorded host sessions described in YAML.
//
// A script is a list of steps run in order against a fresh host.App:
//
//	steps:
//	  - action: ready
//	  - action: create-contents
//	  - action: emit
//	    target: contents
//	    contents: 0
//	    event: dom-ready
//
// The loop is drained after every step except tick, which runs a single
// tick so that deferred work can be observed between steps.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Actions
const (
	ActionEmit            = "emit"
	ActionReady           = "ready"
	ActionCreateContents  = "create-contents"
	ActionDestroyContents = "destroy-contents"
	ActionTick            = "tick"
)

// Targets for ActionEmit
const (
	TargetApp      = "app"
	TargetScreen   = "screen"
	TargetPower    = "power"
	TargetContents = "contents"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid script")

// Script is a replayable session.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one host action.
type Step struct {
	Action   string `yaml:"action"`
	Target   string `yaml:"target,omitempty"`
	Contents int    `yaml:"contents,omitempty"` // index into created contents, in creation order
	Event    string `yaml:"event,omitempty"`
	Args     []any  `yaml:"args,omitempty"`
}

// Load decodes and validates a script.
func Load(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile loads the script at path.
func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks every step and that contents indexes refer to contents
// created by an earlier step.
func (s *Script) Validate() error {
	created := 0
	for i, step := range s.Steps {
		if err := step.validate(created); err != nil {
			return fmt.Errorf("%w: step %d: %w", ErrInvalid, i, err)
		}
		if step.Action == ActionCreateContents {
			created++
		}
	}
	return nil
}

func (st Step) validate(created int) error {
	switch st.Action {
	case ActionReady, ActionCreateContents, ActionTick:
		return nil
	case ActionDestroyContents:
		return checkIndex(st.Contents, created)
	case ActionEmit:
		if st.Event == "" {
			return errors.New("emit without event")
		}
		switch st.Target {
		case TargetApp, TargetScreen, TargetPower:
			return nil
		case TargetContents:
			return checkIndex(st.Contents, created)
		case "":
			return errors.New("emit without target")
		default:
			return fmt.Errorf("unknown target %q", st.Target)
		}
	case "":
		return errors.New("missing action")
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
}

func checkIndex(idx, created int) error {
	if idx < 0 || idx >= created {
		return fmt.Errorf("contents index %d out of range (%d created)", idx, created)
	}
	return nil
}
