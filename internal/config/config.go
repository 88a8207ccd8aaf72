// Package config holds replay configuration assembled from flags and the
// environment.
package config

import (
	"fmt"
	"strings"
)

// Output selects where replayed breadcrumbs go.
type Output string

// Supported outputs.
const (
	OutputJSON Output = "json"
	OutputOTLP Output = "otlp"
	OutputBoth Output = "both"
	OutputNone Output = "none"
)

// CustomAttribute is a breadcrumb data attribute computed by an expression.
type CustomAttribute struct {
	// Name is the key under Breadcrumb.Data
	Name string
	// Expression is evaluated against the dispatched event
	Expression string
}

// Config holds the parsed replay configuration.
type Config struct {
	// ScriptPath is the YAML session to replay
	ScriptPath string
	// Output selects the breadcrumb sinks
	Output Output
	// MaxBreadcrumbs bounds the in-memory breadcrumb buffer
	MaxBreadcrumbs int
	// CustomAttributes enrich breadcrumbs with data
	CustomAttributes []CustomAttribute
	// DropExpression, when true for an event, suppresses its breadcrumb
	DropExpression string
	// TraceID and ParentID attach the exported session to an existing trace
	TraceID  string
	ParentID string
	// LogLevel and LogFormat configure the process logger
	LogLevel  string
	LogFormat string
}

// ParseAttribute parses a NAME=EXPR attribute definition.
// Only the first '=' separates name from expression.
func ParseAttribute(def string) (CustomAttribute, error) {
	name, expression, ok := strings.Cut(def, "=")
	if !ok {
		return CustomAttribute{}, fmt.Errorf("invalid attribute format %q: expected NAME=EXPR", def)
	}
	name = strings.TrimSpace(name)
	expression = strings.TrimSpace(expression)
	if name == "" {
		return CustomAttribute{}, fmt.Errorf("invalid attribute %q: name cannot be empty", def)
	}
	if expression == "" {
		return CustomAttribute{}, fmt.Errorf("invalid attribute %q: expression cannot be empty", def)
	}
	return CustomAttribute{Name: name, Expression: expression}, nil
}

// ParseAttributes parses every definition, stopping at the first error.
func ParseAttributes(defs []string) ([]CustomAttribute, error) {
	attrs := make([]CustomAttribute, 0, len(defs))
	for _, def := range defs {
		attr, err := ParseAttribute(def)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

// ParseOutput normalises an output name.
func ParseOutput(s string) (Output, error) {
	out := Output(strings.ToLower(strings.TrimSpace(s)))
	switch out {
	case "":
		return OutputJSON, nil
	case OutputJSON, OutputOTLP, OutputBoth, OutputNone:
		return out, nil
	default:
		return "", fmt.Errorf("unsupported output %q (want json, otlp, both or none)", s)
	}
}

// WantsJSON reports whether breadcrumbs are printed as JSON lines.
func (o Output) WantsJSON() bool {
	return o == OutputJSON || o == OutputBoth
}

// WantsOTLP reports whether breadcrumbs are exported over OTLP.
func (o Output) WantsOTLP() bool {
	return o == OutputOTLP || o == OutputBoth
}

// Validate checks the configuration for missing or conflicting values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ScriptPath) == "" {
		return fmt.Errorf("no script specified")
	}
	if _, err := ParseOutput(string(c.Output)); err != nil {
		return err
	}
	if c.MaxBreadcrumbs < 0 {
		return fmt.Errorf("max breadcrumbs must not be negative, got %d", c.MaxBreadcrumbs)
	}
	seen := make(map[string]struct{}, len(c.CustomAttributes))
	for _, attr := range c.CustomAttributes {
		if _, dup := seen[attr.Name]; dup {
			return fmt.Errorf("duplicate attribute %q", attr.Name)
		}
		seen[attr.Name] = struct{}{}
	}
	return nil
}
