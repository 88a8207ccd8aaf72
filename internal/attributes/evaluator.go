package attributes

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/mrzor/crumbtrail/internal/config"
)

// Event is the evaluation input for one dispatch.
type Event struct {
	Label   string
	Name    string
	Message string
	Args    []any
}

func (e Event) env() map[string]any {
	args := e.Args
	if args == nil {
		args = []any{}
	}
	return map[string]any{
		"label":   e.Label,
		"event":   e.Name,
		"message": e.Message,
		"args":    args,
	}
}

// typeEnv is the environment used for expression type checking.
var typeEnv = Event{}.env()

// Evaluator compiles breadcrumb data expressions and an optional drop rule.
type Evaluator struct {
	customAttrs   []config.CustomAttribute
	compiledExprs []*vm.Program
	drop          *vm.Program
	logger        *slog.Logger
}

// NewEvaluator creates a new evaluator.
// It pre-compiles all expressions for efficiency. dropExpr may be empty.
func NewEvaluator(customAttrs []config.CustomAttribute, dropExpr string, logger *slog.Logger) (*Evaluator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	compiledExprs := make([]*vm.Program, len(customAttrs))
	for i, attr := range customAttrs {
		program, err := expr.Compile(attr.Expression, expr.Env(typeEnv))
		if err != nil {
			return nil, fmt.Errorf("failed to compile expression for attribute %q: %w", attr.Name, err)
		}
		compiledExprs[i] = program
	}

	var drop *vm.Program
	if dropExpr != "" {
		program, err := expr.Compile(dropExpr, expr.Env(typeEnv), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("failed to compile drop expression: %w", err)
		}
		drop = program
	}

	return &Evaluator{
		customAttrs:   customAttrs,
		compiledExprs: compiledExprs,
		drop:          drop,
		logger:        logger,
	}, nil
}

// Empty reports whether the evaluator has nothing to do.
func (e *Evaluator) Empty() bool {
	return e == nil || (len(e.compiledExprs) == 0 && e.drop == nil)
}

// ShouldDrop reports whether the breadcrumb for ev must be suppressed.
// A drop rule that fails at runtime keeps the breadcrumb.
func (e *Evaluator) ShouldDrop(ev Event) bool {
	if e == nil || e.drop == nil {
		return false
	}
	output, err := expr.Run(e.drop, ev.env())
	if err != nil {
		e.logger.Warn("drop expression failed, keeping breadcrumb",
			slog.String("message", ev.Message),
			slog.String("error", err.Error()))
		return false
	}
	dropped, _ := output.(bool)
	return dropped
}

// Evaluate computes breadcrumb data for ev. It returns nil when no
// attribute produced a value.
func (e *Evaluator) Evaluate(ev Event) map[string]any {
	if e == nil || len(e.customAttrs) == 0 {
		return nil
	}

	env := ev.env()
	data := make(map[string]any, len(e.customAttrs))
	for i, customAttr := range e.customAttrs {
		output, err := expr.Run(e.compiledExprs[i], env)
		if err != nil {
			// Skip this attribute, keep the others
			e.logger.Warn("failed to evaluate attribute expression",
				slog.String("attribute", customAttr.Name),
				slog.String("message", ev.Message),
				slog.String("error", err.Error()))
			continue
		}
		if output == nil {
			continue
		}

		// Maps expand into one entry per key with dot notation
		outputValue := reflect.ValueOf(output)
		if outputValue.Kind() == reflect.Map {
			for _, key := range outputValue.MapKeys() {
				keyStr := fmt.Sprintf("%v", key.Interface())
				name := customAttr.Name + "." + sanitizeAttributeName(keyStr)
				data[name] = flatten(outputValue.MapIndex(key).Interface())
			}
			continue
		}
		data[customAttr.Name] = flatten(output)
	}

	if len(data) == 0 {
		return nil
	}
	return data
}

// flatten keeps scalars as they are and renders nested structures as strings.
func flatten(value any) any {
	if value == nil {
		return nil
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
		return fmt.Sprintf("%v", value)
	default:
		return value
	}
}

// sanitizeAttributeName replaces non-alphanumeric characters with underscores.
func sanitizeAttributeName(name string) string {
	result := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			result[i] = c
		} else {
			result[i] = '_'
		}
	}
	return string(result)
}
