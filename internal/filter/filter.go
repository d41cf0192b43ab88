// Package filter evaluates a user-supplied predicate over events.
//
// The expression is compiled once, with channel, timestamp and note bound as
// variables, and must yield a boolean. Events for which it yields false are
// excluded from the pipeline.
package filter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"noteplot/internal/event"
)

// Filter is a compiled event predicate.
type Filter struct {
	source string
	prog   *vm.Program
}

// exprEnv builds the evaluation environment for one event. The same shape
// (with zero values) is used for compile-time type checking.
func exprEnv(ev event.Event) map[string]interface{} {
	return map[string]interface{}{
		"channel":   int(ev.Channel),
		"timestamp": ev.Timestamp,
		"note":      int(ev.Note),
	}
}

// Compile compiles source into a Filter. The expression is type-checked
// against the event variables and must evaluate to a boolean.
func Compile(source string) (*Filter, error) {
	prog, err := expr.Compile(source, expr.Env(exprEnv(event.Event{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", source, err)
	}
	return &Filter{source: source, prog: prog}, nil
}

// Match reports whether ev satisfies the predicate.
func (f *Filter) Match(ev event.Event) (bool, error) {
	out, err := expr.Run(f.prog, exprEnv(ev))
	if err != nil {
		return false, fmt.Errorf("evaluating filter %q: %w", f.source, err)
	}
	keep, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %T, want bool", f.source, out)
	}
	return keep, nil
}

// Apply returns the events satisfying the predicate, in input order.
// A nil Filter keeps everything. Evaluation errors are fatal: a predicate
// that cannot be evaluated is not allowed to silently decide anything.
func (f *Filter) Apply(events []event.Event) ([]event.Event, error) {
	if f == nil {
		return events, nil
	}

	kept := make([]event.Event, 0, len(events))
	for _, ev := range events {
		keep, err := f.Match(ev)
		if err != nil {
			return nil, err
		}
		if keep {
			kept = append(kept, ev)
		}
	}
	return kept, nil
}
