// Package filter evaluates expr-lang expressions against a raw file's
// metadata, used by the extract command's --filter flag to select a subset
// of a session's raw files without writing Go code.
package filter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Context is the set of variables an expression can reference.
// Example expressions:
//   - "true" (select everything)
//   - `name endsWith ".gsc"`
//   - "size > 4096 and name startsWith \"maps/\""
type Context struct {
	Name string `expr:"name"`
	Size int    `expr:"size"`
}

// Filter is a compiled expr-lang program over Context.
type Filter struct {
	program    *vm.Program
	expression string
}

// New compiles expression against Context, requiring it to evaluate to a
// bool.
func New(expression string) (*Filter, error) {
	if expression == "" {
		expression = "true"
	}
	program, err := expr.Compile(expression, expr.Env(Context{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return &Filter{program: program, expression: expression}, nil
}

// Expression returns the original expression string.
func (f *Filter) Expression() string {
	return f.expression
}

// Matches reports whether ctx satisfies the filter.
func (f *Filter) Matches(ctx Context) (bool, error) {
	result, err := expr.Run(f.program, ctx)
	if err != nil {
		return false, fmt.Errorf("filter evaluation failed: %w", err)
	}
	return result.(bool), nil
}
