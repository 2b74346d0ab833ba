// Package filter compiles expr expressions evaluated against person
// records, backing the --filter flag of the person list command.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/reevehq/reeve-go/reeve"
)

// CompilationError indicates a filter expression could not be compiled
type CompilationError struct {
	Expression string
	Reason     string
	Err        error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// PersonFilter is a compiled filter expression over person records.
type PersonFilter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into an executable person filter.
// Expressions see the fields Id, Firstname, Lastname, CreatedAt and
// UpdatedAt, plus the helpers contains() and matches().
func Compile(expression string) (*PersonFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // Allow person properties
		expr.AsBool(),                  // Ensure boolean result
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &PersonFilter{expression: expression, program: program}, nil
}

// Match evaluates the filter against a person. Evaluation errors count
// as no match.
func (f *PersonFilter) Match(person reeve.Person) bool {
	env := helperFunctions()
	env["Id"] = person.ID
	env["Firstname"] = person.Firstname
	env["Lastname"] = person.Lastname
	if person.CreatedAt != nil {
		env["CreatedAt"] = *person.CreatedAt
	}
	if person.UpdatedAt != nil {
		env["UpdatedAt"] = *person.UpdatedAt
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool)
}

// Expression returns the original expression
func (f *PersonFilter) Expression() string {
	return f.expression
}

func helperFunctions() map[string]any {
	return map[string]any{
		"contains": func(s, substr string) bool {
			return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
		},
		"matches": func(s, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
		},
	}
}
