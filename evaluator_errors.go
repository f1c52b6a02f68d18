package params

import (
	"errors"
	"fmt"
)

var (
	// ErrEvaluation matches every *EvaluationError.
	ErrEvaluation = errors.New("params: evaluation error")
	// ErrEmptyExpression is returned by every engine for "".
	ErrEmptyExpression = errors.New("params: expression must not be empty")
)

// EvaluationError reports an expression that failed to compile or run,
// with the engine and the parameter path involved.
type EvaluationError struct {
	Engine string
	Expr   string
	Path   string
	Err    error
}

func (e *EvaluationError) Error() string {
	expr := "<empty>"
	if e.Expr != "" {
		expr = fmt.Sprintf("%q", e.Expr)
	}
	return fmt.Sprintf("params: %s expression %s for '%s': %v", e.Engine, expr, e.Path, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

func (e *EvaluationError) Is(target error) bool { return target == ErrEvaluation }

// wrapEvaluationError attaches engine, expression and path to err. Fields
// already set on a wrapped *EvaluationError are kept.
func wrapEvaluationError(engine, expr, path string, err error) error {
	if err == nil {
		return nil
	}
	var existing *EvaluationError
	if !errors.As(err, &existing) {
		return &EvaluationError{Engine: engine, Expr: expr, Path: path, Err: err}
	}
	if existing.Engine == "" {
		existing.Engine = engine
	}
	if existing.Expr == "" {
		existing.Expr = expr
	}
	if existing.Path == "" {
		existing.Path = path
	}
	return existing
}
