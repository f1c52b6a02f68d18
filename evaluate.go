package params

import (
	"errors"
	"time"
)

// ErrNoEvaluator is returned when no evaluator can be resolved.
var ErrNoEvaluator = errors.New("params: evaluator not configured")

// Evaluate runs expr against the container snapshot returned by ToMap.
func (c *Container) Evaluate(expr string) (Response[any], error) {
	return c.EvaluateWith(RuleContext{}, expr)
}

// EvaluateWith runs expr using ctx, falling back to the container snapshot
// when ctx.Snapshot is nil.
func (c *Container) EvaluateWith(ctx RuleContext, expr string) (Response[any], error) {
	if expr == "" {
		return Response[any]{}, ErrEmptyExpression
	}
	evaluator := c.cfg.evaluatorFor()
	if evaluator == nil {
		return Response[any]{}, ErrNoEvaluator
	}
	if ctx.Snapshot == nil {
		ctx.Snapshot = c.ToMap()
	}
	value, err := runEvaluation(evaluatorEngineName(evaluator), c.cfg.evalLogger(), ctx, expr, func(ctx RuleContext) (any, error) {
		return evaluator.Evaluate(ctx, expr)
	})
	if err != nil {
		return Response[any]{}, err
	}
	return Response[any]{Value: value}, nil
}

func runEvaluation(engine string, logger EvaluatorLogger, ctx RuleContext, expr string, run func(RuleContext) (any, error)) (any, error) {
	ctx = ctx.withDefaults()
	start := time.Now()
	value, err := run(ctx)
	duration := time.Since(start)
	err = wrapEvaluationError(engine, expr, ctx.pathLabel(), err)
	logger.LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Expr:     expr,
		Path:     ctx.pathLabel(),
		Duration: duration,
		Err:      err,
	})
	return value, err
}

func evaluatorEngineName(e Evaluator) string {
	switch e.(type) {
	case nil:
		return "unknown"
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	case *jsEvaluator:
		return "js"
	default:
		return "custom"
	}
}
