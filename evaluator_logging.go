package params

import (
	"time"

	"github.com/charmbracelet/log"
)

// EvaluatorLogEvent describes one expression run.
type EvaluatorLogEvent struct {
	Engine   string
	Expr     string
	Path     string
	Duration time.Duration
	Err      error
}

// EvaluatorLogger records evaluator events.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopEvaluatorLogger struct{}

func (noopEvaluatorLogger) LogEvaluation(EvaluatorLogEvent) {}

// LogEvaluations reports runs through logger: successful runs at debug
// level, failed ones at warn level.
func LogEvaluations(logger Logger) EvaluatorLogger {
	if logger == nil {
		return noopEvaluatorLogger{}
	}
	return EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
		keyvals := []any{"engine", event.Engine, "path", event.Path, "expr", event.Expr, "took", event.Duration}
		if event.Err != nil {
			logger.Log(log.WarnLevel, "expression failed", append(keyvals, "err", event.Err)...)
			return
		}
		logger.Log(log.DebugLevel, "expression evaluated", keyvals...)
	})
}

// WithEvaluatorLogger records every expression evaluation.
func WithEvaluatorLogger(logger EvaluatorLogger) Option {
	return func(cfg *containerConfig) {
		cfg.evaluatorLogger = logger
	}
}

// SetEvaluatorLogger replaces the evaluator logger of the container, its
// parameters and every nested container.
func (c *Container) SetEvaluatorLogger(logger EvaluatorLogger) {
	if logger == nil {
		logger = noopEvaluatorLogger{}
	}
	c.cfg.evaluatorLogger = logger
	for _, kv := range c.params.Order {
		p := kv.Value
		p.evalLogger = logger
		for _, value := range []any{p.Value(), p.Default()} {
			if nested, ok := value.(*Container); ok && nested != c {
				nested.SetEvaluatorLogger(logger)
			}
		}
	}
}
