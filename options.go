package params

import (
	"github.com/goliatone/go-params/pkg/activity"
)

// Option configures a Container.
type Option func(*containerConfig)

type containerConfig struct {
	name            string
	mode            ErrorMode
	logger          Logger
	evaluator       Evaluator
	programCache    ProgramCache
	functions       *FunctionRegistry
	evaluatorLogger EvaluatorLogger
	schemaGenerator SchemaGenerator
	activityHooks   activity.Hooks
}

func applyOptions(opts []Option) containerConfig {
	cfg := containerConfig{mode: ModeException}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithName labels the container in activity events and log output.
func WithName(name string) Option {
	return func(cfg *containerConfig) {
		cfg.name = name
	}
}

// WithErrorMode selects how failures are reported. The default is
// ModeException.
func WithErrorMode(mode ErrorMode) Option {
	return func(cfg *containerConfig) {
		cfg.mode = mode
	}
}

// WithLogger sets the logger used by the warning, error and critical modes.
func WithLogger(logger Logger) Option {
	return func(cfg *containerConfig) {
		cfg.logger = logger
	}
}

// WithEvaluator configures the evaluator used for expression verify rules.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *containerConfig) {
		cfg.evaluator = e
	}
}

// WithSchemaGenerator configures a custom schema generator implementation.
func WithSchemaGenerator(generator SchemaGenerator) Option {
	return func(cfg *containerConfig) {
		cfg.schemaGenerator = generator
	}
}

// evaluatorFor returns the configured evaluator, building the default expr
// evaluator from the cache and function registry on first use.
func (cfg *containerConfig) evaluatorFor() Evaluator {
	if cfg.evaluator != nil {
		return cfg.evaluator
	}
	var exprOpts []ExprEvaluatorOption
	if cfg.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cfg.programCache))
	}
	if cfg.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(cfg.functions))
	}
	cfg.evaluator = NewExprEvaluator(exprOpts...)
	return cfg.evaluator
}

func (cfg *containerConfig) evalLogger() EvaluatorLogger {
	if cfg.evaluatorLogger != nil {
		return cfg.evaluatorLogger
	}
	return noopEvaluatorLogger{}
}
