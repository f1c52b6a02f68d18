package params

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*celEvaluator)

// CELWithProgramCache wires a ProgramCache into the CEL evaluator.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(e *celEvaluator) {
		e.cache = cache
	}
}

// CELWithFunctionRegistry exposes the registry through call(name, args...).
// CEL declares functions statically, so registry names are not bound
// directly.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return func(e *celEvaluator) {
		if registry != nil {
			e.registry = registry.Clone()
		}
	}
}

// celReserved names the variables every environment declares.
var celReserved = map[string]bool{"now": true, "args": true, "metadata": true, "path": true, "call": true}

// celCallArity bounds the arguments call() accepts after the function name.
const celCallArity = 4

// celEvaluator type checks against the snapshot variables, so programs are
// cached per expression and variable set.
type celEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELEvaluator constructs an Evaluator backed by cel-go.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	e := &celEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	rule, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}
	return rule.Evaluate(ctx)
}

// Compile checks the syntax only. Type checking needs the snapshot
// variables and happens on the first evaluation for each variable set.
func (e *celEvaluator) Compile(expression string, opts ...CompileOption) (CompiledRule, error) {
	if expression == "" {
		return nil, ErrEmptyExpression
	}
	env, err := e.environment(nil)
	if err != nil {
		return nil, err
	}
	if _, issues := env.Parse(expression); issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	rule := &celCompiledRule{evaluator: e, expression: expression}
	return applyCompileOptions(opts).finish(expression, rule), nil
}

func (e *celEvaluator) program(expression string, snapshot map[string]any) (celgo.Program, error) {
	variables := make([]string, 0, len(snapshot))
	for key := range snapshot {
		variables = append(variables, key)
	}
	return cachedProgram(e.cache, programKey("cel", expression, variables...), func() (celgo.Program, error) {
		env, err := e.environment(snapshot)
		if err != nil {
			return nil, err
		}
		ast, issues := env.Compile(expression)
		if issues != nil && issues.Err() != nil {
			return nil, issues.Err()
		}
		return env.Program(ast)
	})
}

func (e *celEvaluator) environment(snapshot map[string]any) (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("args", celgo.DynType),
		celgo.Variable("metadata", celgo.DynType),
		celgo.Variable("path", celgo.StringType),
	}
	if e.registry != nil {
		opts = append(opts, e.callFunction())
	}
	for key := range snapshot {
		if !celReserved[key] {
			opts = append(opts, celgo.Variable(key, celgo.DynType))
		}
	}
	return celgo.NewEnv(opts...)
}

type celCompiledRule struct {
	evaluator  *celEvaluator
	expression string
}

func (r *celCompiledRule) Evaluate(ctx RuleContext) (any, error) {
	ctx = ctx.withDefaults()
	snapshot := snapshotAsMap(ctx.Snapshot)
	program, err := r.evaluator.program(r.expression, snapshot)
	if err != nil {
		return nil, err
	}
	activation := map[string]any{
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
		"path":     ctx.Path,
	}
	for key, value := range snapshot {
		if !celReserved[key] {
			activation[key] = value
		}
	}
	out, _, err := program.Eval(activation)
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

func snapshotAsMap(value any) map[string]any {
	if m, ok := value.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// callFunction declares call(name, args...) with one overload per arity.
func (e *celEvaluator) callFunction() celgo.EnvOption {
	binding := celgo.FunctionBinding(func(values ...ref.Val) ref.Val {
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("params: call name must be string")
		}
		args := make([]any, 0, len(values)-1)
		for _, val := range values[1:] {
			args = append(args, val.Value())
		}
		result, err := e.registry.Call(name, args...)
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	})
	overloads := make([]celgo.FunctionOpt, 0, celCallArity+1)
	for n := 0; n <= celCallArity; n++ {
		args := []*celgo.Type{celgo.StringType}
		for i := 0; i < n; i++ {
			args = append(args, celgo.DynType)
		}
		overloads = append(overloads, celgo.Overload(fmt.Sprintf("call_string_dyn%d", n), args, celgo.DynType, binding))
	}
	return celgo.Function("call", overloads...)
}
