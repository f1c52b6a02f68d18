package params

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

var evaluatorFactories = []struct {
	name string
	new  func(cache ProgramCache, registry *FunctionRegistry) Evaluator
	// unit is a verify rule accepting values in [0,1].
	unit string
	// twice calls the registered "twice" function on opacity.
	twice string
}{
	{
		name: "expr",
		new: func(cache ProgramCache, registry *FunctionRegistry) Evaluator {
			opts := []ExprEvaluatorOption{}
			if cache != nil {
				opts = append(opts, ExprWithProgramCache(cache))
			}
			if registry != nil {
				opts = append(opts, ExprWithFunctionRegistry(registry))
			}
			return NewExprEvaluator(opts...)
		},
		unit:  "v >= 0.0 && v <= 1.0",
		twice: "twice(opacity)",
	},
	{
		name: "cel",
		new: func(cache ProgramCache, registry *FunctionRegistry) Evaluator {
			opts := []CELEvaluatorOption{}
			if cache != nil {
				opts = append(opts, CELWithProgramCache(cache))
			}
			if registry != nil {
				opts = append(opts, CELWithFunctionRegistry(registry))
			}
			return NewCELEvaluator(opts...)
		},
		unit:  "v >= 0.0 && v <= 1.0",
		twice: `call("twice", opacity)`,
	},
	{
		name: "js",
		new: func(cache ProgramCache, registry *FunctionRegistry) Evaluator {
			opts := []JSEvaluatorOption{}
			if cache != nil {
				opts = append(opts, JSWithProgramCache(cache))
			}
			if registry != nil {
				opts = append(opts, JSWithFunctionRegistry(registry))
			}
			return NewJSEvaluator(opts...)
		},
		unit:  "v >= 0.0 && v <= 1.0",
		twice: "twice(opacity)",
	},
}

func TestVerifyRulesAcrossEvaluators(t *testing.T) {
	for _, factory := range evaluatorFactories {
		factory := factory
		t.Run(factory.name, func(t *testing.T) {
			c := New(WithEvaluator(factory.new(nil, nil)))
			mustAdd(t, c, "opacity", Default(1.0), VType(Float), VerifyExpr(factory.unit, "Opacity must be in [0,1]."))

			if err := c.Set("opacity", 0.25); err != nil {
				t.Fatalf("Set returned error: %v", err)
			}
			err := c.Set("opacity", 1.5)
			if KindOf(err) != KindValue {
				t.Fatalf("expected value error, got %v", err)
			}
			if c.Get("opacity") != 0.25 {
				t.Fatalf("rejected value must not be stored, got %v", c.Get("opacity"))
			}
		})
	}
}

func TestEvaluateSnapshotAcrossEvaluators(t *testing.T) {
	for _, factory := range evaluatorFactories {
		factory := factory
		t.Run(factory.name, func(t *testing.T) {
			c := New(WithEvaluator(factory.new(nil, nil)))
			mustAdd(t, c, "opacity", Default(0.75), VType(Float))
			mustAdd(t, c, "visible", Default(true), VType(Bool))

			resp, err := c.Evaluate("visible && opacity > 0.5")
			if err != nil {
				t.Fatalf("Evaluate returned error: %v", err)
			}
			if resp.Value != true {
				t.Fatalf("expected true, got %#v", resp.Value)
			}

			resp, err = c.EvaluateWith(RuleContext{Snapshot: map[string]any{"visible": false, "opacity": 1.0}}, "visible && opacity > 0.5")
			if err != nil {
				t.Fatalf("EvaluateWith returned error: %v", err)
			}
			if resp.Value != false {
				t.Fatalf("snapshot override should win, got %#v", resp.Value)
			}
		})
	}
}

func TestCustomFunctionsAcrossEvaluators(t *testing.T) {
	for _, factory := range evaluatorFactories {
		factory := factory
		t.Run(factory.name, func(t *testing.T) {
			registry := NewFunctionRegistry()
			if err := registry.Register("twice", func(args ...any) (any, error) {
				if len(args) != 1 {
					return nil, fmt.Errorf("twice expects 1 arg")
				}
				f, ok := asFloat(args[0])
				if !ok {
					return nil, fmt.Errorf("twice expects a number")
				}
				return f * 2, nil
			}); err != nil {
				t.Fatalf("register twice: %v", err)
			}
			c := New(WithFunctionRegistry(registry), WithEvaluator(factory.new(nil, registry)))
			mustAdd(t, c, "opacity", Default(0.25), VType(Float))

			resp, err := c.Evaluate(factory.twice)
			if err != nil {
				t.Fatalf("Evaluate returned error: %v", err)
			}
			if f, ok := asFloat(resp.Value); !ok || f != 0.5 {
				t.Fatalf("expected 0.5, got %#v", resp.Value)
			}
		})
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewFunctionRegistry()
	fn := func(...any) (any, error) { return nil, nil }
	if err := registry.Register("Clamp", fn); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := registry.Register("clamp", fn); err == nil {
		t.Fatalf("names are case insensitive and must be unique")
	}
	if _, err := registry.Call("missing"); err == nil {
		t.Fatalf("expected error for unknown function")
	}
}

type countingProgramCache struct {
	store  map[string]any
	hits   int
	misses int
}

func (c *countingProgramCache) Get(key string) (any, bool) {
	value, ok := c.store[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return value, ok
}

func (c *countingProgramCache) Set(key string, value any) {
	if c.store == nil {
		c.store = make(map[string]any)
	}
	c.store[key] = value
}

func TestProgramCacheSharesVerifyRules(t *testing.T) {
	cache := &countingProgramCache{}
	c := New(WithProgramCache(cache))
	mustAdd(t, c, "opacity", Default(1.0), VType(Float), VerifyExpr("v >= 0.0 && v <= 1.0", ""))
	mustAdd(t, c, "alpha", Default(0.0), VType(Float), VerifyExpr("v >= 0.0 && v <= 1.0", ""))

	if cache.misses != 1 || cache.hits != 1 {
		t.Fatalf("expected one miss and one hit, got %d misses %d hits", cache.misses, cache.hits)
	}
	if err := c.Set("alpha", 0.5); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if cache.misses != 1 || cache.hits != 1 {
		t.Fatalf("running a compiled rule must not touch the cache")
	}
}

func TestEvaluatorLoggerRecordsVerifyRuns(t *testing.T) {
	var events []EvaluatorLogEvent
	c := New(WithEvaluatorLogger(EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
		events = append(events, event)
	})))
	mustAdd(t, c, "opacity", VType(Float), VerifyExpr("v <= 1.0", ""))
	if err := c.Set("opacity", 0.5); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	event := events[0]
	if event.Engine != "expr" || event.Path != "opacity" || event.Expr != "v <= 1.0" || event.Err != nil {
		t.Fatalf("unexpected event %#v", event)
	}

	if _, err := c.Evaluate("opacity +"); err == nil {
		t.Fatalf("expected evaluation error")
	}
	last := events[len(events)-1]
	var evalErr *EvaluationError
	if !errors.As(last.Err, &evalErr) || last.Path != "unknown" {
		t.Fatalf("evaluation failure should be logged, got %#v", last)
	}
}

func TestRegistryValidatesNames(t *testing.T) {
	registry := NewFunctionRegistry()
	fn := func(...any) (any, error) { return nil, nil }
	for _, name := range []string{"", "2x", "font-size", "path", "Call"} {
		if err := registry.Register(name, fn); err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
	if err := registry.Register("to_rgb2", fn); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if !registry.Has("TO_RGB2") || registry.Has("missing") {
		t.Fatalf("Has must match case-insensitively")
	}
}

func TestColorFunctionsAcrossEvaluators(t *testing.T) {
	rules := map[string]string{
		"expr": `luminance(v) >= 0.5`,
		"cel":  `call("luminance", v) >= 0.5`,
		"js":   `luminance(v) >= 0.5`,
	}
	for _, factory := range evaluatorFactories {
		factory := factory
		t.Run(factory.name, func(t *testing.T) {
			c := New(WithEvaluator(factory.new(nil, ColorFunctions())))
			mustAdd(t, c, "foreground", Default(MustColor(1, 1, 1)), VType(ColorType), VerifyExpr(rules[factory.name], "too dark"))
			if err := c.Set("foreground", MustColor(0, 0, 0.1)); !errors.Is(err, ErrValue) {
				t.Fatalf("expected dark color to be rejected, got %v", err)
			}
			if err := c.Set("foreground", MustColor(0.9, 0.9, 0.9)); err != nil {
				t.Fatalf("Set returned error: %v", err)
			}
		})
	}
}

func TestClampFunction(t *testing.T) {
	registry := ColorFunctions()
	got, err := registry.Call("clamp", 1.5, 0, 1)
	if err != nil || got != 1.0 {
		t.Fatalf("clamp(1.5, 0, 1) = %v, %v", got, err)
	}
	if _, err := registry.Call("clamp", "x", 0, 1); err == nil {
		t.Fatalf("expected error for non-numeric argument")
	}
	if _, err := registry.Call("luminance", "white"); err == nil {
		t.Fatalf("expected error for non-color argument")
	}
}

func TestPredicateRulesRejectNonBool(t *testing.T) {
	for _, factory := range evaluatorFactories {
		factory := factory
		t.Run(factory.name, func(t *testing.T) {
			rule, err := factory.new(nil, nil).Compile("v + 1", AsPredicate())
			if err != nil {
				t.Fatalf("Compile returned error: %v", err)
			}
			_, err = rule.Evaluate(RuleContext{Snapshot: map[string]any{"v": 1}})
			if err == nil || !strings.Contains(err.Error(), "want bool") {
				t.Fatalf("expected non-bool failure, got %v", err)
			}

			plain, err := factory.new(nil, nil).Compile("v + 1")
			if err != nil {
				t.Fatalf("Compile returned error: %v", err)
			}
			if _, err := plain.Evaluate(RuleContext{Snapshot: map[string]any{"v": 1}}); err != nil {
				t.Fatalf("plain rules may return any value, got %v", err)
			}
		})
	}
}

func TestProgramCacheKeysByEngine(t *testing.T) {
	cache := NewProgramCache()
	expr := NewExprEvaluator(ExprWithProgramCache(cache))
	js := NewJSEvaluator(JSWithProgramCache(cache))
	for _, e := range []Evaluator{expr, js, expr} {
		out, err := e.Evaluate(RuleContext{Snapshot: map[string]any{"v": 2}}, "v * 2")
		if err != nil {
			t.Fatalf("Evaluate returned error: %v", err)
		}
		if f, ok := asFloat(out); !ok || f != 4 {
			t.Fatalf("expected 4, got %#v", out)
		}
	}
}

func TestLogEvaluationsLevels(t *testing.T) {
	logger := &recordingLogger{}
	c := New(WithEvaluatorLogger(LogEvaluations(logger)))
	mustAdd(t, c, "opacity", VType(Float), VerifyExpr("v <= 1.0", ""))
	if err := c.Set("opacity", 0.5); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if _, err := c.Evaluate("opacity +"); err == nil {
		t.Fatalf("expected evaluation error")
	}
	if len(logger.levels) != 2 || logger.levels[0] != log.DebugLevel || logger.levels[1] != log.WarnLevel {
		t.Fatalf("unexpected levels %v", logger.levels)
	}
}

func TestSetEvaluatorLoggerReachesNestedGroups(t *testing.T) {
	font := New(WithName("font"))
	mustAdd(t, font, "size", Default(0.05), VType(Float), VerifyExpr("v > 0.0", ""))
	c := New()
	mustAdd(t, c, "font", Default(font))

	var paths []string
	c.SetEvaluatorLogger(EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
		paths = append(paths, event.Path)
	}))
	if err := c.SetPath([]string{"font", "size"}, 0.1); err != nil {
		t.Fatalf("SetPath returned error: %v", err)
	}
	if len(paths) != 1 || paths[0] != "size" {
		t.Fatalf("expected nested verify run to be logged, got %v", paths)
	}
}
