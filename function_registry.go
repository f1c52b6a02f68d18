package params

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Function is a helper callable from expressions.
type Function func(args ...any) (any, error)

// FunctionRegistry maps case-insensitive names to functions. Every engine
// exposes the functions by name and through call(name, args...).
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: make(map[string]Function)}
}

// Register adds fn under name. Names must be identifiers, must not shadow
// the reserved expression variables and must be unique.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("params: function %q is nil", name)
	}
	if !isIdentifier(name) {
		return fmt.Errorf("params: function name %q is not an identifier", name)
	}
	key := strings.ToLower(name)
	if celReserved[key] {
		return fmt.Errorf("params: function name %q is reserved", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("params: function %q already registered", name)
	}
	r.functions[key] = fn
	return nil
}

func (r *FunctionRegistry) Has(name string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.functions[strings.ToLower(name)]
	return ok
}

// Clone returns a copy that can be extended without touching r.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{functions: make(map[string]Function, len(r.functions))}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Call runs the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("params: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("params: function %q not registered", name)
	}
	return fn(args...)
}

// Names returns the lower-cased names in sorted order.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

// ColorFunctions returns a registry with helpers for color verify rules:
// luminance(color) gives the relative luminance of an RGB(A) sequence and
// clamp(x, lo, hi) bounds a number.
func ColorFunctions() *FunctionRegistry {
	r := NewFunctionRegistry()
	_ = r.Register("luminance", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("luminance expects 1 argument, got %d", len(args))
		}
		rgb, ok := colorComponents(args[0])
		if !ok {
			rgb, ok = numericSequence(args[0])
		}
		if !ok || len(rgb) < 3 {
			return nil, fmt.Errorf("luminance expects a color, got %T", args[0])
		}
		return 0.2126*rgb[0] + 0.7152*rgb[1] + 0.0722*rgb[2], nil
	})
	_ = r.Register("clamp", func(args ...any) (any, error) {
		if len(args) != 3 {
			return nil, fmt.Errorf("clamp expects 3 arguments, got %d", len(args))
		}
		bounds := make([]float64, 3)
		for i, arg := range args {
			f, ok := asFloat(arg)
			if !ok {
				return nil, fmt.Errorf("clamp argument %d must be a number, got %T", i, arg)
			}
			bounds[i] = f
		}
		return min(max(bounds[0], bounds[1]), bounds[2]), nil
	})
	return r
}

// WithFunctionRegistry exposes the functions in registry to expressions.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *containerConfig) {
		if registry != nil {
			cfg.functions = registry.Clone()
		}
	}
}

// WithCustomFunction registers fn under name for expressions. Invalid or
// duplicate names are ignored.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *containerConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}
