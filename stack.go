package params

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-params/layering"
)

// Layer is a named set of values, such as one parameter file or the
// command line, applied to a container at a priority. Higher priority
// layers win.
type Layer struct {
	Name     string
	Priority int
	Source   string
	Values   map[string]any
}

// LayerOption configures optional layer metadata.
type LayerOption func(*Layer)

// WithLayerSource records where the layer values came from, usually a file
// path.
func WithLayerSource(source string) LayerOption {
	return func(layer *Layer) {
		layer.Source = source
	}
}

// NewLayer constructs a Layer holding a deep copy of values.
func NewLayer(name string, priority int, values map[string]any, opts ...LayerOption) Layer {
	layer := Layer{
		Name:     name,
		Priority: priority,
		Values:   layering.Clone(values),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&layer)
		}
	}
	return layer
}

func (l Layer) clone() Layer {
	l.Values = layering.Clone(l.Values)
	return l
}

var (
	// ErrLayerNameRequired indicates a layer without a name.
	ErrLayerNameRequired = errors.New("params: layer name must be provided")
	// ErrDuplicateLayerName indicates two layers share a name.
	ErrDuplicateLayerName = errors.New("params: layer names must be unique")
	// ErrPriorityOrder indicates two layers share a priority.
	ErrPriorityOrder = errors.New("params: layer priorities must be strictly ordered")
)

// Stack is an immutable set of layers ordered strongest first.
type Stack struct {
	layers []Layer
}

// NewStack validates the layers and sorts them by descending priority.
func NewStack(layers ...Layer) (*Stack, error) {
	seen := make(map[string]struct{}, len(layers))
	copied := make([]Layer, len(layers))
	for i, layer := range layers {
		if layer.Name == "" {
			return nil, ErrLayerNameRequired
		}
		if _, ok := seen[layer.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLayerName, layer.Name)
		}
		seen[layer.Name] = struct{}{}
		copied[i] = layer.clone()
	}

	sort.Slice(copied, func(i, j int) bool {
		if copied[i].Priority == copied[j].Priority {
			return copied[i].Name < copied[j].Name
		}
		return copied[i].Priority > copied[j].Priority
	})
	for i := 1; i < len(copied); i++ {
		if copied[i-1].Priority <= copied[i].Priority {
			return nil, fmt.Errorf("%w: %d", ErrPriorityOrder, copied[i].Priority)
		}
	}
	return &Stack{layers: copied}, nil
}

// Layers returns copies of the layers, strongest first.
func (s *Stack) Layers() []Layer {
	if s == nil || len(s.layers) == 0 {
		return nil
	}
	out := make([]Layer, len(s.layers))
	for i := range s.layers {
		out[i] = s.layers[i].clone()
	}
	return out
}

// Len returns the number of layers.
func (s *Stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.layers)
}

// Merge combines the layer values. Nested maps merge key by key and a nil
// value keeps the weaker layer's value.
func (s *Stack) Merge() map[string]any {
	if s == nil {
		return map[string]any{}
	}
	values := make([]map[string]any, len(s.layers))
	for i := range s.layers {
		values[i] = s.layers[i].Values
	}
	return layering.MergeLayers(values...)
}

// Apply writes the merged values into c through UpdateValues.
func (s *Stack) Apply(c *Container) error {
	if c == nil {
		return newError(KindLookup, "", "cannot apply layers to a nil container")
	}
	return c.UpdateValues(s.Merge())
}

// Trace reports which layers define path, given in flat "group_key" form.
// The first entry with Found set supplied the effective value.
func (s *Stack) Trace(path string) Trace {
	trace := Trace{Path: path, Layers: []Provenance{}}
	if s == nil {
		return trace
	}
	for _, layer := range s.layers {
		flat := layering.Flatten(layer.Values, Separator)
		value, found := flat[path]
		if found && value == nil {
			found = false
		}
		trace.Layers = append(trace.Layers, Provenance{
			Layer:    layer.Name,
			Priority: layer.Priority,
			Source:   layer.Source,
			Path:     path,
			Value:    value,
			Found:    found,
		})
	}
	return trace
}

// LayerWith merges layers, strongest first, and applies the result to c.
func (c *Container) LayerWith(layers ...map[string]any) error {
	return c.UpdateValues(layering.MergeLayers(layers...))
}
