package params

import (
	"fmt"
	"reflect"
)

// Color is an RGB or RGBA value with components in [0,1].
type Color struct {
	components [4]float64
	size       int
}

// AutoColor is a Color that may be filled in automatically from the
// background of an owning object.
type AutoColor struct {
	Color
}

// NewColor builds a color from three or four components.
func NewColor(components ...float64) (Color, error) {
	if len(components) != 3 && len(components) != 4 {
		return Color{}, fmt.Errorf("color requires 3 or 4 components, got %d", len(components))
	}
	var c Color
	for i, v := range components {
		if v < 0 || v > 1 {
			return Color{}, fmt.Errorf("the supplied RGB color values must be in range [0,1], got %v", components)
		}
		c.components[i] = v
	}
	c.size = len(components)
	return c, nil
}

// MustColor is NewColor for literals known to be valid.
func MustColor(components ...float64) Color {
	c, err := NewColor(components...)
	if err != nil {
		panic(err)
	}
	return c
}

// NewAutoColor builds an AutoColor from three or four components.
func NewAutoColor(components ...float64) (AutoColor, error) {
	c, err := NewColor(components...)
	if err != nil {
		return AutoColor{}, err
	}
	return AutoColor{Color: c}, nil
}

// RGB returns the components (three, or four with alpha).
func (c Color) RGB() []float64 {
	out := make([]float64, c.size)
	copy(out, c.components[:c.size])
	return out
}

// HasAlpha reports whether an alpha component was supplied.
func (c Color) HasAlpha() bool {
	return c.size == 4
}

// Sum returns the sum of the RGB components.
func (c Color) Sum() float64 {
	return c.components[0] + c.components[1] + c.components[2]
}

func (c Color) String() string {
	return Repr(c.RGB())
}

var (
	colorType     = reflect.TypeFor[Color]()
	autoColorType = reflect.TypeFor[AutoColor]()
)

// promoteColor converts a plain numeric 3/4 sequence to the color type the
// parameter accepts. AutoColor wins when both are accepted.
func promoteColor(types []reflect.Type, value any) (any, bool, error) {
	wantAuto := acceptsType(types, autoColorType)
	wantColor := acceptsType(types, colorType)
	if !wantAuto && !wantColor {
		return value, false, nil
	}
	components, ok := numericSequence(value)
	if !ok || (len(components) != 3 && len(components) != 4) {
		return value, false, nil
	}
	if wantAuto {
		c, err := NewAutoColor(components...)
		return c, true, err
	}
	c, err := NewColor(components...)
	return c, true, err
}

func numericSequence(value any) ([]float64, bool) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]float64, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		f, ok := asFloat(rv.Index(i).Interface())
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func colorComponents(value any) ([]float64, bool) {
	switch c := value.(type) {
	case Color:
		return c.RGB(), true
	case AutoColor:
		return c.RGB(), true
	default:
		return nil, false
	}
}
