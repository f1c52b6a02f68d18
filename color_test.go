package params

import (
	"reflect"
	"testing"
)

func TestNewColor(t *testing.T) {
	c, err := NewColor(0.2, 0.4, 0.6)
	if err != nil {
		t.Fatalf("NewColor returned error: %v", err)
	}
	if !reflect.DeepEqual(c.RGB(), []float64{0.2, 0.4, 0.6}) || c.HasAlpha() {
		t.Fatalf("unexpected color %v", c)
	}
	if c.Sum() < 1.19 || c.Sum() > 1.21 {
		t.Fatalf("unexpected sum %v", c.Sum())
	}

	rgba, err := NewColor(1, 1, 1, 0.5)
	if err != nil || !rgba.HasAlpha() || len(rgba.RGB()) != 4 {
		t.Fatalf("unexpected rgba %v %v", rgba, err)
	}

	if _, err := NewColor(1, 1); err == nil {
		t.Fatalf("expected error for two components")
	}
	if _, err := NewColor(0, 2, 0); err == nil {
		t.Fatalf("expected error for out of range component")
	}
}

func TestColorParameterPromotesSequences(t *testing.T) {
	p, err := NewParameter("color", VType(ColorType))
	if err != nil {
		t.Fatalf("NewParameter returned error: %v", err)
	}
	if err := p.SetValue([]any{1, 0, 0}); err != nil {
		t.Fatalf("SetValue returned error: %v", err)
	}
	if _, ok := p.Value().(Color); !ok {
		t.Fatalf("expected Color, got %T", p.Value())
	}
	if err := p.SetValue([]any{1, 0, 5}); KindOf(err) != KindValue {
		t.Fatalf("expected value error for out of range color, got %v", err)
	}
	if err := p.SetValue("red"); KindOf(err) != KindType {
		t.Fatalf("expected type error for string, got %v", err)
	}
}

func TestAutoColorPreferredWhenAccepted(t *testing.T) {
	p, err := NewParameter("color", VType(AutoColorType, ColorType))
	if err != nil {
		t.Fatalf("NewParameter returned error: %v", err)
	}
	if err := p.SetValue([]float64{0, 0, 0}); err != nil {
		t.Fatalf("SetValue returned error: %v", err)
	}
	auto, ok := p.Value().(AutoColor)
	if !ok {
		t.Fatalf("expected AutoColor, got %T", p.Value())
	}
	if auto.Sum() != 0 {
		t.Fatalf("unexpected sum %v", auto.Sum())
	}
	if err := p.SetValue(MustColor(1, 1, 1)); err != nil {
		t.Fatalf("explicit Color should be accepted: %v", err)
	}
}
