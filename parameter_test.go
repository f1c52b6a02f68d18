package params

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestNewParameterDefaults(t *testing.T) {
	p, err := NewParameter("opacity", Default(1), VType(Float), Doc("The opacity."))
	if err != nil {
		t.Fatalf("NewParameter returned error: %v", err)
	}
	if p.Value() != 1.0 || p.Default() != 1.0 {
		t.Fatalf("expected int default widened to float64, got value=%#v default=%#v", p.Value(), p.Default())
	}
	if !p.IsDefault() || p.IsSetByUser() {
		t.Fatalf("fresh parameter should be default and not set by user")
	}
	if p.Doc() != "The opacity." || p.Name() != "opacity" {
		t.Fatalf("unexpected metadata %q %q", p.Name(), p.Doc())
	}
}

func TestNewParameterRejectsBadDeclarations(t *testing.T) {
	cases := []struct {
		name string
		opts []ParamOption
	}{
		{"bad-default-type", []ParamOption{Default("x"), VType(Int)}},
		{"bad-default-allow", []ParamOption{Default(3), Allow(1, 2)}},
		{"negative-size", []ParamOption{Size(-1)}},
		{"bad-expression", []ParamOption{VerifyExpr("v >", "broken")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewParameter("p", tc.opts...)
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
	if _, err := NewParameter(""); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error for empty name, got %v", err)
	}
}

func TestSetValueTypeChecks(t *testing.T) {
	p, _ := NewParameter("year", VType(Int))
	err := p.SetValue("1980")
	if !errors.Is(err, ErrType) {
		t.Fatalf("expected type error, got %v", err)
	}
	want := "'year' must be of type int but string was provided."
	if err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err := p.SetValue(1980); err != nil {
		t.Fatalf("SetValue returned error: %v", err)
	}
	if err := p.SetValue(nil); err != nil {
		t.Fatalf("nil must always be accepted, got %v", err)
	}
	if p.Value() != nil {
		t.Fatalf("expected nil value, got %#v", p.Value())
	}
}

func TestSequenceConstraints(t *testing.T) {
	p, _ := NewParameter("position", VType(Float), Size(2))
	cases := []struct {
		value any
		kind  error
	}{
		{0.5, ErrType},
		{[]any{0.5}, ErrType},
		{[]any{0.5, "x"}, ErrType},
	}
	for _, tc := range cases {
		if err := p.SetValue(tc.value); !errors.Is(err, tc.kind) {
			t.Fatalf("SetValue(%#v) = %v, want %v", tc.value, err, tc.kind)
		}
	}
	if err := p.SetValue([]any{1, 0.5}); err != nil {
		t.Fatalf("SetValue returned error: %v", err)
	}
	if got := p.Value(); !reflect.DeepEqual(got, []float64{1, 0.5}) {
		t.Fatalf("expected normalised []float64, got %#v", got)
	}

	arr, _ := NewParameter("names", VType(String), Array())
	if err := arr.SetValue([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("SetValue returned error: %v", err)
	}
	if err := arr.SetValue("a"); !errors.Is(err, ErrType) {
		t.Fatalf("expected type error for scalar, got %v", err)
	}
}

func TestAllowAndVerify(t *testing.T) {
	p, _ := NewParameter("family", Default("arial"), Allow("arial", "times"))
	err := p.SetValue("helvetica")
	if !errors.Is(err, ErrValue) {
		t.Fatalf("expected value error, got %v", err)
	}
	if !strings.Contains(err.Error(), `only the following are allowed: ["arial", "times"]`) {
		t.Fatalf("unexpected message %q", err.Error())
	}

	positive := Verify(func(v any) bool { return v.(int) > 0 }, "must be positive")
	q, _ := NewParameter("count", VType(Int), positive)
	err = q.SetValue(-1)
	if !errors.Is(err, ErrValue) || !strings.HasSuffix(err.Error(), "must be positive") {
		t.Fatalf("expected verify failure, got %v", err)
	}
	if err := q.SetValue(2); err != nil {
		t.Fatalf("SetValue returned error: %v", err)
	}
}

func TestVerifyExpression(t *testing.T) {
	p, err := NewParameter("opacity", Default(1.0), VType(Number...),
		VerifyExpr("v >= 0 && v <= 1", "The opacity must be in [0,1]"))
	if err != nil {
		t.Fatalf("NewParameter returned error: %v", err)
	}
	if err := p.SetValue(0); err != nil {
		t.Fatalf("SetValue(0) returned error: %v", err)
	}
	err = p.SetValue(1.5)
	if !errors.Is(err, ErrValue) {
		t.Fatalf("expected value error, got %v", err)
	}
	if p.Value() != 0 {
		t.Fatalf("rejected value must not be stored, got %#v", p.Value())
	}

	str, _ := NewParameter("key", VerifyExpr("v + 1", "not a predicate"))
	err = str.SetValue(1)
	if !errors.Is(err, ErrValue) || !strings.Contains(err.Error(), "want bool") {
		t.Fatalf("expected non-bool result failure, got %v", err)
	}
}

func TestVerifyExpressionSeesColorComponents(t *testing.T) {
	p, err := NewParameter("color", VType(ColorType), VerifyExpr("sum(v) > 0", "color must not be black"))
	if err != nil {
		t.Fatalf("NewParameter returned error: %v", err)
	}
	if err := p.SetValue([]any{0, 0, 0}); !errors.Is(err, ErrValue) {
		t.Fatalf("expected black to be rejected, got %v", err)
	}
	if err := p.SetValue([]any{1, 0, 0}); err != nil {
		t.Fatalf("SetValue returned error: %v", err)
	}
}

func TestStampAdvancesOnlyOnChange(t *testing.T) {
	p, _ := NewParameter("year", Default(1980))
	first := p.Modified()
	if err := p.SetValue(1980); err != nil {
		t.Fatalf("SetValue returned error: %v", err)
	}
	if p.Modified() != first {
		t.Fatalf("stamp advanced without a change")
	}
	if !p.IsSetByUser() {
		t.Fatalf("assignment must latch setByUser even without a change")
	}
	if err := p.SetValue(1981); err != nil {
		t.Fatalf("SetValue returned error: %v", err)
	}
	if p.Modified() <= first {
		t.Fatalf("stamp did not advance")
	}
}

func TestSetDefaultFollowsUnsetValue(t *testing.T) {
	p, _ := NewParameter("size", Default(1))
	if err := p.SetDefault(2); err != nil {
		t.Fatalf("SetDefault returned error: %v", err)
	}
	if p.Value() != 2 || !p.IsDefault() {
		t.Fatalf("value should follow the default, got %#v", p.Value())
	}

	if err := p.SetValue(5); err != nil {
		t.Fatalf("SetValue returned error: %v", err)
	}
	if err := p.SetDefault(3); err != nil {
		t.Fatalf("SetDefault returned error: %v", err)
	}
	if p.Value() != 5 || p.IsDefault() {
		t.Fatalf("user value must be kept, got %#v", p.Value())
	}
}

func TestRequiredValidation(t *testing.T) {
	p, _ := NewParameter("window", Required())
	err := p.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "The parameter 'window' is marked as required, but no value is assigned." {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err := p.SetValue("main"); err != nil {
		t.Fatalf("SetValue returned error: %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestParameterString(t *testing.T) {
	p, _ := NewParameter("position", Default([]any{0.5, 1}), VType(Number...), Size(2), Doc("Where to draw."))
	if got := p.String(); got != "position=[0.5, 1]" {
		t.Fatalf("unexpected String %q", got)
	}
	help := p.Describe()
	for _, want := range []string{"position\n  Where to draw.", "Default: [0.5, 1]", "Type(s): int or float64", "Size:    2"} {
		if !strings.Contains(help, want) {
			t.Fatalf("Describe missing %q:\n%s", want, help)
		}
	}
}
