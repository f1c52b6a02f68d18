package params

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Parameter is a single named, typed slot owned by a Container.
type Parameter struct {
	name      string
	value     any
	def       any
	vtype     []reflect.Type
	size      int
	array     bool
	allow     []any
	required  bool
	private   bool
	verifiers []verifier
	doc       string

	setByUser bool
	stamp     Stamp

	evaluator  Evaluator
	evalLogger EvaluatorLogger
}

type verifier struct {
	fn      func(any) bool
	expr    string
	message string
	rule    CompiledRule
}

// ParamOption configures a Parameter at declaration time.
type ParamOption func(*paramSpec)

type paramSpec struct {
	def       any
	vtype     []reflect.Type
	size      int
	array     bool
	allow     []any
	required  bool
	private   bool
	verifiers []verifier
	doc       string
}

// Default sets the default value. The value starts equal to it.
func Default(value any) ParamOption {
	return func(s *paramSpec) {
		s.def = value
	}
}

// VType restricts values to the given types.
func VType(types ...reflect.Type) ParamOption {
	return func(s *paramSpec) {
		s.vtype = append(s.vtype, types...)
	}
}

// Size requires a sequence of exactly n elements.
func Size(n int) ParamOption {
	return func(s *paramSpec) {
		s.size = n
	}
}

// Array requires a sequence of any length.
func Array() ParamOption {
	return func(s *paramSpec) {
		s.array = true
	}
}

// Allow restricts values to the listed ones.
func Allow(values ...any) ParamOption {
	return func(s *paramSpec) {
		s.allow = append(s.allow, values...)
	}
}

// Required makes Validate fail while both value and default are nil.
func Required() ParamOption {
	return func(s *paramSpec) {
		s.required = true
	}
}

// Private hides the parameter from Keys, Items and printed output.
func Private() ParamOption {
	return func(s *paramSpec) {
		s.private = true
	}
}

// Doc sets the help text.
func Doc(doc string) ParamOption {
	return func(s *paramSpec) {
		s.doc = doc
	}
}

// Verify rejects values for which fn returns false, reporting message.
func Verify(fn func(any) bool, message string) ParamOption {
	return func(s *paramSpec) {
		if fn != nil {
			s.verifiers = append(s.verifiers, verifier{fn: fn, message: message})
		}
	}
}

// VerifyExpr rejects values for which expr does not evaluate to true. The
// candidate value is bound to v and value.
//
//	params.VerifyExpr("v >= 0 && v <= 1", "opacity must be in [0,1]")
func VerifyExpr(expr, message string) ParamOption {
	return func(s *paramSpec) {
		s.verifiers = append(s.verifiers, verifier{expr: expr, message: message})
	}
}

// NewParameter declares a standalone parameter. Expression verifiers use the
// default expr evaluator.
func NewParameter(name string, opts ...ParamOption) (*Parameter, error) {
	return newParameter(name, nil, nil, opts)
}

func newParameter(name string, evaluator Evaluator, logger EvaluatorLogger, opts []ParamOption) (*Parameter, error) {
	spec := paramSpec{}
	for _, opt := range opts {
		if opt != nil {
			opt(&spec)
		}
	}
	if name == "" {
		return nil, newError(KindConfiguration, name, "parameter name must not be empty")
	}
	if _, ok := spec.def.(*Container); ok && !acceptsType(spec.vtype, ContainerType) {
		spec.vtype = append(spec.vtype, ContainerType)
	}
	if spec.size < 0 {
		return nil, newError(KindConfiguration, name, "size for parameter '%s' must be positive, got %d", name, spec.size)
	}
	if evaluator == nil {
		evaluator = NewExprEvaluator()
	}
	if logger == nil {
		logger = noopEvaluatorLogger{}
	}

	p := &Parameter{
		name:       name,
		vtype:      spec.vtype,
		size:       spec.size,
		array:      spec.array,
		allow:      spec.allow,
		required:   spec.required,
		private:    spec.private,
		verifiers:  spec.verifiers,
		doc:        spec.doc,
		evaluator:  evaluator,
		evalLogger: logger,
	}
	for i := range p.verifiers {
		v := &p.verifiers[i]
		if v.expr == "" {
			continue
		}
		rule, err := evaluator.Compile(v.expr, AsPredicate())
		if err != nil {
			e := newError(KindConfiguration, name, "verify expression for parameter '%s' does not compile", name)
			e.Err = err
			return nil, e
		}
		v.rule = rule
	}

	def, err := p.coerce(spec.def)
	if err != nil {
		e := newError(KindConfiguration, name, "default for parameter '%s' is invalid", name)
		e.Err = err
		return nil, e
	}
	p.def = def
	p.value = def
	p.stamp = NextStamp()
	return p, nil
}

// Name returns the immutable parameter name.
func (p *Parameter) Name() string { return p.name }

// Doc returns the help text.
func (p *Parameter) Doc() string { return p.doc }

// Private reports whether the parameter is hidden from iteration.
func (p *Parameter) Private() bool { return p.private }

// VType returns the accepted types.
func (p *Parameter) VType() []reflect.Type {
	return append([]reflect.Type(nil), p.vtype...)
}

// Size returns the required sequence length, or zero.
func (p *Parameter) Size() int { return p.size }

// IsArray reports whether the parameter holds a variable length sequence.
func (p *Parameter) IsArray() bool { return p.array }

// AllowedValues returns the allowed values, if restricted.
func (p *Parameter) AllowedValues() []any {
	return append([]any(nil), p.allow...)
}

// Value returns the current value. A handle whose referent was released
// resolves to nil.
func (p *Parameter) Value() any {
	return exposeValue(p.value)
}

// Default returns the default value.
func (p *Parameter) Default() any {
	return exposeValue(p.def)
}

func exposeValue(value any) any {
	if h, ok := value.(Handle); ok {
		return h.Resolve()
	}
	return value
}

// SetValue replaces the value after checking every constraint. Nil is
// always accepted. The modification stamp advances only when the value
// changes.
func (p *Parameter) SetValue(value any) error {
	stored, err := p.coerce(value)
	if err != nil {
		return err
	}
	p.setByUser = true
	if !sameValue(p.value, stored) {
		p.value = stored
		p.stamp = NextStamp()
	}
	return nil
}

// SetDefault replaces the default. The value follows the default while the
// parameter has not been set.
func (p *Parameter) SetDefault(value any) error {
	stored, err := p.coerce(value)
	if err != nil {
		return err
	}
	follow := !p.setByUser && sameValue(p.value, p.def)
	p.def = stored
	if follow && !sameValue(p.value, stored) {
		p.value = stored
		p.stamp = NextStamp()
	}
	return nil
}

// Required reports whether Validate demands a value.
func (p *Parameter) Required() bool { return p.required }

// SetRequired toggles the required flag.
func (p *Parameter) SetRequired(required bool) {
	p.required = required
}

// IsSetByUser reports whether SetValue was called since declaration.
func (p *Parameter) IsSetByUser() bool { return p.setByUser }

// IsDefault reports whether the value equals the default.
func (p *Parameter) IsDefault() bool {
	return sameValue(p.value, p.def)
}

// Modified returns the stamp of the last effective change. A nested
// container contributes its own latest stamp.
func (p *Parameter) Modified() Stamp {
	stamp := p.stamp
	if c, ok := p.value.(*Container); ok && c != nil {
		stamp = maxStamp(stamp, c.Modified())
	}
	return stamp
}

// Accepts reports whether t is one of the declared types. Parameters
// without a vtype accept everything.
func (p *Parameter) Accepts(t reflect.Type) bool {
	if len(p.vtype) == 0 {
		return true
	}
	return acceptsType(p.vtype, t)
}

func (p *Parameter) isContainer() bool {
	return acceptsType(p.vtype, ContainerType)
}

// nested returns the container held in value, falling back to default.
func (p *Parameter) nested() *Container {
	if c, ok := p.value.(*Container); ok && c != nil {
		return c
	}
	if c, ok := p.def.(*Container); ok && c != nil {
		return c
	}
	return nil
}

// Validate fails when the parameter is required and neither value nor
// default is set.
func (p *Parameter) Validate() error {
	if p.required && p.value == nil && p.def == nil {
		return newError(KindValidation, p.name, "The parameter '%s' is marked as required, but no value is assigned.", p.name)
	}
	return nil
}

// coerce applies the value conversions and constraint checks shared by
// SetValue, SetDefault and declaration.
func (p *Parameter) coerce(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if r, ok := value.(Referent); ok {
		if err := p.checkType(value); err != nil {
			return nil, err
		}
		if err := p.checkConstraints(value); err != nil {
			return nil, err
		}
		return r.Handle(), nil
	}
	if promoted, ok, err := promoteColor(p.vtype, value); ok {
		if err != nil {
			e := newError(KindValue, p.name, "invalid color for parameter '%s'", p.name)
			e.Err = err
			return nil, e
		}
		value = promoted
	}
	value = p.widen(value)
	if err := p.checkType(value); err != nil {
		return nil, err
	}
	if (p.size > 0 || p.array) && len(p.vtype) > 0 {
		value = normalizeSequence(p.vtype, value)
	}
	if err := p.checkConstraints(value); err != nil {
		return nil, err
	}
	return value, nil
}

// widen converts integer literals to the numeric type the parameter
// declares: float64 for float-only parameters, or a sized integer type when
// the value fits. Sequences convert element-wise. Untyped integer constants
// arrive as int.
func (p *Parameter) widen(value any) any {
	if len(p.vtype) == 0 || acceptsType(p.vtype, Int) {
		return value
	}
	if converted, ok := p.widenScalar(value); ok {
		return converted
	}
	if (p.size > 0 || p.array) && isSequence(value) {
		items := sequenceElements(value)
		changed := false
		for k, item := range items {
			if converted, ok := p.widenScalar(item); ok {
				items[k] = converted
				changed = true
			}
		}
		if changed {
			return items
		}
	}
	return value
}

func (p *Parameter) widenScalar(value any) (any, bool) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || acceptsType(p.vtype, rv.Type()) {
		return nil, false
	}
	var signed bool
	switch rv.Type() {
	case Int:
		signed = true
	case reflect.TypeFor[uint64]():
	default:
		return nil, false
	}
	if acceptsType(p.vtype, Float) {
		if signed {
			return float64(rv.Int()), true
		}
		return float64(rv.Uint()), true
	}
	for _, t := range p.vtype {
		if t.PkgPath() != "" {
			continue
		}
		target := reflect.New(t).Elem()
		switch t.Kind() {
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if signed && !target.OverflowInt(rv.Int()) {
				return rv.Convert(t).Interface(), true
			}
			if !signed && rv.Uint() <= math.MaxInt64 && !target.OverflowInt(int64(rv.Uint())) {
				return rv.Convert(t).Interface(), true
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			if signed && rv.Int() >= 0 && !target.OverflowUint(uint64(rv.Int())) {
				return rv.Convert(t).Interface(), true
			}
			if !signed && !target.OverflowUint(rv.Uint()) {
				return rv.Convert(t).Interface(), true
			}
		}
	}
	return nil, false
}

func (p *Parameter) checkType(value any) error {
	if p.size > 0 || p.array {
		if !isSequence(value) {
			return newError(KindType, p.name, "The parameter '%s' must be a sequence, but %s was provided.", p.name, describeType(value))
		}
		items := sequenceElements(value)
		if p.size > 0 && len(items) != p.size {
			return newError(KindType, p.name, "The parameter '%s' must be a sequence of length %d, but a sequence of length %d was provided.", p.name, p.size, len(items))
		}
		if len(p.vtype) == 0 {
			return nil
		}
		for _, item := range items {
			if !instanceOf(p.vtype, item) {
				return newError(KindType, p.name, "The values within '%s' must be of type %s but %s was provided.", p.name, typeNames(p.vtype), describeType(item))
			}
		}
		return nil
	}
	if !instanceOf(p.vtype, value) {
		return newError(KindType, p.name, "'%s' must be of type %s but %s was provided.", p.name, typeNames(p.vtype), describeType(value))
	}
	return nil
}

func (p *Parameter) checkConstraints(value any) error {
	if len(p.allow) > 0 {
		allowed := false
		for _, candidate := range p.allow {
			if sameValue(candidate, value) {
				allowed = true
				break
			}
		}
		if !allowed {
			return newError(KindValue, p.name, "Attempting to set '%s' to a value of %s but only the following are allowed: %s", p.name, Repr(value), Repr(p.allow))
		}
	}
	for _, v := range p.verifiers {
		ok, err := p.runVerifier(v, value)
		if err != nil {
			e := newError(KindValue, p.name, "Verify function failed with the given value of %s for '%s'", Repr(value), p.name)
			e.Err = err
			return e
		}
		if !ok {
			msg := v.message
			if msg == "" {
				msg = "the value did not pass verification"
			}
			return newError(KindValue, p.name, "Verify function failed with the given value of %s for '%s'\n%s", Repr(value), p.name, msg)
		}
	}
	return nil
}

func (p *Parameter) runVerifier(v verifier, value any) (bool, error) {
	if v.fn != nil {
		return v.fn(value), nil
	}
	if v.rule == nil {
		return false, fmt.Errorf("verify expression %q is not compiled", v.expr)
	}
	if rgb, ok := colorComponents(value); ok {
		value = rgb
	}
	ctx := RuleContext{
		Snapshot: map[string]any{"v": value, "value": value},
		Path:     p.name,
	}
	out, err := runEvaluation(evaluatorEngineName(p.evaluator), p.evalLogger, ctx, v.expr, v.rule.Evaluate)
	if err != nil {
		return false, err
	}
	result, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("verify expression %q returned %T, want bool", v.expr, out)
	}
	return result, nil
}

func describeType(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

// String renders name=literal where the literal parses back with
// ParseLiteral.
func (p *Parameter) String() string {
	return p.name + "=" + Repr(p.Value())
}

// Describe renders a help block for console output.
func (p *Parameter) Describe() string {
	var b strings.Builder
	b.WriteString(p.name)
	if p.doc != "" {
		b.WriteString("\n  ")
		b.WriteString(p.doc)
	}
	fmt.Fprintf(&b, "\n  Default: %s", Repr(p.Default()))
	fmt.Fprintf(&b, "\n  Value:   %s", Repr(p.Value()))
	if len(p.vtype) > 0 {
		fmt.Fprintf(&b, "\n  Type(s): %s", typeNames(p.vtype))
	}
	if p.size > 0 {
		fmt.Fprintf(&b, "\n  Size:    %d", p.size)
	}
	if len(p.allow) > 0 {
		fmt.Fprintf(&b, "\n  Allow:   %s", Repr(p.allow))
	}
	if p.required {
		b.WriteString("\n  Required: true")
	}
	return b.String()
}

func (p *Parameter) clone() *Parameter {
	cp := *p
	cp.vtype = append([]reflect.Type(nil), p.vtype...)
	cp.allow = append([]any(nil), p.allow...)
	cp.verifiers = append([]verifier(nil), p.verifiers...)
	if c, ok := p.value.(*Container); ok && c != nil {
		cloned := c.Clone()
		if d, ok := p.def.(*Container); ok && d == c {
			cp.def = cloned
		}
		cp.value = cloned
	} else if d, ok := p.def.(*Container); ok && d != nil {
		cp.def = d.Clone()
	}
	return &cp
}
