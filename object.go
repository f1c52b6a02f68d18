package params

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-params/pkg/activity"
)

// SchemaFunc declares the parameters of an object class.
type SchemaFunc func() (*Container, error)

// Extension adds parameters to a schema under construction.
type Extension func(*Container) error

// Compose returns a SchemaFunc that builds base and then applies each
// extension in order.
//
//	textSchema := params.Compose(params.BaseSchema, mixins.Text())
func Compose(base SchemaFunc, exts ...Extension) SchemaFunc {
	return func() (*Container, error) {
		if base == nil {
			base = func() (*Container, error) { return New(), nil }
		}
		c, err := base()
		if err != nil {
			return nil, err
		}
		for _, ext := range exts {
			if ext == nil {
				continue
			}
			if err := ext(c); err != nil {
				return nil, err
			}
		}
		return c, nil
	}
}

// BaseSchema declares the parameters every object carries.
func BaseSchema() (*Container, error) {
	c := New()
	if err := c.Add("name", VType(String),
		Doc("The object name. If a name is not supplied the class name is utilized.")); err != nil {
		return nil, err
	}
	return c, nil
}

// Object couples a class name with the container built from its schema.
type Object struct {
	class   string
	options *Container
	logger  Logger
}

// ObjectOption configures NewObject.
type ObjectOption func(*objectConfig)

type objectConfig struct {
	args    []string
	logger  Logger
	mode    ErrorMode
	modeSet bool
	hooks   activity.Hooks
	evalLog EvaluatorLogger
}

// WithArgs supplies the argument list scanned for Class:key=value
// overrides, typically os.Args[1:].
func WithArgs(args ...string) ObjectOption {
	return func(cfg *objectConfig) {
		cfg.args = append([]string(nil), args...)
	}
}

// WithObjectLogger sets the logger for the object and its container.
func WithObjectLogger(logger Logger) ObjectOption {
	return func(cfg *objectConfig) {
		cfg.logger = logger
	}
}

// WithObjectErrorMode overrides the container error mode.
func WithObjectErrorMode(mode ErrorMode) ObjectOption {
	return func(cfg *objectConfig) {
		cfg.mode = mode
		cfg.modeSet = true
	}
}

// WithObjectActivityHooks attaches hooks to the object container.
func WithObjectActivityHooks(hooks activity.Hooks) ObjectOption {
	return func(cfg *objectConfig) {
		cfg.hooks = hooks.Clone()
	}
}

// WithObjectEvaluatorLogger records the verify runs of the object's
// parameters.
func WithObjectEvaluatorLogger(logger EvaluatorLogger) ObjectOption {
	return func(cfg *objectConfig) {
		cfg.evalLog = logger
	}
}

// NewObject builds the schema, applies values, then the command-line
// overrides found in the configured arguments, and validates once.
func NewObject(class string, schema SchemaFunc, values map[string]any, opts ...ObjectOption) (*Object, error) {
	cfg := objectConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if schema == nil {
		schema = BaseSchema
	}
	c, err := schema()
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, newError(KindConfiguration, class, "schema for '%s' returned no container", class)
	}
	if c.cfg.name == "" {
		c.cfg.name = class
	}
	if cfg.logger != nil {
		c.SetLogger(cfg.logger)
	}
	if cfg.modeSet {
		c.SetErrorMode(cfg.mode)
	}
	if cfg.hooks.Enabled() {
		c.cfg.activityHooks = cfg.hooks
	}
	if cfg.evalLog != nil {
		c.SetEvaluatorLogger(cfg.evalLog)
	}

	obj := &Object{class: class, options: c, logger: cfg.logger}
	if obj.logger == nil {
		obj.logger = log.Default()
	}
	if len(values) > 0 {
		if err := c.UpdateValues(values); err != nil {
			return nil, err
		}
	}
	if err := ApplyOverrides(obj, cfg.args); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return obj, nil
}

// Name returns the "name" option when set, otherwise the class name.
func (o *Object) Name() string {
	if o.options.Has("name") {
		if name, ok := o.options.Get("name").(string); ok && name != "" {
			return name
		}
	}
	return o.class
}

// Class returns the class name given to NewObject.
func (o *Object) Class() string { return o.class }

// Options returns the underlying container.
func (o *Object) Options() *Container { return o.options }

// Option returns the value addressed by names.
func (o *Object) Option(names ...string) any {
	return o.options.Get(names...)
}

// SetOption assigns a single option; name may use the flat group_key form.
func (o *Object) SetOption(name string, value any) error {
	o.Debug("setOption")
	return o.options.Set(name, value)
}

// SetOptionPath assigns the option addressed by names.
func (o *Object) SetOptionPath(names []string, value any) error {
	o.Debug("setOption")
	return o.options.SetPath(names, value)
}

// SetOptions updates the top level options from kv.
func (o *Object) SetOptions(kv map[string]any) error {
	o.Debug("setOptions")
	return o.options.UpdateValues(kv)
}

// SetSubOptions updates the nested group sub from kv.
func (o *Object) SetSubOptions(sub string, kv map[string]any) error {
	o.Debug("setOptions")
	p, ok := o.options.params.ValueByKeyTry(sub)
	if !ok || p.nested() == nil {
		return o.options.fail(newError(KindLookup, sub, "The supplied sub-option '%s' does not exist.", sub))
	}
	return o.options.SetPath([]string{sub}, kv)
}

// AssignOption passes the addressed value to fn when it is set.
func (o *Object) AssignOption(fn func(any), names ...string) error {
	o.Debug("assignOption")
	return o.options.Assign(fn, names...)
}

// IsOptionValid reports whether the addressed value is not nil.
func (o *Object) IsOptionValid(names ...string) bool {
	return o.options.IsValid(names...)
}

// IsOptionDefault reports whether the addressed value equals its default.
func (o *Object) IsOptionDefault(names ...string) bool {
	return o.options.IsDefault(names...)
}

// PrintOption renders key=literal as it would appear in a script.
func (o *Object) PrintOption(key string) string {
	return key + "=" + Repr(o.Option(key))
}

// Modified returns the latest stamp of any option.
func (o *Object) Modified() Stamp {
	return o.options.Modified()
}

// NeedsUpdate reports whether an option changed after since.
func (o *Object) NeedsUpdate(since Stamp) bool {
	return o.Modified() > since
}

func (o *Object) Debug(format string, args ...any) { o.log(log.DebugLevel, format, args...) }
func (o *Object) Info(format string, args ...any)  { o.log(log.InfoLevel, format, args...) }
func (o *Object) Warn(format string, args ...any)  { o.log(log.WarnLevel, format, args...) }
func (o *Object) Error(format string, args ...any) { o.log(log.ErrorLevel, format, args...) }

func (o *Object) log(level log.Level, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	o.logger.Log(level, fmt.Sprintf("(%s): %s", o.Name(), msg))
}
