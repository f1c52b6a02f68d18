package params

import (
	"fmt"
	"sort"
	"strings"

	"cogentcore.org/core/base/ordmap"

	"github.com/goliatone/go-params/pkg/activity"
)

// Container is an ordered, uniquely keyed set of parameters. A parameter may
// hold another Container, giving nested groups addressed as ("group", "key")
// or "group_key". Containers are not safe for concurrent mutation.
type Container struct {
	params *ordmap.Map[string, *Parameter]
	cfg    containerConfig
}

// Item pairs a parameter name with its value.
type Item struct {
	Name  string
	Value any
}

// New constructs an empty container.
func New(opts ...Option) *Container {
	return &Container{
		params: ordmap.New[string, *Parameter](),
		cfg:    applyOptions(opts),
	}
}

// Name returns the label configured with WithName.
func (c *Container) Name() string { return c.cfg.name }

// ErrorMode returns the active error mode.
func (c *Container) ErrorMode() ErrorMode { return c.cfg.mode }

// SetErrorMode changes how subsequent failures are reported.
func (c *Container) SetErrorMode(mode ErrorMode) {
	c.cfg.mode = mode
}

// SetLogger changes the logger used by the logging error modes.
func (c *Container) SetLogger(logger Logger) {
	c.cfg.logger = logger
}

func (c *Container) fail(err error) error {
	return report(c.cfg.mode, c.cfg.logger, err)
}

// Add declares a parameter. Duplicate names and names that collide with a
// nested group fail with a schema error.
func (c *Container) Add(name string, opts ...ParamOption) error {
	if c.params.IndexByKey(name) >= 0 {
		return c.fail(newError(KindSchema, name, "Cannot add parameter, the parameter '%s' already exists.", name))
	}
	if group, ok := c.groupPrefix(name); ok {
		return c.fail(newError(KindSchema, name, "Cannot add a parameter with the name '%s', a sub parameter exists with the name '%s'.", name, group))
	}
	p, err := newParameter(name, c.cfg.evaluatorFor(), c.cfg.evalLogger(), opts)
	if err != nil {
		return c.fail(err)
	}
	if p.isContainer() {
		if key, ok := c.flatChild(name); ok {
			return c.fail(newError(KindSchema, name, "Cannot add a sub parameter with the name '%s', the parameter '%s' exists.", name, key))
		}
	}
	c.params.Add(name, p)
	return c.emit(activity.BuildParamAddedEvent, activity.ParamEventInput{
		Path:     name,
		NewValue: p.Value(),
	})
}

// Remove deletes a top level parameter.
func (c *Container) Remove(name string) error {
	p, ok := c.params.ValueByKeyTry(name)
	if !ok {
		return c.fail(newError(KindLookup, name, "The parameter '%s' does not exist.", name))
	}
	c.params.DeleteKey(name)
	return c.emit(activity.BuildParamRemovedEvent, activity.ParamEventInput{
		Path:     name,
		OldValue: p.Value(),
	})
}

// Has reports whether name is declared at the top level.
func (c *Container) Has(name string) bool {
	return c.params.IndexByKey(name) >= 0
}

// Len returns the number of declared parameters, private ones included.
func (c *Container) Len() int {
	return c.params.Len()
}

// Keys returns the public parameter names in declaration order.
func (c *Container) Keys() []string {
	keys := make([]string, 0, c.params.Len())
	for _, kv := range c.params.Order {
		if !kv.Value.private {
			keys = append(keys, kv.Key)
		}
	}
	return keys
}

// Items returns the public names and values in declaration order.
func (c *Container) Items() []Item {
	items := make([]Item, 0, c.params.Len())
	for _, kv := range c.params.Order {
		if !kv.Value.private {
			items = append(items, Item{Name: kv.Key, Value: kv.Value.Value()})
		}
	}
	return items
}

// Values returns the public values in declaration order.
func (c *Container) Values() []any {
	values := make([]any, 0, c.params.Len())
	for _, kv := range c.params.Order {
		if !kv.Value.private {
			values = append(values, kv.Value.Value())
		}
	}
	return values
}

// Parameters returns the public parameters in declaration order.
func (c *Container) Parameters() []*Parameter {
	out := make([]*Parameter, 0, c.params.Len())
	for _, kv := range c.params.Order {
		if !kv.Value.private {
			out = append(out, kv.Value)
		}
	}
	return out
}

// Parameter resolves names to the parameter they address.
func (c *Container) Parameter(names ...string) (*Parameter, error) {
	p, _, err := c.resolve(names)
	if err != nil {
		return nil, c.fail(err)
	}
	return p, nil
}

// Get returns the value addressed by names, or nil when it cannot be
// resolved.
func (c *Container) Get(names ...string) any {
	value, _ := c.Lookup(names...)
	return value
}

// Lookup returns the value addressed by names.
func (c *Container) Lookup(names ...string) (any, error) {
	p, err := c.Parameter(names...)
	if err != nil || p == nil {
		return nil, err
	}
	return p.Value(), nil
}

// Set assigns value to the parameter addressed by name.
func (c *Container) Set(name string, value any) error {
	return c.SetPath([]string{name}, value)
}

// SetPath assigns value to the parameter addressed by names. A
// map[string]any assigned to a nested group updates the group instead of
// replacing it.
func (c *Container) SetPath(names []string, value any) error {
	p, path, err := c.resolve(names)
	if err != nil {
		return c.fail(err)
	}
	if m, ok := value.(map[string]any); ok && p.isContainer() {
		nested := p.nested()
		if nested == nil {
			return c.fail(newError(KindType, path, "The parameter '%s' does not hold a container to update.", path))
		}
		keys := make([]string, 0, len(m))
		for key := range m {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			child := append(append([]string(nil), names...), key)
			if err := c.SetPath(child, m[key]); err != nil {
				return err
			}
		}
		return nil
	}
	old := p.Value()
	before := p.stamp
	if err := p.SetValue(value); err != nil {
		return c.fail(err)
	}
	if p.stamp == before {
		return nil
	}
	return c.emit(activity.BuildParamUpdatedEvent, activity.ParamEventInput{
		Path:     path,
		OldValue: old,
		NewValue: p.Value(),
	})
}

// Assign calls fn with the value addressed by names when it is not nil.
// Colors are passed as their RGB components.
func (c *Container) Assign(fn func(any), names ...string) error {
	p, err := c.Parameter(names...)
	if err != nil || p == nil {
		return err
	}
	value := p.Value()
	if value == nil {
		return nil
	}
	if rgb, ok := colorComponents(value); ok {
		fn(rgb)
		return nil
	}
	fn(value)
	return nil
}

// IsDefault reports whether the addressed value equals its default.
func (c *Container) IsDefault(names ...string) bool {
	p, err := c.Parameter(names...)
	return err == nil && p != nil && p.IsDefault()
}

// IsSetByUser reports whether the addressed parameter was assigned.
func (c *Container) IsSetByUser(names ...string) bool {
	p, err := c.Parameter(names...)
	return err == nil && p != nil && p.IsSetByUser()
}

// IsValid reports whether the addressed value is not nil.
func (c *Container) IsValid(names ...string) bool {
	p, err := c.Parameter(names...)
	return err == nil && p != nil && p.Value() != nil
}

// IsRequired reports whether the addressed parameter is required.
func (c *Container) IsRequired(names ...string) bool {
	p, err := c.Parameter(names...)
	return err == nil && p != nil && p.Required()
}

// SetRequired changes the required flag of the parameter addressed by name.
func (c *Container) SetRequired(name string, required bool) error {
	p, err := c.Parameter(name)
	if err != nil || p == nil {
		return err
	}
	p.SetRequired(required)
	return nil
}

// GetDefault returns the default of the addressed parameter.
func (c *Container) GetDefault(names ...string) any {
	p, err := c.Parameter(names...)
	if err != nil || p == nil {
		return nil
	}
	return p.Default()
}

// SetDefault changes the default of the parameter addressed by name.
func (c *Container) SetDefault(name string, value any) error {
	p, err := c.Parameter(name)
	if err != nil || p == nil {
		return err
	}
	return c.fail(p.SetDefault(value))
}

// Update copies every non-nil value from sources. Nested groups present in
// both containers are updated recursively. Keys the receiver does not
// declare fail with a lookup error.
func (c *Container) Update(sources ...*Container) error {
	for _, src := range sources {
		if src == nil {
			if err := c.fail(newError(KindConfiguration, "", "The supplied arguments must be containers or key, value pairs.")); err != nil {
				return err
			}
			continue
		}
		for _, kv := range src.params.Order {
			if kv.Value.private {
				continue
			}
			if err := c.updateFrom(kv.Key, kv.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Container) updateFrom(key string, src *Parameter) error {
	value := src.Value()
	if value == nil {
		return nil
	}
	target, ok := c.params.ValueByKeyTry(key)
	if !ok {
		return c.fail(newError(KindLookup, key, "The parameter '%s' does not exist.", key))
	}
	if srcNested, ok := value.(*Container); ok {
		if dst := target.nested(); dst != nil && dst != srcNested {
			return c.fail(dst.Update(srcNested))
		}
	}
	return c.Set(key, value)
}

// UpdateValues sets each key in sorted order. Keys may use the flat
// "group_key" form, and map values update nested groups.
func (c *Container) UpdateValues(kv map[string]any) error {
	keys := make([]string, 0, len(kv))
	for key := range kv {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := c.Set(key, kv[key]); err != nil {
			return err
		}
	}
	return nil
}

// Merge absorbs the public parameters of other by reference, replacing
// parameters with the same name. Both containers share the merged
// parameters afterwards, so merge while composing schemas.
func (c *Container) Merge(other *Container) {
	if other == nil {
		return
	}
	for _, kv := range other.params.Order {
		if !kv.Value.private {
			c.params.Add(kv.Key, kv.Value)
		}
	}
}

// Validate checks every parameter, nested groups included, and reports all
// failures at once.
func (c *Container) Validate() error {
	failures := c.collectFailures("")
	if len(failures) == 0 {
		return nil
	}
	return c.fail(&ValidationError{Failures: failures})
}

func (c *Container) collectFailures(prefix string) []string {
	var failures []string
	for _, kv := range c.params.Order {
		if err := kv.Value.Validate(); err != nil {
			msg := err.Error()
			if prefix != "" {
				msg = prefix + ": " + msg
			}
			failures = append(failures, msg)
		}
		if nested := kv.Value.nested(); nested != nil {
			failures = append(failures, nested.collectFailures(joinName(prefix, kv.Key))...)
		}
	}
	return failures
}

func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + Separator + name
}

// Modified returns the latest stamp of any parameter, nested groups
// included.
func (c *Container) Modified() Stamp {
	var stamp Stamp
	for _, kv := range c.params.Order {
		stamp = maxStamp(stamp, kv.Value.Modified())
	}
	return stamp
}

// ToMap returns a snapshot of the public values. Nested groups become
// nested maps and colors their RGB components. With keys, only those
// entries are included.
func (c *Container) ToMap(keys ...string) map[string]any {
	out := make(map[string]any, c.params.Len())
	want := map[string]bool{}
	for _, key := range keys {
		want[key] = true
	}
	for _, kv := range c.params.Order {
		if kv.Value.private || (len(keys) > 0 && !want[kv.Key]) {
			continue
		}
		out[kv.Key] = snapshotValue(kv.Value.Value())
	}
	return out
}

func snapshotValue(value any) any {
	if nested, ok := value.(*Container); ok && nested != nil {
		return nested.ToMap()
	}
	if rgb, ok := colorComponents(value); ok {
		return rgb
	}
	return value
}

// Clone returns a deep copy with fresh parameters. Nested groups are cloned
// and configuration is shared.
func (c *Container) Clone() *Container {
	out := &Container{
		params: ordmap.New[string, *Parameter](),
		cfg:    c.cfg,
	}
	for _, kv := range c.params.Order {
		out.params.Add(kv.Key, kv.Value.clone())
	}
	return out
}

func (c *Container) String() string {
	lines := make([]string, 0, c.params.Len())
	for _, p := range c.Parameters() {
		lines = append(lines, p.String())
	}
	return strings.Join(lines, "\n")
}

// Describe renders the help block of every public parameter, or of the
// listed keys only.
func (c *Container) Describe(keys ...string) string {
	want := map[string]bool{}
	for _, key := range keys {
		want[key] = true
	}
	blocks := make([]string, 0, c.params.Len())
	for _, p := range c.Parameters() {
		if len(keys) > 0 && !want[p.name] {
			continue
		}
		blocks = append(blocks, p.Describe())
	}
	return strings.Join(blocks, "\n\n")
}

// GoString supports %#v in debugging output.
func (c *Container) GoString() string {
	return fmt.Sprintf("params.Container{name: %q, keys: %v}", c.cfg.name, c.Keys())
}
