package params

import (
	"context"

	"github.com/goliatone/go-params/pkg/activity"
)

// WithActivityHooks notifies hooks when parameters are added, removed or
// effectively changed. Nil hooks are dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := hooks.Clone()
	return func(cfg *containerConfig) {
		cfg.activityHooks = normalized
	}
}

// ActivityHooks returns a copy of the configured hooks.
func (c *Container) ActivityHooks() activity.Hooks {
	if c == nil {
		return nil
	}
	return c.cfg.activityHooks.Clone()
}

func (c *Container) containerLabel() string {
	if c.cfg.name != "" {
		return c.cfg.name
	}
	return activity.DefaultObjectType
}

// emit delivers an event; hook failures are routed through the error mode
// as value errors.
func (c *Container) emit(build func(activity.ParamEventInput) activity.Event, input activity.ParamEventInput) error {
	if !c.cfg.activityHooks.Enabled() {
		return nil
	}
	input.Container = c.containerLabel()
	if err := c.cfg.activityHooks.Notify(context.Background(), build(input)); err != nil {
		e := newError(KindValue, input.Path, "activity hook failed for %q", input.Path)
		e.Err = err
		return c.fail(e)
	}
	return nil
}
