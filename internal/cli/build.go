package cli

import (
	"context"
	"fmt"
	"sort"

	params "github.com/goliatone/go-params"
	"github.com/goliatone/go-params/layering"
	"github.com/goliatone/go-params/mixins"
	"github.com/goliatone/go-params/pkg/activity"
	"github.com/goliatone/go-params/pkg/activity/usersink"
	"github.com/goliatone/go-params/pkg/paramfile"
)

// build constructs class with the configured files and the override
// arguments. Unset AutoColor parameters follow the background of a Viewport
// built from the same arguments.
func (c *CLI) build(class string, args []string) (*params.Object, error) {
	schema, ok := classes[class]
	if !ok {
		return nil, fmt.Errorf("unknown class %q, expected one of %v", class, classNames())
	}
	mode, ok := params.ParseErrorMode(c.errorMode)
	if !ok {
		return nil, fmt.Errorf("unknown error mode %q", c.errorMode)
	}

	layers, err := paramfile.Layers(c.configs...)
	if err != nil {
		return nil, err
	}
	stack, err := params.NewStack(layers...)
	if err != nil {
		return nil, err
	}
	values := stack.Merge()
	c.traceValues(stack, values)

	opts := []params.ObjectOption{
		params.WithArgs(args...),
		params.WithObjectLogger(c.Logger),
		params.WithObjectErrorMode(mode),
		params.WithObjectActivityHooks(c.hooks()),
	}
	if c.verbose {
		opts = append(opts, params.WithObjectEvaluatorLogger(params.LogEvaluations(c.Logger)))
	}
	session := params.NewSession(opts...)
	obj, err := session.New(class, schema, values)
	if err != nil {
		return nil, err
	}
	if class == "Viewport" {
		return obj, nil
	}
	viewport, err := params.NewObject("Viewport", classes["Viewport"], nil,
		params.WithArgs(args...),
		params.WithObjectLogger(c.Logger),
		params.WithObjectErrorMode(mode),
	)
	if err != nil {
		return nil, err
	}
	if err := mixins.AutoAdjustColor(viewport.Options(), obj.Options()); err != nil {
		return nil, err
	}
	return session.Current(), nil
}

// hooks routes parameter events through an emitter stamped with the
// paramsctl channel. Verbose mode logs value changes and --audit forwards
// every event to the audit sink.
func (c *CLI) hooks() activity.Hooks {
	var hooks activity.Hooks
	if c.verbose {
		hooks = append(hooks, activity.ForVerbs(activity.HookFunc(func(_ context.Context, event activity.Event) error {
			c.Logger.Debug(event.Verb, "object", event.ObjectType, "path", event.ObjectID, "value", event.Metadata[activity.MetaNewValue])
			return nil
		}), activity.VerbUpdated, activity.VerbOverrideApplied))
	}
	if c.audit {
		hooks = append(hooks, usersink.Hook{Sink: auditSink{logger: c.Logger}})
	}
	return activity.NewEmitter(hooks, activity.Config{
		Enabled: true,
		Channel: "paramsctl",
	}).Hooks()
}

func (c *CLI) traceValues(stack *params.Stack, values map[string]any) {
	if !c.verbose || stack.Len() == 0 {
		return
	}
	flat := layering.Flatten(values, params.Separator)
	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if p, ok := stack.Trace(path).Effective(); ok {
			c.Logger.Debug("value from file", "path", path, "source", p.Source)
		}
	}
}
