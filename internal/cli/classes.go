package cli

import (
	"sort"

	params "github.com/goliatone/go-params"
	"github.com/goliatone/go-params/mixins"
)

var classes = map[string]params.SchemaFunc{
	"Text": params.Compose(params.BaseSchema,
		mixins.Text(),
		mixins.KeyBindings(),
		declare("text", params.VType(params.String), params.Doc("The text to display.")),
	),
	"Viewport": params.Compose(params.BaseSchema,
		mixins.KeyBindings(),
		mixins.Background(),
		declare("layer", params.Default(1), params.VType(params.Int), params.Doc("The render layer.")),
		declare("xmin", params.Default(0), params.VType(params.Number...), params.Doc("The minimum x position in relative window coordinates.")),
		declare("xmax", params.Default(1), params.VType(params.Number...), params.Doc("The maximum x position in relative window coordinates.")),
		declare("ymin", params.Default(0), params.VType(params.Number...), params.Doc("The minimum y position in relative window coordinates.")),
		declare("ymax", params.Default(1), params.VType(params.Number...), params.Doc("The maximum y position in relative window coordinates.")),
		declare("interactive", params.VType(params.Bool), params.Doc("Toggle indicating if the Viewport is interactive.")),
		declare("highlight", params.Default(false), params.VType(params.Bool), params.Doc("Highlight the viewport.")),
	),
	"Edge":     params.Compose(params.BaseSchema, mixins.Edge()),
	"ColorMap": params.Compose(params.BaseSchema, mixins.ColorMap()),
}

func declare(name string, opts ...params.ParamOption) params.Extension {
	return func(c *params.Container) error {
		return c.Add(name, opts...)
	}
}

func classNames() []string {
	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
