package mixins

import (
	params "github.com/goliatone/go-params"
)

// Background adds the "background" group holding a primary color, an
// optional gradient color and an opacity.
func Background() params.Extension {
	return func(c *params.Container) error {
		return group(c, "background", "Background options",
			param("color", params.VType(params.AutoColorType),
				params.Doc("The primary background color")),
			param("color2", params.VType(params.ColorType),
				params.Doc("The secondary background color, when specified a gradient background is enabled")),
			param("opacity", params.Default(0), params.VType(params.Number...),
				unitRange("The 'opacity' must be in the range [0,1]"),
				params.Doc("The background opacity")),
		)
	}
}
