package mixins

import (
	params "github.com/goliatone/go-params"
)

// Edge adds edge and point display settings for rendered actors.
func Edge() params.Extension {
	return func(c *params.Container) error {
		return declare(c,
			param("orientation", params.VType(params.Number...), params.Size(3),
				params.Doc("The orientation of the object.")),
			param("rotation", params.Default([]any{0.0, 0.0, 0.0}), params.VType(params.Number...), params.Size(3),
				params.Doc("The rotation of the object about x, y, z axes.")),
			param("visible", params.Default(false), params.Doc("Enable/disable display of object edges.")),
			param("color", params.Default([]any{1.0, 1.0, 1.0}), params.Size(3), params.Doc("Set the edge color.")),
			param("width", params.Default(1), params.VType(params.Int), params.Doc("The edge width, if nil then no edges are shown.")),
			param("size", params.Default(1), params.VType(params.Int), params.Doc("The point size, if nil then no points are shown.")),
		)
	}
}

// ColorMap adds the "cmap" group describing a lookup table.
func ColorMap() params.Extension {
	return func(c *params.Container) error {
		return group(c, "cmap", "Color map options",
			param("name", params.VType(params.String), params.Doc("The colormap name.")),
			param("reverse", params.Default(false), params.VType(params.Bool), params.Doc("Reverse the order of colormap.")),
			param("resolution", params.Default(256), params.VType(params.Int), params.Doc("Number of colors to utilize")),
			param("lim", params.Default([]any{0, 1}), params.VType(params.Number...), params.Size(2),
				params.Doc("Set the data range for the color map to display.")),
			param("above", params.VType(params.Number...), params.Size(4), params.Doc("Above out-of-range color (R,G,B, alpha)")),
			param("below", params.VType(params.Number...), params.Size(4), params.Doc("Below out-of-range color (R,G,B, alpha)")),
			param("nan", params.VType(params.Number...), params.Size(4), params.Doc("NaN out-of-range color (R,G,B, alpha)")),
		)
	}
}
