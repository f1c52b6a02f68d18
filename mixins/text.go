package mixins

import (
	params "github.com/goliatone/go-params"
)

// Text adds font, frame and background groups plus rotation and alignment
// for text annotations.
func Text() params.Extension {
	return func(c *params.Container) error {
		err := group(c, "font", "Font options",
			param("color", params.VType(params.AutoColorType), params.Doc("The text color.")),
			param("opacity", params.Default(1.0), params.VType(params.Number...),
				unitRange("The supplied value must be in range [0,1]"),
				params.Doc("The text opacity.")),
			param("size", params.Default(0.05), params.VType(params.Number...),
				openUnitRange("The supplied size must be in range (0,1]"),
				params.Doc("The text font size in relative viewport (vertical) coordinates")),
			param("italic", params.Default(false), params.VType(params.Bool), params.Doc("Use italics style text")),
			param("bold", params.Default(false), params.VType(params.Bool), params.Doc("Use bold style text")),
			param("family", params.Default("arial"), params.VType(params.String),
				params.Allow("arial", "courier", "times"), params.Doc("The font family")),
		)
		if err != nil {
			return err
		}
		err = group(c, "frame", "Frame options",
			param("on", params.Default(false), params.VType(params.Bool), params.Doc("Enable the text frame")),
			param("color", params.VType(params.Number...), params.Size(3),
				params.Doc("The color of the frame around text, defaults to text color")),
			param("width", params.Default(1), params.VType(params.Int), params.Doc("The width of the frame around text")),
		)
		if err != nil {
			return err
		}
		err = group(c, "background", "Background options",
			param("on", params.Default(false), params.VType(params.Bool), params.Doc("Enable background color")),
			param("color", params.VType(params.Number...), params.Size(3),
				params.Doc("The color of the text background, defaults to font color")),
			param("opacity", params.Default(1.0), params.VType(params.Number...),
				openUnitRange("The supplied value must in range (0,1]"),
				params.Doc("The opacity of the text background.")),
		)
		if err != nil {
			return err
		}
		return declare(c,
			param("rotate", params.Default(0.0), params.VType(params.Number...),
				params.VerifyExpr("v >= 0 && v < 360", "The supplied value must in range [0,360)"),
				params.Doc("The text rotation in degrees.")),
			param("halign", params.Default("left"), params.VType(params.String),
				params.Allow("left", "center", "right"), params.Doc("Set the font justification.")),
			param("valign", params.Default("bottom"),
				params.Allow("bottom", "center", "top"), params.Doc("The vertical text justification.")),
		)
	}
}
