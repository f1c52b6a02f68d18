package mixins

import (
	params "github.com/goliatone/go-params"
)

// KeyBindings adds the "keybindings" group controlling interactive keys.
func KeyBindings() params.Extension {
	return func(c *params.Container) error {
		return group(c, "keybindings", "Interactive key binding options",
			param("enabled", params.Default(true), params.VType(params.Bool),
				params.Doc("Respond to key presses while the object is active.")),
			param("help", params.Default("h"), params.VType(params.String),
				params.VerifyExpr("len(v) == 1", "The help key must be a single character"),
				params.Doc("The key that prints the available bindings.")),
		)
	}
}
