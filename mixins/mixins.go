// Package mixins provides reusable schema extensions for display objects.
// Each function returns a params.Extension to pass to params.Compose.
package mixins

import (
	params "github.com/goliatone/go-params"
)

type declaration struct {
	name string
	opts []params.ParamOption
}

func param(name string, opts ...params.ParamOption) declaration {
	return declaration{name: name, opts: opts}
}

func declare(c *params.Container, decls ...declaration) error {
	for _, d := range decls {
		if err := c.Add(d.name, d.opts...); err != nil {
			return err
		}
	}
	return nil
}

// group builds a nested container and adds it under name. Failures inside
// the group surface through the parent's error mode.
func group(parent *params.Container, name, doc string, decls ...declaration) error {
	sub := params.New(params.WithName(name))
	if err := declare(sub, decls...); err != nil {
		return err
	}
	return parent.Add(name, params.Default(sub), params.Doc(doc))
}

func unitRange(message string) params.ParamOption {
	return params.VerifyExpr("v >= 0 && v <= 1", message)
}

func openUnitRange(message string) params.ParamOption {
	return params.VerifyExpr("v > 0 && v <= 1", message)
}
