package params

import (
	"fmt"
	"strings"
)

// ScriptGroup holds the fragments produced for one nested group.
type ScriptGroup struct {
	Name  string
	Items []string
}

// ToScript returns a key=literal fragment for every public value that
// differs from its default, in declaration order, and one ScriptGroup per
// nested group with changes. Keys present in overrides use the given text
// instead of the rendered literal.
func (c *Container) ToScript(overrides map[string]string) ([]string, []ScriptGroup) {
	return c.script("", overrides, func(p *Parameter, text string) string {
		return p.name + "=" + text
	})
}

// NonDefault returns the names of public parameters whose value differs
// from the default, grouped like ToScript.
func (c *Container) NonDefault() ([]string, []ScriptGroup) {
	return c.script("", nil, func(p *Parameter, _ string) string {
		return p.name
	})
}

func (c *Container) script(prefix string, overrides map[string]string, render func(*Parameter, string) string) ([]string, []ScriptGroup) {
	var items []string
	var groups []ScriptGroup
	for _, p := range c.Parameters() {
		if nested, ok := p.Value().(*Container); ok && nested != nil {
			name := joinName(prefix, p.name)
			sub, subGroups := nested.script(name, nil, render)
			if len(sub) > 0 {
				groups = append(groups, ScriptGroup{Name: name, Items: sub})
			}
			groups = append(groups, subGroups...)
			continue
		}
		if p.IsDefault() {
			continue
		}
		text, ok := overrides[p.name]
		if !ok {
			text = Repr(p.Value())
		}
		items = append(items, render(p, text))
	}
	return items, groups
}

// Script renders the non-default configuration as reproducible lines:
//
//	opacity=0.5
//	{instance} -> set(text, color=[0.0, 0.0, 0.0])
func (c *Container) Script(instance string) []string {
	items, groups := c.ToScript(nil)
	lines := append([]string(nil), items...)
	for _, g := range groups {
		lines = append(lines, fmt.Sprintf("{%s} -> set(%s, %s)", instance, g.Name, strings.Join(g.Items, ", ")))
	}
	return lines
}
