package mixins

import (
	params "github.com/goliatone/go-params"
)

var (
	white = []float64{1, 1, 1}
	black = []float64{0, 0, 0}
)

// AutoAdjustColor fills unset AutoColor parameters of children, nested
// groups included, with white on a dark parent background and black on a
// light one. Nothing changes when the parent has no background color or
// uses a gradient.
func AutoAdjustColor(parent *params.Container, children ...*params.Container) error {
	if parent == nil || !parent.Has("background") {
		return nil
	}
	bg, ok := parent.Get("background", "color").(interface{ Sum() float64 })
	if !ok || parent.IsValid("background", "color2") {
		return nil
	}
	color := black
	if bg.Sum() < 1.5 {
		color = white
	}
	for _, child := range children {
		if err := fillAutoColors(child, color); err != nil {
			return err
		}
	}
	return nil
}

func fillAutoColors(c *params.Container, color []float64) error {
	if c == nil {
		return nil
	}
	for _, p := range c.Parameters() {
		if nested, ok := p.Value().(*params.Container); ok {
			if err := fillAutoColors(nested, color); err != nil {
				return err
			}
			continue
		}
		if len(p.VType()) == 0 || !p.Accepts(params.AutoColorType) || p.Value() != nil {
			continue
		}
		if err := p.SetDefault(append([]float64(nil), color...)); err != nil {
			return err
		}
	}
	return nil
}
