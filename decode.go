package params

import (
	"github.com/goliatone/go-params/internal/hydrate"
)

// DecodeOption configures Decode.
type DecodeOption[T any] = hydrate.DecoderOption[T]

// Decode copies the container snapshot into a struct of type T. Fields are
// matched by json tag against parameter names; nested groups decode into
// nested structs and colors into []float64.
//
//	type textSettings struct {
//		Text    string    `json:"text"`
//		Opacity float64   `json:"opacity"`
//		Color   []float64 `json:"color"`
//	}
//	settings, err := params.Decode[textSettings](c)
func Decode[T any](c *Container, opts ...DecodeOption[T]) (T, error) {
	var zero T
	if c == nil {
		return zero, newError(KindLookup, "", "cannot decode a nil container")
	}
	decoder := hydrate.NewDecoder[T](opts...)
	out, err := decoder.Decode(hydrate.Context{Container: c.containerLabel()}, c.ToMap())
	if err != nil {
		e := newError(KindType, c.cfg.name, "decode %s", c.containerLabel())
		e.Err = err
		return zero, e
	}
	return out, nil
}

// DecodeStrict is Decode rejecting snapshot keys that T does not declare.
func DecodeStrict[T any](c *Container, opts ...DecodeOption[T]) (T, error) {
	return Decode[T](c, append(opts, hydrate.WithDisallowUnknownFields[T]())...)
}
