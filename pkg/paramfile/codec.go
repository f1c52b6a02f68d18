// Package paramfile reads parameter values from JSON, YAML, TOML and HCL
// files and applies them to containers.
package paramfile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
)

// Codec decodes a parameter document into nested maps. Numbers are
// normalised to int when integral and float64 otherwise.
type Codec interface {
	Decode(r io.Reader) (map[string]any, error)
	Format() string
}

// ErrUnknownFormat indicates a file extension without a codec.
var ErrUnknownFormat = errors.New("paramfile: unknown format")

var codecs = map[string]func() Codec{
	".json": func() Codec { return NewJSONCodec() },
	".yaml": func() Codec { return NewYAMLCodec() },
	".yml":  func() Codec { return NewYAMLCodec() },
	".toml": func() Codec { return NewTOMLCodec() },
	".hcl":  func() Codec { return NewHCLCodec() },
}

// CodecFor picks a codec from the file extension.
func CodecFor(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	build, ok := codecs[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
	return build(), nil
}

// normalize converts decoder specific number and map types into int,
// float64, []any and map[string]any.
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case int64:
		return int(v)
	case int32:
		return int(v)
	case uint64:
		return int(v)
	case float32:
		return float64(v)
	default:
		return value
	}
}

func numberFromFloat(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int(f)
	}
	return f
}

func normalizeDocument(doc map[string]any) map[string]any {
	if doc == nil {
		return map[string]any{}
	}
	return normalize(doc).(map[string]any)
}
