package paramfile

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONCodec decodes JSON documents.
type JSONCodec struct{}

// NewJSONCodec creates a JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier.
func (c *JSONCodec) Format() string {
	return "json"
}

// Decode reads one JSON object.
func (c *JSONCodec) Decode(r io.Reader) (map[string]any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	var doc map[string]any
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("paramfile: decode json: %w", err)
	}
	return normalizeDocument(jsonNumbers(doc).(map[string]any)), nil
}

func jsonNumbers(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			v[key] = jsonNumbers(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = jsonNumbers(item)
		}
		return v
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return value
	}
}
