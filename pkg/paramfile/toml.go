package paramfile

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// TOMLCodec decodes TOML documents. Tables become nested groups.
type TOMLCodec struct{}

// NewTOMLCodec creates a TOML codec.
func NewTOMLCodec() *TOMLCodec {
	return &TOMLCodec{}
}

// Format returns the codec format identifier.
func (c *TOMLCodec) Format() string {
	return "toml"
}

// Decode reads a TOML document.
func (c *TOMLCodec) Decode(r io.Reader) (map[string]any, error) {
	var doc map[string]any
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("paramfile: decode toml: %w", err)
	}
	return normalizeDocument(doc), nil
}
