package paramfile

import (
	"fmt"
	"os"

	params "github.com/goliatone/go-params"
	"github.com/goliatone/go-params/layering"
)

// LoadFile decodes the file at path with the codec for its extension.
func LoadFile(path string) (map[string]any, error) {
	codec, err := CodecFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("paramfile: open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := codec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadFiles decodes every file and merges them; later files win.
func LoadFiles(paths ...string) (map[string]any, error) {
	docs := make([]map[string]any, len(paths))
	for i, path := range paths {
		doc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		docs[len(paths)-1-i] = doc
	}
	return layering.MergeLayers(docs...), nil
}

// Layers decodes every file into a params.Layer named after its path. Later
// files get higher priorities.
func Layers(paths ...string) ([]params.Layer, error) {
	layers := make([]params.Layer, 0, len(paths))
	for i, path := range paths {
		doc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, params.NewLayer(path, i+1, doc, params.WithLayerSource(path)))
	}
	return layers, nil
}

// Apply writes doc into c. Nested maps update nested groups and keys may
// use the flat group_key form.
func Apply(c *params.Container, doc map[string]any) error {
	if c == nil {
		return fmt.Errorf("paramfile: nil container")
	}
	return c.UpdateValues(doc)
}

// ApplyFiles loads paths and applies the merged values to c.
func ApplyFiles(c *params.Container, paths ...string) error {
	doc, err := LoadFiles(paths...)
	if err != nil {
		return err
	}
	return Apply(c, doc)
}
