package openapi

import (
	params "github.com/goliatone/go-params"
)

type generator struct {
	config documentConfig
}

// NewGenerator constructs an OpenAPI 3 schema generator. The container's
// parameters become the request body of a single operation and nested
// containers are published as components.
func NewGenerator(opts ...GeneratorOption) params.SchemaGenerator {
	cfg := defaultDocumentConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return generator{config: cfg}
}

// Option wires the OpenAPI generator into a container.
func Option(opts ...GeneratorOption) params.Option {
	return params.WithSchemaGenerator(NewGenerator(opts...))
}

func (g generator) Generate(c *params.Container) (params.SchemaDocument, error) {
	root, err := buildSchemaGraph(c)
	if err != nil {
		return params.SchemaDocument{}, err
	}
	document, err := newDocumentBuilder(g.config).build(root)
	if err != nil {
		return params.SchemaDocument{}, err
	}
	return params.SchemaDocument{
		Format:   params.SchemaFormatOpenAPI,
		Document: document,
	}, nil
}
