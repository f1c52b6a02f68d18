package openapi

import (
	"fmt"
	"strings"
)

type documentConfig struct {
	openAPIVersion string
	title          string
	version        string
	description    string

	path        string
	method      string
	operationID string
	summary     string
	contentType string

	rootComponent string
	inlineGroups  bool
	readable      bool
}

func defaultDocumentConfig() documentConfig {
	return documentConfig{
		openAPIVersion: "3.0.3",
		title:          "Parameter Schema",
		version:        "1.0.0",
		path:           "/params",
		method:         "put",
		contentType:    "application/json",
	}
}

func (cfg documentConfig) validate() error {
	if !strings.HasPrefix(cfg.path, "/") {
		return fmt.Errorf("openapi: endpoint path %q must start with /", cfg.path)
	}
	switch cfg.method {
	case "put", "post", "patch":
		return nil
	}
	return fmt.Errorf("openapi: method %q cannot carry parameter values", cfg.method)
}

func (cfg documentConfig) id() string {
	if cfg.operationID != "" {
		return cfg.operationID
	}
	return cfg.method + ":" + cfg.path
}

// GeneratorOption configures the OpenAPI generator.
type GeneratorOption func(*documentConfig)

// WithOpenAPIVersion overrides the OpenAPI version string (default: 3.0.3).
func WithOpenAPIVersion(version string) GeneratorOption {
	return func(cfg *documentConfig) {
		if version != "" {
			cfg.openAPIVersion = version
		}
	}
}

// WithInfo sets the info title and version. Empty values keep the defaults.
func WithInfo(title, version string) GeneratorOption {
	return func(cfg *documentConfig) {
		if title != "" {
			cfg.title = title
		}
		if version != "" {
			cfg.version = version
		}
	}
}

func WithDescription(description string) GeneratorOption {
	return func(cfg *documentConfig) {
		cfg.description = strings.TrimSpace(description)
	}
}

// WithOperation sets the endpoint that accepts parameter values. Only
// put, post and patch are accepted as methods.
func WithOperation(path, method, operationID string) GeneratorOption {
	return func(cfg *documentConfig) {
		if path != "" {
			cfg.path = path
		}
		if method != "" {
			cfg.method = strings.ToLower(method)
		}
		if operationID != "" {
			cfg.operationID = operationID
		}
	}
}

func WithSummary(summary string) GeneratorOption {
	return func(cfg *documentConfig) {
		cfg.summary = strings.TrimSpace(summary)
	}
}

func WithContentType(contentType string) GeneratorOption {
	return func(cfg *documentConfig) {
		if contentType != "" {
			cfg.contentType = contentType
		}
	}
}

// WithRootComponent publishes the root container under components with the
// provided name instead of inlining it in the request body.
func WithRootComponent(name string) GeneratorOption {
	return func(cfg *documentConfig) {
		cfg.rootComponent = name
	}
}

// WithInlineGroups keeps nested containers inline instead of publishing
// them as components.
func WithInlineGroups() GeneratorOption {
	return func(cfg *documentConfig) {
		cfg.inlineGroups = true
	}
}

// WithReadOperation adds a get operation on the same path that returns the
// current values.
func WithReadOperation() GeneratorOption {
	return func(cfg *documentConfig) {
		cfg.readable = true
	}
}
