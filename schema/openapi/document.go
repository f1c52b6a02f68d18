package openapi

import (
	"sort"
)

type documentBuilder struct {
	config     documentConfig
	components *componentSet
}

func newDocumentBuilder(config documentConfig) *documentBuilder {
	return &documentBuilder{config: config, components: newComponentSet()}
}

func (b *documentBuilder) build(root *schemaNode) (map[string]any, error) {
	if err := b.config.validate(); err != nil {
		return nil, err
	}

	var body map[string]any
	if b.config.rootComponent != "" {
		body = b.components.publish(b.config.rootComponent, root, b.object)
	} else {
		body = b.object(root)
	}

	info := map[string]any{
		"title":   b.config.title,
		"version": b.config.version,
	}
	if b.config.description != "" {
		info["description"] = b.config.description
	}

	document := map[string]any{
		"openapi": b.config.openAPIVersion,
		"info":    info,
		"paths":   map[string]any{b.config.path: b.pathItem(body)},
	}
	if section := b.components.section(); section != nil {
		document["components"] = section
	}
	return document, nil
}

func (b *documentBuilder) pathItem(body map[string]any) map[string]any {
	content := map[string]any{
		b.config.contentType: map[string]any{"schema": body},
	}

	write := map[string]any{
		"operationId": b.config.id(),
		"requestBody": map[string]any{
			"required": true,
			"content":  content,
		},
		"responses": map[string]any{
			"204": map[string]any{"description": "Parameters applied"},
			"422": map[string]any{
				"description": "Parameters rejected",
				"content": map[string]any{
					b.config.contentType: map[string]any{"schema": rejectionSchema()},
				},
			},
		},
	}
	if b.config.summary != "" {
		write["summary"] = b.config.summary
	}

	item := map[string]any{b.config.method: write}
	if b.config.readable {
		item["get"] = map[string]any{
			"operationId": "get:" + b.config.path,
			"responses": map[string]any{
				"200": map[string]any{
					"description": "Current parameter values",
					"content":     content,
				},
			},
		}
	}
	return item
}

// rejectionSchema describes the failures collected by Container.Validate.
func rejectionSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"errors"},
		"properties": map[string]any{
			"errors": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	}
}

func (b *documentBuilder) schema(node *schemaNode) map[string]any {
	if node.group != "" && !b.config.inlineGroups {
		return b.components.publish(node.group, node, b.object)
	}
	return b.object(node)
}

func (b *documentBuilder) object(node *schemaNode) map[string]any {
	result := node.baseMap()
	if node.Type == "object" {
		props := make(map[string]any, len(node.Properties))
		for _, key := range sortedKeys(node.Properties) {
			props[key] = b.schema(node.Properties[key])
		}
		result["properties"] = props
	}
	if len(node.Required) > 0 {
		required := append([]string{}, node.Required...)
		sort.Strings(required)
		result["required"] = required
	}
	if node.Items != nil {
		result["items"] = b.schema(node.Items)
	}
	return result
}
