package openapi

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"reflect"
	"sort"

	params "github.com/goliatone/go-params"
)

type schemaNode struct {
	Type        string
	Format      string
	Description string
	Properties  map[string]*schemaNode
	Required    []string
	Items       *schemaNode
	Enum        []any
	Default     any
	MinItems    *int
	MaxItems    *int
	extensions  map[string]any

	// group names a nested container; such nodes become components.
	group string
}

func newObjectNode() *schemaNode {
	return &schemaNode{
		Type:       "object",
		Properties: map[string]*schemaNode{},
	}
}

func (n *schemaNode) baseMap() map[string]any {
	result := map[string]any{}
	if n.Type != "" {
		result["type"] = n.Type
	}
	if n.Format != "" {
		result["format"] = n.Format
	}
	if n.Description != "" {
		result["description"] = n.Description
	}
	if n.Default != nil {
		result["default"] = n.Default
	}
	if len(n.Enum) > 0 {
		result["enum"] = n.Enum
	}
	if n.MinItems != nil {
		result["minItems"] = *n.MinItems
	}
	if n.MaxItems != nil {
		result["maxItems"] = *n.MaxItems
	}
	for key, value := range n.extensions {
		result[key] = value
	}
	return result
}

func (n *schemaNode) inlineOpenAPI() map[string]any {
	result := n.baseMap()
	if len(n.Properties) > 0 || n.Type == "object" {
		props := make(map[string]any, len(n.Properties))
		for _, name := range sortedKeys(n.Properties) {
			props[name] = n.Properties[name].inlineOpenAPI()
		}
		result["properties"] = props
	}
	if len(n.Required) > 0 {
		names := append([]string{}, n.Required...)
		sort.Strings(names)
		result["required"] = names
	}
	if n.Items != nil {
		result["items"] = n.Items.inlineOpenAPI()
	}
	return result
}

func (n *schemaNode) extend(key string, value any) {
	if n.extensions == nil {
		n.extensions = map[string]any{}
	}
	n.extensions[key] = value
}

// Digest identifies structurally equal nodes so repeated groups can share a
// component.
func (n *schemaNode) Digest() string {
	data, err := json.Marshal(n.inlineOpenAPI())
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

type schemaBuilder struct {
	// visited guards against a container reachable from itself.
	visited map[*params.Container]bool
}

func buildSchemaGraph(c *params.Container) (*schemaNode, error) {
	b := &schemaBuilder{visited: map[*params.Container]bool{}}
	return b.container(c), nil
}

func (b *schemaBuilder) container(c *params.Container) *schemaNode {
	node := newObjectNode()
	if c == nil || b.visited[c] {
		return node
	}
	b.visited[c] = true
	defer delete(b.visited, c)

	for _, p := range c.Parameters() {
		node.Properties[p.Name()] = b.parameter(p)
		if p.Required() {
			node.Required = append(node.Required, p.Name())
		}
	}
	return node
}

func (b *schemaBuilder) parameter(p *params.Parameter) *schemaNode {
	if p.Accepts(params.ContainerType) && len(p.VType()) > 0 {
		nested, _ := p.Value().(*params.Container)
		if nested == nil {
			nested, _ = p.Default().(*params.Container)
		}
		node := b.container(nested)
		node.Description = p.Doc()
		node.group = p.Name()
		if nested != nil && nested.Name() != "" {
			node.group = nested.Name()
		}
		return node
	}

	element := scalarNode(p.VType())
	var node *schemaNode
	switch {
	case p.Size() > 0:
		size := p.Size()
		node = &schemaNode{Type: "array", Items: element, MinItems: &size, MaxItems: &size}
	case p.IsArray():
		node = &schemaNode{Type: "array", Items: element}
	default:
		node = element
	}
	node.Description = p.Doc()
	if def := jsonValue(p.Default()); def != nil {
		node.Default = def
	}
	if allow := p.AllowedValues(); len(allow) > 0 {
		node.Enum = make([]any, 0, len(allow))
		for _, value := range allow {
			node.Enum = append(node.Enum, jsonValue(value))
		}
	}
	if names := typeNames(p.VType()); len(names) > 0 {
		node.extend("x-params-vtype", names)
	}
	return node
}

func scalarNode(types []reflect.Type) *schemaNode {
	var kinds []string
	seen := map[string]bool{}
	for _, t := range types {
		kind := jsonKind(t)
		if kind == "" || seen[kind] {
			continue
		}
		seen[kind] = true
		kinds = append(kinds, kind)
	}
	switch {
	case len(kinds) == 0:
		return &schemaNode{}
	case len(kinds) == 2 && seen["integer"] && seen["number"]:
		return &schemaNode{Type: "number"}
	case len(kinds) > 1:
		return &schemaNode{}
	}
	if kinds[0] == "color" {
		minItems, maxItems := 3, 4
		return &schemaNode{
			Type:     "array",
			Format:   "color",
			Items:    &schemaNode{Type: "number"},
			MinItems: &minItems,
			MaxItems: &maxItems,
		}
	}
	node := &schemaNode{Type: kinds[0]}
	if acceptsErrorMode(types) {
		node.Enum = []any{"none", "warning", "error", "critical", "exception"}
	}
	return node
}

func jsonKind(t reflect.Type) string {
	switch t {
	case params.ColorType, params.AutoColorType:
		return "color"
	case params.ErrorModeType:
		return "string"
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return ""
	}
}

func acceptsErrorMode(types []reflect.Type) bool {
	for _, t := range types {
		if t == params.ErrorModeType {
			return true
		}
	}
	return false
}

func typeNames(types []reflect.Type) []string {
	if len(types) == 0 {
		return nil
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}

// jsonValue converts parameter values into JSON friendly ones. Containers
// are described by their own schema and dropped here.
func jsonValue(value any) any {
	switch v := value.(type) {
	case nil, *params.Container:
		return nil
	case params.Color:
		return v.RGB()
	case params.AutoColor:
		return v.RGB()
	case params.ErrorMode:
		return v.String()
	case params.Handle:
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = jsonValue(rv.Index(i).Interface())
		}
		return out
	}
	return value
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
