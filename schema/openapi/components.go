package openapi

import (
	"fmt"
	"strings"
	"unicode"
)

const componentPrefix = "#/components/schemas/"

// componentSet holds the container groups published under
// components/schemas. Structurally equal groups share one entry; a group
// whose name is taken by a different shape gets a numeric suffix.
type componentSet struct {
	schemas map[string]map[string]any
	byShape map[string]string
}

func newComponentSet() *componentSet {
	return &componentSet{
		schemas: map[string]map[string]any{},
		byShape: map[string]string{},
	}
}

// publish returns the reference for node, rendering it with render the
// first time its shape is seen.
func (s *componentSet) publish(hint string, node *schemaNode, render func(*schemaNode) map[string]any) map[string]any {
	digest := node.Digest()
	if name, ok := s.byShape[digest]; ok && digest != "" {
		return map[string]any{"$ref": componentPrefix + name}
	}
	base := componentName(hint)
	name := base
	for i := 2; s.schemas[name] != nil; i++ {
		name = fmt.Sprintf("%s%d", base, i)
	}
	s.schemas[name] = map[string]any{}
	if digest != "" {
		s.byShape[digest] = name
	}
	s.schemas[name] = render(node)
	return map[string]any{"$ref": componentPrefix + name}
}

func (s *componentSet) section() map[string]any {
	if len(s.schemas) == 0 {
		return nil
	}
	out := make(map[string]any, len(s.schemas))
	for name, schema := range s.schemas {
		out[name] = schema
	}
	return map[string]any{"schemas": out}
}

// componentName turns a container name such as "font_style" into
// "FontStyle".
func componentName(hint string) string {
	words := strings.FieldsFunc(hint, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	name := b.String()
	if name == "" {
		return "Group"
	}
	if unicode.IsDigit(rune(name[0])) {
		return "Group" + name
	}
	return name
}
