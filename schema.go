package params

// FieldDescriptor describes one public parameter by its flat path.
type FieldDescriptor struct {
	Path     string
	Type     string
	Default  any
	Required bool
	Allow    []any
	Doc      string
}

// DefaultSchemaGenerator returns the built-in descriptor-based schema generator.
func DefaultSchemaGenerator() SchemaGenerator {
	return descriptorGenerator{}
}

type descriptorGenerator struct{}

func (descriptorGenerator) Generate(c *Container) (SchemaDocument, error) {
	descriptors := deriveFieldDescriptors(c, "")
	if descriptors == nil {
		descriptors = []FieldDescriptor{}
	}
	return SchemaDocument{
		Format:   SchemaFormatDescriptors,
		Document: descriptors,
	}, nil
}

// Schema describes the container through the configured generator.
func (c *Container) Schema() (SchemaDocument, error) {
	generator := c.cfg.schemaGenerator
	if generator == nil {
		generator = DefaultSchemaGenerator()
	}
	return generator.Generate(c)
}

func deriveFieldDescriptors(c *Container, prefix string) []FieldDescriptor {
	if c == nil {
		return nil
	}
	var fields []FieldDescriptor
	for _, p := range c.Parameters() {
		path := joinName(prefix, p.name)
		if p.isContainer() {
			if nested := p.nested(); nested != nil {
				fields = append(fields, deriveFieldDescriptors(nested, path)...)
				continue
			}
		}
		fields = append(fields, FieldDescriptor{
			Path:     path,
			Type:     descriptorType(p),
			Default:  snapshotValue(p.Default()),
			Required: p.required,
			Allow:    p.AllowedValues(),
			Doc:      p.doc,
		})
	}
	return fields
}

func descriptorType(p *Parameter) string {
	name := "any"
	if len(p.vtype) > 0 {
		name = typeNames(p.vtype)
	} else if p.def != nil {
		name = describeType(p.Default())
	}
	if p.size > 0 || p.array {
		return "[]" + name
	}
	return name
}
