package paramfile

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// HCLCodec decodes HCL native syntax. Attributes become values and blocks
// without labels become nested groups:
//
//	opacity = 0.5
//	font {
//	  size = 24
//	}
type HCLCodec struct {
	filename string
}

// NewHCLCodec creates an HCL codec.
func NewHCLCodec() *HCLCodec {
	return &HCLCodec{filename: "params.hcl"}
}

// Format returns the codec format identifier.
func (c *HCLCodec) Format() string {
	return "hcl"
}

// Decode reads an HCL document. Expressions are evaluated without
// variables or functions.
func (c *HCLCodec) Decode(r io.Reader) (map[string]any, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("paramfile: read hcl: %w", err)
	}
	file, diags := hclparse.NewParser().ParseHCL(src, c.filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("paramfile: parse hcl: %s", diags.Error())
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("paramfile: unexpected hcl body %T", file.Body)
	}
	doc, err := decodeBody(body)
	if err != nil {
		return nil, err
	}
	return normalizeDocument(doc), nil
}

func decodeBody(body *hclsyntax.Body) (map[string]any, error) {
	out := make(map[string]any, len(body.Attributes)+len(body.Blocks))
	for name, attr := range body.Attributes {
		value, diags := attr.Expr.Value(&hcl.EvalContext{})
		if diags.HasErrors() {
			return nil, fmt.Errorf("paramfile: attribute %q: %s", name, diags.Error())
		}
		native, err := ctyToNative(value)
		if err != nil {
			return nil, fmt.Errorf("paramfile: attribute %q: %w", name, err)
		}
		out[name] = native
	}
	for _, block := range body.Blocks {
		if len(block.Labels) > 0 {
			return nil, fmt.Errorf("paramfile: block %q must not have labels", block.Type)
		}
		nested, err := decodeBody(block.Body)
		if err != nil {
			return nil, err
		}
		if existing, ok := out[block.Type].(map[string]any); ok {
			for key, value := range nested {
				existing[key] = value
			}
			continue
		}
		out[block.Type] = nested
	}
	return out, nil
}

func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number: %w", err)
		}
		return numberFromFloat(f), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		items := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			items = append(items, native)
		}
		return items, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
