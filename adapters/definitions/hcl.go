package definitions

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"units-system/internal/errors"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "unit", LabelNames: []string{"symbol"}},
		{Type: "constant", LabelNames: []string{"symbol"}},
	},
}

var unitSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "name"},
		{Name: "dimension"},
		{Name: "factor"},
		{Name: "reference"},
		{Name: "bias"},
		{Name: "expression"},
	},
}

var constantSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "value", Required: true},
	},
}

func parseHCL(path string, src []byte) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, diagError(diags)
	}

	content, diags := hclFile.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diagError(diags)
	}

	f := &File{Path: path}
	for _, block := range content.Blocks {
		source := fmt.Sprintf("%s:%d", path, block.DefRange.Start.Line)
		switch block.Type {
		case "unit":
			u, err := decodeUnit(block)
			if err != nil {
				return nil, err
			}
			u.Source = source
			f.Units = append(f.Units, u)
		case "constant":
			c, err := decodeConstant(block)
			if err != nil {
				return nil, err
			}
			c.Source = source
			f.Constants = append(f.Constants, c)
		}
	}
	return f, nil
}

func decodeUnit(block *hcl.Block) (UnitDef, error) {
	u := UnitDef{Symbol: block.Labels[0]}
	content, diags := block.Body.Content(unitSchema)
	if diags.HasErrors() {
		return u, diagError(diags)
	}

	var err error
	attrs := content.Attributes
	if u.Name, err = stringAttr(attrs, "name"); err != nil {
		return u, err
	}
	if u.Dimension, err = stringAttr(attrs, "dimension"); err != nil {
		return u, err
	}
	if u.Reference, err = stringAttr(attrs, "reference"); err != nil {
		return u, err
	}
	if u.Expression, err = stringAttr(attrs, "expression"); err != nil {
		return u, err
	}
	if u.Factor, err = numberAttr(attrs, "factor"); err != nil {
		return u, err
	}
	bias, err := numberAttr(attrs, "bias")
	if err != nil {
		return u, err
	}
	if bias != nil {
		u.Bias = *bias
	}
	return u, nil
}

func decodeConstant(block *hcl.Block) (ConstantDef, error) {
	c := ConstantDef{Symbol: block.Labels[0]}
	content, diags := block.Body.Content(constantSchema)
	if diags.HasErrors() {
		return c, diagError(diags)
	}

	var err error
	if c.Description, err = stringAttr(content.Attributes, "description"); err != nil {
		return c, err
	}
	if c.Value, err = stringAttr(content.Attributes, "value"); err != nil {
		return c, err
	}
	return c, nil
}

// attrValue evaluates a literal attribute. Definition files have no
// variables or functions, so the evaluation context is nil.
func attrValue(attrs hcl.Attributes, name string) (cty.Value, *hcl.Attribute, error) {
	attr, ok := attrs[name]
	if !ok {
		return cty.NilVal, nil, nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, attr, diagError(diags)
	}
	if !val.IsKnown() || val.IsNull() {
		return cty.NilVal, attr, attrError(attr, "must be a literal value")
	}
	return val, attr, nil
}

func stringAttr(attrs hcl.Attributes, name string) (string, error) {
	val, attr, err := attrValue(attrs, name)
	if err != nil || attr == nil {
		return "", err
	}
	if val.Type() != cty.String {
		return "", attrError(attr, "must be a string, got "+val.Type().FriendlyName())
	}
	return val.AsString(), nil
}

func numberAttr(attrs hcl.Attributes, name string) (*float64, error) {
	val, attr, err := attrValue(attrs, name)
	if err != nil || attr == nil {
		return nil, err
	}
	if val.Type() != cty.Number {
		return nil, attrError(attr, "must be a number, got "+val.Type().FriendlyName())
	}
	f, _ := val.AsBigFloat().Float64()
	return &f, nil
}

func attrError(attr *hcl.Attribute, msg string) error {
	return errors.Newf(errors.TypeParsing, "%s:%d: %s %s",
		attr.Range.Filename, attr.Range.Start.Line, attr.Name, msg)
}

func diagError(diags hcl.Diagnostics) error {
	var msgs []string
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		msg := diag.Summary
		if diag.Detail != "" {
			msg += ": " + diag.Detail
		}
		if diag.Subject != nil {
			msg = fmt.Sprintf("%s:%d: %s", diag.Subject.Filename, diag.Subject.Start.Line, msg)
		}
		msgs = append(msgs, msg)
	}
	return errors.New(errors.TypeParsing, strings.Join(msgs, "; "))
}
