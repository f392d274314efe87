package definitions

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"units-system/internal/errors"
)

type yamlFile struct {
	Units     []yamlUnit     `yaml:"units"`
	Constants []yamlConstant `yaml:"constants"`
}

var (
	unitFields     = []string{"symbol", "name", "dimension", "factor", "reference", "bias", "expression"}
	constantFields = []string{"symbol", "description", "value"}
)

// yamlUnit and yamlConstant capture the node line for messages. Node.Decode
// does not inherit KnownFields, so keys are checked here.
type yamlUnit struct {
	UnitDef
	line int
}

func (u *yamlUnit) UnmarshalYAML(node *yaml.Node) error {
	if err := checkFields(node, unitFields); err != nil {
		return err
	}
	u.line = node.Line
	return node.Decode(&u.UnitDef)
}

type yamlConstant struct {
	ConstantDef
	line int
}

func (c *yamlConstant) UnmarshalYAML(node *yaml.Node) error {
	if err := checkFields(node, constantFields); err != nil {
		return err
	}
	c.line = node.Line
	return node.Decode(&c.ConstantDef)
}

func checkFields(node *yaml.Node, allowed []string) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return fmt.Errorf("line %d: field %s not found", key.Line, key.Value)
		}
	}
	return nil
}

func parseYAML(path string, src []byte) (*File, error) {
	var doc yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.Wrapf(errors.TypeParsing, err, "failed to parse %s", path)
	}

	f := &File{Path: path}
	for _, u := range doc.Units {
		def := u.UnitDef
		def.Source = fmt.Sprintf("%s:%d", path, u.line)
		f.Units = append(f.Units, def)
	}
	for _, c := range doc.Constants {
		def := c.ConstantDef
		def.Source = fmt.Sprintf("%s:%d", path, c.line)
		f.Constants = append(f.Constants, def)
	}
	return f, nil
}
