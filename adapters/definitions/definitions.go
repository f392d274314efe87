// Package definitions loads extra unit and constant definitions from HCL
// and YAML files.
package definitions

import (
	"os"
	"path/filepath"
	"strings"

	"units-system/core/units"
	"units-system/internal/errors"
)

// UnitDef is one unit definition as written in a file. Factor defaults to
// 1 when omitted.
type UnitDef struct {
	Symbol     string   `yaml:"symbol"`
	Name       string   `yaml:"name"`
	Dimension  string   `yaml:"dimension"`
	Factor     *float64 `yaml:"factor"`
	Reference  string   `yaml:"reference"`
	Bias       float64  `yaml:"bias"`
	Expression string   `yaml:"expression"`

	// Source is file:line, for messages
	Source string `yaml:"-"`
}

// Spec converts the definition into a registration request
func (d UnitDef) Spec() units.Spec {
	factor := 1.0
	if d.Factor != nil {
		factor = *d.Factor
	}
	return units.Spec{
		Symbol:     d.Symbol,
		Name:       d.Name,
		Dimension:  units.Dimension(d.Dimension),
		Factor:     factor,
		Reference:  d.Reference,
		Bias:       d.Bias,
		Expression: d.Expression,
	}
}

// ConstantDef is one constant definition. Value is a unit expression that
// may reference other constants as Const.x.
type ConstantDef struct {
	Symbol      string `yaml:"symbol"`
	Description string `yaml:"description"`
	Value       string `yaml:"value"`

	Source string `yaml:"-"`
}

// File is the parsed content of one definition file
type File struct {
	Path      string
	Units     []UnitDef
	Constants []ConstantDef
}

// Format is a definition file syntax
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from the file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.Newf(errors.TypeInput, "unsupported definition file %q: expected .hcl, .yaml or .yml", path)
}

// Parse parses src according to the extension of path
func Parse(path string, src []byte) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	var f *File
	if format == FormatHCL {
		f, err = parseHCL(path, src)
	} else {
		f, err = parseYAML(path, src)
	}
	if err != nil {
		return nil, err
	}
	return f, f.validate()
}

// ParseFile reads and parses a definition file
func ParseFile(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "failed to read %s", path)
	}
	return Parse(path, src)
}

func (f *File) validate() error {
	for _, u := range f.Units {
		if u.Symbol == "" {
			return errors.Newf(errors.TypeParsing, "%s: unit without symbol", u.Source)
		}
	}
	for _, c := range f.Constants {
		if c.Symbol == "" {
			return errors.Newf(errors.TypeParsing, "%s: constant without symbol", c.Source)
		}
		if c.Value == "" {
			return errors.Newf(errors.TypeParsing, "%s: constant %q without value", c.Source, c.Symbol)
		}
	}
	return nil
}
