// Package constants - Named physical constants
//
// Constants are stored as immutable measures. A constant may reference
// other constants by qualified name (Const.c) in its defining expression;
// the reference is resolved once, at definition time.
package constants

import (
	"fmt"
	"strings"

	"units-system/core/determinism"
	"units-system/core/units"
	"units-system/internal/errors"
)

// Qualifier prefixes a constant name in unit expressions: Const.c
const Qualifier = "Const."

// Entry is one registered constant
type Entry struct {
	Symbol      string
	Description string
	Value       units.Measure
}

// Registry holds constants in definition order. Like the unit registry it
// is written during initialization only and read-only after Freeze.
type Registry struct {
	units   *units.Registry
	entries *determinism.OrderedMap[string, Entry]
	frozen  bool
}

// NewRegistry creates an empty constant registry over a unit registry
func NewRegistry(u *units.Registry) *Registry {
	return &Registry{
		units:   u,
		entries: determinism.NewOrderedMap[string, Entry](),
	}
}

// Units returns the unit registry expressions are evaluated against
func (r *Registry) Units() *units.Registry {
	return r.units
}

// Define stores a constant
func (r *Registry) Define(symbol, description string, value units.Measure) error {
	if r.frozen {
		return errors.Frozen("constant registry")
	}
	if symbol == "" {
		return errors.Input("constant symbol is required")
	}
	if strings.Contains(symbol, ".") {
		return errors.Newf(errors.TypeInput, "constant symbol %q must not contain '.'", symbol)
	}
	if !units.IsSymbol(symbol) {
		return errors.Newf(errors.TypeInput, "constant symbol %q is not a single identifier", symbol)
	}
	if r.entries.Has(symbol) {
		return errors.DuplicateConstant(symbol)
	}
	r.entries.Set(symbol, Entry{Symbol: symbol, Description: description, Value: value})
	return nil
}

// DefineExpr evaluates expression, resolving Const.x references against
// constants already defined, and stores the result.
func (r *Registry) DefineExpr(symbol, description, expression string) error {
	value, err := r.units.ParseWith(expression, r.Resolver())
	if err != nil {
		return errors.Parsing(fmt.Sprintf("constant %q", symbol), err)
	}
	return r.Define(symbol, description, value)
}

// Lookup returns a constant entry
func (r *Registry) Lookup(symbol string) (Entry, error) {
	e, ok := r.entries.Get(symbol)
	if !ok {
		return Entry{}, errors.UnknownConstant(symbol)
	}
	return e, nil
}

// Value returns the value of a constant
func (r *Registry) Value(symbol string) (units.Measure, error) {
	e, err := r.Lookup(symbol)
	if err != nil {
		return units.Measure{}, err
	}
	return e.Value, nil
}

// Symbols returns constant symbols in definition order
func (r *Registry) Symbols() []string {
	return r.entries.Keys()
}

// Len returns the number of constants
func (r *Registry) Len() int {
	return r.entries.Len()
}

// Freeze ends the definition phase
func (r *Registry) Freeze() {
	r.frozen = true
}

// IsFrozen returns whether the registry is frozen
func (r *Registry) IsFrozen() bool {
	return r.frozen
}

// Resolver resolves qualified names (Const.c). A qualified name that is
// not a known constant is an error; anything else falls through.
func (r *Registry) Resolver() units.Resolver {
	return units.ResolverFunc(r.resolveQualified)
}

func (r *Registry) resolveQualified(name string) (units.Measure, bool, error) {
	symbol, ok := strings.CutPrefix(name, Qualifier)
	if !ok {
		return units.Measure{}, false, nil
	}
	v, err := r.Value(symbol)
	if err != nil {
		return units.Measure{}, false, err
	}
	return v, true, nil
}
