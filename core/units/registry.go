package units

import (
	"math"

	"units-system/core/determinism"
	"units-system/core/prefix"
	"units-system/internal/errors"
)

// siTolerance is how close to 1.0 a compound unit's SI magnitude must be
// for the unit to become its dimension's SI reference.
const siTolerance = 1e-12

// Observer receives lookup and conversion events. Implementations must be
// safe for concurrent use.
type Observer interface {
	ObserveLookup(outcome string)
	ObserveConversion(err error)
}

// Lookup outcomes reported to the Observer
const (
	LookupDirect   = "direct"
	LookupPrefixed = "prefixed"
	LookupMiss     = "miss"
)

type nopObserver struct{}

func (nopObserver) ObserveLookup(string)    {}
func (nopObserver) ObserveConversion(error) {}

// Reference is the canonical SI unit of a dimension: either a unit symbol
// or, for dimensions without a named unit, a compound unit map.
type Reference struct {
	Symbol string
	Units  UnitMap
}

// IsCompound reports whether the reference is a compound unit map
func (r Reference) IsCompound() bool {
	return r.Symbol == ""
}

func (r Reference) String() string {
	if r.IsCompound() {
		return r.Units.String()
	}
	return r.Symbol
}

// Registry resolves unit symbols and dimensions. It is open for
// registration until Freeze; afterwards it is read-only and safe to share
// across goroutines without locking.
type Registry struct {
	units    *determinism.OrderedMap[string, *Definition]
	si       *determinism.OrderedMap[Dimension, Reference]
	frozen   bool
	observer Observer
}

// Option configures a Registry
type Option func(*Registry)

// WithObserver sets the lookup/conversion observer
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		if o != nil {
			r.observer = o
		}
	}
}

// NewRegistry creates an empty, open registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		units:    determinism.NewOrderedMap[string, *Definition](),
		si:       determinism.NewOrderedMap[Dimension, Reference](),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Freeze ends the registration phase
func (r *Registry) Freeze() {
	r.frozen = true
}

// IsFrozen returns whether the registry is frozen
func (r *Registry) IsFrozen() bool {
	return r.frozen
}

// Len returns the number of directly registered units
func (r *Registry) Len() int {
	return r.units.Len()
}

// Symbols returns registered symbols in registration order
func (r *Registry) Symbols() []string {
	return r.units.Keys()
}

// Dimensions returns the dimensions with an SI reference, in the order the
// references were established. Dimension inference scans this order.
func (r *Registry) Dimensions() []Dimension {
	return r.si.Keys()
}

// SIReference returns the SI reference of a dimension
func (r *Registry) SIReference(dim Dimension) (Reference, bool) {
	return r.si.Get(dim)
}

// DeclareSI sets the SI reference unit symbol of a dimension. The symbol
// need not be registered yet (kg is declared before g exists). An existing
// reference is never replaced.
func (r *Registry) DeclareSI(dim Dimension, symbol string) error {
	if r.frozen {
		return errors.Frozen("unit registry")
	}
	if !r.si.Has(dim) {
		r.si.Set(dim, Reference{Symbol: symbol})
	}
	return nil
}

// DeclareCompoundSI sets a compound SI reference (m/s for speed) for a
// dimension that has no dedicated named unit.
func (r *Registry) DeclareCompoundSI(dim Dimension, expression string) error {
	if r.frozen {
		return errors.Frozen("unit registry")
	}
	m, err := r.Parse(expression)
	if err != nil {
		return err
	}
	if !r.si.Has(dim) {
		r.si.Set(dim, Reference{Units: m.units.Clone()})
	}
	return nil
}

// Known reports whether symbol resolves, directly or through a prefix
func (r *Registry) Known(symbol string) bool {
	if r.units.Has(symbol) {
		return true
	}
	if _, ok := prefix.Get(symbol); ok {
		return true
	}
	_, _, ok := prefix.Split(symbol, r.units.Has)
	return ok
}

// Lookup resolves a symbol. A direct registration wins; a bare prefix is
// a pure scale factor; otherwise the longest prefix whose remainder is
// registered synthesizes a scaled copy of the remainder's definition.
func (r *Registry) Lookup(symbol string) (Definition, error) {
	if def, ok := r.units.Get(symbol); ok {
		r.observer.ObserveLookup(LookupDirect)
		return *def, nil
	}

	if p, ok := prefix.Get(symbol); ok {
		r.observer.ObserveLookup(LookupPrefixed)
		return Definition{
			Symbol: symbol,
			Name:   p.Name,
			Factor: p.Factor,
			Prefix: p.Symbol,
		}, nil
	}

	p, rest, ok := prefix.Split(symbol, r.units.Has)
	if !ok {
		r.observer.ObserveLookup(LookupMiss)
		return Definition{}, errors.UnknownUnit(symbol)
	}
	base, _ := r.units.Get(rest)
	r.observer.ObserveLookup(LookupPrefixed)

	def := *base
	def.Symbol = symbol
	def.Name = p.Name + base.Name
	def.Factor = base.Factor * p.Factor
	def.Prefix = p.Symbol
	if base.Decomposition != nil {
		scaled := base.Decomposition.Scale(p.Factor)
		def.Decomposition = &scaled
	}
	return def, nil
}

// DimensionOf returns the dimension of a symbol
func (r *Registry) DimensionOf(symbol string) (Dimension, error) {
	def, err := r.Lookup(symbol)
	if err != nil {
		return NoDimension, err
	}
	return def.Dimension, nil
}

// ConversionFactor is the multiplier taking a value in from to a value in to
func (r *Registry) ConversionFactor(from, to string) (float64, error) {
	f, t, err := r.pair(from, to)
	if err != nil {
		return 0, err
	}
	return f.Factor / t.Factor, nil
}

// ConversionBias is the additive term, in units of to, applied after the
// factor when converting absolute values of affine scales
func (r *Registry) ConversionBias(from, to string) (float64, error) {
	f, t, err := r.pair(from, to)
	if err != nil {
		return 0, err
	}
	return f.Bias*(f.Factor/t.Factor) - t.Bias, nil
}

func (r *Registry) pair(from, to string) (Definition, Definition, error) {
	f, err := r.Lookup(from)
	if err != nil {
		return Definition{}, Definition{}, err
	}
	t, err := r.Lookup(to)
	if err != nil {
		return Definition{}, Definition{}, err
	}
	if f.Dimension != t.Dimension {
		return Definition{}, Definition{}, errors.InconsistentUnits(from, to)
	}
	return f, t, nil
}

// mustFactor is ConversionFactor for symbols already known to share a
// dimension slot in some Measure.
func (r *Registry) mustFactor(from, to string) float64 {
	f, err := r.ConversionFactor(from, to)
	if err != nil {
		panic("INVARIANT VIOLATED: " + err.Error())
	}
	return f
}

// Define registers a unit. See Spec for the accepted forms.
func (r *Registry) Define(s Spec) error {
	if r.frozen {
		return errors.Frozen("unit registry")
	}
	if s.Symbol == "" {
		return errors.Input("unit symbol is required")
	}
	if !IsSymbol(s.Symbol) {
		return errors.Newf(errors.TypeInput, "unit symbol %q is not a single identifier", s.Symbol)
	}
	if r.units.Has(s.Symbol) {
		return errors.DuplicateUnit(s.Symbol)
	}

	var (
		def       *Definition
		promoteSI bool
		err       error
	)
	switch s.form() {
	case "compound":
		def, promoteSI, err = r.compound(s)
	case "reference":
		def, err = r.referenced(s)
	default:
		def, promoteSI, err = r.base(s)
	}
	if err != nil {
		return err
	}

	r.units.Set(s.Symbol, def)
	if promoteSI && def.Dimension != NoDimension && !r.si.Has(def.Dimension) {
		r.si.Set(def.Dimension, Reference{Symbol: s.Symbol})
	}
	return nil
}

func (r *Registry) base(s Spec) (*Definition, bool, error) {
	if s.Dimension == NoDimension {
		return nil, false, errors.DimensionRequired(s.Symbol)
	}
	if s.Factor <= 0 {
		return nil, false, errors.Newf(errors.TypeInput, "unit %q: factor must be positive", s.Symbol)
	}
	def := &Definition{
		Symbol:    s.Symbol,
		Name:      s.Name,
		Dimension: s.Dimension,
		Factor:    s.Factor,
	}
	// A base unit of a dimension whose SI reference is not primitive
	// decomposes through that reference so that it converts to SI bases.
	if ref, ok := r.si.Get(s.Dimension); ok && ref.Symbol != s.Symbol {
		if refMeasure, ok := r.referenceMeasure(ref); ok && (ref.IsCompound() || !refMeasure.DetailedUnits().Identical(refMeasure)) {
			dec := refMeasure.Scale(s.Factor)
			def.Decomposition = &dec
		}
	}
	return def, math.Abs(s.Factor-1) <= siTolerance, nil
}

func (r *Registry) referenced(s Spec) (*Definition, error) {
	if s.Factor <= 0 {
		return nil, errors.Newf(errors.TypeInput, "unit %q: factor must be positive", s.Symbol)
	}
	ref, err := r.Lookup(s.Reference)
	if err != nil {
		return nil, err
	}
	if s.Dimension != NoDimension && s.Dimension != ref.Dimension {
		return nil, errors.InconsistentDimension(s.Symbol, string(s.Dimension), string(ref.Dimension))
	}

	def := &Definition{
		Symbol:    s.Symbol,
		Name:      s.Name,
		Dimension: ref.Dimension,
		Factor:    s.Factor * ref.Factor,
		Bias:      s.Bias,
	}
	if ref.Decomposition != nil {
		scaled := ref.Decomposition.Scale(s.Factor)
		def.Decomposition = &scaled
	}
	return def, nil
}

func (r *Registry) compound(s Spec) (*Definition, bool, error) {
	var expr Measure
	if s.Value != nil {
		expr = *s.Value
	} else {
		m, err := r.Parse(s.Expression)
		if err != nil {
			return nil, false, errors.Wrapf(errors.TypeParsing, err, "unit %q expression", s.Symbol)
		}
		expr = m
	}

	dim := s.Dimension
	declared := dim != NoDimension
	if !declared {
		dim = expr.Dimension()
		if dim == NoDimension {
			return nil, false, errors.DimensionRequired(s.Symbol)
		}
	}

	si, err := expr.ToSI()
	if err != nil {
		return nil, false, err
	}
	factor := si.Magnitude()
	if factor <= 0 {
		return nil, false, errors.Newf(errors.TypeInput, "unit %q: factor must be positive", s.Symbol)
	}

	def := &Definition{
		Symbol:    s.Symbol,
		Name:      s.Name,
		Dimension: dim,
		Factor:    factor,
	}
	if !expr.IsMagnitude() {
		d := expr
		def.Decomposition = &d
	}
	return def, declared && math.Abs(factor-1) <= siTolerance, nil
}
