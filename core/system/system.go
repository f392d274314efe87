// Package system - Composition root of the unit system
//
// New builds the unit registry with the standard definitions, the constant
// registry, applies extra definition files and freezes both. The returned
// System is immutable and safe to share between goroutines.
package system

import (
	"context"

	"go.uber.org/zap"

	"units-system/adapters/definitions"
	"units-system/core/constants"
	"units-system/core/units"
	"units-system/internal/errors"
	"units-system/internal/metrics"
)

// System bundles the frozen registries
type System struct {
	Units     *units.Registry
	Constants *constants.Registry

	// Loaded summarizes the extra definition files applied
	Loaded definitions.Result
}

type options struct {
	paths    []string
	strict   bool
	logger   *zap.Logger
	observer units.Observer
	metrics  *metrics.Collector
}

// Option configures New
type Option func(*options)

// WithDefinitionPaths adds glob patterns of definition files
func WithDefinitionPaths(patterns ...string) Option {
	return func(o *options) {
		o.paths = append(o.paths, patterns...)
	}
}

// WithStrict controls whether a bad definition file fails New
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver sets the unit registry observer
func WithObserver(observer units.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithMetrics observes lookups and conversions with c and records registry
// sizes once frozen
func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) {
		o.metrics = c
		if c != nil {
			o.observer = c
		}
	}
}

// New builds and freezes a unit system
func New(opts ...Option) (*System, error) {
	o := &options{strict: true, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger

	ureg := units.NewRegistry(units.WithObserver(o.observer))
	if err := units.RegisterStandard(ureg); err != nil {
		return nil, errors.Internal("standard units", err)
	}
	creg := constants.NewRegistry(ureg)
	if err := constants.RegisterStandard(creg); err != nil {
		return nil, errors.Internal("standard constants", err)
	}

	s := &System{Units: ureg, Constants: creg}
	if len(o.paths) > 0 {
		loader := definitions.NewLoader(
			definitions.WithLogger(logger.Named("definitions")),
			definitions.WithStrict(o.strict),
		)
		res, err := loader.LoadAndApply(o.paths, ureg, creg)
		if err != nil {
			return nil, err
		}
		s.Loaded = res
	}

	if ce := logger.Check(zap.DebugLevel, "unit registered"); ce != nil {
		for _, sym := range ureg.Symbols() {
			def, _ := ureg.Lookup(sym)
			logger.Debug("unit registered",
				zap.String("symbol", sym),
				zap.String("dimension", string(def.Dimension)),
				zap.Float64("factor", def.Factor))
		}
		for _, sym := range creg.Symbols() {
			logger.Debug("constant registered", zap.String("symbol", sym))
		}
	}

	ureg.Freeze()
	creg.Freeze()

	if o.metrics != nil {
		o.metrics.SetDefinitions("units", ureg.Len())
		o.metrics.SetDefinitions("dimensions", len(ureg.Dimensions()))
		o.metrics.SetDefinitions("constants", creg.Len())
	}
	logger.Info("unit system ready",
		zap.Int("units", ureg.Len()),
		zap.Int("dimensions", len(ureg.Dimensions())),
		zap.Int("constants", creg.Len()),
		zap.Int("loaded_units", s.Loaded.Units),
		zap.Int("loaded_constants", s.Loaded.Constants))
	return s, nil
}

// Parse evaluates a unit expression; qualified constants (Const.c) resolve
func (s *System) Parse(expression string) (units.Measure, error) {
	return s.Units.ParseWith(expression, s.Constants.Resolver())
}

// Eval evaluates an expression with the constants in scope of ctx
func (s *System) Eval(ctx context.Context, expression string) (units.Measure, error) {
	return constants.Eval(ctx, s.Constants, expression)
}

// WithConstants returns a context with the given constants in scope
func (s *System) WithConstants(ctx context.Context, symbols ...string) (context.Context, error) {
	return constants.With(ctx, s.Constants, symbols...)
}

// Convert evaluates expression and converts it into the target expression
func (s *System) Convert(ctx context.Context, expression, target string, mode units.Mode) (units.Measure, error) {
	m, err := s.Eval(ctx, expression)
	if err != nil {
		return units.Measure{}, err
	}
	t, err := s.Eval(ctx, target)
	if err != nil {
		return units.Measure{}, err
	}
	return m.Convert(t, mode)
}
