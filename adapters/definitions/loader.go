package definitions

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"units-system/core/constants"
	"units-system/core/graph"
	"units-system/core/prefix"
	"units-system/core/units"
	"units-system/internal/errors"
)

// Loader finds, parses and applies definition files
type Loader struct {
	logger *zap.Logger
	strict bool
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithStrict makes any bad file or definition fail the load. Otherwise
// failures are logged and skipped.
func WithStrict(strict bool) LoaderOption {
	return func(l *Loader) {
		l.strict = strict
	}
}

// NewLoader creates a loader
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{logger: zap.NewNop(), strict: true}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Result summarizes an Apply
type Result struct {
	Units     int
	Constants int
	Skipped   int
}

// Expand resolves glob patterns (doublestar syntax, ** crosses
// directories) to files. Patterns are expanded in order, matches of one
// pattern sorted, duplicates dropped. A pattern without metacharacters
// must name an existing file.
func (l *Loader) Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Wrapf(errors.TypeInput, err, "invalid definition pattern %q", pattern)
		}
		if len(matches) == 0 && !strings.ContainsAny(pattern, "*?[{") {
			return nil, errors.Newf(errors.TypeInput, "definition file %q not found", pattern)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// Load expands patterns and parses every matching file
func (l *Loader) Load(patterns []string) ([]*File, error) {
	paths, err := l.Expand(patterns)
	if err != nil {
		return nil, err
	}

	var files []*File
	for _, path := range paths {
		f, err := ParseFile(path)
		if err != nil {
			if l.strict {
				return nil, err
			}
			l.logger.Warn("skipping definition file", zap.String("path", path), zap.Error(err))
			continue
		}
		l.logger.Info("definition file loaded",
			zap.String("path", path),
			zap.Int("units", len(f.Units)),
			zap.Int("constants", len(f.Constants)))
		files = append(files, f)
	}
	return files, nil
}

// Apply registers the definitions of files on open registries. Units are
// applied before constants; within each kind definitions are ordered so
// that every definition follows the ones it references.
func (l *Loader) Apply(files []*File, ureg *units.Registry, creg *constants.Registry) (Result, error) {
	var res Result

	var unitDefs []UnitDef
	var constDefs []ConstantDef
	for _, f := range files {
		unitDefs = append(unitDefs, f.Units...)
		constDefs = append(constDefs, f.Constants...)
	}

	byUnit := make(map[string]UnitDef, len(unitDefs))
	ug := graph.NewDependencyGraph()
	for _, d := range unitDefs {
		if prev, ok := byUnit[d.Symbol]; ok {
			return res, errors.DuplicateUnit(d.Symbol).
				WithContext("source", d.Source).
				WithContext("previous", prev.Source)
		}
		byUnit[d.Symbol] = d
		ug.AddNode(d.Symbol)
	}
	for _, d := range unitDefs {
		for _, ref := range d.Spec().References() {
			if dep, ok := unitDependency(ug, ref); ok {
				ug.AddEdge(d.Symbol, dep)
			}
		}
	}
	order, err := ug.TopologicalSort()
	if err != nil {
		return res, errors.Wrap(errors.TypeInput, "unit definitions", err)
	}
	for _, sym := range order {
		d := byUnit[sym]
		if err := ureg.Define(d.Spec()); err != nil {
			if err := l.fail(&res, d.Source, sym, err); err != nil {
				return res, err
			}
			continue
		}
		res.Units++
		l.logger.Debug("unit defined", zap.String("symbol", sym), zap.String("source", d.Source))
	}

	byConst := make(map[string]ConstantDef, len(constDefs))
	cg := graph.NewDependencyGraph()
	for _, d := range constDefs {
		if prev, ok := byConst[d.Symbol]; ok {
			return res, errors.DuplicateConstant(d.Symbol).
				WithContext("source", d.Source).
				WithContext("previous", prev.Source)
		}
		byConst[d.Symbol] = d
		cg.AddNode(d.Symbol)
	}
	for _, d := range constDefs {
		for _, ref := range units.Identifiers(d.Value) {
			if sym, ok := strings.CutPrefix(ref, constants.Qualifier); ok && cg.Has(sym) {
				cg.AddEdge(d.Symbol, sym)
			}
		}
	}
	order, err = cg.TopologicalSort()
	if err != nil {
		return res, errors.Wrap(errors.TypeInput, "constant definitions", err)
	}
	for _, sym := range order {
		d := byConst[sym]
		if err := creg.DefineExpr(sym, d.Description, d.Value); err != nil {
			if err := l.fail(&res, d.Source, sym, err); err != nil {
				return res, err
			}
			continue
		}
		res.Constants++
		l.logger.Debug("constant defined", zap.String("symbol", sym), zap.String("source", d.Source))
	}
	return res, nil
}

// LoadAndApply is Load followed by Apply
func (l *Loader) LoadAndApply(patterns []string, ureg *units.Registry, creg *constants.Registry) (Result, error) {
	files, err := l.Load(patterns)
	if err != nil {
		return Result{}, err
	}
	return l.Apply(files, ureg, creg)
}

func (l *Loader) fail(res *Result, source, symbol string, err error) error {
	if l.strict {
		return errors.Wrapf(errors.TypeInput, err, "%s: %s", source, symbol)
	}
	res.Skipped++
	l.logger.Warn("skipping definition", zap.String("symbol", symbol), zap.String("source", source), zap.Error(err))
	return nil
}

// unitDependency maps a referenced symbol to the batch definition it
// needs, looking through prefixes (kB needs B).
func unitDependency(g *graph.DependencyGraph, ref string) (string, bool) {
	if g.Has(ref) {
		return ref, true
	}
	if _, rest, ok := prefix.Split(ref, g.Has); ok {
		return rest, true
	}
	return "", false
}
