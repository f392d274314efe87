package constants

import (
	"context"

	"units-system/core/units"
)

type scopeKey struct{}

// scope maps bare names to constant values. Scopes nest through parent;
// the innermost binding of a name wins.
type scope struct {
	parent *scope
	values map[string]units.Measure
}

func (s *scope) lookup(name string) (units.Measure, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.values[name]; ok {
			return v, true
		}
	}
	return units.Measure{}, false
}

func scopeFrom(ctx context.Context) *scope {
	s, _ := ctx.Value(scopeKey{}).(*scope)
	return s
}

// With returns a context in which the given constants can be referenced by
// bare name. Values are resolved now; an unknown symbol fails the whole
// call. Scopes nest: the returned context keeps every binding of ctx, and
// leaving the scope is simply going back to using ctx.
func With(ctx context.Context, reg *Registry, symbols ...string) (context.Context, error) {
	values := make(map[string]units.Measure, len(symbols))
	for _, sym := range symbols {
		v, err := reg.Value(sym)
		if err != nil {
			return ctx, err
		}
		values[sym] = v
	}
	return context.WithValue(ctx, scopeKey{}, &scope{parent: scopeFrom(ctx), values: values}), nil
}

// InScope reports whether name is bound by a scope of ctx
func InScope(ctx context.Context, name string) bool {
	_, ok := scopeFrom(ctx).lookup(name)
	return ok
}

// ResolverFrom resolves bare names bound in ctx's scopes, then qualified
// Const.x names through reg.
func ResolverFrom(ctx context.Context, reg *Registry) units.Resolver {
	s := scopeFrom(ctx)
	return units.ResolverFunc(func(name string) (units.Measure, bool, error) {
		if v, ok := s.lookup(name); ok {
			return v, true, nil
		}
		return reg.resolveQualified(name)
	})
}

// Eval parses expression with the constants in scope of ctx
func Eval(ctx context.Context, reg *Registry, expression string) (units.Measure, error) {
	return reg.units.ParseWith(expression, ResolverFrom(ctx, reg))
}
