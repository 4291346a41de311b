// Package cql implements the component query language, a small textual
// surface over query descriptions. An expression is a conjunction of
// predicate terms:
//
//	ALL(Position, Velocity) & NONE(Frozen)
//	ANY(Cat, Dog)
//	EXACT(Position)
//
// EXACT cannot be combined with other terms, mirroring the description
// validation invariant.
package cql

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/rotisserie/eris"

	"github.com/tempest-engine/tempest/component"
	"github.com/tempest-engine/tempest/query"
	"github.com/tempest-engine/tempest/types"
)

type cqlComponent struct {
	Name string `@Ident`
}

type cqlAll struct {
	Components []*cqlComponent `"ALL" "(" (@@ ",")* @@ ")"`
}

type cqlAny struct {
	Components []*cqlComponent `"ANY" "(" (@@ ",")* @@ ")"`
}

type cqlNone struct {
	Components []*cqlComponent `"NONE" "(" (@@ ",")* @@ ")"`
}

type cqlExact struct {
	Components []*cqlComponent `"EXACT" "(" (@@ ",")* @@ ")"`
}

type cqlTerm struct {
	All   *cqlAll   `@@`
	Any   *cqlAny   `| @@`
	None  *cqlNone  `| @@`
	Exact *cqlExact `| @@`
}

type cqlExpr struct {
	Left  *cqlTerm   `@@`
	Right []*cqlTerm `("&" @@)*`
}

var internalCQLParser = participle.MustBuild[cqlExpr]()

func componentNames(comps []*cqlComponent) string {
	names := make([]string, len(comps))
	for i, c := range comps {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

func (t *cqlTerm) String() string {
	switch {
	case t.All != nil:
		return "ALL(" + componentNames(t.All.Components) + ")"
	case t.Any != nil:
		return "ANY(" + componentNames(t.Any.Components) + ")"
	case t.None != nil:
		return "NONE(" + componentNames(t.None.Components) + ")"
	case t.Exact != nil:
		return "EXACT(" + componentNames(t.Exact.Components) + ")"
	}
	return "<empty>"
}

// Resolver maps a component name in an expression to its registered
// type. The default resolver reads the process-wide registry.
type Resolver func(name string) (types.ComponentType, error)

func registryResolver(name string) (types.ComponentType, error) {
	meta, err := component.ByName(name)
	if err != nil {
		return types.ComponentType{}, err
	}
	return meta.Type(), nil
}

func resolveAll(comps []*cqlComponent, resolve Resolver) ([]types.ComponentType, error) {
	ts := make([]types.ComponentType, 0, len(comps))
	for _, c := range comps {
		t, err := resolve(c.Name)
		if err != nil {
			return nil, eris.Wrapf(err, "unknown component %q", c.Name)
		}
		ts = append(ts, t)
	}
	return ts, nil
}

// Parse compiles an expression into a query description using the
// process-wide component registry to resolve names.
func Parse(src string) (*query.Description, error) {
	return ParseWithResolver(src, registryResolver)
}

// ParseWithResolver compiles an expression, resolving component names
// through the given resolver.
func ParseWithResolver(src string, resolve Resolver) (*query.Description, error) {
	expr, err := internalCQLParser.ParseString("", src)
	if err != nil {
		return nil, eris.Wrap(err, "failed to parse query expression")
	}

	terms := append([]*cqlTerm{expr.Left}, expr.Right...)
	var all, anyOf, none, exact []types.ComponentType
	for _, term := range terms {
		switch {
		case term.All != nil:
			ts, err := resolveAll(term.All.Components, resolve)
			if err != nil {
				return nil, err
			}
			all = append(all, ts...)
		case term.Any != nil:
			ts, err := resolveAll(term.Any.Components, resolve)
			if err != nil {
				return nil, err
			}
			anyOf = append(anyOf, ts...)
		case term.None != nil:
			ts, err := resolveAll(term.None.Components, resolve)
			if err != nil {
				return nil, err
			}
			none = append(none, ts...)
		case term.Exact != nil:
			ts, err := resolveAll(term.Exact.Components, resolve)
			if err != nil {
				return nil, err
			}
			exact = append(exact, ts...)
		default:
			return nil, eris.New("unknown error converting query expression")
		}
		if len(exact) > 0 && len(terms) > 1 {
			return nil, eris.Wrapf(query.ErrMalformedQuery, "%s", term.String())
		}
	}

	d := query.NewDescription()
	if len(exact) > 0 {
		return d.WithExclusive(exact...), nil
	}
	d.WithAll(all...)
	d.WithAny(anyOf...)
	d.WithNone(none...)
	return d, nil
}
