package interp

import (
	"shapekit/internal/ast"
	"shapekit/internal/capability"
)

// Guard reports whether a value inhabits a type.
type Guard func(value any) bool

// GuardFactory is the provider entry for capability.Guard. It receives the
// guards of the declaration's realised type parameters.
type GuardFactory func(params []Guard) Guard

// Guards compiles AST nodes into guards.
type Guards struct {
	memo *memo[Guard]
}

// NewGuards returns a guard compiler with a memo cache of the given size
// (DefaultCacheSize when size <= 0).
func NewGuards(size int) (*Guards, error) {
	m, err := newMemo[Guard](size)
	if err != nil {
		return nil, err
	}
	return &Guards{memo: m}, nil
}

// Compile builds a guard for node. Lazy nodes are forced only when a value
// reaches them.
func (g *Guards) Compile(node ast.AST) Guard {
	switch n := node.(type) {
	case *ast.TypeAliasDeclaration:
		return g.memo.load(n, func() Guard { return g.declaration(n) })
	case *ast.LiteralType:
		lit := n.Literal
		return func(v any) bool { return matchesLiteral(lit, v) }
	case *ast.Keyword:
		kind := n.Kind()
		return func(v any) bool { return matchesKeyword(kind, v) }
	case *ast.Struct:
		return g.structGuard(n)
	case *ast.Tuple:
		return g.tupleGuard(n)
	case *ast.Union:
		members := make([]Guard, len(n.Members))
		for i, m := range n.Members {
			members[i] = g.Compile(m)
		}
		return func(v any) bool {
			for _, m := range members {
				if m(v) {
					return true
				}
			}
			return false
		}
	case *ast.Lazy:
		return func(v any) bool {
			return g.memo.load(n, func() Guard { return g.Compile(n.Force()) })(v)
		}
	}
	return func(any) bool { return false }
}

func (g *Guards) declaration(d *ast.TypeAliasDeclaration) Guard {
	if factory, ok := capability.Find[GuardFactory](d.Provider, capability.Guard); ok {
		params := make([]Guard, len(d.TypeParameters))
		for i, p := range d.TypeParameters {
			params[i] = g.Compile(p)
		}
		return factory(params)
	}
	return g.Compile(d.Type)
}

func (g *Guards) structGuard(s *ast.Struct) Guard {
	type fieldGuard struct {
		name     string
		optional bool
		guard    Guard
	}
	fields := make([]fieldGuard, 0, len(s.Fields))
	for _, f := range s.Fields {
		name, ok := recordKey(f.Key)
		if !ok {
			continue
		}
		fields = append(fields, fieldGuard{name: name, optional: f.Optional, guard: g.Compile(f.Value)})
	}
	sigs := stringSignatures(s)
	sigGuards := make([]Guard, len(sigs))
	for i, sig := range sigs {
		sigGuards[i] = g.Compile(sig.Value)
	}
	known := fieldKeys(s)
	return func(v any) bool {
		rec, ok := asRecord(v)
		if !ok {
			return false
		}
		for _, f := range fields {
			value, present := rec[f.name]
			if !present || IsUndefined(value) {
				if f.optional {
					continue
				}
				if !present {
					return false
				}
			}
			if !f.guard(value) {
				return false
			}
		}
		if len(sigGuards) == 0 {
			return true
		}
		for key, value := range rec {
			if _, isField := known[key]; isField {
				continue
			}
			for _, sg := range sigGuards {
				if !sg(value) {
					return false
				}
			}
		}
		return true
	}
}

func (g *Guards) tupleGuard(t *ast.Tuple) Guard {
	comps := make([]Guard, len(t.Components))
	for i, c := range t.Components {
		comps[i] = g.Compile(c.Value)
	}
	var rest Guard
	if t.Rest != nil {
		rest = g.Compile(t.Rest)
	}
	components := t.Components
	return func(v any) bool {
		arr, ok := asArray(v)
		if !ok {
			return false
		}
		if rest == nil && len(arr) > len(components) {
			return false
		}
		for i, c := range components {
			if i >= len(arr) {
				if !c.Optional {
					return false
				}
				continue
			}
			if c.Optional && IsUndefined(arr[i]) {
				continue
			}
			if !comps[i](arr[i]) {
				return false
			}
		}
		for i := len(components); i < len(arr); i++ {
			if !rest(arr[i]) {
				return false
			}
		}
		return true
	}
}
