package derive

import (
	"slices"

	"shapekit/internal/ast"
)

// Fields describes node as a record. Tuple components become read-only fields
// keyed by position, structs yield their own fields, and unions merge the
// fields of their members for every key of KeyOf(node): the merged value is
// the union of member values, optional and readonly when any contributor is.
func Fields(node ast.AST) []ast.Field {
	fields, _ := newWalker().fields(node)
	return slices.Clone(fields)
}

func (w *walker) fields(node ast.AST) ([]ast.Field, bool) {
	switch n := node.(type) {
	case *ast.TypeAliasDeclaration:
		return w.fields(n.Type)
	case *ast.Tuple:
		out := make([]ast.Field, len(n.Components))
		for i, c := range n.Components {
			out[i] = ast.NewField(ast.IndexKey(i), c.Value, c.Optional, true)
		}
		return out, true
	case *ast.Struct:
		return n.Fields, true
	case *ast.Union:
		return w.unionFields(n)
	case *ast.Lazy:
		forced, release, ok := w.force(n)
		defer release()
		if !ok {
			return nil, false
		}
		return w.fields(forced)
	default:
		return nil, true
	}
}

func (w *walker) unionFields(u *ast.Union) ([]ast.Field, bool) {
	keys, ok := w.keyof(u)
	if !ok {
		return nil, false
	}
	perMember := make([][]ast.Field, 0, len(u.Members))
	for _, m := range u.Members {
		fs, ok := w.fields(m)
		if !ok {
			continue
		}
		perMember = append(perMember, fs)
	}
	out := make([]ast.Field, 0, len(keys))
	for _, key := range keys {
		var (
			values   []ast.AST
			optional bool
			readonly bool
		)
		for _, fs := range perMember {
			for _, f := range fs {
				if f.Key != key {
					continue
				}
				values = append(values, f.Value)
				optional = optional || f.Optional
				readonly = readonly || f.Readonly
			}
		}
		out = append(out, ast.NewField(key, ast.NewUnion(values...), optional, readonly))
	}
	return out, true
}
