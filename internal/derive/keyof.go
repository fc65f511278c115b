package derive

import (
	"fmt"

	"fortio.org/safecast"

	"shapekit/internal/ast"
)

// KeyOf returns the keys always present on values of node: tuple positions,
// struct field keys, the intersection of member keys for unions (ordered by
// the first member). Declarations and lazy nodes are looked through; any
// other kind has no keys.
func KeyOf(node ast.AST) []ast.Key {
	keys, _ := newWalker().keyof(node)
	return keys
}

// keyof reports ok=false for a re-entered Lazy, which acts as the neutral
// element of the union intersection.
func (w *walker) keyof(node ast.AST) ([]ast.Key, bool) {
	switch n := node.(type) {
	case *ast.TypeAliasDeclaration:
		return w.keyof(n.Type)
	case *ast.Tuple:
		return tupleKeys(len(n.Components)), true
	case *ast.Struct:
		out := make([]ast.Key, 0, len(n.Fields))
		for _, f := range n.Fields {
			if !ast.ContainsKey(out, f.Key) {
				out = append(out, f.Key)
			}
		}
		return out, true
	case *ast.Union:
		var (
			out  []ast.Key
			seen bool
		)
		for _, m := range n.Members {
			keys, ok := w.keyof(m)
			if !ok {
				continue
			}
			if !seen {
				out, seen = keys, true
				continue
			}
			out = intersect(out, keys)
		}
		if !seen {
			return nil, false
		}
		return out, true
	case *ast.Lazy:
		forced, release, ok := w.force(n)
		defer release()
		if !ok {
			return nil, false
		}
		return w.keyof(forced)
	default:
		return nil, true
	}
}

func tupleKeys(n int) []ast.Key {
	out := make([]ast.Key, n)
	for i := range out {
		out[i] = ast.IndexKey(i)
	}
	return out
}

// intersect keeps the keys of xs also present in ys, in xs order.
func intersect(xs, ys []ast.Key) []ast.Key {
	in := make(map[ast.Key]struct{}, len(ys))
	for _, k := range ys {
		in[k] = struct{}{}
	}
	out := make([]ast.Key, 0, len(xs))
	for _, k := range xs {
		if _, ok := in[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// IndexOf converts a tuple-derived key back to a component position.
func IndexOf(k ast.Key) (int, error) {
	idx, ok := k.Index()
	if !ok {
		return 0, fmt.Errorf("key %s is not positional", k)
	}
	if _, err := safecast.Conv[uint32](idx); err != nil {
		return 0, fmt.Errorf("key %s: %w", k, err)
	}
	return idx, nil
}
