package ast

import (
	"slices"
	"sort"
)

// Union is a sum type. It always has at least two members and never contains
// a nested Union. Members are kept in descending weight order.
type Union struct {
	Members []AST
}

func (*Union) Kind() Kind { return KindUnion }
func (*Union) node()      {}

// NewUnion normalises candidates into a sum type: nested unions are
// flattened, structural duplicates dropped (first occurrence wins), and the
// survivors ordered by descending weight. Zero survivors yield NeverKeyword,
// a single survivor is returned unwrapped.
func NewUnion(candidates ...AST) AST {
	flat := make([]AST, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if u, ok := c.(*Union); ok {
			flat = append(flat, u.Members...)
			continue
		}
		flat = append(flat, c)
	}
	uniq := dedup(flat)
	switch len(uniq) {
	case 0:
		return NeverKeyword
	case 1:
		return uniq[0]
	}
	sort.SliceStable(uniq, func(i, j int) bool {
		return Weight(uniq[i]) > Weight(uniq[j])
	})
	return &Union{Members: uniq}
}

// dedup keeps the first structurally equal occurrence. Fingerprints bucket
// candidates; Equal settles membership inside a bucket.
func dedup(nodes []AST) []AST {
	out := make([]AST, 0, len(nodes))
	buckets := make(map[Digest][]AST, len(nodes))
	for _, n := range nodes {
		fp := Fingerprint(n)
		dup := slices.ContainsFunc(buckets[fp], func(seen AST) bool {
			return Equal(seen, n)
		})
		if dup {
			continue
		}
		buckets[fp] = append(buckets[fp], n)
		out = append(out, n)
	}
	return out
}

// Weight estimates the structural size of node. Unions order members by it
// so more specific alternatives are tried before general ones.
func Weight(node AST) int {
	switch n := node.(type) {
	case *TypeAliasDeclaration:
		return Weight(n.Type)
	case *Tuple:
		w := len(n.Components)
		if n.Rest != nil {
			w++
		}
		return w
	case *Struct:
		return len(n.Fields) + len(n.IndexSignatures)
	case *Union:
		total := 0
		for _, m := range n.Members {
			total += Weight(m)
		}
		return total
	case *Lazy:
		return 10
	default:
		return 0
	}
}
