package ast

// Equal reports structural equality. Struct fields, index signatures and
// union members are compared without regard to order; tuple components are
// positional. Lazy nodes are equal only to themselves and are never forced.
// Declarations are equal when they share an id and equal type parameters.
func Equal(a, b AST) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Keyword:
		return true
	case *LiteralType:
		return x.Literal.Equal(b.(*LiteralType).Literal)
	case *TypeAliasDeclaration:
		y := b.(*TypeAliasDeclaration)
		return x.ID == y.ID && equalSeq(x.TypeParameters, y.TypeParameters)
	case *Struct:
		y := b.(*Struct)
		return sameMultiset(x.Fields, y.Fields, equalField) &&
			sameMultiset(x.IndexSignatures, y.IndexSignatures, equalIndexSignature)
	case *Tuple:
		y := b.(*Tuple)
		if x.Readonly != y.Readonly || len(x.Components) != len(y.Components) {
			return false
		}
		for i := range x.Components {
			if x.Components[i].Optional != y.Components[i].Optional ||
				!Equal(x.Components[i].Value, y.Components[i].Value) {
				return false
			}
		}
		return Equal(x.Rest, y.Rest)
	case *Union:
		return sameMultiset(x.Members, b.(*Union).Members, Equal)
	case *Lazy:
		return false
	}
	return false
}

func equalSeq(xs, ys []AST) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !Equal(xs[i], ys[i]) {
			return false
		}
	}
	return true
}

func equalField(a, b Field) bool {
	return a.Key == b.Key && a.Optional == b.Optional && a.Readonly == b.Readonly && Equal(a.Value, b.Value)
}

func equalIndexSignature(a, b IndexSignature) bool {
	return a.Key == b.Key && a.Readonly == b.Readonly && Equal(a.Value, b.Value)
}

// sameMultiset matches every element of xs with a distinct equal element of ys.
func sameMultiset[T any](xs, ys []T, eq func(T, T) bool) bool {
	if len(xs) != len(ys) {
		return false
	}
	used := make([]bool, len(ys))
	for _, x := range xs {
		found := false
		for j, y := range ys {
			if used[j] || !eq(x, y) {
				continue
			}
			used[j] = true
			found = true
			break
		}
		if !found {
			return false
		}
	}
	return true
}
