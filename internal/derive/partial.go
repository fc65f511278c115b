package derive

import "shapekit/internal/ast"

// Partial makes every property of node optional. Structs get optional
// fields, tuples get optional components and a rest type widened with
// undefined, unions are rebuilt from their partial members. Other kinds are
// returned unchanged.
func Partial(node ast.AST) ast.AST {
	switch n := node.(type) {
	case *ast.Struct:
		fields := make([]ast.Field, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = ast.NewField(f.Key, f.Value, true, f.Readonly)
		}
		return ast.NewStruct(fields, n.IndexSignatures)
	case *ast.Tuple:
		comps := make([]ast.Component, len(n.Components))
		for i, c := range n.Components {
			comps[i] = ast.NewComponent(c.Value, true)
		}
		var rest ast.AST
		if n.Rest != nil {
			rest = ast.NewUnion(n.Rest, ast.UndefinedKeyword)
		}
		return ast.NewTuple(comps, rest, n.Readonly)
	case *ast.Union:
		members := make([]ast.AST, len(n.Members))
		for i, m := range n.Members {
			members[i] = Partial(m)
		}
		return ast.NewUnion(members...)
	default:
		return node
	}
}
