package derive

import "shapekit/internal/ast"

// Pick builds a struct from the fields of node whose key is in keys. The
// result keeps the order of Fields(node), not the order of keys.
func Pick(node ast.AST, keys ...ast.Key) *ast.Struct {
	return filterFields(node, keys, true)
}

// Omit builds a struct from the fields of node whose key is not in keys.
func Omit(node ast.AST, keys ...ast.Key) *ast.Struct {
	return filterFields(node, keys, false)
}

func filterFields(node ast.AST, keys []ast.Key, keep bool) *ast.Struct {
	fields := Fields(node)
	out := make([]ast.Field, 0, len(fields))
	for _, f := range fields {
		if ast.ContainsKey(keys, f.Key) == keep {
			out = append(out, f)
		}
	}
	return ast.NewStruct(out, nil)
}
