package interp

import (
	"shapekit/internal/ast"
)

func matchesLiteral(lit ast.Literal, v any) bool {
	switch lit.Kind() {
	case ast.LiteralString:
		want, _ := lit.Str()
		got, ok := v.(string)
		return ok && got == want
	case ast.LiteralNumber:
		want, _ := lit.Number()
		got, ok := asNumber(v)
		return ok && got == want
	case ast.LiteralBoolean:
		want, _ := lit.Bool()
		got, ok := v.(bool)
		return ok && got == want
	case ast.LiteralNull:
		return v == nil
	case ast.LiteralBigInt:
		want, _ := lit.BigInt()
		got, ok := asBigInt(v)
		return ok && got.Cmp(want) == 0
	case ast.LiteralSymbol:
		want, _ := lit.Symbol()
		got, ok := v.(*ast.Symbol)
		return ok && got == want
	}
	return false
}

func matchesKeyword(kind ast.Kind, v any) bool {
	switch kind {
	case ast.KindUndefined:
		return IsUndefined(v)
	case ast.KindNever:
		return false
	case ast.KindUnknown, ast.KindAny:
		return true
	case ast.KindString:
		_, ok := v.(string)
		return ok
	case ast.KindNumber:
		_, ok := asNumber(v)
		return ok
	case ast.KindBoolean:
		_, ok := v.(bool)
		return ok
	case ast.KindBigInt:
		_, ok := asBigInt(v)
		return ok
	case ast.KindSymbol:
		sym, ok := v.(*ast.Symbol)
		return ok && sym != nil
	}
	return false
}

// recordKey returns the map key used for k. Symbol keys cannot appear in
// map[string]any records.
func recordKey(k ast.Key) (string, bool) {
	if k.Kind() == ast.KeySymbol {
		return "", false
	}
	return k.String(), true
}

func fieldKeys(s *ast.Struct) map[string]struct{} {
	out := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if name, ok := recordKey(f.Key); ok {
			out[name] = struct{}{}
		}
	}
	return out
}

func stringSignatures(s *ast.Struct) []ast.IndexSignature {
	var out []ast.IndexSignature
	for _, sig := range s.IndexSignatures {
		if sig.Key == ast.IndexString {
			out = append(out, sig)
		}
	}
	return out
}
