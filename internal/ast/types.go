package ast

import "fmt"

// Kind enumerates all node variants.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindTypeAliasDeclaration
	KindLiteral
	KindUndefined
	KindNever
	KindUnknown
	KindAny
	KindString
	KindNumber
	KindBoolean
	KindBigInt
	KindSymbol
	KindStruct
	KindTuple
	KindUnion
	KindLazy
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindTypeAliasDeclaration:
		return "TypeAliasDeclaration"
	case KindLiteral:
		return "LiteralType"
	case KindUndefined:
		return "UndefinedKeyword"
	case KindNever:
		return "NeverKeyword"
	case KindUnknown:
		return "UnknownKeyword"
	case KindAny:
		return "AnyKeyword"
	case KindString:
		return "StringKeyword"
	case KindNumber:
		return "NumberKeyword"
	case KindBoolean:
		return "BooleanKeyword"
	case KindBigInt:
		return "BigIntKeyword"
	case KindSymbol:
		return "SymbolKeyword"
	case KindStruct:
		return "Struct"
	case KindTuple:
		return "Tuple"
	case KindUnion:
		return "Union"
	case KindLazy:
		return "Lazy"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsKeyword reports whether k is one of the payload-free primitive kinds.
func (k Kind) IsKeyword() bool {
	return k >= KindUndefined && k <= KindSymbol
}

// AST is a node of the type tree. The set of implementations is closed:
// *TypeAliasDeclaration, *LiteralType, *Keyword, *Struct, *Tuple, *Union, *Lazy.
type AST interface {
	Kind() Kind
	node()
}

// Keyword is a primitive or absorbing type without payload.
type Keyword struct {
	kind Kind
}

func (k *Keyword) Kind() Kind { return k.kind }
func (*Keyword) node()        {}

// Keyword singletons. They are stateless and shared.
var (
	UndefinedKeyword = &Keyword{kind: KindUndefined}
	NeverKeyword     = &Keyword{kind: KindNever}
	UnknownKeyword   = &Keyword{kind: KindUnknown}
	AnyKeyword       = &Keyword{kind: KindAny}
	StringKeyword    = &Keyword{kind: KindString}
	NumberKeyword    = &Keyword{kind: KindNumber}
	BooleanKeyword   = &Keyword{kind: KindBoolean}
	BigIntKeyword    = &Keyword{kind: KindBigInt}
	SymbolKeyword    = &Keyword{kind: KindSymbol}
)

// KeywordOf returns the keyword singleton for k.
func KeywordOf(k Kind) (*Keyword, bool) {
	switch k {
	case KindUndefined:
		return UndefinedKeyword, true
	case KindNever:
		return NeverKeyword, true
	case KindUnknown:
		return UnknownKeyword, true
	case KindAny:
		return AnyKeyword, true
	case KindString:
		return StringKeyword, true
	case KindNumber:
		return NumberKeyword, true
	case KindBoolean:
		return BooleanKeyword, true
	case KindBigInt:
		return BigIntKeyword, true
	case KindSymbol:
		return SymbolKeyword, true
	default:
		return nil, false
	}
}

// IsStruct narrows node to *Struct.
func IsStruct(node AST) (*Struct, bool) {
	s, ok := node.(*Struct)
	return s, ok
}

// IsTuple narrows node to *Tuple.
func IsTuple(node AST) (*Tuple, bool) {
	t, ok := node.(*Tuple)
	return t, ok
}

// IsUnion narrows node to *Union.
func IsUnion(node AST) (*Union, bool) {
	u, ok := node.(*Union)
	return u, ok
}

// IsLazy narrows node to *Lazy.
func IsLazy(node AST) (*Lazy, bool) {
	l, ok := node.(*Lazy)
	return l, ok
}

// IsDeclaration narrows node to *TypeAliasDeclaration.
func IsDeclaration(node AST) (*TypeAliasDeclaration, bool) {
	d, ok := node.(*TypeAliasDeclaration)
	return d, ok
}
