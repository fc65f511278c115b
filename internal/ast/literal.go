package ast

import (
	"math/big"
	"strconv"
)

// LiteralKind distinguishes the supported literal values.
type LiteralKind uint8

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBoolean
	LiteralNull
	LiteralBigInt
	LiteralSymbol
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralString:
		return "string"
	case LiteralNumber:
		return "number"
	case LiteralBoolean:
		return "boolean"
	case LiteralNull:
		return "null"
	case LiteralBigInt:
		return "bigint"
	case LiteralSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Literal is a single concrete value: text, number, boolean, null, big
// integer or unique symbol.
type Literal struct {
	kind LiteralKind
	str  string
	num  float64
	b    bool
	big  *big.Int
	sym  *Symbol
}

// StringLiteral returns a text literal.
func StringLiteral(s string) Literal { return Literal{kind: LiteralString, str: s} }

// NumberLiteral returns a numeric literal.
func NumberLiteral(n float64) Literal { return Literal{kind: LiteralNumber, num: n} }

// BooleanLiteral returns a boolean literal.
func BooleanLiteral(b bool) Literal { return Literal{kind: LiteralBoolean, b: b} }

// NullLiteral returns the null literal.
func NullLiteral() Literal { return Literal{kind: LiteralNull} }

// BigIntLiteral returns a big integer literal. The value is copied.
func BigIntLiteral(n *big.Int) Literal {
	v := new(big.Int)
	if n != nil {
		v.Set(n)
	}
	return Literal{kind: LiteralBigInt, big: v}
}

// SymbolLiteral returns a unique-symbol literal.
func SymbolLiteral(sym *Symbol) Literal { return Literal{kind: LiteralSymbol, sym: sym} }

// Kind returns the literal flavour.
func (l Literal) Kind() LiteralKind { return l.kind }

// Str returns the text of a string literal.
func (l Literal) Str() (string, bool) { return l.str, l.kind == LiteralString }

// Number returns the value of a numeric literal.
func (l Literal) Number() (float64, bool) { return l.num, l.kind == LiteralNumber }

// Bool returns the value of a boolean literal.
func (l Literal) Bool() (value, ok bool) { return l.b, l.kind == LiteralBoolean }

// BigInt returns a copy of a big integer literal's value.
func (l Literal) BigInt() (*big.Int, bool) {
	if l.kind != LiteralBigInt {
		return nil, false
	}
	return new(big.Int).Set(l.big), true
}

// Symbol returns the symbol of a unique-symbol literal.
func (l Literal) Symbol() (*Symbol, bool) { return l.sym, l.kind == LiteralSymbol }

// Equal compares literals by kind and value; symbols compare by identity.
func (l Literal) Equal(other Literal) bool {
	if l.kind != other.kind {
		return false
	}
	switch l.kind {
	case LiteralString:
		return l.str == other.str
	case LiteralNumber:
		return l.num == other.num || (l.num != l.num && other.num != other.num)
	case LiteralBoolean:
		return l.b == other.b
	case LiteralNull:
		return true
	case LiteralBigInt:
		return l.big.Cmp(other.big) == 0
	case LiteralSymbol:
		return l.sym == other.sym
	}
	return false
}

func (l Literal) String() string {
	switch l.kind {
	case LiteralString:
		return strconv.Quote(l.str)
	case LiteralNumber:
		return strconv.FormatFloat(l.num, 'g', -1, 64)
	case LiteralBoolean:
		return strconv.FormatBool(l.b)
	case LiteralNull:
		return "null"
	case LiteralBigInt:
		return l.big.String() + "n"
	case LiteralSymbol:
		return l.sym.String()
	}
	return "?"
}

// LiteralType is a single-value type.
type LiteralType struct {
	Literal Literal
}

func (*LiteralType) Kind() Kind { return KindLiteral }
func (*LiteralType) node()      {}

// NewLiteralType wraps a literal into a node.
func NewLiteralType(lit Literal) *LiteralType {
	return &LiteralType{Literal: lit}
}
