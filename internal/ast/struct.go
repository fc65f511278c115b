package ast

import (
	"slices"
	"sort"
)

// Field is a fixed property of a struct.
type Field struct {
	Key      Key
	Value    AST
	Optional bool
	Readonly bool
}

// NewField builds a struct field.
func NewField(key Key, value AST, optional, readonly bool) Field {
	return Field{Key: key, Value: value, Optional: optional, Readonly: readonly}
}

// IndexKeyKind is the key domain an index signature ranges over.
type IndexKeyKind uint8

const (
	IndexString IndexKeyKind = iota
	IndexSymbol
)

func (k IndexKeyKind) String() string {
	if k == IndexSymbol {
		return "symbol"
	}
	return "string"
}

// IndexSignature is a catch-all key pattern of a struct.
type IndexSignature struct {
	Key      IndexKeyKind
	Value    AST
	Readonly bool
}

// NewIndexSignature builds an index signature.
func NewIndexSignature(key IndexKeyKind, value AST, readonly bool) IndexSignature {
	return IndexSignature{Key: key, Value: value, Readonly: readonly}
}

// Struct is a record with fixed keys plus optional index signatures.
// Fields and IndexSignatures are kept in ascending cardinality order.
type Struct struct {
	Fields          []Field
	IndexSignatures []IndexSignature
}

func (*Struct) Kind() Kind { return KindStruct }
func (*Struct) node()      {}

// NewStruct builds a struct node. Fields and signatures are stable-sorted by
// the cardinality of their value types so that interpreters visit cheap,
// narrow members first.
func NewStruct(fields []Field, indexSignatures []IndexSignature) *Struct {
	fs := slices.Clone(fields)
	sort.SliceStable(fs, func(i, j int) bool {
		return Cardinality(fs[i].Value) < Cardinality(fs[j].Value)
	})
	is := slices.Clone(indexSignatures)
	sort.SliceStable(is, func(i, j int) bool {
		return Cardinality(is[i].Value) < Cardinality(is[j].Value)
	})
	return &Struct{Fields: fs, IndexSignatures: is}
}

// FieldByKey returns the field with the given key.
func (s *Struct) FieldByKey(k Key) (Field, bool) {
	for _, f := range s.Fields {
		if f.Key == k {
			return f, true
		}
	}
	return Field{}, false
}

// Cardinality estimates how many values inhabit node. Only the ordering of
// results is meaningful. Lazy nodes are never forced.
func Cardinality(node AST) int {
	switch n := node.(type) {
	case *TypeAliasDeclaration:
		return Cardinality(n.Type)
	case *LiteralType:
		return 1
	case *Keyword:
		switch n.kind {
		case KindNever:
			return 0
		case KindUndefined:
			return 1
		case KindBoolean:
			return 2
		case KindString, KindNumber, KindBigInt, KindSymbol:
			return 3
		case KindUnknown, KindAny:
			return 4
		}
	}
	return 5
}
