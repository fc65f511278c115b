package ast

import (
	"testing"

	"shapekit/internal/capability"
)

func capability0() capability.Provider { return capability.Empty }

func TestCardinality(t *testing.T) {
	cases := []struct {
		node AST
		want int
	}{
		{NeverKeyword, 0},
		{NewLiteralType(NumberLiteral(1)), 1},
		{UndefinedKeyword, 1},
		{BooleanKeyword, 2},
		{StringKeyword, 3},
		{NumberKeyword, 3},
		{BigIntKeyword, 3},
		{SymbolKeyword, 3},
		{UnknownKeyword, 4},
		{AnyKeyword, 4},
		{structOf("a"), 5},
		{NewTuple(nil, nil, false), 5},
		{NewUnion(StringKeyword, NumberKeyword), 5},
		{NewLazy(func() AST { return NeverKeyword }), 5},
		{NewTypeAliasDeclaration(NewSymbol("B"), nil, capability0(), nil, BooleanKeyword), 2},
	}
	for _, tc := range cases {
		if got := Cardinality(tc.node); got != tc.want {
			t.Fatalf("Cardinality(%v) = %d, want %d", tc.node.Kind(), got, tc.want)
		}
	}
}

func TestStructSortsByCardinality(t *testing.T) {
	fields := []Field{
		NewField(StringKey("obj"), structOf("x"), false, false),
		NewField(StringKey("s1"), StringKeyword, false, false),
		NewField(StringKey("flag"), BooleanKeyword, false, false),
		NewField(StringKey("s2"), NumberKeyword, false, false),
		NewField(StringKey("tag"), lit("t"), false, false),
		NewField(StringKey("nothing"), NeverKeyword, true, false),
	}
	s := NewStruct(fields, nil)
	want := []string{"nothing", "tag", "flag", "s1", "s2", "obj"}
	for i, f := range s.Fields {
		if f.Key != StringKey(want[i]) {
			t.Fatalf("field %d = %v, want %s", i, f.Key, want[i])
		}
	}
	for i := 1; i < len(s.Fields); i++ {
		if Cardinality(s.Fields[i-1].Value) > Cardinality(s.Fields[i].Value) {
			t.Fatalf("fields out of order at %d", i)
		}
	}
	// the input slice is not reordered
	if fields[0].Key != StringKey("obj") {
		t.Fatalf("NewStruct mutated its input")
	}
}

func TestStructSortsIndexSignatures(t *testing.T) {
	obj := structOf("x")
	sigs := []IndexSignature{
		NewIndexSignature(IndexString, obj, false),
		NewIndexSignature(IndexString, StringKeyword, true),
		NewIndexSignature(IndexSymbol, NumberKeyword, false),
		NewIndexSignature(IndexSymbol, NeverKeyword, false),
	}
	s := NewStruct(nil, sigs)
	want := []IndexSignature{sigs[3], sigs[1], sigs[2], sigs[0]}
	if len(s.IndexSignatures) != len(want) {
		t.Fatalf("signatures = %d, want %d", len(s.IndexSignatures), len(want))
	}
	for i, sig := range s.IndexSignatures {
		if sig.Key != want[i].Key || sig.Value != want[i].Value || sig.Readonly != want[i].Readonly {
			t.Fatalf("signature %d = %+v, want %+v", i, sig, want[i])
		}
	}
	if sigs[0].Value != AST(obj) {
		t.Fatalf("NewStruct mutated its input")
	}
}

func TestStructFieldByKey(t *testing.T) {
	s := structOf("a", "b")
	if f, ok := s.FieldByKey(StringKey("b")); !ok || f.Key != StringKey("b") {
		t.Fatalf("FieldByKey(b) = %v, %v", f, ok)
	}
	if _, ok := s.FieldByKey(IndexKey(0)); ok {
		t.Fatalf("index key must not match a string field")
	}
}

func TestKeys(t *testing.T) {
	sym := NewSymbol("k")
	if StringKey("0") == IndexKey(0) {
		t.Fatalf("string and index keys must stay distinct")
	}
	if SymbolKey(sym) != SymbolKey(sym) {
		t.Fatalf("symbol keys compare by identity")
	}
	if SymbolKey(sym) == SymbolKey(NewSymbol("k")) {
		t.Fatalf("distinct symbols with equal descriptions must differ")
	}
	if idx, ok := IndexKey(3).Index(); !ok || idx != 3 {
		t.Fatalf("Index() = %d, %v", idx, ok)
	}
	if !ContainsKey([]Key{StringKey("a"), IndexKey(1)}, IndexKey(1)) {
		t.Fatalf("ContainsKey missed an index key")
	}
}
