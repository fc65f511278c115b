package ast

import "strconv"

// KeyKind distinguishes property key flavours.
type KeyKind uint8

const (
	KeyString KeyKind = iota
	KeyIndex
	KeySymbol
)

// Key is a property key: a string, a tuple index or a symbol. Keys are
// comparable and can be used as map keys.
type Key struct {
	kind KeyKind
	str  string
	idx  int
	sym  *Symbol
}

// StringKey builds a string property key.
func StringKey(s string) Key { return Key{kind: KeyString, str: s} }

// IndexKey builds a positional key (tuple component index).
func IndexKey(i int) Key { return Key{kind: KeyIndex, idx: i} }

// SymbolKey builds a symbol-keyed property key.
func SymbolKey(sym *Symbol) Key { return Key{kind: KeySymbol, sym: sym} }

// Kind returns the key flavour.
func (k Key) Kind() KeyKind { return k.kind }

// Index returns the position of an index key.
func (k Key) Index() (int, bool) { return k.idx, k.kind == KeyIndex }

// Symbol returns the symbol of a symbol key.
func (k Key) Symbol() (*Symbol, bool) { return k.sym, k.kind == KeySymbol }

// String renders the key the way it appears as a record property name.
func (k Key) String() string {
	switch k.kind {
	case KeyIndex:
		return strconv.Itoa(k.idx)
	case KeySymbol:
		return k.sym.String()
	default:
		return k.str
	}
}

// ContainsKey reports whether keys contains k.
func ContainsKey(keys []Key, k Key) bool {
	for _, candidate := range keys {
		if candidate == k {
			return true
		}
	}
	return false
}
