package ast

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"slices"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// Digest is a structural fingerprint of a node.
type Digest [sha256.Size]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// nodeRecord is the canonical msgpack shape hashed for every node. Children
// of order-insensitive containers are sorted by digest before encoding.
type nodeRecord struct {
	Kind     uint8    `msgpack:"k"`
	Ident    uint64   `msgpack:"i,omitempty"`
	Literal  *litRec  `msgpack:"l,omitempty"`
	Key      *keyRec  `msgpack:"key,omitempty"`
	Flags    uint8    `msgpack:"f,omitempty"`
	Arity    uint32   `msgpack:"n"`
	Children []Digest `msgpack:"c,omitempty"`
	Extra    []Digest `msgpack:"x,omitempty"`
}

type litRec struct {
	Kind uint8   `msgpack:"k"`
	Str  string  `msgpack:"s,omitempty"`
	Num  float64 `msgpack:"n,omitempty"`
	Bool bool    `msgpack:"b,omitempty"`
	Big  string  `msgpack:"g,omitempty"`
	Sym  uint64  `msgpack:"y,omitempty"`
}

type keyRec struct {
	Kind uint8  `msgpack:"k"`
	Str  string `msgpack:"s,omitempty"`
	Idx  int    `msgpack:"i,omitempty"`
	Sym  uint64 `msgpack:"y,omitempty"`
}

const (
	flagOptional uint8 = 1 << iota
	flagReadonly
	flagRest
)

// record kinds for the non-node entries hashed inside containers
const (
	recField uint8 = 200 + iota
	recIndexSignature
	recComponent
)

// Fingerprint returns a digest consistent with Equal: structurally equal
// nodes share a fingerprint. Lazy nodes hash by identity and are not forced.
func Fingerprint(node AST) Digest {
	if node == nil {
		return Digest{}
	}
	switch n := node.(type) {
	case *Keyword:
		return hashRecord(&nodeRecord{Kind: uint8(n.kind)})
	case *LiteralType:
		return hashRecord(&nodeRecord{Kind: uint8(KindLiteral), Literal: literalRecord(n.Literal)})
	case *TypeAliasDeclaration:
		return hashRecord(&nodeRecord{
			Kind:     uint8(KindTypeAliasDeclaration),
			Ident:    n.ID.Seq(),
			Children: fingerprints(n.TypeParameters),
		})
	case *Struct:
		fields := make([]Digest, len(n.Fields))
		for i, f := range n.Fields {
			var flags uint8
			if f.Optional {
				flags |= flagOptional
			}
			if f.Readonly {
				flags |= flagReadonly
			}
			fields[i] = hashRecord(&nodeRecord{
				Kind:     recField,
				Key:      keyRecord(f.Key),
				Flags:    flags,
				Children: []Digest{Fingerprint(f.Value)},
			})
		}
		sigs := make([]Digest, len(n.IndexSignatures))
		for i, s := range n.IndexSignatures {
			var flags uint8
			if s.Readonly {
				flags |= flagReadonly
			}
			sigs[i] = hashRecord(&nodeRecord{
				Kind:     recIndexSignature,
				Ident:    uint64(s.Key),
				Flags:    flags,
				Children: []Digest{Fingerprint(s.Value)},
			})
		}
		return hashRecord(&nodeRecord{
			Kind:     uint8(KindStruct),
			Children: sortDigests(fields),
			Extra:    sortDigests(sigs),
		})
	case *Tuple:
		comps := make([]Digest, len(n.Components))
		for i, c := range n.Components {
			var flags uint8
			if c.Optional {
				flags |= flagOptional
			}
			comps[i] = hashRecord(&nodeRecord{
				Kind:     recComponent,
				Flags:    flags,
				Children: []Digest{Fingerprint(c.Value)},
			})
		}
		rec := &nodeRecord{Kind: uint8(KindTuple), Children: comps}
		if n.Readonly {
			rec.Flags |= flagReadonly
		}
		if n.Rest != nil {
			rec.Flags |= flagRest
			rec.Extra = []Digest{Fingerprint(n.Rest)}
		}
		return hashRecord(rec)
	case *Union:
		return hashRecord(&nodeRecord{
			Kind:     uint8(KindUnion),
			Children: sortDigests(fingerprints(n.Members)),
		})
	case *Lazy:
		return hashRecord(&nodeRecord{Kind: uint8(KindLazy), Ident: n.seq})
	}
	panic(fmt.Errorf("ast: fingerprint of unsupported node %T", node))
}

func fingerprints(nodes []AST) []Digest {
	out := make([]Digest, len(nodes))
	for i, n := range nodes {
		out[i] = Fingerprint(n)
	}
	return out
}

func sortDigests(ds []Digest) []Digest {
	slices.SortFunc(ds, func(a, b Digest) int {
		return bytes.Compare(a[:], b[:])
	})
	return ds
}

func literalRecord(l Literal) *litRec {
	rec := &litRec{Kind: uint8(l.kind)}
	switch l.kind {
	case LiteralString:
		rec.Str = l.str
	case LiteralNumber:
		switch {
		case math.IsNaN(l.num):
			rec.Str = "NaN"
		case l.num == 0:
			rec.Num = 0 // folds -0 into 0
		default:
			rec.Num = l.num
		}
	case LiteralBoolean:
		rec.Bool = l.b
	case LiteralBigInt:
		rec.Big = l.big.String()
	case LiteralSymbol:
		rec.Sym = l.sym.Seq()
	}
	return rec
}

func keyRecord(k Key) *keyRec {
	rec := &keyRec{Kind: uint8(k.kind)}
	switch k.kind {
	case KeyString:
		rec.Str = k.str
	case KeyIndex:
		rec.Idx = k.idx
	case KeySymbol:
		rec.Sym = k.sym.Seq()
	}
	return rec
}

func hashRecord(rec *nodeRecord) Digest {
	arity, err := safecast.Conv[uint32](len(rec.Children) + len(rec.Extra))
	if err != nil {
		panic(fmt.Errorf("fingerprint arity overflow: %w", err))
	}
	rec.Arity = arity
	data, err := msgpack.Marshal(rec)
	if err != nil {
		panic(fmt.Errorf("fingerprint encode: %w", err))
	}
	return sha256.Sum256(data)
}
