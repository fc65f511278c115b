package ast

import (
	"fmt"
	"sync/atomic"
)

var symbolSeq atomic.Uint64

// Symbol is an opaque identity token. Two symbols are equal only when they are
// the same pointer; the description is informational.
type Symbol struct {
	desc string
	seq  uint64
}

// NewSymbol issues a fresh symbol.
func NewSymbol(desc string) *Symbol {
	return &Symbol{desc: desc, seq: symbolSeq.Add(1)}
}

// Description returns the text the symbol was created with.
func (s *Symbol) Description() string {
	if s == nil {
		return ""
	}
	return s.desc
}

// Seq is a process-unique ordinal, stable for the symbol's lifetime.
func (s *Symbol) Seq() uint64 {
	if s == nil {
		return 0
	}
	return s.seq
}

func (s *Symbol) String() string {
	if s == nil {
		return "Symbol()"
	}
	return fmt.Sprintf("Symbol(%s)", s.desc)
}
