package ast

import (
	"errors"
	"sync/atomic"
)

var lazySeq atomic.Uint64

// ErrNilThunk is the panic value for forcing a Lazy built without a thunk.
var ErrNilThunk = errors.New("ast: lazy node has no thunk")

// Lazy defers construction of a node, which allows recursive definitions.
// The thunk is invoked on every Force and its result is never cached here;
// callers that need memoised expansion keep their own cache keyed by node.
type Lazy struct {
	thunk func() AST
	seq   uint64
}

func (*Lazy) Kind() Kind { return KindLazy }
func (*Lazy) node()      {}

// NewLazy wraps thunk. The thunk must be side-effect free.
func NewLazy(thunk func() AST) *Lazy {
	return &Lazy{thunk: thunk, seq: lazySeq.Add(1)}
}

// Force evaluates the thunk.
func (l *Lazy) Force() AST {
	if l.thunk == nil {
		panic(ErrNilThunk)
	}
	return l.thunk()
}

// Seq is a process-unique ordinal identifying this node.
func (l *Lazy) Seq() uint64 { return l.seq }
