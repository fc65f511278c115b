package ast

import "slices"

// Component is one positional element of a tuple.
type Component struct {
	Value    AST
	Optional bool
}

// NewComponent builds a tuple component.
func NewComponent(value AST, optional bool) Component {
	return Component{Value: value, Optional: optional}
}

// Tuple is a fixed-length or variadic ordered sequence.
type Tuple struct {
	Components []Component
	Rest       AST // nil when the tuple has no variadic tail
	Readonly   bool
}

func (*Tuple) Kind() Kind { return KindTuple }
func (*Tuple) node()      {}

// NewTuple builds a tuple node. rest may be nil.
func NewTuple(components []Component, rest AST, readonly bool) *Tuple {
	return &Tuple{
		Components: slices.Clone(components),
		Rest:       rest,
		Readonly:   readonly,
	}
}

// HasRest reports whether the tuple has a variadic tail.
func (t *Tuple) HasRest() bool { return t.Rest != nil }
