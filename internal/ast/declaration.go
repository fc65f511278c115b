package ast

import (
	"slices"

	"shapekit/internal/capability"
)

// TypeAliasDeclaration is a named, parameterised type carrying a capability
// provider. Type is the structural expansion used by interpreters for any
// capability the provider does not override.
type TypeAliasDeclaration struct {
	ID             *Symbol
	Config         any // nil when the declaration has no configuration
	Provider       capability.Provider
	TypeParameters []AST
	Type           AST
}

func (*TypeAliasDeclaration) Kind() Kind { return KindTypeAliasDeclaration }
func (*TypeAliasDeclaration) node()      {}

// NewTypeAliasDeclaration returns a fresh declaration node. Nodes are not
// deduplicated by id: callers must not reuse an id for different declarations.
func NewTypeAliasDeclaration(id *Symbol, config any, provider capability.Provider, typeParameters []AST, body AST) *TypeAliasDeclaration {
	return &TypeAliasDeclaration{
		ID:             id,
		Config:         config,
		Provider:       provider,
		TypeParameters: slices.Clone(typeParameters),
		Type:           body,
	}
}

// Declare returns an opaque declaration: the provider supplies every
// interpretation and the structural body is unknown until a builder assigns
// Type. params are the realised type parameters.
func Declare(id *Symbol, provider capability.Provider, params ...AST) *TypeAliasDeclaration {
	return NewTypeAliasDeclaration(id, nil, provider, params, UnknownKeyword)
}

// Name returns the declaration id's description.
func (d *TypeAliasDeclaration) Name() string {
	return d.ID.Description()
}
