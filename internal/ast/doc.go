// Package ast defines the structural type tree shared by every interpreter.
//
// # Nodes
//
// AST is a closed sum type. Each variant is a pointer struct:
//
//   - TypeAliasDeclaration – named, parameterised type with a capability
//     provider and a structural body.
//   - LiteralType – a single value (string, number, boolean, null, big
//     integer, unique symbol).
//   - Keyword – payload-free primitives (undefined, never, unknown, any,
//     string, number, boolean, bigint, symbol), shared as singletons.
//   - Struct, Tuple, Union – containers.
//   - Lazy – deferred node for recursive definitions.
//
// Nodes are immutable after construction. Derived trees may share subtrees
// with their inputs.
//
// # Normalisation
//
// NewStruct orders fields and index signatures by ascending Cardinality.
// NewUnion flattens nested unions, removes structural duplicates and orders
// members by descending Weight; it collapses to NeverKeyword or to the single
// remaining member when fewer than two distinct candidates remain.
//
// # Laziness
//
// Lazy never caches its thunk result. Nothing in this package forces a Lazy:
// Cardinality, Weight, Equal and Fingerprint treat it as an opaque identity.
package ast
