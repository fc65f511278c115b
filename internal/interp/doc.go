// Package interp holds the reference interpreters derived from an AST:
// guards (capability.Guard), decoders (capability.Decoder) and the type
// printer (capability.Printer).
//
// Every interpreter consults a declaration's provider for its own capability
// first and falls back to the declaration body otherwise. Lazy nodes are
// forced on demand, and the expansions of declarations and lazy nodes are
// memoised in an LRU owned by the interpreter, keyed by ast.Fingerprint.
//
// Runtime values are plain Go values: string, any numeric type or
// json.Number, bool, nil for null, *big.Int, *ast.Symbol, map[string]any for
// records, []any for tuples and the Undefined sentinel. Symbol-keyed struct
// fields cannot be represented in map[string]any records and are ignored.
package interp
