// Package trace records what the shapekit CLI does while it loads schema
// documents, derives shapes and checks values.
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only failures
//   - LevelPhase: command, load and derive boundaries
//   - LevelDetail: per value file checks
//   - LevelDebug: everything, including per-definition events
//
// # Scopes
//
//   - ScopeCommand: one CLI command
//   - ScopeLoad: reading config and schema documents
//   - ScopeDerive: one keyof/fields/pick/omit/partial computation
//   - ScopeCheck: one value file checked against a type
//   - ScopeNode: one named type definition
//
// # Tracers
//
// NopTracer discards everything. StreamTracer writes text or NDJSON lines as
// events happen. RingTracer keeps the most recent events in memory for
// Snapshot/Dump. MultiTracer fans out to several tracers.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeLoad, "schema", 0)
//	defer span.End("")
//
// The ast, derive, result and capability packages are pure and never trace.
package trace
