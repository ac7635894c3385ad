// Package facet is the runtime support imported by code generated with
// the facet compiler.
//
// Generated packages use it for:
//
//   - Collections: Seq (read-only), Sink (write-only), List, Set and Bag.
//   - References: Table and Expect, used by literal and proxy references.
//   - Builders: BuilderState, enforcing the open → close protocol.
//   - Processors: TraceMap (cycle guard for deep copies) and Writer (dumps).
//   - Errors: CycleError, ReferenceError, BuilderStateError, DetachedError.
//
// Generated code raises these errors with panic; exported processor entry
// points convert them back into returned errors with Guard.
package facet
