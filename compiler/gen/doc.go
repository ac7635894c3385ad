// Package gen synthesizes artifacts from a resolved entity graph.
//
// An artifact is one generated type: an interface such as a view, or a
// struct such as a data class or a builder. Artifacts hold their members
// as descriptors and ir.Code bodies, so the same artifact can be rendered
// as Go source by package emit, as readable text, or evaluated directly
// by package eval.
//
// # Architecture
//
// Generation runs in two phases:
//
//	Graph (package graph)
//	        ↓
//	   Reserve: one registry slot per (kind, entity)
//	        ↓
//	   Populate: Generator.Members fills each artifact
//	        ↓
//	   Validate and Fill the slot, Publish to listeners
//
// Reserving every slot first lets a generator refer to the artifact of
// any other kind or entity through Context.Type, whatever order the
// generators run in. A lookup of a slot that was never reserved is a
// programming error and panics with *MissingSlotError, which Run turns
// into a *GenerationError.
//
// # Kinds
//
// The stock generators cover the kinds below. Kinds depend on each
// other, and Closure adds the dependencies of the requested ones:
//
//	view            read-only interface with one getter per relation
//	record          view plus setters and adders
//	data            struct implementing the record
//	builder         fluent interface producing the data
//	builder-base    builder forwarding to an optional delegate
//	record-builder  builder validating its open/close protocol
//	ref             reference interface resolving to a view
//	literal-ref     reference holding its target
//	proxy-ref       reference resolved through a lookup table
//
// Graph processors, the processor kind, live in package process.
//
// # Configuration
//
// Config is built from functional options:
//
//	cfg, err := gen.NewConfig(
//		gen.WithPackage("example.com/model"),
//		gen.WithKinds(gen.KindRecord, gen.KindRecordBuilder),
//		gen.WithProcessors("deep-copy"),
//		gen.WithLogger(logger),
//	)
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SchemaError: the declarations could not be turned into a graph
//   - ConfigError: an invalid option value
//   - GenerationError: a generator failed for one entity and kind
//   - ValidationError: a populated artifact is malformed
//   - MissingSlotError: a registry slot was looked up before reservation
//
// Each wraps a sentinel usable with errors.Is:
//
//	if errors.Is(err, gen.ErrGenerationFailed) {
//		var genErr *gen.GenerationError
//		if errors.As(err, &genErr) {
//			log.Printf("%s of %s: %v", genErr.Kind, genErr.Entity, genErr.Cause)
//		}
//	}
package gen
