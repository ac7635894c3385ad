// Package process generates graph processors: structs with one family of
// mutually recursive methods per entity that walk an instance graph
// through its views. What a processor produces is decided by a Strategy.
//
// For an entity Point with relations x and center, a processor has
//
//	processPoint(in PointView) Out           nil in yields nil out
//	processPointX(in PointView, out Out)     one per relation
//	convertPointX(v int) Converted           entity, reference or plain dispatch
//	tracePoint(in PointView, out Out)
//	Point(in PointView) (Result, error)      exported, guarded entry point
package process

import (
	"fmt"
	"sort"
	"sync"

	"github.com/syssam/facet/compiler/gen"
	"github.com/syssam/facet/compiler/ir"
	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// Strategy supplies the hooks a processor is generated from. Hooks
// returning a nil ir.Code contribute nothing.
type Strategy interface {
	// Name returns the processor struct name.
	Name() string
	// Doc returns the processor doc comment.
	Doc() string
	// Requires returns the artifact kinds the processor refers to.
	Requires() []gen.Kind
	// Fields returns the processor state.
	Fields(ctx *gen.Context) []*gen.Field

	// InputType returns the type processed for e.
	InputType(ctx *gen.Context, e *graph.Entity) types.Descriptor
	// OutputType returns the type produced for e, or nil when the
	// processor produces nothing.
	OutputType(ctx *gen.Context, e *graph.Entity) types.Descriptor
	// Seed returns the initial output value for e.
	Seed(ctx *gen.Context, e *graph.Entity) ir.Code
	// Trace returns the body of the trace method of e. The input and
	// output are bound to "in" and "out".
	Trace(ctx *gen.Context, e *graph.Entity) ir.Code
	// Before and After run around the relation methods of e.
	Before(ctx *gen.Context, e *graph.Entity) ir.Code
	After(ctx *gen.Context, e *graph.Entity) ir.Code

	// ConvertType returns the type a value of r is converted to, or nil
	// when conversion produces nothing.
	ConvertType(ctx *gen.Context, r *graph.Relation) types.Descriptor
	// ConvertEntity, ConvertReference and ConvertPlain return the body
	// of the convert method of r, with the value bound to "v".
	ConvertEntity(ctx *gen.Context, r *graph.Relation) ir.Code
	ConvertReference(ctx *gen.Context, r *graph.Relation) ir.Code
	ConvertPlain(ctx *gen.Context, r *graph.Relation) ir.Code
	// Prologue and Epilogue run around the values of a present relation.
	Prologue(ctx *gen.Context, r *graph.Relation) ir.Code
	Epilogue(ctx *gen.Context, r *graph.Relation) ir.Code
	// Store stores one converted value of r into "out".
	Store(ctx *gen.Context, r *graph.Relation, value ir.Code) ir.Code

	// Reset runs at the start of every entry point call.
	Reset(ctx *gen.Context) ir.Code
	// EntryResult returns the result type of the entry point of e.
	EntryResult(ctx *gen.Context, e *graph.Entity) types.Descriptor
	// Entry returns the entry point body given the call processing "in".
	Entry(ctx *gen.Context, e *graph.Entity, process ir.Code) ir.Code
}

// Base implements the optional hooks of Strategy as no-ops.
type Base struct{}

// Fields implements Strategy.
func (Base) Fields(*gen.Context) []*gen.Field { return nil }

// OutputType implements Strategy.
func (Base) OutputType(*gen.Context, *graph.Entity) types.Descriptor { return nil }

// Seed implements Strategy.
func (Base) Seed(*gen.Context, *graph.Entity) ir.Code { return nil }

// Trace implements Strategy.
func (Base) Trace(*gen.Context, *graph.Entity) ir.Code { return nil }

// Before implements Strategy.
func (Base) Before(*gen.Context, *graph.Entity) ir.Code { return nil }

// After implements Strategy.
func (Base) After(*gen.Context, *graph.Entity) ir.Code { return nil }

// Prologue implements Strategy.
func (Base) Prologue(*gen.Context, *graph.Relation) ir.Code { return nil }

// Epilogue implements Strategy.
func (Base) Epilogue(*gen.Context, *graph.Relation) ir.Code { return nil }

// Reset implements Strategy.
func (Base) Reset(*gen.Context) ir.Code { return nil }

// ConvertPlain implements Strategy: plain values pass through.
func (Base) ConvertPlain(*gen.Context, *graph.Relation) ir.Code {
	return ir.Return(ir.Var("v"))
}

var (
	mu         sync.RWMutex
	strategies = map[string]Strategy{}
)

// Register makes a strategy available by name. It panics if the name is
// already taken.
func Register(name string, s Strategy) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := strategies[name]; dup {
		panic(fmt.Sprintf("process: strategy %q registered twice", name))
	}
	strategies[name] = s
}

// Lookup returns the strategy registered under name.
func Lookup(name string) (Strategy, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := strategies[name]
	return s, ok
}

// Names returns the registered strategy names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("deep-copy", DeepCopy{})
	Register("dump", Dump{})
}
