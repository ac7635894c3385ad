// Package compiler runs the generation pipeline: declarations are
// resolved into an entity graph, artifacts are generated for the
// requested kinds and processors, rendered as Go source and written to a
// sink.
//
//	cfg := gen.MustNewConfig(
//		gen.WithPackage("example.com/shapes"),
//		gen.WithProcessors("deep-copy"),
//	)
//	res, err := compiler.Generate(ctx, decls, cfg, emit.NewFileSink("./shapes", nil))
package compiler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/syssam/facet/compiler/emit"
	"github.com/syssam/facet/compiler/gen"
	"github.com/syssam/facet/compiler/gen/process"
	"github.com/syssam/facet/graph"
	"github.com/syssam/facet/schema"
)

// Result is the outcome of a generation pass.
type Result struct {
	Graph *graph.Graph
	// Kinds are the generated per-entity kinds: the requested ones and
	// the kinds they and the processors depend on.
	Kinds     []gen.Kind
	Artifacts []*gen.Artifact
	// Files is empty until the artifacts are rendered.
	Files []*emit.File
}

// Build resolves decls and generates the artifacts configured by cfg,
// without rendering them. A nil cfg generates every kind.
func Build(decls []*schema.Declaration, cfg *gen.Config) (*Result, error) {
	if cfg == nil {
		cfg = gen.MustNewConfig()
	}
	log := cfg.Log()
	strategies, err := Strategies(cfg.Processors...)
	if err != nil {
		return nil, err
	}
	g, err := graph.NewBuilder(graph.WithLogger(log)).Build(decls)
	if err != nil {
		return nil, schemaError(err)
	}
	kinds := cfg.Kinds
	for _, s := range strategies {
		kinds = append(kinds, s.Requires()...)
	}
	kinds = gen.Closure(kinds...)

	ctx := gen.NewContext(g, cfg)
	if err := gen.Run(ctx, gen.Generators(kinds...)...); err != nil {
		return nil, err
	}
	if _, err := process.Generate(ctx, strategies...); err != nil {
		return nil, err
	}
	log.Debug("artifacts generated",
		zap.Int("entities", len(g.Entities)),
		zap.Int("artifacts", len(ctx.Artifacts())),
		zap.Int("diagnostics", len(g.Diagnostics)),
	)
	return &Result{Graph: g, Kinds: kinds, Artifacts: ctx.Artifacts()}, nil
}

// Render builds the artifacts and renders them as Go files.
func Render(decls []*schema.Declaration, cfg *gen.Config) (*Result, error) {
	if cfg == nil {
		cfg = gen.MustNewConfig()
	}
	res, err := Build(decls, cfg)
	if err != nil {
		return nil, err
	}
	res.Files, err = emit.Files(cfg, res.Artifacts)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Generate renders the artifacts configured by cfg and writes them to
// sink, cfg.Workers files at a time.
func Generate(ctx context.Context, decls []*schema.Declaration, cfg *gen.Config, sink emit.Sink) (*Result, error) {
	if cfg == nil {
		cfg = gen.MustNewConfig()
	}
	start := time.Now()
	res, err := Render(decls, cfg)
	if err != nil {
		return nil, err
	}
	if err := emit.WriteAll(ctx, sink, res.Files, cfg.Workers); err != nil {
		return nil, err
	}
	cfg.Log().Info("generation finished",
		zap.Int("files", len(res.Files)),
		zap.Int("artifacts", len(res.Artifacts)),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}

// Strategies looks up processor strategies by name.
func Strategies(names ...string) ([]process.Strategy, error) {
	out := make([]process.Strategy, 0, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		s, ok := process.Lookup(name)
		if !ok {
			return nil, gen.NewConfigError("Processors", name, fmt.Sprintf("unknown processor, want one of %q", process.Names()))
		}
		out = append(out, s)
	}
	return out, nil
}

// schemaError wraps a graph build failure. A supertype cycle is reported
// on the first entity of its path.
func schemaError(err error) error {
	var entity string
	var cycle *graph.CycleError
	if errors.As(err, &cycle) && len(cycle.Path) > 0 {
		entity = cycle.Path[0]
	}
	return gen.NewSchemaError(entity, "", err)
}
