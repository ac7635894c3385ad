package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/facet/compiler/types"
	"github.com/syssam/facet/graph"
)

// entityDesc and relationDesc are the YAML shape of a resolved graph.
type (
	entityDesc struct {
		Name      string         `yaml:"name"`
		Namespace string         `yaml:"namespace,omitempty"`
		Supers    []string       `yaml:"supers,omitempty"`
		Relations []relationDesc `yaml:"relations,omitempty"`
	}
	relationDesc struct {
		Name         string             `yaml:"name"`
		Multiplicity types.Multiplicity `yaml:"multiplicity"`
		Target       string             `yaml:"target"`
		Kind         string             `yaml:"kind"`
		Synthetic    bool               `yaml:"synthetic,omitempty"`
		Overrides    []string           `yaml:"overrides,omitempty"`
	}
	graphDesc struct {
		Entities    []entityDesc       `yaml:"entities"`
		Diagnostics []graph.Diagnostic `yaml:"diagnostics,omitempty"`
	}
)

func describe(g *graph.Graph) graphDesc {
	out := graphDesc{Diagnostics: g.Diagnostics}
	for _, e := range g.Entities {
		ed := entityDesc{Name: e.Name, Namespace: e.Namespace}
		for _, s := range e.Supers {
			ed.Supers = append(ed.Supers, s.Name)
		}
		for _, r := range e.Relations {
			rd := relationDesc{
				Name:         r.Name,
				Multiplicity: r.Multiplicity,
				Target:       r.Target.String(),
				Kind: graph.MatchTarget(r.Target, graph.Cases[string]{
					Entity:    func(*graph.EntityTarget) string { return "entity" },
					Reference: func(*graph.ReferenceTarget) string { return "reference" },
					Plain:     func(*graph.PlainTarget) string { return "plain" },
				}),
				Synthetic: r.Synthetic,
			}
			for _, o := range r.Overrides {
				rd.Overrides = append(rd.Overrides, o.String())
			}
			ed.Relations = append(ed.Relations, rd)
		}
		out.Entities = append(out.Entities, ed)
	}
	return out
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe path...",
		Short: "Print the resolved entity graph as YAML",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decls, err := declarations(args)
			if err != nil {
				return err
			}
			g, err := graph.NewBuilder(graph.WithLogger(a.log)).Build(decls)
			if err != nil {
				return err
			}
			report(cmd.ErrOrStderr(), g)
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(describe(g)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
