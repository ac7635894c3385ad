package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/syssam/facet/compiler"
	"github.com/syssam/facet/compiler/emit"
	"github.com/syssam/facet/compiler/gen"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		entity string
		kind   string
		golang bool
	)
	cmd := &cobra.Command{
		Use:   "render [flags] path...",
		Short: "Print the generated artifacts without writing files",
		Long: `Render prints every generated artifact as readable pseudo-code, or as Go
source with --go. Use --entity and --kind to select artifacts.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			decls, err := declarations(args)
			if err != nil {
				return err
			}
			res, err := compiler.Build(decls, cfg)
			if err != nil {
				return err
			}
			report(cmd.ErrOrStderr(), res.Graph)
			var selected []*gen.Artifact
			for _, art := range res.Artifacts {
				if matches(art, entity, kind) {
					selected = append(selected, art)
				}
			}
			if len(selected) == 0 {
				return fmt.Errorf("no artifact matches entity %q and kind %q", entity, kind)
			}
			if golang {
				return renderGo(cmd.OutOrStdout(), cfg, selected)
			}
			for i, art := range selected {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprint(cmd.OutOrStdout(), emit.Text(art))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&entity, "entity", "", "only artifacts of this entity")
	cmd.Flags().StringVar(&kind, "kind", "", "only artifacts of this kind, e.g. data or processor")
	cmd.Flags().BoolVar(&golang, "go", false, "print Go source")
	return cmd
}

func matches(a *gen.Artifact, entity, kind string) bool {
	if kind != "" && a.Kind.String() != kind {
		return false
	}
	if entity == "" {
		return true
	}
	return a.Entity != nil && a.Entity.Name == entity
}

func renderGo(w io.Writer, cfg *gen.Config, artifacts []*gen.Artifact) error {
	files, err := emit.Files(cfg, artifacts)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintf(w, "// %s\n%s", f.Path(), f.Body)
	}
	return nil
}
