package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/facet/compiler"
	"github.com/syssam/facet/compiler/emit"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [flags] path...",
		Short: "Generate Go source for the declarations under the given paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if cfg.Target == "" {
				return errors.New("no target directory: set --target or FACET_TARGET")
			}
			decls, err := declarations(args)
			if err != nil {
				return err
			}
			sink := emit.NewFileSink(cfg.Target, a.log)
			res, err := compiler.Generate(cmd.Context(), decls, cfg, sink)
			if err != nil {
				return err
			}
			report(cmd.ErrOrStderr(), res.Graph)
			m := sink.Metrics()
			fmt.Fprintf(cmd.OutOrStdout(), "generated %d files (%d bytes) for %d entities in %s\n",
				m.FilesWritten, m.TotalBytes, len(res.Graph.Entities), cfg.Target)
			return nil
		},
	}
	cmd.Flags().StringP("target", "o", "", "output directory")
	cmd.Flags().Int("workers", 0, "files written in parallel (default: GOMAXPROCS)")
	return cmd
}
