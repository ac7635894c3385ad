package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/syssam/facet/compiler/gen"
	"github.com/syssam/facet/compiler/load"
	"github.com/syssam/facet/graph"
	"github.com/syssam/facet/schema"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
)

// options are the settings shared by all commands. They are read from
// flags, FACET_* environment variables and an optional config file, in
// that order of precedence.
type options struct {
	Package    string   `mapstructure:"package"`
	Target     string   `mapstructure:"target"`
	Header     string   `mapstructure:"header"`
	Kinds      []string `mapstructure:"kinds"`
	Processors []string `mapstructure:"processors"`
	Workers    int      `mapstructure:"workers"`
	Log        string   `mapstructure:"log"`
	NoColor    bool     `mapstructure:"no-color"`
}

// app carries the state of one command invocation.
type app struct {
	v    *viper.Viper
	opts options
	log  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	var configFile string
	root := &cobra.Command{
		Use:           "facet",
		Short:         "Generate typed representations from entity declarations",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, configFile)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default: facet.yaml in the working directory, if present)")
	pf.String("package", "", "import path of the generated package")
	pf.String("header", gen.DefaultHeader, "comment written at the top of generated files")
	pf.StringSlice("kinds", nil, "artifact kinds to generate (default: all)")
	pf.StringSlice("processors", nil, "graph processors to generate, e.g. deep-copy,dump")
	pf.String("log", "none", "log output: none, dev or prod")
	pf.Bool("no-color", false, "disable colored output")

	root.AddCommand(
		newGenerateCmd(a),
		newDescribeCmd(a),
		newRenderCmd(a),
	)
	return root
}

// setup layers flags, environment and config file into a.opts.
func (a *app) setup(cmd *cobra.Command, configFile string) error {
	v := a.v
	v.SetEnvPrefix("FACET")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("workers", 0)
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("facet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	if err := v.Unmarshal(&a.opts); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if a.opts.NoColor {
		color.NoColor = true
	}
	log, err := newLogger(a.opts.Log)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

func newLogger(kind string) (*zap.Logger, error) {
	switch kind {
	case "", "none":
		return zap.NewNop(), nil
	case "dev":
		return zap.NewDevelopment()
	case "prod":
		return zap.NewProduction()
	default:
		return nil, fmt.Errorf("unknown log output %q, want none, dev or prod", kind)
	}
}

// config returns the generation config of the invocation.
func (a *app) config() (*gen.Config, error) {
	opts := []gen.Option{
		gen.WithHeader(a.opts.Header),
		gen.WithLogger(a.log),
	}
	if a.opts.Package != "" {
		opts = append(opts, gen.WithPackage(a.opts.Package))
	}
	if a.opts.Target != "" {
		opts = append(opts, gen.WithTarget(a.opts.Target))
	}
	if len(a.opts.Kinds) > 0 {
		opts = append(opts, gen.WithKindNames(a.opts.Kinds...))
	}
	if len(a.opts.Processors) > 0 {
		opts = append(opts, gen.WithProcessors(a.opts.Processors...))
	}
	if a.opts.Workers > 0 {
		opts = append(opts, gen.WithWorkers(a.opts.Workers))
	}
	return gen.NewConfig(opts...)
}

// declarations loads the declarations of the command arguments.
func declarations(args []string) ([]*schema.Declaration, error) {
	if len(args) == 0 {
		return nil, errors.New("no declaration files or directories given")
	}
	return load.Paths(args...)
}

// report writes the diagnostics of g to w.
func report(w io.Writer, g *graph.Graph) {
	for _, d := range g.Diagnostics {
		warningColor.Fprintf(w, "warning: %s\n", d)
	}
}
