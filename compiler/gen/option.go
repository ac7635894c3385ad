package gen

import (
	"errors"
	"path"
	"runtime"

	"go.uber.org/zap"
)

// DefaultHeader is the comment written at the top of generated files.
const DefaultHeader = "Code generated by facet, DO NOT EDIT."

// Config holds the configuration of one generation pass.
type Config struct {
	// Target is the output directory.
	Target string
	// Package is the import path of the generated package. Entity
	// namespaces are resolved to sub-packages of it.
	Package string
	// Header is the comment at the top of each generated file.
	Header string
	// Kinds are the requested artifact kinds.
	Kinds []Kind
	// Processors are the names of the graph-processor strategies to
	// generate.
	Processors []string
	// Workers bounds the number of files written in parallel.
	Workers int
	// Logger receives progress and diagnostics.
	Logger *zap.Logger
}

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the import path of the generated package.
// For example: "github.com/org/project/model".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithKinds sets the requested artifact kinds. The kinds they depend on
// are added automatically.
func WithKinds(kinds ...Kind) Option {
	return func(c *Config) error {
		for _, k := range kinds {
			if k < KindView || k >= KindProcessor {
				return NewConfigError("Kinds", k, "not a per-entity artifact kind")
			}
		}
		c.Kinds = append([]Kind(nil), kinds...)
		return nil
	}
}

// WithKindNames is WithKinds for kind names such as "view" or "record-builder".
func WithKindNames(names ...string) Option {
	return func(c *Config) error {
		kinds := make([]Kind, 0, len(names))
		for _, name := range names {
			k, err := ParseKind(name)
			if err != nil {
				return err
			}
			kinds = append(kinds, k)
		}
		return WithKinds(kinds...)(c)
	}
}

// WithProcessors adds graph-processor strategies by name.
func WithProcessors(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			if name == "" {
				return NewConfigError("Processors", nil, "processor name cannot be empty")
			}
		}
		c.Processors = append(c.Processors, names...)
		return nil
	}
}

// WithWorkers sets the number of files written in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Header:  DefaultHeader,
		Kinds:   AllKinds(),
		Workers: runtime.GOMAXPROCS(0),
		Logger:  zap.NewNop(),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// PackagePath returns the import path of the package generated for the
// given namespace.
func (c *Config) PackagePath(namespace string) string {
	switch {
	case namespace == "":
		return c.Package
	case c.Package == "":
		return namespace
	default:
		return path.Join(c.Package, namespace)
	}
}

// Log returns the configured logger, or a no-op logger.
func (c *Config) Log() *zap.Logger {
	if c == nil || c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
