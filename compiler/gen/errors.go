package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates declarations that could not be turned into a graph.
	ErrInvalidSchema = errors.New("facet: invalid schema")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("facet: missing configuration")
	// ErrMissingSlot indicates a lookup of a registry slot that was never reserved.
	ErrMissingSlot = errors.New("facet: missing registry slot")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("facet: code generation failed")
	// ErrValidationFailed indicates an invalid generated artifact.
	ErrValidationFailed = errors.New("facet: validation failed")
)

// SchemaError represents a failure to build the entity graph.
type SchemaError struct {
	Entity  string // Entity name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("facet: schema error")
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(entity, message string, cause error) *SchemaError {
	return &SchemaError{
		Entity:  entity,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("facet: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("facet: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// MissingSlotError is raised when a generator resolves the artifact of an
// entity that was never reserved for the requested kind. It indicates a
// wiring error between generators, not a problem with the declarations.
type MissingSlotError struct {
	Kind   Kind
	Entity string
}

// Error implements the error interface.
func (e *MissingSlotError) Error() string {
	return fmt.Sprintf("facet: no %s slot reserved for entity %s", e.Kind, e.Entity)
}

// Is reports whether the target matches the sentinel error for MissingSlotError.
func (e *MissingSlotError) Is(target error) bool {
	return target == ErrMissingSlot
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Kind    string // Artifact kind or processor name
	Entity  string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("facet: generation error")
	if e.Kind != "" {
		b.WriteString(" in ")
		b.WriteString(e.Kind)
	}
	if e.Entity != "" {
		b.WriteString(" for ")
		b.WriteString(e.Entity)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(kind, entity, message string, cause error) *GenerationError {
	return &GenerationError{
		Kind:    kind,
		Entity:  entity,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError represents an invalid generated artifact.
type ValidationError struct {
	Artifact string
	Member   string
	Message  string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("facet: validation error")
	if e.Artifact != "" {
		b.WriteString(" on ")
		b.WriteString(e.Artifact)
	}
	if e.Member != "" {
		b.WriteString(".")
		b.WriteString(e.Member)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationError creates a new ValidationError.
func NewValidationError(artifact, member, message string) *ValidationError {
	return &ValidationError{
		Artifact: artifact,
		Member:   member,
		Message:  message,
	}
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsMissingSlot reports whether the error is a MissingSlotError.
func IsMissingSlot(err error) bool {
	var slotErr *MissingSlotError
	return errors.As(err, &slotErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
