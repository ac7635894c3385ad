package facet

import (
	"errors"
	"fmt"
	"runtime"
)

// Standard sentinel errors raised by generated code.
var (
	// ErrCycle is returned when a guarded traversal visits the same instance twice.
	ErrCycle = errors.New("facet: cycle detected")

	// ErrReference is returned when a reference resolves to a value of the wrong type.
	ErrReference = errors.New("facet: reference type mismatch")

	// ErrBuilderState is returned when a builder is used outside of its open phase.
	ErrBuilderState = errors.New("facet: invalid builder state")

	// ErrDetached is returned when a detached builder is asked for a value.
	ErrDetached = errors.New("facet: builder is detached")
)

// CycleError is raised when a cycle-guarded traversal reaches an
// instance that was already recorded in its trace map.
type CycleError struct {
	instance any
}

// Error returns the error string.
func (e *CycleError) Error() string {
	return fmt.Sprintf("facet: cycle detected: instance %s was already visited", Describe(e.instance))
}

// Is reports whether the target error matches CycleError.
// This allows errors.Is(cycleErr, ErrCycle) to return true.
func (e *CycleError) Is(err error) bool {
	return err == ErrCycle
}

// Instance returns the repeated instance.
func (e *CycleError) Instance() any {
	return e.instance
}

// NewCycleError returns a new CycleError for the given instance.
func NewCycleError(instance any) *CycleError {
	return &CycleError{instance: instance}
}

// IsCycle returns true if the error is a CycleError.
func IsCycle(err error) bool {
	if err == nil {
		return false
	}
	var e *CycleError
	return errors.As(err, &e) || errors.Is(err, ErrCycle)
}

// ReferenceError is raised when a resolved reference fails its expected-type check.
type ReferenceError struct {
	Expected string // Expected entity name
	Value    any    // Offending value
}

// Error returns the error string.
func (e *ReferenceError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("facet: reference resolved to nil, expected %s", e.Expected)
	}
	return fmt.Sprintf("facet: reference resolved to %T, expected %s", e.Value, e.Expected)
}

// Is reports whether the target error matches ReferenceError.
func (e *ReferenceError) Is(err error) bool {
	return err == ErrReference
}

// NewReferenceError returns a new ReferenceError.
func NewReferenceError(expected string, value any) *ReferenceError {
	return &ReferenceError{Expected: expected, Value: value}
}

// IsReferenceError returns true if the error is a ReferenceError.
func IsReferenceError(err error) bool {
	if err == nil {
		return false
	}
	var e *ReferenceError
	return errors.As(err, &e) || errors.Is(err, ErrReference)
}

// BuilderStateError is raised when a record builder is used in the wrong phase.
type BuilderStateError struct {
	Builder string       // Builder type name
	Op      string       // Attempted operation
	Phase   BuilderPhase // Phase at the time of the call
}

// Error returns the error string.
func (e *BuilderStateError) Error() string {
	return fmt.Sprintf("facet: %s.%s called while %s", e.Builder, e.Op, e.Phase)
}

// Is reports whether the target error matches BuilderStateError.
func (e *BuilderStateError) Is(err error) bool {
	return err == ErrBuilderState
}

// IsBuilderState returns true if the error is a BuilderStateError.
func IsBuilderState(err error) bool {
	if err == nil {
		return false
	}
	var e *BuilderStateError
	return errors.As(err, &e) || errors.Is(err, ErrBuilderState)
}

// DetachedError is raised by a builder without a delegate when one of
// its value-returning methods is called.
type DetachedError struct {
	Builder string
	Method  string
}

// Error returns the error string.
func (e *DetachedError) Error() string {
	return fmt.Sprintf("facet: %s.%s requires a delegate", e.Builder, e.Method)
}

// Is reports whether the target error matches DetachedError.
func (e *DetachedError) Is(err error) bool {
	return err == ErrDetached
}

// Detached returns a new DetachedError. Generated builders panic with it.
func Detached(builder, method string) *DetachedError {
	return &DetachedError{Builder: builder, Method: method}
}

// IsDetached returns true if the error is a DetachedError.
func IsDetached(err error) bool {
	if err == nil {
		return false
	}
	var e *DetachedError
	return errors.As(err, &e) || errors.Is(err, ErrDetached)
}

// Recover converts a panic carrying an error into a returned error.
// It must be deferred directly:
//
//	defer facet.Recover(&err)
//
// Runtime faults (nil dereference, index out of range) and non-error
// panics are re-raised.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if _, ok := r.(runtime.Error); ok {
		panic(r)
	}
	err, ok := r.(error)
	if !ok {
		panic(r)
	}
	*errp = err
}

// Guard runs fn and converts the errors raised by generated code into a
// returned error. Generated processors use it for their exported entry points.
func Guard[T any](fn func() T) (out T, err error) {
	defer Recover(&err)
	return fn(), nil
}
