package graph

import (
	"errors"
	"strings"
)

var (
	// ErrNoDeclarations is returned when Build is called without declarations.
	ErrNoDeclarations = errors.New("graph: no declarations")

	// ErrSupertypeCycle is returned when supertypes form a cycle.
	ErrSupertypeCycle = errors.New("graph: supertype cycle")
)

// CycleError names the entities of a supertype cycle.
type CycleError struct {
	// Path starts and ends with the same entity.
	Path []string
}

// Error returns the error string.
func (e *CycleError) Error() string {
	return "graph: supertype cycle: " + strings.Join(e.Path, " -> ")
}

// Is reports whether the target error matches CycleError.
func (e *CycleError) Is(err error) bool {
	return err == ErrSupertypeCycle
}

// IsCycleError returns true if the error is a CycleError.
func IsCycleError(err error) bool {
	if err == nil {
		return false
	}
	var e *CycleError
	return errors.As(err, &e)
}
