package space

import (
	"errors"
	"fmt"
)

// Sentinel errors for lookup failures that carry no extra structured
// context beyond their own identity; wrapped inside LookupError so callers
// can both errors.Is the sentinel and read the structured fields.
var (
	ErrObjectNotInSpace  = errors.New("object not in space")
	ErrSpaceNotInManager = errors.New("space not in manager")
	ErrGroupNotFound     = errors.New("no neighbor group for that space")
)

// DimensionMismatchError indicates a position, index, value, or direction
// whose length disagrees with a bound dimension.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type DimensionMismatchError struct {
	Op       string
	Expected int
	Actual   int
	cause    error
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: dimension mismatch: expected %d, got %d", e.Op, e.Expected, e.Actual)
}

func (e *DimensionMismatchError) Unwrap() error { return e.cause }

// LookupError indicates a missing space, object, group, or out-of-range
// index.
type LookupError struct {
	Op    string
	Kind  string // "space", "object", "group", "index", "cell"
	Name  string
	cause error
}

func (e *LookupError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s %q not found", e.Op, e.Kind, e.Name)
	}
	return fmt.Sprintf("%s: %s not found", e.Op, e.Kind)
}

func (e *LookupError) Unwrap() error { return e.cause }

// CapacityError indicates a resize attempt on a fixed-bound algorithm, or an
// attempt to add an object already present.
type CapacityError struct {
	Op     string
	Detail string
	cause  error
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: capacity violation: %s", e.Op, e.Detail)
}

func (e *CapacityError) Unwrap() error { return e.cause }

// UnsupportedConfigError indicates a configuration the engine explicitly
// refuses, e.g. a grid neighbor mode unsupported at the configured
// dimension, or an r-tree built with a dimension other than 3.
type UnsupportedConfigError struct {
	Op     string
	Detail string
}

func (e *UnsupportedConfigError) Error() string {
	return fmt.Sprintf("%s: unsupported configuration: %s", e.Op, e.Detail)
}

func dimErr(op string, expected, actual int) error {
	return &DimensionMismatchError{Op: op, Expected: expected, Actual: actual}
}

func lookupErr(op, kind, name string) error {
	return &LookupError{Op: op, Kind: kind, Name: name}
}

func wrapLookup(op, kind, name string, cause error) error {
	return &LookupError{Op: op, Kind: kind, Name: name, cause: cause}
}

func capacityErr(op, detail string) error {
	return &CapacityError{Op: op, Detail: detail}
}

func unsupportedErr(op, detail string) error {
	return &UnsupportedConfigError{Op: op, Detail: detail}
}

// phaseErr annotates an error raised during one of a space's update phases
// with the space's name and the phase name.
func phaseErr(spaceName, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("space %q: %s phase: %w", spaceName, phase, err)
}

// managerErr annotates an error raised while updating a named space from
// within SpaceManager.UpdateAll.
func managerErr(spaceName string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("space manager: space %q: %w", spaceName, err)
}
