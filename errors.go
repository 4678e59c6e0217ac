package rebalance

import (
	"errors"
	"fmt"
)

// Allocation failure kinds. They are returned by Allocate, never logged and
// swallowed: the caller decides how to surface them.
var (
	// ErrInvalidInput reports a degenerate input reaching the solver, such as
	// a zero or missing price.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInfeasible reports that no purchase vector satisfies the
	// constraints. The zero vector always satisfies the current constraint
	// set, so this is reserved for future constraint extensions.
	ErrInfeasible = errors.New("no feasible purchase plan")

	// ErrTimeout reports that the bounded search exhausted its node budget
	// before proving optimality.
	ErrTimeout = errors.New("search node budget exhausted")
)

// ValidationError aggregates every configuration problem found while
// constructing a Portfolio.
type ValidationError struct {
	Err error // joined individual failures
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid portfolio: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
