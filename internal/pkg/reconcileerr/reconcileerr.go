// Package reconcileerr models the reconciler's error taxonomy as a small
// tagged variant rather than as distinguishable error types, per the "no
// dynamic dispatch on error kinds" design note: callers branch on Kind, never
// on a type assertion against a concrete error.
package reconcileerr

import "errors"

// Kind tags the category a reconcile failure falls into.
type Kind int

const (
	// Transient marks an observational failure (watch hiccup, list failure,
	// runtime-CLI failure). The current pass aborts; the next triggering
	// event retries.
	Transient Kind = iota

	// MutationRejected marks a rejected update_instance call. The pass
	// continues to the next instance; the next pass retries this one.
	MutationRejected

	// Fatal marks a failure that should terminate the process (missing
	// startup configuration, supervisor join failure).
	Fatal
)

func (k Kind) String() string {
	switch k {
	case Transient:
		return "transient"
	case MutationRejected:
		return "mutation_rejected"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error pairs an underlying error with its Kind.
type Error struct {
	Kind Kind
	Err  error
}

// New wraps err with the given Kind.  Returns nil if err is nil.
func New(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err if it is (or wraps) a *Error, and ok=false
// otherwise.
func KindOf(err error) (Kind, bool) {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind, true
	}
	return Transient, false
}
