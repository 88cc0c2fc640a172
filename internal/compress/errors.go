package compress

import (
	"errors"
	"fmt"
)

// Kind discriminates the compression error categories from spec.md §7.
type Kind string

const (
	// KindPrecondition covers a schema that cannot be split but split
	// was requested, or a schema with an empty identifier set.
	KindPrecondition Kind = "precondition"
	// KindTokenizer covers a tokenizer oracle call returning an error;
	// no partial result is ever emitted for this kind.
	KindTokenizer Kind = "tokenizer"
	// KindSolver covers the underlying solver raising rather than
	// returning a status (StatusError); infeasibility and
	// no-incumbent-on-timeout are not errors, see Result.Solved.
	KindSolver Kind = "solver"
)

// Error is the orchestrator's typed error value, following the
// teacher's CoopError convention: a Kind discriminator plus a wrapped
// cause, so callers can switch on category instead of string-matching.
type Error struct {
	Kind  Kind
	Table string // set when the failure occurred inside a split-mode sub-compression
	Err   error
}

func (e *Error) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("compress: %s (table %s): %v", e.Kind, e.Table, e.Err)
	}
	return fmt.Sprintf("compress: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsPrecondition reports whether err is a precondition-violation
// compression error.
func IsPrecondition(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == KindPrecondition
}
