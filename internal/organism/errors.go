package organism

import (
	"errors"
	"fmt"
)

var (
	// ErrStartOccupied means the starting square is not empty.
	ErrStartOccupied = errors.New("invalid starting position")
	// ErrMetalNotAllowed means metal was supplied for a level that forbids it.
	ErrMetalNotAllowed = errors.New("level does not allow placing metal")
	// ErrInvalidRules means the rule set failed validation.
	ErrInvalidRules = errors.New("invalid rule set")

	// ErrCorruptState means a State broke one of its structural invariants.
	ErrCorruptState = errors.New("corrupt state")
	// ErrWasteBelowMinimum means a correct solution beat the level's
	// theoretical minimum waste.
	ErrWasteBelowMinimum = errors.New("waste below theoretical minimum")
)

// SetupError is a user-input problem detected before any tick runs.
type SetupError struct {
	Err    error
	Detail string
}

func (e *SetupError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *SetupError) Unwrap() error { return e.Err }

// InvariantError signals an engine or level-data defect. It is never the
// result of bad user input and must not be swallowed.
type InvariantError struct {
	Err    error
	Detail string
}

func (e *InvariantError) Error() string {
	if e.Detail == "" {
		return "internal error: " + e.Err.Error()
	}
	return fmt.Sprintf("internal error: %v: %s", e.Err, e.Detail)
}

func (e *InvariantError) Unwrap() error { return e.Err }

// IsInternal reports whether err (or anything it wraps) is an InvariantError.
func IsInternal(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}

// IsSetup reports whether err is a *SetupError.
func IsSetup(err error) bool {
	var se *SetupError
	return errors.As(err, &se)
}

func corrupt(format string, args ...any) error {
	return &InvariantError{Err: ErrCorruptState, Detail: fmt.Sprintf(format, args...)}
}
