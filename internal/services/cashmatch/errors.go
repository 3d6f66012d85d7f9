package cashmatch

import (
	"errors"
	"fmt"
)

// Hard error kinds. Every error returned by Optimize wraps exactly one of
// these; match with errors.Is.
var (
	ErrEmptyInput   = errors.New("empty input")
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidInput = errors.New("invalid input")
	ErrInfeasible   = errors.New("infeasible")
	ErrUnbounded    = errors.New("unbounded")
	ErrSolver       = errors.New("solver failure")
)

// ErrorCode maps an error to a stable machine-readable code.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInfeasible):
		return "infeasible"
	case errors.Is(err, ErrUnbounded):
		return "unbounded"
	case errors.Is(err, ErrSolver):
		return "solver_error"
	default:
		return "internal"
	}
}

func invalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
