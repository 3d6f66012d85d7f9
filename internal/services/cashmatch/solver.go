package cashmatch

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Solution is an optimal point of a Problem.
type Solution struct {
	X         []float64
	Objective float64
}

// Solver solves a standard-form LP.
type Solver interface {
	Solve(p *Problem) (*Solution, error)
}

// SimplexSolver solves with gonum's dense simplex implementation.
type SimplexSolver struct {
	Tolerance float64
}

// Solve runs one deterministic simplex solve. Failures are classified into
// ErrInfeasible, ErrUnbounded or ErrSolver with the solver message kept.
func (s SimplexSolver) Solve(p *Problem) (*Solution, error) {
	tol := s.Tolerance
	if tol <= 0 {
		tol = 1e-10
	}

	// lp.Simplex works on its own copies so the Problem stays reusable.
	optF, optX, err := lp.Simplex(slices.Clone(p.C), mat.DenseCopyOf(p.A), slices.Clone(p.B), tol, nil)
	if err != nil {
		return nil, classifySolverError(err)
	}
	return &Solution{X: optX, Objective: optF}, nil
}

func classifySolverError(err error) error {
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return fmt.Errorf("%w: no non-negative portfolio meets every requirement (%v)", ErrInfeasible, err)
	case errors.Is(err, lp.ErrUnbounded):
		return fmt.Errorf("%w: %v", ErrUnbounded, err)
	default:
		return fmt.Errorf("%w: %v", ErrSolver, err)
	}
}
