// Package cashmatch computes minimum-cost bond portfolios that fund a
// schedule of cash requirements, reinvesting interim surplus at a fixed rate.
package cashmatch

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/cashmatch/internal/common"
	"github.com/bobmcallan/cashmatch/internal/interfaces"
	"github.com/bobmcallan/cashmatch/internal/models"
)

// Compile-time interface check
var _ interfaces.CashMatchService = (*Service)(nil)

// MaxReinvestmentRate is the highest accepted annual reinvestment rate, in percent.
const MaxReinvestmentRate = 20.0

// Options holds the numerical settings of a run.
type Options struct {
	HoldingThreshold float64
	SurplusTolerance float64
	SolverTolerance  float64
	MaxBonds         int
	MaxPeriods       int
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		HoldingThreshold: 1e-6,
		SurplusTolerance: 1e-6,
		SolverTolerance:  1e-10,
	}
}

// OptionsFromConfig maps the [optimizer] config section onto Options.
func OptionsFromConfig(cfg common.OptimizerConfig) Options {
	return Options{
		HoldingThreshold: cfg.HoldingThreshold,
		SurplusTolerance: cfg.SurplusTolerance,
		SolverTolerance:  cfg.SolverTolerance,
		MaxBonds:         cfg.MaxBonds,
		MaxPeriods:       cfg.MaxPeriods,
	}
}

// Service implements CashMatchService. It holds no state between runs.
type Service struct {
	opts   Options
	solver Solver
	logger *common.Logger
}

// NewService creates a new cash-matching service
func NewService(opts Options, logger *common.Logger) *Service {
	return &Service{
		opts:   opts,
		solver: SimplexSolver{Tolerance: opts.SolverTolerance},
		logger: logger,
	}
}

// Optimize runs one optimization with default options and no logging.
func Optimize(requirements []models.CashRequirement, bonds []models.Bond, reinvestmentRateAnnual float64) (*models.OptimizationResult, error) {
	return NewService(DefaultOptions(), common.NewSilentLogger()).
		Optimize(context.Background(), requirements, bonds, reinvestmentRateAnnual)
}

// Optimize builds the timeline and cash-flow matrix, solves the LP and
// returns the validated portfolio and ledger. It blocks until the solve
// finishes; the context is only checked before work starts.
func (s *Service) Optimize(ctx context.Context, requirements []models.CashRequirement, bonds []models.Bond, reinvestmentRateAnnual float64) (*models.OptimizationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	corrID := common.ResolveCorrelationID(ctx)

	if err := s.validate(requirements, bonds, reinvestmentRateAnnual); err != nil {
		s.logger.Warn().Str("run_id", runID).Str("correlation_id", corrID).Err(err).Msg("Optimization rejected")
		return nil, err
	}

	// Own sorted copies; callers' slices are never touched.
	reqs := slices.Clone(requirements)
	slices.SortStableFunc(reqs, func(a, b models.CashRequirement) int { return a.Date.Compare(b.Date) })
	sortedBonds := slices.Clone(bonds)
	slices.SortStableFunc(sortedBonds, func(a, b models.Bond) int { return a.Maturity.Compare(b.Maturity) })

	reqDates := make([]models.Date, len(reqs))
	for i, r := range reqs {
		reqDates[i] = r.Date
	}
	maturities := make([]models.Date, len(sortedBonds))
	prices := make([]float64, len(sortedBonds))
	for j, b := range sortedBonds {
		maturities[j] = b.Maturity
		prices[j] = b.Price
	}

	tl, err := BuildTimeline(reqDates, maturities)
	if err != nil {
		return nil, err
	}
	if s.opts.MaxPeriods > 0 && tl.Len() > s.opts.MaxPeriods {
		return nil, invalidInputf("timeline has %d periods, limit is %d", tl.Len(), s.opts.MaxPeriods)
	}

	needs := needsByPeriod(reqs, tl)
	cf, warnings := BuildCashFlowMatrix(sortedBonds, tl)
	for _, w := range warnings {
		s.logger.Warn().Str("run_id", runID).Str("kind", string(w.Kind)).Msg(w.Message)
	}

	problem := Formulate(cf, needs, prices, reinvestmentRateAnnual)

	s.logger.Debug().
		Str("run_id", runID).
		Str("correlation_id", corrID).
		Int("bonds", len(sortedBonds)).
		Int("periods", tl.Len()).
		Int("variables", problem.NumVars()).
		Float64("growth", problem.Growth).
		Msg("Solving cash matching LP")

	start := time.Now()
	sol, err := s.solver.Solve(problem)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Warn().
			Str("run_id", runID).
			Str("correlation_id", corrID).
			Str("code", ErrorCode(err)).
			Dur("duration", elapsed).
			Err(err).
			Msg("Optimization failed")
		return nil, err
	}

	rec := reconstruct(problem, sol, cf, sortedBonds, tl, needs, s.opts)
	warnings = append(warnings, rec.warnings...)
	for _, w := range rec.warnings {
		s.logger.Warn().Str("run_id", runID).Str("kind", string(w.Kind)).Int("period", w.Period).Msg(w.Message)
	}

	s.logger.Info().
		Str("run_id", runID).
		Str("correlation_id", corrID).
		Float64("total_cost", rec.portfolio.TotalCost).
		Int("bonds_used", rec.portfolio.BondsUsed).
		Bool("all_satisfied", rec.verdict.AllSatisfied).
		Dur("duration", elapsed).
		Msg("Optimization completed")

	return &models.OptimizationResult{
		RunID:                  runID,
		ReinvestmentRateAnnual: reinvestmentRateAnnual,
		Portfolio:              rec.portfolio,
		Ledger:                 rec.ledger,
		Verdict:                rec.verdict,
		Warnings:               warnings,
		Objective:              sol.Objective,
		Periods:                tl.Len(),
		SolveDuration:          elapsed,
	}, nil
}

// validate checks the typed input contract. Empty tables are reported by
// BuildTimeline so the error kind stays EmptyInput.
func (s *Service) validate(requirements []models.CashRequirement, bonds []models.Bond, rate float64) error {
	if !finite(rate) || rate < 0 || rate > MaxReinvestmentRate {
		return invalidInputf("reinvestment rate %v outside [0, %v]", rate, MaxReinvestmentRate)
	}
	if s.opts.MaxBonds > 0 && len(bonds) > s.opts.MaxBonds {
		return invalidInputf("%d bonds supplied, limit is %d", len(bonds), s.opts.MaxBonds)
	}
	for i, r := range requirements {
		if r.Date.IsZero() {
			return invalidInputf("requirement %d has no date", i+1)
		}
		if !finite(r.Amount) || r.Amount < 0 {
			return invalidInputf("requirement %d amount %v must be a non-negative number", i+1, r.Amount)
		}
	}
	for j, b := range bonds {
		if b.Maturity.IsZero() {
			return invalidInputf("bond %d has no maturity", j+1)
		}
		if !finite(b.Price) || b.Price < 0 {
			return invalidInputf("bond %d price %v must be a non-negative number", j+1, b.Price)
		}
		if !finite(b.CouponRateAnnual) || b.CouponRateAnnual < 0 || b.CouponRateAnnual > 100 {
			return invalidInputf("bond %d coupon %v outside [0, 100]", j+1, b.CouponRateAnnual)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
