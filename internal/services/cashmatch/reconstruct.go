package cashmatch

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/bobmcallan/cashmatch/internal/models"
)

// reconstruction is the validated view of a solved Problem.
type reconstruction struct {
	faceValues []float64 // per bond, input order
	flows      []float64 // CF·faceValues per period
	surplus    []float64 // replayed end-of-period surplus
	portfolio  models.Portfolio
	ledger     []models.LedgerRow
	verdict    models.Verdict
	warnings   []models.Warning
}

// reconstruct splits the solution into face values and surplus, replays the
// cash ledger forward and checks it against the solver's surplus.
func reconstruct(p *Problem, sol *Solution, cf *mat.Dense, bonds []models.Bond, tl *Timeline, needs []float64, opts Options) *reconstruction {
	r := &reconstruction{faceValues: make([]float64, len(bonds))}
	for k, j := range p.Bonds {
		r.faceValues[j] = sol.X[k]
	}

	for j, b := range bonds {
		fv := r.faceValues[j]
		if fv <= opts.HoldingThreshold {
			continue
		}
		h := models.Holding{
			Maturity:         b.Maturity,
			CouponRateAnnual: b.CouponRateAnnual,
			Price:            b.Price,
			FaceValue:        fv,
			Cost:             b.Price * fv,
		}
		r.portfolio.Holdings = append(r.portfolio.Holdings, h)
		r.portfolio.TotalCost += h.Cost
	}
	r.portfolio.BondsUsed = len(r.portfolio.Holdings)

	var flows mat.VecDense
	flows.MulVec(cf, mat.NewVecDense(len(r.faceValues), r.faceValues))
	r.flows = make([]float64, p.NumPeriods)
	for t := range r.flows {
		r.flows[t] = flows.AtVec(t)
	}

	r.surplus = replaySurplus(r.flows, needs, p.Growth)

	for t := 0; t < p.NumPeriods; t++ {
		solverSurplus := sol.X[p.SurplusColumn(t)]
		if diff := math.Abs(r.surplus[t] - solverSurplus); diff > opts.SurplusTolerance {
			r.warnings = append(r.warnings, models.Warning{
				Kind:   models.WarningSurplusMismatch,
				Period: t + 1,
				Message: fmt.Sprintf("period %d (%s): replayed surplus %.9f differs from solver surplus %.9f by %.3g",
					t+1, tl.Date(t+1), r.surplus[t], solverSurplus, diff),
			})
		}

		r.ledger = append(r.ledger, models.LedgerRow{
			Period:          t + 1,
			Date:            tl.Date(t + 1),
			BondCashIn:      r.flows[t],
			RequiredOutflow: needs[t],
			SurplusEnd:      r.surplus[t],
		})
	}

	r.verdict = validateSurplus(r.surplus, tl, opts.SurplusTolerance)
	if !r.verdict.AllSatisfied {
		dates := make([]string, len(r.verdict.DeficitDates))
		for i, d := range r.verdict.DeficitDates {
			dates[i] = d.String()
		}
		r.warnings = append(r.warnings, models.Warning{
			Kind:    models.WarningDeficit,
			Period:  r.verdict.DeficitPeriods[0],
			Message: "negative surplus in periods " + strings.Join(dates, ", "),
		})
	}
	return r
}

// replaySurplus runs s[0] = flow[0] - need[0], s[t] = g·s[t-1] + flow[t] - need[t].
func replaySurplus(flows, needs []float64, growth float64) []float64 {
	surplus := make([]float64, len(flows))
	for t := range flows {
		carried := 0.0
		if t > 0 {
			carried = growth * surplus[t-1]
		}
		surplus[t] = carried + flows[t] - needs[t]
	}
	return surplus
}

// validateSurplus flags every period whose surplus is below -tolerance.
func validateSurplus(surplus []float64, tl *Timeline, tolerance float64) models.Verdict {
	v := models.Verdict{AllSatisfied: true}
	for t, s := range surplus {
		if s < -tolerance {
			v.AllSatisfied = false
			v.DeficitPeriods = append(v.DeficitPeriods, t+1)
			v.DeficitDates = append(v.DeficitDates, tl.Date(t+1))
		}
	}
	return v
}
