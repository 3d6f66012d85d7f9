package cashmatch

import (
	"gonum.org/v1/gonum/mat"
)

// Problem is a cash-matching LP in standard form: minimize C·x subject to
// A·x = B, x >= 0.
//
// Columns are the face value of each active bond followed by the end-of-period
// surplus of every period. Row t encodes
//
//	Σ_j CF[t][j]·x_j + g·s[t-1] - s[t] = need[t]
//
// with the g·s[t-1] term absent for the first period.
type Problem struct {
	C []float64
	A *mat.Dense
	B []float64

	// Bonds maps each face-value column to its bond index. Bonds whose
	// cash-flow column is all zero are left out and held at zero.
	Bonds      []int
	NumPeriods int
	Growth     float64
}

// NumVars returns the number of decision variables.
func (p *Problem) NumVars() int { return len(p.Bonds) + p.NumPeriods }

// SurplusColumn returns the column of the surplus variable for a 0-based period.
func (p *Problem) SurplusColumn(t int) int { return len(p.Bonds) + t }

// GrowthFactor converts an annual reinvestment rate in percent to the
// semiannual growth factor.
func GrowthFactor(reinvestmentRateAnnual float64) float64 {
	return 1 + reinvestmentRateAnnual/200
}

// Formulate builds the LP from the cash-flow matrix, per-period needs and
// bond prices.
func Formulate(cf *mat.Dense, needs, prices []float64, reinvestmentRateAnnual float64) *Problem {
	periods, nBonds := cf.Dims()

	var active []int
	for j := 0; j < nBonds; j++ {
		if mat.Norm(cf.ColView(j), 1) > 0 {
			active = append(active, j)
		}
	}

	p := &Problem{
		Bonds:      active,
		NumPeriods: periods,
		Growth:     GrowthFactor(reinvestmentRateAnnual),
	}
	nVars := p.NumVars()

	p.C = make([]float64, nVars)
	for k, j := range active {
		p.C[k] = prices[j]
	}

	p.A = mat.NewDense(periods, nVars, nil)
	p.B = make([]float64, periods)
	for t := 0; t < periods; t++ {
		for k, j := range active {
			p.A.Set(t, k, cf.At(t, j))
		}
		p.A.Set(t, p.SurplusColumn(t), -1)
		if t > 0 {
			p.A.Set(t, p.SurplusColumn(t-1), p.Growth)
		}
		p.B[t] = needs[t]
	}
	return p
}
