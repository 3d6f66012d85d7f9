package cashmatch

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/bobmcallan/cashmatch/internal/models"
)

// BuildCashFlowMatrix returns CF with CF[t][j] the cash bond j pays per unit
// face value at period t+1. Each bond pays its semiannual coupon in every
// period up to and including maturity, plus 1.0 principal at maturity.
// A bond whose maturity is not on the timeline gets a zero column and a
// warning.
func BuildCashFlowMatrix(bonds []models.Bond, tl *Timeline) (*mat.Dense, []models.Warning) {
	cf := mat.NewDense(tl.Len(), len(bonds), nil)

	var warnings []models.Warning
	for j, b := range bonds {
		m, ok := tl.Period(b.Maturity)
		if !ok {
			warnings = append(warnings, models.Warning{
				Kind:    models.WarningMaturityNotOnTimeline,
				Bond:    j + 1,
				Message: fmt.Sprintf("bond %d maturity %s not found in timeline", j+1, b.Maturity),
			})
			continue
		}

		c := b.SemiannualCoupon()
		for t := 0; t < m; t++ {
			cf.Set(t, j, cf.At(t, j)+c)
		}
		cf.Set(m-1, j, cf.At(m-1, j)+1.0)
	}
	return cf, warnings
}
