package report

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/cashmatch/internal/models"
)

// Markdown renders the run summary, holdings, ledger and verdict.
func (s *Service) Markdown(result *models.OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("# Cash Matching Optimization\n\n")
	sb.WriteString(fmt.Sprintf("**Run:** %s\n", result.RunID))
	sb.WriteString(fmt.Sprintf("**Reinvestment Rate:** %.2f%% annual (%.2f%% semiannual)\n", result.ReinvestmentRateAnnual, result.ReinvestmentRateAnnual/2))
	sb.WriteString(fmt.Sprintf("**Total Upfront Cost:** %s\n", formatMillions(result.Portfolio.TotalCost, 4)))
	sb.WriteString(fmt.Sprintf("**Number of Bonds Used:** %d\n\n", result.Portfolio.BondsUsed))

	sb.WriteString("## Optimal Portfolio\n\n")
	if len(result.Portfolio.Holdings) == 0 {
		sb.WriteString("_No bonds purchased._\n\n")
	} else {
		sb.WriteString("| Maturity | Coupon | Price | Face Value ($mm) | Cost ($mm) |\n")
		sb.WriteString("|----------|--------|-------|------------------|------------|\n")
		for _, h := range result.Portfolio.Holdings {
			sb.WriteString(fmt.Sprintf("| %s | %.2f%% | $%.4f | %.6f | $%.4f |\n",
				h.Maturity, h.CouponRateAnnual, h.Price, h.FaceValue, h.Cost))
		}
		sb.WriteString(fmt.Sprintf("| **Total** | | | | **$%.4f** |\n\n", result.Portfolio.TotalCost))
	}

	sb.WriteString("## Cash Flow & Surplus\n\n")
	sb.WriteString("| Period | Date | Bond Cash In ($mm) | Required Outflow ($mm) | Surplus End ($mm) |\n")
	sb.WriteString("|--------|------|--------------------|------------------------|-------------------|\n")
	for _, r := range result.Ledger {
		sb.WriteString(fmt.Sprintf("| %d | %s | $%.6f | $%.2f | $%.6f |\n",
			r.Period, r.Date, r.BondCashIn, r.RequiredOutflow, zeroClean(r.SurplusEnd, 6)))
	}
	sb.WriteString("\n")

	sb.WriteString("## Validation\n\n")
	if result.Verdict.AllSatisfied {
		sb.WriteString("All constraints satisfied. No negative surplus detected.\n")
	} else {
		dates := make([]string, len(result.Verdict.DeficitDates))
		for i, d := range result.Verdict.DeficitDates {
			dates[i] = d.String()
		}
		sb.WriteString(fmt.Sprintf("**Warning:** negative surplus detected in %s. Please review the inputs.\n", strings.Join(dates, ", ")))
	}

	if len(result.Warnings) > 0 {
		sb.WriteString("\n### Warnings\n\n")
		for _, w := range result.Warnings {
			sb.WriteString(fmt.Sprintf("- `%s` %s\n", w.Kind, w.Message))
		}
	}

	return sb.String()
}

// formatMillions formats a $mm amount with thousands separators.
func formatMillions(v float64, places int) string {
	s := fmt.Sprintf("%.*f", places, zeroClean(v, places))
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var grouped strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(c)
	}

	out := "$" + grouped.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out + " mm"
}

// zeroClean maps values that round to zero onto 0 so they never print as -0.
func zeroClean(v float64, places int) float64 {
	limit := 0.5
	for i := 0; i < places; i++ {
		limit /= 10
	}
	if v > -limit && v < limit {
		return 0
	}
	return v
}
