package models

// SampleRequirements returns the default liability schedule: eight
// semiannual obligations from 2024-01-01 to 2027-07-01.
func SampleRequirements() []CashRequirement {
	dates := []string{"2024-01-01", "2024-07-01", "2025-01-01", "2025-07-01",
		"2026-01-01", "2026-07-01", "2027-01-01", "2027-07-01"}
	amounts := []float64{7.50, 4.50, 1.00, 1.00, 1.00, 1.00, 1.00, 3.50}

	out := make([]CashRequirement, len(dates))
	for i := range dates {
		out[i] = CashRequirement{Date: MustParseDate(dates[i]), Amount: amounts[i]}
	}
	return out
}

// SampleBonds returns the default candidate bonds, one maturing on each
// requirement date.
func SampleBonds() []Bond {
	maturities := []string{"2024-01-01", "2024-07-01", "2025-01-01", "2025-07-01",
		"2026-01-01", "2026-07-01", "2027-01-01", "2027-07-01"}
	coupons := []float64{7.00, 7.50, 6.75, 0.00, 10.00, 9.00, 10.25, 10.00}
	prices := []float64{1.00, 1.03, 1.02, 0.81, 1.16, 1.15, 1.23, 1.25}

	out := make([]Bond, len(maturities))
	for i := range maturities {
		out[i] = Bond{
			Maturity:         MustParseDate(maturities[i]),
			CouponRateAnnual: coupons[i],
			Price:            prices[i],
		}
	}
	return out
}
