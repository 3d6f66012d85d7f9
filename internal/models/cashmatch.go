package models

import "time"

// CashRequirement is a dated cash obligation, in millions.
type CashRequirement struct {
	Date   Date    `json:"date"`
	Amount float64 `json:"amount"`
}

// Bond is a candidate bond priced per 1.0 of face value.
type Bond struct {
	Maturity         Date    `json:"maturity"`
	CouponRateAnnual float64 `json:"coupon_rate_annual"` // percent, 0-100
	Price            float64 `json:"price"`
}

// SemiannualCoupon returns the coupon paid each period per unit face value.
func (b Bond) SemiannualCoupon() float64 {
	return b.CouponRateAnnual / 100 / 2
}

// Holding is a bond bought in the optimal portfolio.
type Holding struct {
	Maturity         Date    `json:"maturity"`
	CouponRateAnnual float64 `json:"coupon_rate_annual"`
	Price            float64 `json:"price"`
	FaceValue        float64 `json:"face_value"`
	Cost             float64 `json:"cost"`
}

// Portfolio is the minimum-cost set of holdings.
type Portfolio struct {
	Holdings  []Holding `json:"holdings"`
	TotalCost float64   `json:"total_cost"`
	BondsUsed int       `json:"bonds_used"`
}

// LedgerRow is one timeline period of the replayed cash ledger.
type LedgerRow struct {
	Period          int     `json:"period"`
	Date            Date    `json:"date"`
	BondCashIn      float64 `json:"bond_cash_in"`
	RequiredOutflow float64 `json:"required_outflow"`
	SurplusEnd      float64 `json:"surplus_end"`
}

// Verdict reports whether the replayed ledger ever runs a deficit.
type Verdict struct {
	AllSatisfied   bool   `json:"all_satisfied"`
	DeficitPeriods []int  `json:"deficit_periods,omitempty"`
	DeficitDates   []Date `json:"deficit_dates,omitempty"`
}

// WarningKind categorizes a non-fatal consistency finding.
type WarningKind string

const (
	WarningMaturityNotOnTimeline WarningKind = "maturity_not_on_timeline"
	WarningSurplusMismatch       WarningKind = "surplus_mismatch"
	WarningDeficit               WarningKind = "deficit"
)

// Warning is a consistency finding that does not abort the run.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Period  int         `json:"period,omitempty"`
	Bond    int         `json:"bond,omitempty"`
	Message string      `json:"message"`
}

// OptimizationResult is the complete output of one optimization run.
type OptimizationResult struct {
	RunID                  string        `json:"run_id"`
	ReinvestmentRateAnnual float64       `json:"reinvestment_rate_annual"`
	Portfolio              Portfolio     `json:"portfolio"`
	Ledger                 []LedgerRow   `json:"ledger"`
	Verdict                Verdict       `json:"verdict"`
	Warnings               []Warning     `json:"warnings,omitempty"`
	Objective              float64       `json:"objective"`
	Periods                int           `json:"periods"`
	SolveDuration          time.Duration `json:"solve_duration_ns"`
}

// ScenarioResult pairs one sweep scenario with its outcome.
type ScenarioResult struct {
	ReinvestmentRateAnnual float64             `json:"reinvestment_rate_annual"`
	Result                 *OptimizationResult `json:"result,omitempty"`
	Error                  string              `json:"error,omitempty"`
	ErrorCode              string              `json:"error_code,omitempty"`
}
