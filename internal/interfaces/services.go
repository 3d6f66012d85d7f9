// Package interfaces defines service contracts for cashmatch
package interfaces

import (
	"context"

	"github.com/bobmcallan/cashmatch/internal/models"
)

// CashMatchService finds minimum-cost bond portfolios for a liability schedule
type CashMatchService interface {
	// Optimize runs a single optimization. Hard failures return an error and
	// no result; consistency findings are reported in result warnings.
	Optimize(ctx context.Context, requirements []models.CashRequirement, bonds []models.Bond, reinvestmentRateAnnual float64) (*models.OptimizationResult, error)

	// Sweep runs independent optimizations, one per reinvestment rate.
	Sweep(ctx context.Context, requirements []models.CashRequirement, bonds []models.Bond, rates []float64) []models.ScenarioResult
}

// ReportService renders optimization results for download or display
type ReportService interface {
	// PortfolioCSV writes the holdings table with a header row.
	PortfolioCSV(result *models.OptimizationResult) ([]byte, error)

	// LedgerCSV writes the cash-flow and surplus table with a header row.
	LedgerCSV(result *models.OptimizationResult) ([]byte, error)

	// LedgerChart renders the ledger as a PNG chart.
	LedgerChart(result *models.OptimizationResult) ([]byte, error)

	// Markdown renders a human-readable summary of the run.
	Markdown(result *models.OptimizationResult) string
}
