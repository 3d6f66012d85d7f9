// Package report renders optimization results as CSV, PNG and markdown
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/cashmatch/internal/common"
	"github.com/bobmcallan/cashmatch/internal/interfaces"
	"github.com/bobmcallan/cashmatch/internal/models"
)

// Compile-time interface check
var _ interfaces.ReportService = (*Service)(nil)

// CSV column headers.
var (
	PortfolioColumns = []string{"maturity", "couponRateAnnual", "price", "faceValue", "cost"}
	LedgerColumns    = []string{"date", "bondCashIn", "requiredOutflow", "surplusEnd"}
)

// Service implements ReportService
type Service struct {
	cfg    common.ExportConfig
	logger *common.Logger
}

// NewService creates a new report service
func NewService(cfg common.ExportConfig, logger *common.Logger) *Service {
	return &Service{cfg: cfg, logger: logger}
}

// PortfolioCSV writes one row per holding.
func (s *Service) PortfolioCSV(result *models.OptimizationResult) ([]byte, error) {
	rows := make([][]string, 0, len(result.Portfolio.Holdings))
	for _, h := range result.Portfolio.Holdings {
		rows = append(rows, []string{
			h.Maturity.String(),
			s.fixed(h.CouponRateAnnual),
			s.fixed(h.Price),
			s.fixed(h.FaceValue),
			s.fixed(h.Cost),
		})
	}
	return writeCSV(PortfolioColumns, rows)
}

// LedgerCSV writes one row per timeline period.
func (s *Service) LedgerCSV(result *models.OptimizationResult) ([]byte, error) {
	rows := make([][]string, 0, len(result.Ledger))
	for _, r := range result.Ledger {
		rows = append(rows, []string{
			r.Date.String(),
			s.fixed(r.BondCashIn),
			s.fixed(r.RequiredOutflow),
			s.fixed(r.SurplusEnd),
		})
	}
	return writeCSV(LedgerColumns, rows)
}

// fixed rounds half away from zero to the configured places. Values within
// rounding distance of zero print as 0 rather than -0.
func (s *Service) fixed(v float64) string {
	return decimal.NewFromFloat(v).Round(int32(s.cfg.DecimalPlaces)).StringFixed(int32(s.cfg.DecimalPlaces))
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
