package server

import (
	"fmt"
	"net/http"

	"github.com/bobmcallan/cashmatch/internal/common"
	"github.com/bobmcallan/cashmatch/internal/ingest"
	"github.com/bobmcallan/cashmatch/internal/models"
)

// optimizeRequest is the body of every /api/optimize endpoint. Amounts and
// prices accept JSON numbers or decimal strings.
type optimizeRequest struct {
	CashRequirements       []ingest.RequirementRow `json:"cash_requirements"`
	Bonds                  []ingest.BondRow        `json:"bonds"`
	ReinvestmentRateAnnual *float64                `json:"reinvestment_rate_annual,omitempty"`
	ReinvestmentRates      []float64               `json:"reinvestment_rates,omitempty"`
}

// optimizeResponse pairs the result with the rows ingest dropped.
type optimizeResponse struct {
	Result  *models.OptimizationResult `json:"result"`
	Dropped []ingest.DroppedRow        `json:"dropped,omitempty"`
}

type sweepResponse struct {
	Scenarios []models.ScenarioResult `json:"scenarios"`
	Dropped   []ingest.DroppedRow     `json:"dropped,omitempty"`
}

// decodeInput reads and cleans an optimize request, writing the error
// response itself when it returns false.
func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request) (*optimizeRequest, *ingest.Input, bool) {
	if !RequireMethod(w, r, http.MethodPost) {
		return nil, nil, false
	}

	var req optimizeRequest
	if !DecodeJSON(w, r, &req) {
		return nil, nil, false
	}

	input, err := ingest.Clean(req.CashRequirements, req.Bonds)
	if err != nil {
		WriteEngineError(w, err)
		return nil, nil, false
	}

	if len(input.Dropped) > 0 {
		s.logger.Info().
			Int("dropped", len(input.Dropped)).
			Str("correlation_id", common.ResolveCorrelationID(r.Context())).
			Msg("Rows with invalid dates dropped")
	}

	return &req, input, true
}

func (s *Server) reinvestmentRate(req *optimizeRequest) float64 {
	if req.ReinvestmentRateAnnual != nil {
		return *req.ReinvestmentRateAnnual
	}
	return s.app.Config.Optimizer.DefaultReinvestmentRate
}

// optimize runs one optimization for the request. On failure the error
// response is already written.
func (s *Server) optimize(w http.ResponseWriter, r *http.Request) (*models.OptimizationResult, []ingest.DroppedRow, bool) {
	req, input, ok := s.decodeInput(w, r)
	if !ok {
		return nil, nil, false
	}

	result, err := s.app.CashMatchService.Optimize(r.Context(), input.Requirements, input.Bonds, s.reinvestmentRate(req))
	if err != nil {
		WriteEngineError(w, err)
		return nil, nil, false
	}
	return result, input.Dropped, true
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	result, dropped, ok := s.optimize(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, optimizeResponse{Result: result, Dropped: dropped})
}

func (s *Server) handlePortfolioCSV(w http.ResponseWriter, r *http.Request) {
	result, _, ok := s.optimize(w, r)
	if !ok {
		return
	}

	data, err := s.app.ReportService.PortfolioCSV(result)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Portfolio export error: %v", err))
		return
	}
	WriteBlob(w, "text/csv", "optimal_bond_portfolio.csv", data)
}

func (s *Server) handleLedgerCSV(w http.ResponseWriter, r *http.Request) {
	result, _, ok := s.optimize(w, r)
	if !ok {
		return
	}

	data, err := s.app.ReportService.LedgerCSV(result)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Ledger export error: %v", err))
		return
	}
	WriteBlob(w, "text/csv", "cash_flow_surplus.csv", data)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	result, _, ok := s.optimize(w, r)
	if !ok {
		return
	}

	data, err := s.app.ReportService.LedgerChart(result)
	if err != nil {
		WriteErrorWithCode(w, http.StatusUnprocessableEntity, fmt.Sprintf("Chart unavailable: %v", err), "chart_unavailable")
		return
	}
	WriteBlob(w, "image/png", "", data)
}

func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	result, _, ok := s.optimize(w, r)
	if !ok {
		return
	}
	WriteBlob(w, "text/markdown; charset=utf-8", "", []byte(s.app.ReportService.Markdown(result)))
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	req, input, ok := s.decodeInput(w, r)
	if !ok {
		return
	}

	if len(req.ReinvestmentRates) == 0 {
		WriteErrorWithCode(w, http.StatusBadRequest, "reinvestment_rates is required", "invalid_input")
		return
	}
	if limit := s.app.Config.Limits.MaxScenarios; limit > 0 && len(req.ReinvestmentRates) > limit {
		WriteErrorWithCode(w, http.StatusBadRequest,
			fmt.Sprintf("at most %d reinvestment rates per sweep, got %d", limit, len(req.ReinvestmentRates)), "invalid_input")
		return
	}

	scenarios := s.app.CashMatchService.Sweep(r.Context(), input.Requirements, input.Bonds, req.ReinvestmentRates)
	WriteJSON(w, http.StatusOK, sweepResponse{Scenarios: scenarios, Dropped: input.Dropped})
}
