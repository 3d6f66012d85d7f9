package server

import (
	"net/http"
	"time"

	"github.com/bobmcallan/cashmatch/internal/common"
	"github.com/bobmcallan/cashmatch/internal/ingest"
	"github.com/bobmcallan/cashmatch/internal/models"
)

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Reference data
	mux.HandleFunc("/api/sample", s.handleSample)
	mux.HandleFunc("/api/glossary", s.handleGlossary)

	// Optimization
	mux.HandleFunc("/api/optimize", s.rateLimited(s.handleOptimize))
	mux.HandleFunc("/api/optimize/portfolio.csv", s.rateLimited(s.handlePortfolioCSV))
	mux.HandleFunc("/api/optimize/ledger.csv", s.rateLimited(s.handleLedgerCSV))
	mux.HandleFunc("/api/optimize/chart.png", s.rateLimited(s.handleChart))
	mux.HandleFunc("/api/optimize/report.md", s.rateLimited(s.handleMarkdown))
	mux.HandleFunc("/api/optimize/sweep", s.rateLimited(s.handleSweep))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	cfg := s.app.Config
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":               cfg.Environment,
		"default_reinvestment_rate": cfg.Optimizer.DefaultReinvestmentRate,
		"holding_threshold":         cfg.Optimizer.HoldingThreshold,
		"surplus_tolerance":         cfg.Optimizer.SurplusTolerance,
		"solver_tolerance":          cfg.Optimizer.SolverTolerance,
		"max_bonds":                 cfg.Optimizer.MaxBonds,
		"max_periods":               cfg.Optimizer.MaxPeriods,
		"decimal_places":            cfg.Export.DecimalPlaces,
		"optimize_rate_limit":       cfg.Limits.OptimizeRateLimit,
		"max_scenarios":             cfg.Limits.MaxScenarios,
		"logging_level":             cfg.Logging.Level,
	})
}

// handleSample returns the default inputs in the same shape /api/optimize accepts.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	rate := s.app.Config.Optimizer.DefaultReinvestmentRate
	WriteJSON(w, http.StatusOK, optimizeRequest{
		CashRequirements:       ingest.RequirementRowsFrom(models.SampleRequirements()),
		Bonds:                  ingest.BondRowsFrom(models.SampleBonds()),
		ReinvestmentRateAnnual: &rate,
	})
}

func (s *Server) handleGlossary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, models.Glossary())
}
