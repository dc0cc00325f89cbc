package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/carteiralab/carteira/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Positions
	mux.HandleFunc("/api/positions", s.handlePositions)
	mux.HandleFunc("/api/positions/", s.handlePositionByTicker)

	// Portfolio analysis
	mux.HandleFunc("/api/portfolio/valuation", s.handleValuation)
	mux.HandleFunc("/api/portfolio/review", s.handleReview)
	mux.HandleFunc("/api/portfolio/rebalance", s.handleRebalance)
	mux.HandleFunc("/api/portfolio/targets", s.handleTargets)

	// Ticker analysis and market data
	mux.HandleFunc("/api/analysis/", s.handleAnalysis)
	mux.HandleFunc("/api/market/quote/", s.handleMarketQuote)
	mux.HandleFunc("/api/market/invalidate", s.handleMarketInvalidate)

	// Projection
	mux.HandleFunc("/api/projection", s.handleProjection)
	mux.HandleFunc("/api/projection/chart", s.handleProjectionChart)
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"uptime":     time.Since(s.app.StartupTime).Round(time.Second).String(),
		"goroutines": runtime.NumGoroutine(),
	})
}

// handleVersion handles GET /api/version.
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
