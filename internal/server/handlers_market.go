package server

import (
	"net/http"

	"github.com/carteiralab/carteira/internal/models"
)

// handleAnalysis handles GET /api/analysis/{ticker}.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	ticker := PathParam(r, "/api/analysis/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}
	classification, err := s.app.PortfolioService.Analyze(r.Context(), ticker)
	if err != nil {
		WriteError(w, statusFor(err), err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, classification)
}

// handleMarketQuote handles GET /api/market/quote/{ticker}.
func (s *Server) handleMarketQuote(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	ticker := PathParam(r, "/api/market/quote/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}
	quotes := s.app.MarketService.QuoteBatch(r.Context(), []string{ticker})
	quote := quotes[models.NormalizeTicker(ticker)]
	if !quote.Available {
		WriteError(w, http.StatusNotFound, "No quote available for "+models.NormalizeTicker(ticker))
		return
	}
	WriteJSON(w, http.StatusOK, quote)
}

type invalidateRequest struct {
	Ticker string `json:"ticker,omitempty"`
}

// handleMarketInvalidate handles POST /api/market/invalidate. Without a
// ticker the whole cache is dropped.
func (s *Server) handleMarketInvalidate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req invalidateRequest
	if r.ContentLength > 0 && !DecodeJSON(w, r, &req) {
		return
	}
	if req.Ticker != "" {
		s.app.MarketService.Invalidate(req.Ticker)
		WriteJSON(w, http.StatusOK, map[string]string{"status": "invalidated", "ticker": models.NormalizeTicker(req.Ticker)})
		return
	}
	s.app.MarketService.InvalidateAll()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}
