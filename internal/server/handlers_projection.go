package server

import (
	"net/http"

	"github.com/carteiralab/carteira/internal/models"
	"github.com/carteiralab/carteira/internal/projection"
)

type projectionRequest struct {
	Initial             float64 `json:"initial"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	AnnualRatePct       float64 `json:"annual_rate_pct"`
	HorizonMonths       int     `json:"horizon_months"`
	TaxRatePct          float64 `json:"tax_rate_pct"`
}

type projectionResponse struct {
	Schedule *models.ProjectionSchedule `json:"schedule"`
	Summary  models.ProjectionSummary   `json:"summary"`
}

func (s *Server) project(w http.ResponseWriter, r *http.Request) (*models.ProjectionSchedule, bool) {
	var req projectionRequest
	if !DecodeJSON(w, r, &req) {
		return nil, false
	}
	schedule, err := projection.Project(req.Initial, req.MonthlyContribution,
		req.AnnualRatePct, req.HorizonMonths, req.TaxRatePct)
	if err != nil {
		WriteError(w, statusFor(err), err.Error())
		return nil, false
	}
	return schedule, true
}

// handleProjection handles POST /api/projection.
func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	schedule, ok := s.project(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, projectionResponse{
		Schedule: schedule,
		Summary:  projection.Summarize(schedule),
	})
}

// handleProjectionChart handles POST /api/projection/chart and returns
// the rendered PNG.
func (s *Server) handleProjectionChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	schedule, ok := s.project(w, r)
	if !ok {
		return
	}
	png, err := projection.RenderChart(schedule)
	if err != nil {
		WriteError(w, statusFor(err), err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
