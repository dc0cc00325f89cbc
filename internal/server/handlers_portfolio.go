package server

import (
	"errors"
	"net/http"

	"github.com/carteiralab/carteira/internal/models"
)

// defaultUserID scopes requests that carry no user header. The dashboard
// is single-user by default; multi-user callers set X-Carteira-User-ID.
const defaultUserID = "default"

func userID(r *http.Request) string {
	if id := r.Header.Get("X-Carteira-User-ID"); id != "" {
		return id
	}
	return defaultUserID
}

// fxRate resolves the FX query parameter, falling back to the configured
// default. Writes a 400 and returns false on a malformed value.
func (s *Server) fxRate(w http.ResponseWriter, r *http.Request) (float64, bool) {
	fx, ok := QueryFloat(r, "fx", s.app.Config.Engine.DefaultFXRate)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid fx parameter")
		return 0, false
	}
	return fx, true
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, models.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

type positionRequest struct {
	Ticker     string  `json:"ticker"`
	Quantity   float64 `json:"quantity"`
	AvgCost    float64 `json:"avg_cost"`
	AssetClass string  `json:"asset_class"`
}

// handlePositions handles GET /api/positions and POST /api/positions.
func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		positions, err := s.app.PortfolioService.ListPositions(r.Context(), userID(r))
		if err != nil {
			WriteError(w, statusFor(err), err.Error())
			return
		}
		if positions == nil {
			positions = []models.Position{}
		}
		WriteJSON(w, http.StatusOK, positions)

	case http.MethodPost:
		var req positionRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		assetClass, err := models.ParseAssetClass(req.AssetClass)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		position := &models.Position{
			UserID:     userID(r),
			Ticker:     req.Ticker,
			Quantity:   req.Quantity,
			AvgCost:    req.AvgCost,
			AssetClass: assetClass,
		}
		if err := s.app.PortfolioService.UpsertPosition(r.Context(), position); err != nil {
			WriteError(w, statusFor(err), err.Error())
			return
		}
		if position.Quantity == 0 {
			WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
			return
		}
		WriteJSON(w, http.StatusOK, position)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handlePositionByTicker handles DELETE /api/positions/{ticker}.
func (s *Server) handlePositionByTicker(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	ticker := PathParam(r, "/api/positions/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}
	if err := s.app.PortfolioService.DeletePosition(r.Context(), userID(r), ticker); err != nil {
		WriteError(w, statusFor(err), err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleValuation handles GET /api/portfolio/valuation.
func (s *Server) handleValuation(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	fx, ok := s.fxRate(w, r)
	if !ok {
		return
	}
	snapshot, err := s.app.PortfolioService.Valuate(r.Context(), userID(r), fx)
	if err != nil {
		WriteError(w, statusFor(err), err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, snapshot)
}

// handleReview handles GET /api/portfolio/review.
func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	fx, ok := s.fxRate(w, r)
	if !ok {
		return
	}
	review, err := s.app.PortfolioService.Review(r.Context(), userID(r), fx)
	if err != nil {
		WriteError(w, statusFor(err), err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, review)
}

type rebalanceRequest struct {
	NewCapital float64  `json:"new_capital"`
	FXRate     *float64 `json:"fx_rate,omitempty"`
}

// handleRebalance handles POST /api/portfolio/rebalance.
func (s *Server) handleRebalance(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req rebalanceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	fx := s.app.Config.Engine.DefaultFXRate
	if req.FXRate != nil {
		fx = *req.FXRate
	}
	suggestions, err := s.app.PortfolioService.SuggestRebalance(r.Context(), userID(r), req.NewCapital, fx)
	if err != nil {
		WriteError(w, statusFor(err), err.Error())
		return
	}
	if suggestions == nil {
		suggestions = []models.SuggestedPurchase{}
	}
	WriteJSON(w, http.StatusOK, suggestions)
}

// handleTargets handles GET and PUT /api/portfolio/targets.
func (s *Server) handleTargets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		targets, err := s.app.PortfolioService.GetTargets(r.Context(), userID(r))
		if err != nil {
			WriteError(w, statusFor(err), err.Error())
			return
		}
		if targets == nil {
			targets = models.AllocationTargets{}
		}
		WriteJSON(w, http.StatusOK, targets)

	case http.MethodPut:
		var targets models.AllocationTargets
		if !DecodeJSON(w, r, &targets) {
			return
		}
		if err := s.app.PortfolioService.SaveTargets(r.Context(), userID(r), targets); err != nil {
			WriteError(w, statusFor(err), err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, targets)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}
