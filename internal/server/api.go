package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/favorability"
	"github.com/tartampluch/go-numerology/internal/numerology"
	"github.com/tartampluch/go-numerology/internal/report"
)

// chartRequest mirrors the query string of /api/chart.
type chartRequest struct {
	Birth string `json:"birth" validate:"required,numdate"`
	Ref   string `json:"ref" validate:"omitempty,numdate"`
}

// weekRequest mirrors the query string of /api/week.
type weekRequest struct {
	Date string `json:"date" validate:"omitempty,numdate"`
}

// errorResponse is the body of every non-2xx API answer. Error is localized.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Feed    bool   `json:"feed_ready"`
}

// handleChart computes the chart of ?birth= against ?ref= (default today).
func (s *CalendarServer) handleChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := chartRequest{Birth: q.Get(config.QueryBirth), Ref: q.Get(config.QueryRef)}

	if err := s.Validator.Struct(req); err != nil {
		respondError(w, r, http.StatusBadRequest, s.translator(r).Error(err))
		return
	}

	// The reference date defaults to the server's today.
	ref := req.Ref
	if ref == "" {
		ref = numerology.FromTime(s.Clock.Now()).String()
	}

	result, err := numerology.Compute(req.Birth, ref)
	if err != nil {
		// Unreachable after validation, kept for the engine's own guard.
		status := http.StatusInternalServerError
		if errors.Is(err, numerology.ErrInvalidDateFormat) {
			status = http.StatusBadRequest
		}
		respondError(w, r, status, s.translator(r).Error(err))
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleWeek returns the localized forecast of the week containing ?date=.
func (s *CalendarServer) handleWeek(w http.ResponseWriter, r *http.Request) {
	req := weekRequest{Date: r.URL.Query().Get(config.QueryDate)}
	tr := s.translator(r)

	if err := s.Validator.Struct(req); err != nil {
		respondError(w, r, http.StatusBadRequest, tr.Error(err))
		return
	}

	reference := s.Clock.Now()
	if req.Date != "" {
		d, err := numerology.ParseDate(req.Date)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, tr.Error(err))
			return
		}
		// Impossible dates roll over like time.Date (31.02 -> 03.03).
		reference = d.Time(time.UTC)
	}

	week := favorability.GenerateWeek(reference)
	respondJSON(w, http.StatusOK, report.NewWeekView(week, tr))
}
