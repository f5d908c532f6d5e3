// Package server exposes the pricing engine over HTTP for dashboards and
// other callers that cannot link the Go packages directly.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/data"
	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/logger"
	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/metrics"
	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/pricing"
	"github.com/vinaysinghyadav/black-scholes-model-vsy/internal/sweep"
)

// Server handles pricing requests. A nil spot provider disables the ticker
// query parameter.
type Server struct {
	spots   data.SpotProvider
	workers int
}

// New builds a Server. workers bounds sweep parallelism (<= 0 means GOMAXPROCS).
func New(spots data.SpotProvider, workers int) *Server {
	return &Server{spots: spots, workers: workers}
}

// GreeksResponse is the body of GET /api/v1/greeks.
type GreeksResponse struct {
	Params      pricing.Params `json:"params"`
	Greeks      pricing.Greeks `json:"greeks"`
	ThetaPerDay float64        `json:"theta_per_day"`
	Intrinsic   float64        `json:"intrinsic"`
}

// SweepResponse is the body of GET /api/v1/sweep/{metric}.
type SweepResponse struct {
	Params pricing.Params `json:"params"`
	Range  sweep.Range    `json:"range"`
	Series sweep.Series   `json:"series"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Routes returns the router with middleware and every endpoint mounted.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(metrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/greeks", s.GetGreeks)
		r.Get("/sweep/{metric}", s.GetSweep)
	})
	return r
}

// GetGreeks evaluates one contract from query parameters.
func (s *Server) GetGreeks(w http.ResponseWriter, r *http.Request) {
	p, err := s.paramsFromQuery(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	g, err := pricing.Evaluate(p)
	metrics.Evaluations.WithLabelValues(p.Type.String(), outcome(err)).Inc()
	if err != nil {
		writeFailure(w, err)
		return
	}
	intrinsic, err := pricing.Intrinsic(p)
	if err != nil {
		writeFailure(w, err)
		return
	}

	logger.Debugf("greeks %s S=%.2f K=%.2f price=%.4f", p.Type, p.Spot, p.Strike, g.Price)
	writeJSON(w, http.StatusOK, GreeksResponse{
		Params:      p,
		Greeks:      g,
		ThetaPerDay: g.ThetaPerDay(),
		Intrinsic:   intrinsic,
	})
}

// GetSweep evaluates one metric across a spot range.
func (s *Server) GetSweep(w http.ResponseWriter, r *http.Request) {
	metric, err := sweep.ParseMetric(chi.URLParam(r, "metric"))
	if err != nil {
		writeError(w, err.Error(), "metric", http.StatusNotFound)
		return
	}

	p, err := s.paramsFromQuery(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	q := r.URL.Query()
	rng := sweep.DefaultRange(p.Spot)
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"start", &rng.Start},
		{"end", &rng.End},
		{"step", &rng.Step},
	} {
		if _, err := optionalFloat(q, f.name, f.dst); err != nil {
			writeFailure(w, err)
			return
		}
	}
	if _, err := rng.Spots(); err != nil {
		writeError(w, err.Error(), "range", http.StatusBadRequest)
		return
	}

	all, err := sweep.GenerateParallel(r.Context(), p, rng, s.workers)
	metrics.Evaluations.WithLabelValues(p.Type.String(), outcome(err)).Inc()
	if err != nil {
		writeFailure(w, err)
		return
	}
	series := all[metric]
	metrics.SweepPoints.WithLabelValues(string(metric)).Add(float64(len(series.Points)))

	writeJSON(w, http.StatusOK, SweepResponse{Params: p, Range: rng, Series: series})
}

type queryError struct {
	field  string
	err    error
	status int
}

func (e *queryError) Error() string { return fmt.Sprintf("query parameter %s: %v", e.field, e.err) }
func (e *queryError) Unwrap() error { return e.err }

// paramsFromQuery reads spot (or ticker), strike, rate, days (or t in
// years), vol and type. Missing numbers fall back to the calculator defaults.
func (s *Server) paramsFromQuery(r *http.Request) (pricing.Params, error) {
	q := r.URL.Query()
	p := pricing.Params{Spot: 100, Strike: 100, Rate: 0.03, T: pricing.YearsFromDays(180), Sigma: 0.25, Type: pricing.Call}

	if ticker := q.Get("ticker"); ticker != "" {
		if s.spots == nil {
			return p, &queryError{field: "ticker", err: errors.New("no spot provider configured")}
		}
		spot, err := s.spots.Spot(r.Context(), ticker)
		if err != nil {
			return p, &queryError{field: "ticker", err: err, status: http.StatusBadGateway}
		}
		p.Spot = spot
	}

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"spot", &p.Spot},
		{"strike", &p.Strike},
		{"rate", &p.Rate},
		{"t", &p.T},
		{"vol", &p.Sigma},
	} {
		if _, err := optionalFloat(q, f.name, f.dst); err != nil {
			return p, err
		}
	}

	var days float64
	if ok, err := optionalFloat(q, "days", &days); err != nil {
		return p, err
	} else if ok {
		p.T = pricing.YearsFromDays(days)
	}

	if v := q.Get("type"); v != "" {
		typ, err := pricing.ParseOptionType(v)
		if err != nil {
			return p, err
		}
		p.Type = typ
	}
	return p, nil
}

func optionalFloat(q url.Values, name string, dst *float64) (bool, error) {
	v := q.Get(name)
	if v == "" {
		return false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return false, &queryError{field: name, err: err}
	}
	*dst = f
	return true, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, pricing.ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, pricing.ErrNumericOverflow):
		return "numeric_overflow"
	}
	return "error"
}

// writeFailure maps engine and query errors to status codes.
func writeFailure(w http.ResponseWriter, err error) {
	var (
		perr *pricing.ParamError
		qerr *queryError
	)
	switch {
	case errors.As(err, &perr):
		writeError(w, err.Error(), perr.Field, http.StatusBadRequest)
	case errors.Is(err, pricing.ErrNumericOverflow):
		writeError(w, err.Error(), "", http.StatusUnprocessableEntity)
	case errors.As(err, &qerr):
		status := http.StatusBadRequest
		if qerr.status != 0 {
			status = qerr.status
		}
		writeError(w, err.Error(), qerr.field, status)
	default:
		logger.Errorf("request failed: %v", err)
		writeError(w, err.Error(), "", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, message, field string, status int) {
	writeJSON(w, status, errorResponse{Error: message, Field: field})
}
