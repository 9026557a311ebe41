package api

import (
	"context"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/airatlasapp/airatlas-server/internal/errors"
	"github.com/airatlasapp/airatlas-server/internal/http/response"
	"github.com/airatlasapp/airatlas-server/internal/search"
)

func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{"status": "ok"}, s.logger)
}

func (s *Server) handleListCountries(w http.ResponseWriter, _ *http.Request) {
	index := s.cachedIndex()
	if index == nil {
		response.DomainError(w, errors.NotFound("dataset not generated yet"), s.logger)
		return
	}
	response.Success(w, index, s.logger)
}

func (s *Server) handleGetCountry(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))
	if len(code) != 2 {
		response.DomainError(w, errors.Validation("country code must be two letters"), s.logger)
		return
	}

	ds, err := s.store.ReadCountry(code)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			response.DomainError(w, errors.NotFound("no dataset for country "+code), s.logger)
			return
		}
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, ds, s.logger)
}

// searchParams carries the query string for validation.
type searchParams struct {
	Term    string `json:"q"`
	Country string `json:"country" validate:"omitempty,len=2,alpha"`
	Type    string `json:"type"    validate:"omitempty,oneof=large_airport medium_airport small_airport heliport seaplane_base balloonport closed"`
	Limit   int    `json:"limit"   validate:"gte=0,lte=100"`
	Offset  int    `json:"offset"  validate:"gte=0"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.search == nil {
		response.DomainError(w, errors.NotFound("search is not enabled"), s.logger)
		return
	}

	params := searchParams{
		Term:    r.URL.Query().Get("q"),
		Country: r.URL.Query().Get("country"),
		Type:    r.URL.Query().Get("type"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.DomainError(w, errors.Validation("limit must be an integer"), s.logger)
			return
		}
		params.Limit = n
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.DomainError(w, errors.Validation("offset must be an integer"), s.logger)
			return
		}
		params.Offset = n
	}
	if err := s.validate.Validate(params); err != nil {
		response.DomainError(w, err, s.logger)
		return
	}

	results, err := s.search.Search(search.Query{
		Term:    params.Term,
		Country: params.Country,
		Type:    params.Type,
		Limit:   params.Limit,
		Offset:  params.Offset,
	})
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}
	response.Success(w, results, s.logger)
}

// handleTriggerUpdate starts an update pass in the background. Only one pass
// runs at a time.
func (s *Server) handleTriggerUpdate(w http.ResponseWriter, _ *http.Request) {
	if s.updater == nil {
		response.DomainError(w, errors.NotFound("updater is not configured"), s.logger)
		return
	}
	if !s.updating.CompareAndSwap(false, true) {
		response.DomainError(w, errors.Conflict("an update is already in progress"), s.logger)
		return
	}

	go func() {
		defer s.updating.Store(false)

		result, err := s.updater.Run(context.Background())
		if err != nil {
			s.logger.Error("update run failed", "error", err)
			return
		}
		s.logger.Info("update run finished", "run_id", result.RunID, "countries", len(result.Countries))

		if err := s.ReloadData(); err != nil {
			s.logger.Error("reload after update failed", "error", err)
		}
	}()

	response.Accepted(w, "update started", s.logger)
}
