package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/recommend"
	"github.com/talentsift/shl-recommender/internal/store"
)

type recommendationsResponse struct {
	Query           string                      `json:"query"`
	Recommendations []*recommend.Recommendation `json:"recommendations"`
}

func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"service": "shl-recommender",
		"endpoints": []string{
			"GET /health",
			"GET /api/recommendations?query=...|url=...",
			"GET /api/queries?limit=...",
			"GET /api/assessments",
			"GET /api/assessments/{id}",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"catalog":    s.candidates.Len(),
		"persistent": s.queries != nil,
	})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	url := strings.TrimSpace(r.URL.Query().Get("url"))

	if (query == "") == (url == "") {
		s.respondError(w, http.StatusBadRequest, "exactly one of 'query' or 'url' is required")
		return
	}

	input := query
	isURL := false
	if url != "" {
		input = url
		isURL = true
	}

	maxResults := defaultMaxResults
	if raw := r.URL.Query().Get("max_results"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, "'max_results' must be a positive integer")
			return
		}
		maxResults = n
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}

	facets, err := parseFacets(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	recs := s.engine.Recommend(r.Context(), input, s.candidates.Items, isURL, maxResults, true)
	recs = recommend.ApplyFacets(recs, facets)
	if recs == nil {
		recs = []*recommend.Recommendation{}
	}

	s.respondJSON(w, http.StatusOK, recommendationsResponse{
		Query:           input,
		Recommendations: recs,
	})
}

func parseFacets(r *http.Request) (recommend.Facets, error) {
	var facets recommend.Facets
	q := r.URL.Query()

	if raw := strings.TrimSpace(q.Get("test_types")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				facets.TestTypes = append(facets.TestTypes, part)
			}
		}
	}

	if raw := q.Get("max_duration"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 1 {
			return facets, errors.New("'max_duration' must be a positive integer of minutes")
		}
		facets.MaxDuration = &minutes
	}

	for _, param := range []struct {
		name string
		dest **bool
	}{
		{"remote_testing", &facets.RemoteTesting},
		{"adaptive_support", &facets.AdaptiveSupport},
	} {
		raw := q.Get(param.name)
		if raw == "" {
			continue
		}
		value, err := parseYesNo(raw)
		if err != nil {
			return facets, errors.New("'" + param.name + "' must be yes or no")
		}
		*param.dest = &value
	}

	return facets, nil
}

func parseYesNo(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "1":
		return true, nil
	case "no", "n", "false", "0":
		return false, nil
	}
	return false, errors.New("not a yes/no value")
}

func (s *Server) handleQueries(w http.ResponseWriter, r *http.Request) {
	if s.queries == nil {
		s.respondError(w, http.StatusServiceUnavailable, "query history is not configured")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, "'limit' must be a positive integer")
			return
		}
		limit = n
	}

	records, err := s.queries.RecentQueries(r.Context(), limit)
	if err != nil {
		s.logger.Error("listing queries failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "listing queries failed")
		return
	}
	if records == nil {
		records = []*store.QueryRecord{}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"queries": records})
}

func (s *Server) handleAssessments(w http.ResponseWriter, r *http.Request) {
	if s.queries == nil {
		s.respondJSON(w, http.StatusOK, map[string]any{"assessments": s.candidates.Items})
		return
	}

	assessments, err := s.queries.ListAssessments(r.Context())
	if err != nil {
		s.logger.Error("listing assessments failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "listing assessments failed")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"assessments": assessments.Items})
}

func (s *Server) handleAssessment(w http.ResponseWriter, r *http.Request) {
	if s.queries == nil {
		s.respondError(w, http.StatusServiceUnavailable, "assessment lookup is not configured")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		s.respondError(w, http.StatusBadRequest, "'id' must be a positive integer")
		return
	}

	assessment, err := s.queries.GetAssessment(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "assessment not found")
		return
	}
	if err != nil {
		s.logger.Error("assessment lookup failed", zap.Int64("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "assessment lookup failed")
		return
	}

	s.respondJSON(w, http.StatusOK, assessment)
}
