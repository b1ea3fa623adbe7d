// Package server exposes the recommendation engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/catalog"
	"github.com/talentsift/shl-recommender/internal/recommend"
	"github.com/talentsift/shl-recommender/internal/store"
)

const (
	defaultMaxResults = 10
	maxResultsCap     = 20

	readTimeout     = 10 * time.Second
	writeTimeout    = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Recommender runs the scoring cascade over a candidate set.
type Recommender interface {
	Recommend(ctx context.Context, input string, candidates []*catalog.Assessment, isURL bool, maxResults int, persist bool) []*recommend.Recommendation
}

// QueryLog reads back the persisted query history and catalog.
type QueryLog interface {
	RecentQueries(ctx context.Context, limit int) ([]*store.QueryRecord, error)
	ListAssessments(ctx context.Context) (*catalog.Assessments, error)
	GetAssessment(ctx context.Context, id int64) (*catalog.Assessment, error)
}

// Server wires the engine and the query log behind a chi router. The
// candidate catalog is loaded once at startup and held in memory.
type Server struct {
	engine     Recommender
	candidates *catalog.Assessments
	queries    QueryLog
	logger     *zap.Logger
	router     chi.Router
}

// New builds the server. queries may be nil; the history and catalog
// endpoints then answer 503.
func New(engine Recommender, candidates *catalog.Assessments, queries QueryLog, logger *zap.Logger) *Server {
	s := &Server{
		engine:     engine,
		candidates: candidates,
		queries:    queries,
		logger:     logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleInfo)
	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/recommendations", s.handleRecommendations)
		r.Get("/queries", s.handleQueries)
		r.Get("/assessments", s.handleAssessments)
		r.Get("/assessments/{id}", s.handleAssessment)
	})
	s.router = r

	return s
}

// Handler returns the HTTP handler for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encoding response failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
