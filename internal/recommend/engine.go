package recommend

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/catalog"
)

// Query kinds recorded in the query log.
const (
	QueryKindText = "text"
	QueryKindURL  = "url"
)

const defaultMaxResults = 10

// TextExtractor resolves a job-description URL into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, url string) (string, error)
}

// QueryStore records a query and its ranked recommendations.
type QueryStore interface {
	SaveQuery(ctx context.Context, text, kind string, recs []*Recommendation) error
}

// Engine runs the scoring strategies in strict priority order: the first one
// to yield a non-empty ranking wins, nothing is blended. A failure anywhere
// degrades to an empty result, never to an error at the entry point.
type Engine struct {
	scorers   []Scorer
	extractor TextExtractor
	store     QueryStore
	logger    *zap.Logger
}

// NewEngine creates an Engine. extractor and store may be nil; URL inputs
// then resolve to nothing and persistence is skipped.
func NewEngine(scorers []Scorer, extractor TextExtractor, store QueryStore, logger *zap.Logger) *Engine {
	return &Engine{
		scorers:   scorers,
		extractor: extractor,
		store:     store,
		logger:    logger,
	}
}

// Recommend ranks candidates against the input and returns at most
// maxResults scored copies, best first. Scores are clamped to [0, 1].
func (e *Engine) Recommend(ctx context.Context, input string, candidates []*catalog.Assessment, isURL bool, maxResults int, persist bool) (recs []*Recommendation) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("recommendation pipeline panicked", zap.Any("panic", r))
			recs = nil
		}
	}()

	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	text := input
	if isURL {
		extracted := e.resolveURL(ctx, input)
		if extracted == "" {
			return nil
		}
		text = extracted
	}

	q := Query{
		Text:       text,
		MaxResults: maxResults,
		Constraint: ExtractTimeConstraint(text),
	}

	for _, scorer := range e.scorers {
		if !scorer.Available() {
			e.logger.Debug("scorer not configured", zap.String("scorer", scorer.Name()))
			continue
		}

		result, err := scorer.Score(ctx, q, candidates)
		if err != nil {
			e.logger.Warn("scoring strategy failed, falling through",
				zap.String("scorer", scorer.Name()),
				zap.Error(err),
			)
			continue
		}
		if len(result) == 0 {
			e.logger.Debug("scoring strategy yielded nothing",
				zap.String("scorer", scorer.Name()),
			)
			continue
		}

		for _, rec := range result {
			rec.Score = clampScore(rec.Score)
		}

		e.logger.Info("recommendations ready",
			zap.String("scorer", scorer.Name()),
			zap.Int("count", len(result)),
		)

		if persist {
			e.persist(ctx, input, isURL, result)
		}

		return result
	}

	return nil
}

func (e *Engine) resolveURL(ctx context.Context, url string) string {
	if e.extractor == nil {
		e.logger.Warn("url input but no text extractor configured")
		return ""
	}

	text, err := e.extractor.ExtractText(ctx, url)
	if err != nil {
		e.logger.Warn("url text extraction failed", zap.String("url", url), zap.Error(err))
		return ""
	}
	if strings.TrimSpace(text) == "" {
		e.logger.Warn("url yielded no text", zap.String("url", url))
		return ""
	}

	return text
}

// persist writes the query log entry. A failed write never discards a
// successfully computed recommendation list.
func (e *Engine) persist(ctx context.Context, input string, isURL bool, recs []*Recommendation) {
	if e.store == nil {
		return
	}

	kind := QueryKindText
	if isURL {
		kind = QueryKindURL
	}

	if err := e.store.SaveQuery(ctx, input, kind, recs); err != nil {
		e.logger.Warn("saving query log failed", zap.Error(err))
	}
}
