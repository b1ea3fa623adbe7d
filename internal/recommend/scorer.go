package recommend

import (
	"context"
	"sort"

	"github.com/talentsift/shl-recommender/internal/catalog"
)

// Recommendation is a catalog record with its relevance score for a query.
// Scored copies are created per request; the underlying assessment records
// are never mutated by scoring.
type Recommendation struct {
	Assessment *catalog.Assessment `json:"assessment"`
	Score      float64             `json:"score"`
}

// Query is the resolved scoring input: plain text plus the optional
// maximum-duration constraint extracted from it.
type Query struct {
	Text       string
	MaxResults int
	// Constraint is a maximum assessment duration in minutes, nil when the
	// query names none.
	Constraint *int
}

// Scorer is one ranking strategy. The orchestrator tries scorers in priority
// order; an error or an empty result means "strategy unavailable" and the
// next scorer is attempted.
type Scorer interface {
	Name() string
	Available() bool
	Score(ctx context.Context, q Query, candidates []*catalog.Assessment) ([]*Recommendation, error)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func sortByScore(recs []*Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
}

func truncate(recs []*Recommendation, max int) []*Recommendation {
	if max > 0 && len(recs) > max {
		return recs[:max]
	}
	return recs
}
