package recommend

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/ai"
	"github.com/talentsift/shl-recommender/internal/catalog"
)

// Candidates longer than the extracted time constraint keep half their
// similarity: a soft penalty, not an exclusion.
const overConstraintPenalty = 0.5

// EmbeddingScorer ranks candidates by cosine similarity between the query
// embedding and each candidate's "name + description" embedding.
type EmbeddingScorer struct {
	embedder ai.Embedder
	logger   *zap.Logger
}

func NewEmbeddingScorer(embedder ai.Embedder, logger *zap.Logger) *EmbeddingScorer {
	return &EmbeddingScorer{embedder: embedder, logger: logger}
}

func (s *EmbeddingScorer) Name() string { return "embedding_similarity" }

func (s *EmbeddingScorer) Available() bool { return s.embedder != nil }

func (s *EmbeddingScorer) Score(ctx context.Context, q Query, candidates []*catalog.Assessment) ([]*Recommendation, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	queryVector, err := s.embedder.EmbedText(ctx, q.Text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	recs := make([]*Recommendation, 0, len(candidates))
	for _, candidate := range candidates {
		vector, err := s.embedder.EmbedText(ctx, candidate.Name+" "+candidate.Description)
		if err != nil {
			// A failed candidate embedding skips the candidate, nothing more.
			s.logger.Debug("candidate embedding failed",
				zap.String("assessment", candidate.Name),
				zap.Error(err),
			)
			continue
		}

		similarity := cosineSimilarity(queryVector, vector)

		if q.Constraint != nil {
			if minutes, ok := candidate.DurationMinutes(); ok && minutes > *q.Constraint {
				similarity *= overConstraintPenalty
			}
		}

		recs = append(recs, &Recommendation{Assessment: candidate, Score: similarity})
	}

	sortByScore(recs)

	return truncate(recs, q.MaxResults), nil
}

// cosineSimilarity is the dot product over the product of L2 norms, defined
// as 0 when either vector has zero norm.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
