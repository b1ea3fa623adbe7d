// Package evaluate measures ranking quality against a labeled benchmark.
package evaluate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/catalog"
	"github.com/talentsift/shl-recommender/internal/recommend"
)

const defaultK = 3

// BenchmarkQuery is one labeled evaluation case: a query text and the set of
// assessment names considered relevant for it.
type BenchmarkQuery struct {
	Query    string   `json:"query"`
	Relevant []string `json:"relevant"`
}

// Recommender runs the scoring cascade over a candidate set.
type Recommender interface {
	Recommend(ctx context.Context, input string, candidates []*catalog.Assessment, isURL bool, maxResults int, persist bool) []*recommend.Recommendation
}

// QueryResult holds the metrics for one benchmark query.
type QueryResult struct {
	Query            string  `json:"query"`
	Recall           float64 `json:"recall"`
	AveragePrecision float64 `json:"average_precision"`
	Recommended      int     `json:"recommended"`
}

// Report aggregates per-query metrics into Mean Recall@K and MAP@K.
type Report struct {
	K          int            `json:"k"`
	PerQuery   []*QueryResult `json:"per_query"`
	MeanRecall float64        `json:"mean_recall"`
	MAP        float64        `json:"map"`
}

// RecallAtK is the share of relevant names found in the top K recommended
// names, 0 when the relevant set is empty.
func RecallAtK(recommended, relevant []string, k int) float64 {
	if len(relevant) == 0 {
		return 0
	}

	relevantSet := toSet(relevant)
	found := 0
	for _, name := range topK(recommended, k) {
		if relevantSet[name] {
			found++
		}
	}

	return float64(found) / float64(len(relevant))
}

// AveragePrecisionAtK sums precision at every relevant position in the top K
// and normalizes by min(K, len(relevant)).
func AveragePrecisionAtK(recommended, relevant []string, k int) float64 {
	if len(relevant) == 0 || len(recommended) == 0 {
		return 0
	}

	relevantSet := toSet(relevant)
	seen := 0
	var precisionSum float64
	for i, name := range topK(recommended, k) {
		if !relevantSet[name] {
			continue
		}
		seen++
		precisionSum += float64(seen) / float64(i+1)
	}

	if seen == 0 {
		return 0
	}

	denom := k
	if len(relevant) < denom {
		denom = len(relevant)
	}

	return precisionSum / float64(denom)
}

// Run scores every benchmark query with the engine and reports Mean Recall@K
// and MAP@K over the set.
func Run(ctx context.Context, engine Recommender, candidates []*catalog.Assessment, queries []BenchmarkQuery, k int, logger *zap.Logger) *Report {
	if k <= 0 {
		k = defaultK
	}

	report := &Report{K: k}
	var recallSum, apSum float64

	for _, bq := range queries {
		recs := engine.Recommend(ctx, bq.Query, candidates, false, k, false)

		names := make([]string, 0, len(recs))
		for _, rec := range recs {
			names = append(names, rec.Assessment.Name)
		}

		result := &QueryResult{
			Query:            bq.Query,
			Recall:           RecallAtK(names, bq.Relevant, k),
			AveragePrecision: AveragePrecisionAtK(names, bq.Relevant, k),
			Recommended:      len(names),
		}
		report.PerQuery = append(report.PerQuery, result)
		recallSum += result.Recall
		apSum += result.AveragePrecision

		logger.Debug("benchmark query scored",
			zap.String("query", bq.Query),
			zap.Float64("recall", result.Recall),
			zap.Float64("average_precision", result.AveragePrecision),
		)
	}

	if n := len(report.PerQuery); n > 0 {
		report.MeanRecall = recallSum / float64(n)
		report.MAP = apSum / float64(n)
	}

	return report
}

// LoadBenchmark reads benchmark queries from a JSON file, falling back to the
// built-in set when path is empty.
func LoadBenchmark(path string) ([]BenchmarkQuery, error) {
	if path == "" {
		return DefaultBenchmark(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading benchmark file: %w", err)
	}

	var queries []BenchmarkQuery
	if err := json.Unmarshal(data, &queries); err != nil {
		return nil, fmt.Errorf("parsing benchmark file: %w", err)
	}

	return queries, nil
}

func topK(names []string, k int) []string {
	if k > 0 && len(names) > k {
		return names[:k]
	}
	return names
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
