package evaluate

import (
	"context"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/catalog"
	"github.com/talentsift/shl-recommender/internal/recommend"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRecallAtK(t *testing.T) {
	tests := []struct {
		name        string
		recommended []string
		relevant    []string
		k           int
		want        float64
	}{
		{
			name:        "all relevant in top k",
			recommended: []string{"A", "B", "C"},
			relevant:    []string{"A", "B"},
			k:           3,
			want:        1.0,
		},
		{
			name:        "half found",
			recommended: []string{"A", "X", "Y"},
			relevant:    []string{"A", "B"},
			k:           3,
			want:        0.5,
		},
		{
			name:        "relevant beyond k ignored",
			recommended: []string{"X", "Y", "A"},
			relevant:    []string{"A"},
			k:           2,
			want:        0.0,
		},
		{
			name:        "empty relevant set",
			recommended: []string{"A"},
			relevant:    nil,
			k:           3,
			want:        0.0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RecallAtK(tc.recommended, tc.relevant, tc.k)
			if !almostEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestAveragePrecisionAtK(t *testing.T) {
	// Relevant at positions 1 and 3: (1/1 + 2/3) / min(3, 2) = 5/6.
	got := AveragePrecisionAtK([]string{"A", "X", "B"}, []string{"A", "B"}, 3)
	if !almostEqual(got, 5.0/6.0) {
		t.Fatalf("expected 5/6, got %v", got)
	}

	if got := AveragePrecisionAtK([]string{"X", "Y"}, []string{"A"}, 3); got != 0 {
		t.Fatalf("expected 0 when nothing relevant found, got %v", got)
	}

	if got := AveragePrecisionAtK(nil, []string{"A"}, 3); got != 0 {
		t.Fatalf("expected 0 for empty recommendations, got %v", got)
	}
}

type fixedEngine struct {
	byQuery map[string][]string
}

func (e *fixedEngine) Recommend(_ context.Context, input string, candidates []*catalog.Assessment, _ bool, maxResults int, _ bool) []*recommend.Recommendation {
	byName := make(map[string]*catalog.Assessment, len(candidates))
	for _, c := range candidates {
		byName[c.Name] = c
	}

	var recs []*recommend.Recommendation
	for _, name := range e.byQuery[input] {
		if len(recs) == maxResults {
			break
		}
		recs = append(recs, &recommend.Recommendation{Assessment: byName[name], Score: 1})
	}
	return recs
}

func TestRun(t *testing.T) {
	candidates := []*catalog.Assessment{
		{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"},
	}
	queries := []BenchmarkQuery{
		{Query: "first", Relevant: []string{"A", "B"}},
		{Query: "second", Relevant: []string{"C"}},
	}
	engine := &fixedEngine{byQuery: map[string][]string{
		"first":  {"A", "B", "D"},
		"second": {"D", "A", "B"},
	}}

	report := Run(context.Background(), engine, candidates, queries, 3, zap.NewNop())

	if len(report.PerQuery) != 2 {
		t.Fatalf("expected 2 per-query results, got %d", len(report.PerQuery))
	}

	// first: recall 1.0, AP (1/1 + 2/2)/2 = 1.0; second: both 0.
	if !almostEqual(report.MeanRecall, 0.5) {
		t.Errorf("expected mean recall 0.5, got %v", report.MeanRecall)
	}
	if !almostEqual(report.MAP, 0.5) {
		t.Errorf("expected MAP 0.5, got %v", report.MAP)
	}
}

func TestDefaultBenchmarkMatchesBuiltinCatalog(t *testing.T) {
	known := make(map[string]bool)
	for _, item := range catalog.FallbackAssessments().Items {
		known[item.Name] = true
	}

	for _, bq := range DefaultBenchmark() {
		for _, name := range bq.Relevant {
			if !known[name] {
				t.Errorf("benchmark references unknown assessment %q", name)
			}
		}
	}
}
