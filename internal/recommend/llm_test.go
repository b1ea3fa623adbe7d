package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/catalog"
)

type stubGenerator struct {
	response  string
	err       error
	gotPrompt string
}

func (g *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	g.gotPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func (g *stubGenerator) Model() string { return "stub-model" }

func namedCandidates(names ...string) []*catalog.Assessment {
	items := make([]*catalog.Assessment, 0, len(names))
	for _, name := range names {
		items = append(items, &catalog.Assessment{Name: name})
	}
	return items
}

func TestLLMScorerSelectsByIndex(t *testing.T) {
	gen := &stubGenerator{response: "[3, 1]"}
	scorer := NewLLMScorer(gen, 0, zap.NewNop())

	recs, err := scorer.Score(context.Background(), Query{Text: "q", MaxResults: 10},
		namedCandidates("A", "B", "C"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].Assessment.Name != "C" || recs[1].Assessment.Name != "A" {
		t.Fatalf("unexpected order: %s, %s", recs[0].Assessment.Name, recs[1].Assessment.Name)
	}

	// Positional confidence: first 2/2, second 1/2.
	if recs[0].Score != 1.0 || recs[1].Score != 0.5 {
		t.Fatalf("unexpected scores: %v, %v", recs[0].Score, recs[1].Score)
	}
}

func TestLLMScorerIgnoresProseAroundArray(t *testing.T) {
	gen := &stubGenerator{response: "Sure! Based on the query the best picks are:\n[2]\nLet me know."}
	scorer := NewLLMScorer(gen, 0, zap.NewNop())

	recs, err := scorer.Score(context.Background(), Query{Text: "q", MaxResults: 5},
		namedCandidates("A", "B"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 || recs[0].Assessment.Name != "B" {
		t.Fatalf("unexpected recommendations: %+v", recs)
	}
}

func TestLLMScorerDropsOutOfRangeIndices(t *testing.T) {
	gen := &stubGenerator{response: "[0, 5, 2, -1]"}
	scorer := NewLLMScorer(gen, 0, zap.NewNop())

	recs, err := scorer.Score(context.Background(), Query{Text: "q", MaxResults: 5},
		namedCandidates("A", "B"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 || recs[0].Assessment.Name != "B" {
		t.Fatalf("expected only the in-range index, got %+v", recs)
	}
}

func TestLLMScorerRespectsMaxResults(t *testing.T) {
	gen := &stubGenerator{response: "[1, 2, 3]"}
	scorer := NewLLMScorer(gen, 0, zap.NewNop())

	recs, err := scorer.Score(context.Background(), Query{Text: "q", MaxResults: 2},
		namedCandidates("A", "B", "C"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
}

func TestLLMScorerNoArrayInResponse(t *testing.T) {
	gen := &stubGenerator{response: "I cannot help with that."}
	scorer := NewLLMScorer(gen, 0, zap.NewNop())

	_, err := scorer.Score(context.Background(), Query{Text: "q", MaxResults: 5},
		namedCandidates("A"))
	if err == nil {
		t.Fatal("expected error for response without an index array")
	}
}

func TestLLMScorerPropagatesGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	scorer := NewLLMScorer(gen, 0, zap.NewNop())

	_, err := scorer.Score(context.Background(), Query{Text: "q", MaxResults: 5},
		namedCandidates("A"))
	if err == nil {
		t.Fatal("expected generator error to propagate")
	}
}

func TestLLMScorerPromptContents(t *testing.T) {
	gen := &stubGenerator{response: "[1]"}
	scorer := NewLLMScorer(gen, 0, zap.NewNop())

	q := Query{Text: "java developer assessment", MaxResults: 15}
	if _, err := scorer.Score(context.Background(), q, namedCandidates("A", "B")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(gen.gotPrompt, "java developer assessment") {
		t.Error("prompt missing the query text")
	}
	if !strings.Contains(gen.gotPrompt, "Assessment 2:") {
		t.Error("prompt missing the numbered candidate list")
	}
	// Selections are capped even when more results were requested.
	if !strings.Contains(gen.gotPrompt, "10") {
		t.Error("prompt missing the capped selection limit")
	}
}

func TestLLMScorerEmptyCandidates(t *testing.T) {
	scorer := NewLLMScorer(&stubGenerator{response: "[1]"}, 0, zap.NewNop())

	recs, err := scorer.Score(context.Background(), Query{Text: "q", MaxResults: 5}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs != nil {
		t.Fatalf("expected nil recommendations, got %+v", recs)
	}
}

func TestLLMScorerAvailability(t *testing.T) {
	if (&LLMScorer{}).Available() {
		t.Error("scorer without a generator must be unavailable")
	}
	if !NewLLMScorer(&stubGenerator{}, 0, zap.NewNop()).Available() {
		t.Error("scorer with a generator must be available")
	}
}
