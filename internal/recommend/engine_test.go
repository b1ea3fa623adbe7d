package recommend

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/catalog"
)

type stubScorer struct {
	name      string
	available bool
	recs      []*Recommendation
	err       error
	panics    bool
	called    bool
	gotQuery  Query
}

func (s *stubScorer) Name() string    { return s.name }
func (s *stubScorer) Available() bool { return s.available }

func (s *stubScorer) Score(_ context.Context, q Query, _ []*catalog.Assessment) ([]*Recommendation, error) {
	s.called = true
	s.gotQuery = q
	if s.panics {
		panic("scorer exploded")
	}
	return s.recs, s.err
}

type stubExtractor struct {
	text string
	err  error
}

func (e *stubExtractor) ExtractText(_ context.Context, _ string) (string, error) {
	return e.text, e.err
}

type recordingStore struct {
	saveErr error
	gotText string
	gotKind string
	gotRecs []*Recommendation
	saved   bool
}

func (s *recordingStore) SaveQuery(_ context.Context, text, kind string, recs []*Recommendation) error {
	s.saved = true
	s.gotText = text
	s.gotKind = kind
	s.gotRecs = recs
	return s.saveErr
}

func someRecs(names ...string) []*Recommendation {
	recs := make([]*Recommendation, 0, len(names))
	for i, name := range names {
		recs = append(recs, &Recommendation{
			Assessment: &catalog.Assessment{Name: name},
			Score:      1 - float64(i)*0.1,
		})
	}
	return recs
}

func TestEngineFirstAvailableScorerWins(t *testing.T) {
	first := &stubScorer{name: "first", available: true, recs: someRecs("A")}
	second := &stubScorer{name: "second", available: true, recs: someRecs("B")}

	engine := NewEngine([]Scorer{first, second}, nil, nil, zap.NewNop())
	recs := engine.Recommend(context.Background(), "query", nil, false, 10, false)

	if len(recs) != 1 || recs[0].Assessment.Name != "A" {
		t.Fatalf("expected the first scorer's result, got %+v", recs)
	}
	if second.called {
		t.Error("second scorer must not run when the first yields results")
	}
}

func TestEngineFallsThroughOnErrorAndEmpty(t *testing.T) {
	failing := &stubScorer{name: "failing", available: true, err: errors.New("boom")}
	empty := &stubScorer{name: "empty", available: true}
	unavailable := &stubScorer{name: "off"}
	last := &stubScorer{name: "last", available: true, recs: someRecs("C")}

	engine := NewEngine([]Scorer{failing, empty, unavailable, last}, nil, nil, zap.NewNop())
	recs := engine.Recommend(context.Background(), "query", nil, false, 10, false)

	if len(recs) != 1 || recs[0].Assessment.Name != "C" {
		t.Fatalf("expected the last scorer's result, got %+v", recs)
	}
	if unavailable.called {
		t.Error("unavailable scorer must be skipped")
	}
}

func TestEngineAllScorersExhausted(t *testing.T) {
	engine := NewEngine([]Scorer{
		&stubScorer{name: "a", available: true},
		&stubScorer{name: "b", available: true, err: errors.New("down")},
	}, nil, nil, zap.NewNop())

	if recs := engine.Recommend(context.Background(), "query", nil, false, 10, false); recs != nil {
		t.Fatalf("expected nil when every scorer fails, got %+v", recs)
	}
}

func TestEngineRecoversFromPanic(t *testing.T) {
	engine := NewEngine([]Scorer{
		&stubScorer{name: "bad", available: true, panics: true},
	}, nil, nil, zap.NewNop())

	recs := engine.Recommend(context.Background(), "query", nil, false, 10, false)
	if recs != nil {
		t.Fatalf("expected nil after a panic, got %+v", recs)
	}
}

func TestEngineExtractsConstraint(t *testing.T) {
	scorer := &stubScorer{name: "s", available: true, recs: someRecs("A")}
	engine := NewEngine([]Scorer{scorer}, nil, nil, zap.NewNop())

	engine.Recommend(context.Background(), "assessment within 25 mins", nil, false, 10, false)

	if scorer.gotQuery.Constraint == nil || *scorer.gotQuery.Constraint != 25 {
		t.Fatalf("expected constraint of 25 minutes, got %+v", scorer.gotQuery.Constraint)
	}
}

func TestEngineResolvesURLInput(t *testing.T) {
	scorer := &stubScorer{name: "s", available: true, recs: someRecs("A")}
	extractor := &stubExtractor{text: "senior java developer posting"}
	engine := NewEngine([]Scorer{scorer}, extractor, nil, zap.NewNop())

	engine.Recommend(context.Background(), "https://example.com/job", nil, true, 10, false)

	if scorer.gotQuery.Text != "senior java developer posting" {
		t.Fatalf("expected extracted text, got %q", scorer.gotQuery.Text)
	}
}

func TestEngineURLExtractionFailure(t *testing.T) {
	scorer := &stubScorer{name: "s", available: true, recs: someRecs("A")}
	engine := NewEngine([]Scorer{scorer}, &stubExtractor{err: errors.New("404")}, nil, zap.NewNop())

	recs := engine.Recommend(context.Background(), "https://example.com/job", nil, true, 10, false)
	if recs != nil {
		t.Fatalf("expected nil when extraction fails, got %+v", recs)
	}
	if scorer.called {
		t.Error("scorers must not run without query text")
	}
}

func TestEnginePersistsQueryLog(t *testing.T) {
	st := &recordingStore{}
	engine := NewEngine([]Scorer{
		&stubScorer{name: "s", available: true, recs: someRecs("A")},
	}, nil, st, zap.NewNop())

	engine.Recommend(context.Background(), "hiring analysts", nil, false, 10, true)

	if !st.saved {
		t.Fatal("expected the query to be saved")
	}
	if st.gotText != "hiring analysts" || st.gotKind != QueryKindText {
		t.Errorf("unexpected save: text=%q kind=%q", st.gotText, st.gotKind)
	}
}

func TestEnginePersistenceFailureKeepsResults(t *testing.T) {
	st := &recordingStore{saveErr: errors.New("db down")}
	engine := NewEngine([]Scorer{
		&stubScorer{name: "s", available: true, recs: someRecs("A")},
	}, nil, st, zap.NewNop())

	recs := engine.Recommend(context.Background(), "query", nil, false, 10, true)
	if len(recs) != 1 {
		t.Fatalf("a failed save must not discard results, got %+v", recs)
	}
}

func TestEngineKeywordOnlyEndToEnd(t *testing.T) {
	candidates := []*catalog.Assessment{
		{
			Name:        "Personality Profile",
			Description: "Measures workplace personality.",
			Duration:    "60 minutes",
			TestType:    catalog.TestTypePersonality,
		},
		{
			Name:        "Cognitive Ability Test for Developers",
			Description: "Reasoning and problem solving for technical roles.",
			Duration:    "25 minutes",
			TestType:    catalog.TestTypeCognitive,
		},
	}

	engine := NewEngine([]Scorer{NewKeywordScorer(zap.NewNop())}, nil, nil, zap.NewNop())
	recs := engine.Recommend(context.Background(),
		"need a 30 minute cognitive test for developers", candidates, false, 10, false)

	if len(recs) == 0 {
		t.Fatal("expected recommendations from the keyword fallback")
	}
	if recs[0].Assessment.TestType != catalog.TestTypeCognitive {
		t.Fatalf("expected the cognitive assessment first, got %s", recs[0].Assessment.Name)
	}
}

func TestEngineClampsScores(t *testing.T) {
	engine := NewEngine([]Scorer{
		&stubScorer{name: "s", available: true, recs: []*Recommendation{
			{Assessment: &catalog.Assessment{Name: "High"}, Score: 1.7},
			{Assessment: &catalog.Assessment{Name: "Low"}, Score: -0.2},
		}},
	}, nil, nil, zap.NewNop())

	recs := engine.Recommend(context.Background(), "query", nil, false, 10, false)
	if recs[0].Score != 1 || recs[1].Score != 0 {
		t.Fatalf("expected scores clamped to [0, 1], got %v and %v", recs[0].Score, recs[1].Score)
	}
}
