package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/ai"
	"github.com/talentsift/shl-recommender/internal/catalog"
	"github.com/talentsift/shl-recommender/internal/util"
)

//go:embed prompt.md
var promptTemplate string

const (
	// The prompt carries at most this many candidates to stay inside the
	// model's context window.
	maxPromptCandidates = 30
	// The model is never asked for more than this many selections.
	maxModelSelections = 10

	defaultMaxLogLength = 200
)

// The model is told to answer with a bare JSON array of 1-based indices; the
// first bracketed array in the response is taken, everything else ignored.
var indexArrayPattern = regexp.MustCompile(`(?s)\[.*?\]`)

// LLMScorer asks a hosted language model to pick the most relevant
// assessments directly, returning them in the model's order.
type LLMScorer struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

// NewLLMScorer creates the scorer. maxLogLen caps prompt and response
// previews in debug logs; zero or negative selects the default.
func NewLLMScorer(generator ai.Generator, maxLogLen int, logger *zap.Logger) *LLMScorer {
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}
	return &LLMScorer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLen,
	}
}

func (s *LLMScorer) Name() string { return "llm_direct" }

func (s *LLMScorer) Available() bool { return s.generator != nil }

func (s *LLMScorer) Score(ctx context.Context, q Query, candidates []*catalog.Assessment) ([]*Recommendation, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	limit := q.MaxResults
	if limit > maxModelSelections {
		limit = maxModelSelections
	}

	prompt := buildSelectionPrompt(q.Text, candidates, limit)

	s.logger.Debug("llm selection request",
		zap.Int("candidates", len(candidates)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("llm selection response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, s.maxLogLen)),
	)

	indices, err := parseIndexArray(raw)
	if err != nil {
		return nil, err
	}

	recs := make([]*Recommendation, 0, len(indices))
	for _, idx := range indices {
		// Out-of-range indices are dropped, not clamped.
		if idx < 1 || idx > len(candidates) {
			continue
		}
		recs = append(recs, &Recommendation{Assessment: candidates[idx-1]})
		if len(recs) == q.MaxResults {
			break
		}
	}

	// The model returns an ordering, not scores; assign descending
	// positional confidence so every recommendation carries one.
	for i := range recs {
		recs[i].Score = float64(len(recs)-i) / float64(len(recs))
	}

	return recs, nil
}

func buildSelectionPrompt(query string, candidates []*catalog.Assessment, limit int) string {
	if len(candidates) > maxPromptCandidates {
		candidates = candidates[:maxPromptCandidates]
	}

	var sb strings.Builder
	for i, c := range candidates {
		fmt.Fprintf(&sb, "Assessment %d:\nName: %s\nDescription: %s\nTest Type: %s\nDuration: %s\nRemote Testing: %s\nAdaptive Support: %s\n\n",
			i+1, c.Name, orNA(c.Description), orNA(c.TestType), orNA(c.Duration), orNA(c.RemoteTesting), orNA(c.AdaptiveSupport))
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{QUERY}}", query)
	prompt = strings.ReplaceAll(prompt, "{{ASSESSMENTS}}", strings.TrimSpace(sb.String()))
	prompt = strings.ReplaceAll(prompt, "{{LIMIT}}", fmt.Sprintf("%d", limit))

	return prompt
}

func parseIndexArray(raw string) ([]int, error) {
	match := indexArrayPattern.FindString(raw)
	if match == "" {
		return nil, errors.New("no index array found in model response")
	}

	var indices []int
	if err := json.Unmarshal([]byte(match), &indices); err != nil {
		return nil, fmt.Errorf("parse index array: %w", err)
	}

	return indices, nil
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
