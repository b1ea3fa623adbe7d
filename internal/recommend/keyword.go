package recommend

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/catalog"
)

// Signal weights for the keyword heuristic. The final score is additive and
// clamped to [0, 1].
const (
	techSkillBonus      = 0.2
	roleTypeBonus       = 0.15
	testTypeBonus       = 0.25
	withinDurationBonus = 0.3
	overDurationPenalty = 0.1
	remoteTestingBonus  = 0.1
)

var techSkillTerms = []string{
	"java", "python", "javascript", "js", "sql", "c#", "c++", "react",
	"angular", "node", "excel", "data analysis", "coding",
}

var roleTypeTerms = []string{
	"developer", "engineer", "analyst", "manager", "leader", "executive",
	"technical", "business", "data", "hr", "sales", "marketing",
}

// testTypeCues maps a lowercase test-type fragment to query terms implying it.
var testTypeCues = map[string][]string{
	"cognitive":   {"cognitive", "reasoning", "logic", "problem solving", "analytical", "critical thinking"},
	"personality": {"personality", "behavior", "attitude", "team fit", "communication", "collaboration"},
	"skill":       {"coding", "technical", "practical", "hands-on"},
	"situational": {"judgment", "judgement", "scenario", "decision making"},
}

// KeywordScorer is the always-available fallback: an additive score over
// independent keyword signal groups, no external calls.
type KeywordScorer struct {
	logger *zap.Logger
}

func NewKeywordScorer(logger *zap.Logger) *KeywordScorer {
	return &KeywordScorer{logger: logger}
}

func (s *KeywordScorer) Name() string { return "keyword_fallback" }

func (s *KeywordScorer) Available() bool { return true }

func (s *KeywordScorer) Score(_ context.Context, q Query, candidates []*catalog.Assessment) ([]*Recommendation, error) {
	recs := make([]*Recommendation, 0, len(candidates))
	for _, candidate := range candidates {
		recs = append(recs, &Recommendation{
			Assessment: candidate,
			Score:      keywordScore(q, candidate),
		})
	}

	sortByScore(recs)

	// Drop candidates over the time constraint, unless that would leave
	// nothing; then the unfiltered ranking is better than no answer.
	if q.Constraint != nil {
		filtered := make([]*Recommendation, 0, len(recs))
		for _, rec := range recs {
			if minutes, ok := rec.Assessment.DurationMinutes(); ok && minutes > *q.Constraint {
				continue
			}
			filtered = append(filtered, rec)
		}
		if len(filtered) > 0 {
			recs = filtered
		} else {
			s.logger.Debug("time constraint excludes every candidate, keeping unfiltered ranking",
				zap.Int("constraint_minutes", *q.Constraint),
			)
		}
	}

	return truncate(recs, q.MaxResults), nil
}

func keywordScore(q Query, candidate *catalog.Assessment) float64 {
	query := strings.ToLower(q.Text)
	name := strings.ToLower(candidate.Name)
	description := strings.ToLower(candidate.Description)

	var score float64

	for _, skill := range techSkillTerms {
		if strings.Contains(query, skill) &&
			(strings.Contains(name, skill) || strings.Contains(description, skill)) {
			score += techSkillBonus
		}
	}

	for _, role := range roleTypeTerms {
		if strings.Contains(query, role) &&
			(strings.Contains(name, role) || strings.Contains(description, role)) {
			score += roleTypeBonus
		}
	}

	declaredType := strings.ToLower(candidate.TestType)
	for testType, cues := range testTypeCues {
		if !strings.Contains(declaredType, testType) {
			continue
		}
		for _, cue := range cues {
			if strings.Contains(query, cue) {
				score += testTypeBonus
				break
			}
		}
	}

	if q.Constraint != nil {
		if minutes, ok := candidate.DurationMinutes(); ok {
			if minutes <= *q.Constraint {
				score += withinDurationBonus
			} else {
				score -= overDurationPenalty
			}
		}
	}

	if strings.Contains(query, "remote") && candidate.RemoteTesting == catalog.SupportYes {
		score += remoteTestingBonus
	}

	return clampScore(score)
}
