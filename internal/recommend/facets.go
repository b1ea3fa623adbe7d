package recommend

import (
	"github.com/talentsift/shl-recommender/internal/catalog"
)

// Facets are explicit post-filters applied on top of a recommendation list,
// outside the scoring cascade.
type Facets struct {
	// TestTypes keeps recommendations whose test type is in the set.
	TestTypes []string
	// MaxDuration drops recommendations whose parsed duration exceeds the
	// cap; unparseable durations always pass through.
	MaxDuration *int
	// RemoteTesting / AdaptiveSupport require an exact Yes/No match.
	RemoteTesting   *bool
	AdaptiveSupport *bool
}

// ApplyFacets filters the list in order. The input slice is not modified.
func ApplyFacets(recs []*Recommendation, f Facets) []*Recommendation {
	out := make([]*Recommendation, 0, len(recs))
	for _, rec := range recs {
		if !matchesFacets(rec.Assessment, f) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesFacets(a *catalog.Assessment, f Facets) bool {
	if len(f.TestTypes) > 0 && !containsString(f.TestTypes, a.TestType) {
		return false
	}

	if f.MaxDuration != nil {
		if minutes, ok := a.DurationMinutes(); ok && minutes > *f.MaxDuration {
			return false
		}
	}

	if f.RemoteTesting != nil && a.RemoteTesting != yesNo(*f.RemoteTesting) {
		return false
	}

	if f.AdaptiveSupport != nil && a.AdaptiveSupport != yesNo(*f.AdaptiveSupport) {
		return false
	}

	return true
}

func yesNo(v bool) string {
	if v {
		return catalog.SupportYes
	}
	return catalog.SupportNo
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
