package catalog

import (
	"encoding/json"
	"os"
	"strings"
)

// Test type values as they appear in the SHL product catalog.
const (
	TestTypeCognitive   = "Cognitive"
	TestTypePersonality = "Personality"
	TestTypeSkill       = "Skill"
	TestTypeSituational = "Situational Judgment"
	TestTypeUnknown     = "Unknown"
)

// Yes/No flag values used by the catalog for remote testing and adaptive support.
const (
	SupportYes = "Yes"
	SupportNo  = "No"
)

// DurationVaries is the duration placeholder for assessments without a fixed length.
const DurationVaries = "Varies"

// Assessment is a single product from the assessment catalog. Records are
// immutable once scraped; only missing fields are filled in by Normalize.
type Assessment struct {
	ID              int64  `json:"id,omitempty"`
	Name            string `json:"name"`
	URL             string `json:"url"`
	Description     string `json:"description,omitempty"`
	RemoteTesting   string `json:"remote_testing"`
	AdaptiveSupport string `json:"adaptive_support"`
	Duration        string `json:"duration"`
	TestType        string `json:"test_type"`
}

// DurationMinutes returns the numeric duration of the assessment.
// The second value is false for unparseable durations such as "Varies".
func (a *Assessment) DurationMinutes() (int, bool) {
	return ParseDurationMinutes(a.Duration)
}

// Assessments is an ordered list of catalog records.
type Assessments struct {
	Items []*Assessment
}

func (a *Assessments) Len() int {
	return len(a.Items)
}

func (a *Assessments) Append(items ...*Assessment) {
	a.Items = append(a.Items, items...)
}

func (a *Assessments) FindByURL(url string) *Assessment {
	for _, item := range a.Items {
		if item.URL == url {
			return item
		}
	}
	return nil
}

func (a *Assessments) Names() []string {
	names := make([]string, 0, len(a.Items))
	for _, item := range a.Items {
		names = append(names, item.Name)
	}
	return names
}

// Normalize fills in missing optional fields so downstream scoring never has
// to branch on empty strings. Duration and test type are derived from the
// description when absent.
func (a *Assessments) Normalize() {
	for _, item := range a.Items {
		if strings.TrimSpace(item.Duration) == "" {
			if minutes, ok := ParseDurationMinutes(item.Description); ok {
				item.Duration = formatMinutes(minutes)
			} else {
				item.Duration = DurationVaries
			}
		}
		if strings.TrimSpace(item.TestType) == "" {
			item.TestType = ClassifyTestType(item.Name + " " + item.Description)
		}
		if strings.TrimSpace(item.RemoteTesting) == "" {
			item.RemoteTesting = SupportYes
		}
		if strings.TrimSpace(item.AdaptiveSupport) == "" {
			item.AdaptiveSupport = SupportNo
		}
	}
}

// ClassifyTestType derives a catalog test type from free text.
func ClassifyTestType(text string) string {
	text = strings.ToLower(text)

	switch {
	case containsAny(text, "cognitive", "reasoning", "intelligence", "aptitude"):
		return TestTypeCognitive
	case containsAny(text, "personality", "behavior", "behaviour", "preference"):
		return TestTypePersonality
	case containsAny(text, "skill", "coding", "technical", "programming"):
		return TestTypeSkill
	case containsAny(text, "situation", "judgment", "judgement", "scenario"):
		return TestTypeSituational
	}

	return TestTypeUnknown
}

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// LoadFile reads a previously cached catalog from a JSON file.
func LoadFile(path string) (*Assessments, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []*Assessment
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	return &Assessments{Items: items}, nil
}

// SaveFile caches the catalog as an indented JSON file.
func (a *Assessments) SaveFile(path string) error {
	data, err := json.MarshalIndent(a.Items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
