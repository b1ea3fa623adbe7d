package recommend

import (
	"regexp"
	"strconv"
)

// Patterns that announce a time constraint in a query or job description.
// Order matters: the first match wins. Captured integers are accepted as-is.
var constraintPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*min`),
	regexp.MustCompile(`(?i)(\d+)\s*minute`),
	regexp.MustCompile(`(?i)less than\s*(\d+)`),
	regexp.MustCompile(`(?i)within\s*(\d+)`),
	regexp.MustCompile(`(?i)under\s*(\d+)`),
	regexp.MustCompile(`(?i)max.*?(\d+)\s*min`),
	regexp.MustCompile(`(?i)maximum.*?(\d+)\s*min`),
	regexp.MustCompile(`(?i)no more than\s*(\d+)`),
}

// ExtractTimeConstraint scans the text for a maximum-duration cue and returns
// the figure in minutes, or nil when the text names none.
func ExtractTimeConstraint(text string) *int {
	for _, pattern := range constraintPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		minutes, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return &minutes
	}
	return nil
}
