package catalog

import (
	"fmt"
	"regexp"
	"strconv"
)

// The catalog stores durations as free text ("30 minutes", "1 hour",
// "Approx. 45 min", "Varies"). Everything that compares durations goes
// through ParseDurationMinutes so the grammar exists exactly once.
var (
	hourPattern   = regexp.MustCompile(`(?i)(\d+)\s*(?:hour|hr)s?`)
	numberPattern = regexp.MustCompile(`(\d+)`)
)

// ParseDurationMinutes extracts a minutes figure from a free-text duration.
// Hour-denominated values are converted to minutes; otherwise the first
// integer in the text is taken as minutes. Returns false when the text
// contains no numeric figure.
func ParseDurationMinutes(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	if m := hourPattern.FindStringSubmatch(s); m != nil {
		hours, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return hours * 60, true
	}

	if m := numberPattern.FindStringSubmatch(s); m != nil {
		minutes, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return minutes, true
	}

	return 0, false
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%d minutes", minutes)
}
