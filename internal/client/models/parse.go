package models

import "strings"

// ParseCommaList splits free text on commas, trims every segment and drops
// the empty ones. Order of the remaining segments is kept; duplicates stay.
// The result is never nil.
func ParseCommaList(text string) []string {
	out := []string{}
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// FormatCommaList renders a list the way ParseCommaList reads it back.
func FormatCommaList(items []string) string {
	return strings.Join(items, ", ")
}
