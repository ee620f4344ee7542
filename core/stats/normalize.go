// Package stats turns raw survey answers into per-question statistics.
package stats

import "strings"

// Normalize canonicalizes a raw answer or scale label for comparison.
// Leading and trailing space is dropped, inner whitespace runs collapse to one
// space and the result is lower-cased.
func Normalize(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// normalizeAll applies Normalize to every label.
func normalizeAll(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = Normalize(l)
	}
	return out
}
